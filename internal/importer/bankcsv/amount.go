package bankcsv

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmountKobo parses a statement amount string into kobo.
// Format examples: "1,234.56" -> 123456, "-4,500.00" -> -450000,
// "₦10.00" -> 1000, "(250.00)" -> -25000.
func parseAmountKobo(s string) (int64, error) {
	clean := strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	clean = strings.TrimPrefix(clean, "₦")
	clean = strings.TrimPrefix(clean, "NGN")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	kobo := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if negative {
		kobo = -kobo
	}

	return kobo, nil
}
