package bankcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/osadebe/kobo/internal/encoding"
	"github.com/osadebe/kobo/internal/transaction"
)

// Parser reads bank statement CSV exports and produces transaction
// params. It auto-detects the layout by matching column headers
// against known profiles, and the delimiter by inspecting the header
// line.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"02-Jan-2006",
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching statement layout found")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks the delimiter that occurs most often in the
// first non-empty line, defaulting to a comma.
func sniffDelimiter(data []byte) rune {
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		best, bestCount := ',', strings.Count(string(line), ",")

		for _, cand := range []rune{';', '\t', '|'} {
			if n := strings.Count(string(line), string(cand)); n > bestCount {
				best, bestCount = cand, n
			}
		}

		return best
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts transactions from data rows using the matched
// profile. headerRowNum is the 0-based index of the header in the
// original file, used in error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var txs []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, txType, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		txs = append(txs, transaction.CreateParams{
			Amount:      amount,
			Type:        txType,
			Description: desc,
			Date:        date,
		})
	}

	return txs, nil
}

// parseDate tries each known layout against the date cell. Returns
// false for empty cells and unparseable values such as footer rows.
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func rowAmount(p *Profile, cols colIndex, row []string) (int64, transaction.Type, bool) {
	switch p.AmountMode {
	case amountSigned:
		return signedAmount(row, cols[p.AmountCol])
	case amountSplit:
		return splitAmount(row, cols[p.DebitCol], cols[p.CreditCol])
	}

	return 0, "", false
}

// signedAmount handles a single signed amount column, negative values
// being expenses.
func signedAmount(row []string, idx int) (int64, transaction.Type, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, "", false
	}

	kobo, err := parseAmountKobo(s)
	if err != nil || kobo == 0 {
		return 0, "", false
	}

	if kobo < 0 {
		return -kobo, transaction.TypeExpense, true
	}

	return kobo, transaction.TypeIncome, true
}

// splitAmount handles separate debit and credit columns.
func splitAmount(row []string, debitIdx, creditIdx int) (int64, transaction.Type, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		if kobo, err := parseAmountKobo(s); err == nil && kobo != 0 {
			return abs(kobo), transaction.TypeExpense, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		if kobo, err := parseAmountKobo(s); err == nil && kobo != 0 {
			return abs(kobo), transaction.TypeIncome, true
		}
	}

	return 0, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
