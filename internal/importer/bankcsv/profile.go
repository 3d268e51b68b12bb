package bankcsv

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned means one signed column (e.g. "Amount" with value "-4,500.00").
	amountSigned amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a bank statement export.
// Supporting a new bank is just adding a Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSigned
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must all be present for
// this profile to match a header row.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of statement layouts to try during
// auto-detection. More specific profiles come first to avoid false
// matches.
var profiles = []Profile{
	{
		Name:       "gtbank",
		DateCol:    "Transaction Date",
		DescCol:    "Remarks",
		AmountMode: amountSplit,
		DebitCol:   "Debits",
		CreditCol:  "Credits",
	},
	{
		Name:       "statement",
		DateCol:    "Date",
		DescCol:    "Narration",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Credit",
	},
	{
		Name:       "export",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountMode: amountSigned,
		AmountCol:  "Amount",
	},
}
