package bankcsv_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/osadebe/kobo/internal/importer/bankcsv"
	"github.com/osadebe/kobo/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_GTBank(t *testing.T) {
	csv := `Account Statement
Account Number,0123456789
Currency,NGN

Transaction Date,Value Date,Remarks,Debits,Credits,Balance
01-Mar-2024,01-Mar-2024,POS PURCHASE SHOPRITE IKEJA,"4,500.00",,"495,500.00"
05-Mar-2024,05-Mar-2024,NIP TRANSFER FROM ACME LTD,,"650,000.00","1,145,500.00"
`

	p := bankcsv.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2024, 3, 1), txs[0].Date)
	assert.Equal(t, "POS PURCHASE SHOPRITE IKEJA", txs[0].Description)
	assert.Equal(t, int64(450000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, date(2024, 3, 5), txs[1].Date)
	assert.Equal(t, "NIP TRANSFER FROM ACME LTD", txs[1].Description)
	assert.Equal(t, int64(65000000), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_DebitCreditStatement(t *testing.T) {
	csv := `Date,Narration,Debit,Credit
02/03/2024,AIRTIME PURCHASE MTN,"1,000.00",
15/03/2024,SALARY MARCH,,"850,000.00"
`

	p := bankcsv.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2024, 3, 2), txs[0].Date)
	assert.Equal(t, int64(100000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, int64(85000000), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_SignedExport(t *testing.T) {
	csv := `Date;Description;Amount
2024-03-10;Netflix subscription;-4400.00
2024-03-12;Freelance payout;150000.00
`

	p := bankcsv.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2024, 3, 10), txs[0].Date)
	assert.Equal(t, int64(440000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, int64(15000000), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_ParenthesizedDebit(t *testing.T) {
	csv := `Date,Description,Amount
10-03-2024,BANK CHARGES,(250.00)
`

	p := bankcsv.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, int64(25000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
}

func TestParser_Windows1252Encoding(t *testing.T) {
	utf8CSV := "Date,Narration,Debit,Credit\n01-Mar-2024,CAFÉ NEO LEKKI,\"4,500.00\",\n"

	encoder := charmap.Windows1252.NewEncoder()
	raw, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := bankcsv.NewParser()
	txs, err := p.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "CAFÉ NEO LEKKI", txs[0].Description)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Some,Preamble
Amount,Description,Date,Ignored
-10.00,TEST_ORDER,01-Mar-2024,XXX
`

	p := bankcsv.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "TEST_ORDER", txs[0].Description)
	assert.Equal(t, int64(1000), txs[0].Amount)
}

func TestParser_EmptyFile(t *testing.T) {
	p := bankcsv.NewParser()
	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no matching statement layout")
}

func TestParser_HeaderOnly(t *testing.T) {
	csv := `Date,Narration,Debit,Credit`

	p := bankcsv.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestParser_MissingDescription(t *testing.T) {
	csv := `Date,Description,Amount
01-Mar-2024,,-10.00
`

	p := bankcsv.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestParser_SkipsFooterRows(t *testing.T) {
	csv := `Date,Description,Amount
01-Mar-2024,TEST,-10.00
Total,,,
`

	p := bankcsv.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestParser_LargeAmounts(t *testing.T) {
	csv := `Date,Description,Amount
01-Mar-2024,PROPERTY PURCHASE,"-12,345,678.90"
`

	p := bankcsv.NewParser()
	txs, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, int64(1234567890), txs[0].Amount)
}
