package importer

import (
	"io"

	"github.com/osadebe/kobo/internal/importer/bankcsv"
	"github.com/osadebe/kobo/internal/transaction"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: bankcsv.NewParser(),
	}
}

// Import parses a statement export. The layout is auto-detected from
// the column headers, so callers do not name the bank up front.
func (s *Service) Import(r io.Reader) ([]transaction.CreateParams, error) {
	return s.csvImporter.Parse(r)
}
