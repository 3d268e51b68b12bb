// Package importer turns bank statement exports into transaction
// params ready for review and persistence.
package importer

import (
	"io"

	"github.com/osadebe/kobo/internal/transaction"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
