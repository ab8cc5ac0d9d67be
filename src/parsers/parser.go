// backend/src/parsers/parser.go
package parsers

import (
	"io"

	"github.com/username/tourdesk/backend/src/models"
)

// Parser turns one raw platform export file into normalized settlement rows.
// Implementations are pure transforms of the provided bytes: a malformed
// data row becomes a RowError in the result, never a top-level error. Only
// an unrecognized header set fails the parse as a whole.
type Parser interface {
	Parse(file io.Reader) (models.ParseResult, error)
}
