package sqlite

import (
	"errors"
	"fmt"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// writeError wraps a failed write with the operation name. Constraint
// failures reported by SQLite are also tagged with ErrConstraintViolation.
func writeError(op string, err error) error {
	if isConstraint(err) {
		return fmt.Errorf("%s: %w: %w", op, types.ErrConstraintViolation, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isConstraint reports whether err carries a SQLITE_CONSTRAINT result code,
// primary or extended.
func isConstraint(err error) bool {
	var se *sqlitedriver.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
