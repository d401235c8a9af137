package core

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// DBError maps driver errors onto the core sentinels. Anything it does not
// recognize is wrapped with msg and left as an infrastructure error.
// Constraint names are logged, not returned, since 4xx messages reach clients.
func DBError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			packageLogger.Debug(msg, zap.String("constraint", pqErr.Constraint))
			return fmt.Errorf("%s: %w", msg, ErrConflict)
		case pqForeignKeyViolation:
			packageLogger.Debug(msg, zap.String("constraint", pqErr.Constraint))
			return fmt.Errorf("%s: %w", msg, ErrNotFound)
		}
	}

	return errors.Wrap(err, msg)
}

func RowsAffected(result sql.Result) (int64, error) {
	if result == nil {
		return 0, nil
	}
	return result.RowsAffected()
}
