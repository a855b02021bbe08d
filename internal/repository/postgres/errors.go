package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"explorer/internal/domain"
)

// wrapStoreError wraps a query failure, classifying connectivity problems
// as domain.ErrUnavailable so callers can treat them as transient.
func wrapStoreError(op string, err error) error {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
