package db

import (
	"errors"
	"fmt"
)

var (
	// ErrTableNotFound matches any *TableNotFoundError.
	ErrTableNotFound = errors.New("table not found")

	// ErrConnection wraps failures to open or reach the database.
	ErrConnection = errors.New("database connection failed")
)

// TableNotFoundError reports a table missing from the connected schema.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Table)
}

func (e *TableNotFoundError) Is(target error) bool {
	return target == ErrTableNotFound
}

func connectionError(err error) error {
	return fmt.Errorf("%w: %w", ErrConnection, err)
}
