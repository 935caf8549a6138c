package shift

import (
	"errors"
	"fmt"
)

var (
	ErrShiftNotFound      = errors.New("shift record not found")
	ErrInvalidShiftCode   = errors.New("shift code must be one of D, N, L or empty")
	ErrCompanyKeyRequired = errors.New("company key is required")
	ErrEmployeeRequired   = errors.New("employee name is required")
	ErrInvalidShiftDate   = errors.New("invalid shift date")
	ErrInvalidRequestData = errors.New("invalid request data")
)

// WriteError reports a failed insert, update or delete. Previous is the cell value that
// is still in effect, so callers can keep showing it.
type WriteError struct {
	Action   Action
	Previous Code
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("shift %s failed: %v", e.Action, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
