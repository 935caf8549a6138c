package period

import "errors"

var (
	ErrInvalidHalf  = errors.New("half must be 'first' or 'second'")
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)
