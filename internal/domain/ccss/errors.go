package ccss

import "errors"

var (
	ErrRatesNotFound = errors.New("ccss rates not configured for company")
)
