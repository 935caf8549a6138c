package deduction

import "errors"

var (
	ErrInvalidField       = errors.New("field must be one of compras, adelanto, otros, extraAmount")
	ErrCompanyKeyRequired = errors.New("company key is required")
	ErrEmployeeRequired   = errors.New("employee name is required")
)
