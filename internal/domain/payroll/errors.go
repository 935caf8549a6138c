package payroll

import "errors"

var (
	ErrInvalidPeriod      = errors.New("invalid payroll period")
	ErrCompanyKeyRequired = errors.New("company key is required")
)
