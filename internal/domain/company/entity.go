package company

import (
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/shopspring/decimal"
)

// DefaultHoursPerShift applies when a profile has no positive hours per shift.
const DefaultHoursPerShift = 8

type Company struct {
	ID          string
	Key         string
	DisplayName string
	Location    string
	Employees   []EmployeeProfile
}

// EmployeeProfile is the payroll-relevant part of an employee's configuration.
type EmployeeProfile struct {
	Name          string
	CcssType      ccss.Type
	HoursPerShift int
	ExtraAmount   decimal.Decimal // recurring stipend
}

// EffectiveHoursPerShift falls back to DefaultHoursPerShift when unset.
func (e EmployeeProfile) EffectiveHoursPerShift() int {
	if e.HoursPerShift <= 0 {
		return DefaultHoursPerShift
	}
	return e.HoursPerShift
}

// Employee returns the profile with the given name.
func (c Company) Employee(name string) (EmployeeProfile, bool) {
	for _, e := range c.Employees {
		if e.Name == name {
			return e, true
		}
	}
	return EmployeeProfile{}, false
}
