package shift

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
)

// Action is what SetShift did to the underlying store.
type Action string

const (
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionNoop     Action = "noop"
)

type SetShiftRequest struct {
	CompanyKey   string `json:"-"`
	EmployeeName string `json:"employee_name"`
	Year         int    `json:"year"`
	Month        int    `json:"month"` // 1-12
	Day          int    `json:"day"`
	ShiftCode    string `json:"shift_code"`
}

func (r *SetShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyKey) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_key",
			Message: "company_key is required",
		})
	}
	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name is required",
		})
	}
	if r.Year < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	} else if r.Year >= 1 && (r.Day < 1 || r.Day > period.DaysInMonth(r.Year, time.Month(r.Month))) {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day is outside the month",
		})
	}
	if _, ok := ParseCode(r.ShiftCode); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_code",
			Message: "shift_code must be one of: " + strings.Join(CodeValues, ", ") + " or empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r SetShiftRequest) Key() Key {
	return Key{
		CompanyKey:   strings.TrimSpace(r.CompanyKey),
		EmployeeName: strings.TrimSpace(r.EmployeeName),
		Year:         r.Year,
		Month:        time.Month(r.Month),
		Day:          r.Day,
	}
}

type SetShiftResponse struct {
	Action       Action `json:"action"`
	ShiftCode    string `json:"shift_code"`
	PreviousCode string `json:"previous_code"`
}

type PeriodGridResponse struct {
	CompanyKey string                `json:"company_key"`
	Period     period.Response       `json:"period"`
	Days       []int                 `json:"days"`
	Rows       []EmployeeRowResponse `json:"rows"`
}

type EmployeeRowResponse struct {
	EmployeeName string            `json:"employee_name"`
	Shifts       map[string]string `json:"shifts"` // day of month -> code
	WorkedDays   int               `json:"worked_days"`
}
