package company

import (
	"strings"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	Name          string          `json:"name"`
	CcssType      ccss.Type       `json:"ccss_type"`
	HoursPerShift int             `json:"hours_per_shift"`
	ExtraAmount   decimal.Decimal `json:"extra_amount"`
}

type CompanyResponse struct {
	Key         string             `json:"company_key"`
	DisplayName string             `json:"company_name"`
	Location    string             `json:"location,omitempty"`
	Employees   []EmployeeResponse `json:"employees"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	resp := CompanyResponse{
		Key:         c.Key,
		DisplayName: c.DisplayName,
		Location:    c.Location,
		Employees:   make([]EmployeeResponse, 0, len(c.Employees)),
	}
	for _, e := range c.Employees {
		resp.Employees = append(resp.Employees, EmployeeResponse{
			Name:          e.Name,
			CcssType:      e.CcssType,
			HoursPerShift: e.EffectiveHoursPerShift(),
			ExtraAmount:   e.ExtraAmount,
		})
	}
	return resp
}

type EmployeeRequest struct {
	Name          string          `json:"name"`
	CcssType      string          `json:"ccss_type"`
	HoursPerShift int             `json:"hours_per_shift"`
	ExtraAmount   decimal.Decimal `json:"extra_amount"`
}

type SaveCompanyRequest struct {
	Key         string            `json:"-"`
	DisplayName string            `json:"company_name"`
	Location    string            `json:"location"`
	Employees   []EmployeeRequest `json:"employees"`
}

func (r *SaveCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_key",
			Message: "company_key is required",
		})
	}
	if validator.IsEmpty(r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}

	seen := make(map[string]bool, len(r.Employees))
	for _, e := range r.Employees {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "employees.name",
				Message: "employee name is required",
			})
			continue
		}
		if seen[name] {
			errs = append(errs, validator.ValidationError{
				Field:   "employees.name",
				Message: "duplicate employee " + name,
			})
		}
		seen[name] = true
		if e.ExtraAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "employees.extra_amount",
				Message: "extra_amount must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Company converts the request into the stored shape, normalizing profiles.
func (r *SaveCompanyRequest) Company() Company {
	c := Company{
		Key:         strings.TrimSpace(r.Key),
		DisplayName: strings.TrimSpace(r.DisplayName),
		Location:    strings.TrimSpace(r.Location),
		Employees:   make([]EmployeeProfile, 0, len(r.Employees)),
	}
	for _, e := range r.Employees {
		c.Employees = append(c.Employees, EmployeeProfile{
			Name:          strings.TrimSpace(e.Name),
			CcssType:      ccss.ParseType(strings.ToUpper(strings.TrimSpace(e.CcssType))),
			HoursPerShift: e.HoursPerShift,
			ExtraAmount:   e.ExtraAmount,
		})
	}
	return c
}
