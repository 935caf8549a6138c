package deduction

import (
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TypeRequest struct {
	CompanyKey   string `json:"-"`
	EmployeeName string `json:"-"`
	Field        string `json:"-"`
	Value        string `json:"value"`
}

func (r *TypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyKey) {
		errs = append(errs, validator.ValidationError{Field: "company_key", Message: "company_key is required"})
	}
	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{Field: "employee_name", Message: "employee_name is required"})
	}
	if _, ok := ParseField(r.Field); !ok {
		errs = append(errs, validator.ValidationError{Field: "field", Message: ErrInvalidField.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r TypeRequest) Key() FieldKey {
	f, _ := ParseField(r.Field)
	return FieldKey{CompanyKey: r.CompanyKey, EmployeeName: r.EmployeeName, Field: f}
}

type FieldStateResponse struct {
	Field     string          `json:"field"`
	Typing    string          `json:"typing"`
	Committed decimal.Decimal `json:"committed"`
	Pending   bool            `json:"pending"`
}

type OverrideResponse struct {
	CompanyKey   string               `json:"company_key"`
	EmployeeName string               `json:"employee_name"`
	Version      uint64               `json:"version"`
	Fields       []FieldStateResponse `json:"fields"`
}

// NewOverrideResponse reports every field of the employee's override, typed and committed.
func NewOverrideResponse(s Store, companyKey, employeeName string) OverrideResponse {
	snap := s.Snapshot()
	committed := snap.For(companyKey, employeeName)
	resp := OverrideResponse{
		CompanyKey:   companyKey,
		EmployeeName: employeeName,
		Version:      snap.Version,
		Fields:       make([]FieldStateResponse, 0, len(FieldValues)),
	}
	for _, f := range FieldValues {
		key := FieldKey{CompanyKey: companyKey, EmployeeName: employeeName, Field: Field(f)}
		typed, ok := s.Typing(key)
		if !ok {
			typed = committed.Get(Field(f)).String()
		}
		resp.Fields = append(resp.Fields, FieldStateResponse{
			Field:     f,
			Typing:    typed,
			Committed: committed.Get(Field(f)),
			Pending:   s.IsPending(key),
		})
	}
	return resp
}
