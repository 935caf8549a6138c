package ccss

import (
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RatesResponse struct {
	CompanyKey   string          `json:"company_key"`
	CompanyName  string          `json:"company_name"`
	TC           decimal.Decimal `json:"tc"`
	MT           decimal.Decimal `json:"mt"`
	HoraBruta    decimal.Decimal `json:"horabruta"`
	OvertimeRate decimal.Decimal `json:"hora_extra"`
	UsedDefault  bool            `json:"used_default"`
}

func NewRatesResponse(companyKey string, r Resolution) RatesResponse {
	return RatesResponse{
		CompanyKey:   companyKey,
		CompanyName:  r.CompanyName,
		TC:           r.Rates.TC,
		MT:           r.Rates.MT,
		HoraBruta:    r.Rates.HoraBruta,
		OvertimeRate: r.Rates.OvertimeRate,
		UsedDefault:  r.UsedDefault,
	}
}

// SetRatesRequest carries a company's rate row. A zero OvertimeRate keeps the default.
type SetRatesRequest struct {
	TC           decimal.Decimal `json:"tc"`
	MT           decimal.Decimal `json:"mt"`
	HoraBruta    decimal.Decimal `json:"horabruta"`
	OvertimeRate decimal.Decimal `json:"hora_extra"`
}

func (r *SetRatesRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"tc", r.TC},
		{"mt", r.MT},
		{"horabruta", r.HoraBruta},
	} {
		if !f.value.IsPositive() {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must be greater than 0",
			})
		}
	}
	if r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hora_extra",
			Message: "hora_extra must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r SetRatesRequest) Rates() Rates {
	rates := Rates{TC: r.TC, MT: r.MT, HoraBruta: r.HoraBruta, OvertimeRate: r.OvertimeRate}
	if rates.OvertimeRate.IsZero() {
		rates.OvertimeRate = DefaultOvertimeRate
	}
	return rates
}
