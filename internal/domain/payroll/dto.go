package payroll

import (
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

type LineItemResponse struct {
	EmployeeName        string          `json:"employee_name"`
	CcssType            string          `json:"ccss_type"`
	WorkedDays          int             `json:"worked_days"`
	HoursPerDay         int             `json:"hours_per_day"`
	TotalHours          decimal.Decimal `json:"total_hours"`
	OvertimeHours       decimal.Decimal `json:"overtime_hours"`
	RegularRate         decimal.Decimal `json:"regular_rate"`
	OvertimeRate        decimal.Decimal `json:"overtime_rate"`
	RegularTotal        decimal.Decimal `json:"regular_total"`
	OvertimeTotal       decimal.Decimal `json:"overtime_total"`
	ResolvedExtraAmount decimal.Decimal `json:"resolved_extra_amount"`
	TotalIncome         decimal.Decimal `json:"total_income"`
	CcssAmount          decimal.Decimal `json:"ccss_amount"`
	ComprasDeduction    decimal.Decimal `json:"compras_deduction"`
	AdelantoDeduction   decimal.Decimal `json:"adelanto_deduction"`
	OtrosDeduction      decimal.Decimal `json:"otros_deduction"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetSalary           decimal.Decimal `json:"net_salary"`
}

type CompanyPayrollResponse struct {
	CompanyKey  string             `json:"company_key"`
	CompanyName string             `json:"company_name"`
	Location    string             `json:"location,omitempty"`
	Period      period.Response    `json:"period"`
	Rates       ccss.RatesResponse `json:"rates"`
	Lines       []LineItemResponse `json:"lines"`
}

func NewLineItemResponse(l LineItem) LineItemResponse {
	return LineItemResponse{
		EmployeeName:        l.EmployeeName,
		CcssType:            string(l.CcssType),
		WorkedDays:          l.WorkedDays,
		HoursPerDay:         l.HoursPerDay,
		TotalHours:          l.TotalHours,
		OvertimeHours:       l.OvertimeHours,
		RegularRate:         l.RegularRate,
		OvertimeRate:        l.OvertimeRate,
		RegularTotal:        l.RegularTotal,
		OvertimeTotal:       l.OvertimeTotal,
		ResolvedExtraAmount: l.ResolvedExtraAmount,
		TotalIncome:         l.TotalIncome,
		CcssAmount:          l.CcssAmount,
		ComprasDeduction:    l.ComprasDeduction,
		AdelantoDeduction:   l.AdelantoDeduction,
		OtrosDeduction:      l.OtrosDeduction,
		TotalDeductions:     l.TotalDeductions,
		NetSalary:           l.NetSalary,
	}
}

func NewCompanyPayrollResponse(cp CompanyPayroll) CompanyPayrollResponse {
	lines := make([]LineItemResponse, 0, len(cp.Lines))
	for _, l := range cp.Lines {
		lines = append(lines, NewLineItemResponse(l))
	}
	return CompanyPayrollResponse{
		CompanyKey:  cp.CompanyKey,
		CompanyName: cp.CompanyName,
		Location:    cp.Location,
		Period:      period.NewResponse(cp.Period),
		Rates:       ccss.NewRatesResponse(cp.CompanyKey, cp.Rates),
		Lines:       lines,
	}
}

type AllPayrollResponse struct {
	Period    period.Response          `json:"period"`
	Companies []CompanyPayrollResponse `json:"companies"`
}

func NewAllPayrollResponse(p period.BiweeklyPeriod, all []CompanyPayroll) AllPayrollResponse {
	resp := AllPayrollResponse{
		Period:    period.NewResponse(p),
		Companies: make([]CompanyPayrollResponse, 0, len(all)),
	}
	for _, cp := range all {
		resp.Companies = append(resp.Companies, NewCompanyPayrollResponse(cp))
	}
	return resp
}
