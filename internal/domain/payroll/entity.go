package payroll

import (
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

// LineItem is one employee's computed payroll for a period. It is derived on demand
// and never stored.
type LineItem struct {
	EmployeeName        string
	CcssType            ccss.Type
	WorkedDays          int
	HoursPerDay         int
	TotalHours          decimal.Decimal
	OvertimeHours       decimal.Decimal
	RegularRate         decimal.Decimal
	OvertimeRate        decimal.Decimal
	RegularTotal        decimal.Decimal
	OvertimeTotal       decimal.Decimal
	ResolvedExtraAmount decimal.Decimal
	TotalIncome         decimal.Decimal
	CcssAmount          decimal.Decimal
	ComprasDeduction    decimal.Decimal
	AdelantoDeduction   decimal.Decimal
	OtrosDeduction      decimal.Decimal
	TotalDeductions     decimal.Decimal
	NetSalary           decimal.Decimal
}

// CompanyPayroll lists the line items of one company. No company-level totals are kept;
// each line stands alone.
type CompanyPayroll struct {
	CompanyKey  string
	CompanyName string
	Location    string
	Period      period.BiweeklyPeriod
	Rates       ccss.Resolution
	Lines       []LineItem
}
