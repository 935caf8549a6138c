package payroll

import (
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// CountWorkedDays counts D and N codes. L and absent days count zero.
func CountWorkedDays(shifts []shift.ShiftRecord) int {
	worked := 0
	for _, s := range shifts {
		if s.Code.IsWorked() {
			worked++
		}
	}
	return worked
}

// ResolveExtraAmount prefers a positive override over the employee's recurring stipend.
func ResolveExtraAmount(override, profile decimal.Decimal) decimal.Decimal {
	if override.IsPositive() {
		return override
	}
	return profile
}

// ComputeLineItem derives the payroll line for one employee from the shifts of a single
// period. It has no side effects and does not clamp a negative net salary.
func ComputeLineItem(emp company.EmployeeProfile, shifts []shift.ShiftRecord, rates ccss.Rates, override deduction.Override) LineItem {
	workedDays := CountWorkedDays(shifts)
	hoursPerDay := emp.EffectiveHoursPerShift()
	totalHours := decimal.NewFromInt(int64(workedDays * hoursPerDay))

	// overtime hours are not tracked yet; the rate is still carried for display
	overtimeHours := decimal.Zero

	regularTotal := rates.HoraBruta.Mul(totalHours)
	overtimeTotal := rates.OvertimeRate.Mul(overtimeHours)
	extra := ResolveExtraAmount(override.ExtraAmount, emp.ExtraAmount)
	totalIncome := regularTotal.Add(overtimeTotal).Add(extra)

	ccssAmount := rates.ContributionFor(emp.CcssType)
	totalDeductions := ccssAmount.Add(override.Compras).Add(override.Adelanto).Add(override.Otros)

	return LineItem{
		EmployeeName:        emp.Name,
		CcssType:            emp.CcssType,
		WorkedDays:          workedDays,
		HoursPerDay:         hoursPerDay,
		TotalHours:          totalHours,
		OvertimeHours:       overtimeHours,
		RegularRate:         rates.HoraBruta,
		OvertimeRate:        rates.OvertimeRate,
		RegularTotal:        regularTotal,
		OvertimeTotal:       overtimeTotal,
		ResolvedExtraAmount: extra,
		TotalIncome:         totalIncome,
		CcssAmount:          ccssAmount,
		ComprasDeduction:    override.Compras,
		AdelantoDeduction:   override.Adelanto,
		OtrosDeduction:      override.Otros,
		TotalDeductions:     totalDeductions,
		NetSalary:           totalIncome.Sub(totalDeductions),
	}
}

// VisibleCompanies drops the sentinel test company from all-companies views.
func VisibleCompanies(companies []company.Company, sentinel string) []company.Company {
	out := make([]company.Company, 0, len(companies))
	for _, c := range companies {
		if sentinel != "" && (c.Key == sentinel || c.DisplayName == sentinel) {
			continue
		}
		out = append(out, c)
	}
	return out
}
