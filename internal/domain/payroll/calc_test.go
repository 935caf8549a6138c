package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s = %s, want %s", field, got, want)
}

func shifts(codes ...shift.Code) []shift.ShiftRecord {
	out := make([]shift.ShiftRecord, 0, len(codes))
	for i, c := range codes {
		out = append(out, shift.ShiftRecord{
			Key:  shift.Key{CompanyKey: "acme", EmployeeName: "Ana", Year: 2025, Month: time.January, Day: i + 1},
			Code: c,
		})
	}
	return out
}

func tenWorkedDays() []shift.ShiftRecord {
	return shifts(
		shift.CodeDiurnal, shift.CodeNocturnal, shift.CodeDiurnal, shift.CodeDiurnal, shift.CodeOff,
		shift.CodeNocturnal, shift.CodeDiurnal, shift.CodeDiurnal, shift.CodeOff, shift.CodeNocturnal,
		shift.CodeDiurnal, shift.CodeDiurnal,
	)
}

func partTimer() company.EmployeeProfile {
	return company.EmployeeProfile{Name: "Ana", CcssType: ccss.TypePartTime, HoursPerShift: 8}
}

func TestComputeLineItem_PartTimeDefaults(t *testing.T) {
	line := ComputeLineItem(partTimer(), tenWorkedDays(), ccss.DefaultRates(), deduction.Override{})

	assert.Equal(t, 10, line.WorkedDays)
	assert.Equal(t, 8, line.HoursPerDay)
	assertDec(t, "80", line.TotalHours, "TotalHours")
	assertDec(t, "122369.60", line.RegularTotal, "RegularTotal")
	assertDec(t, "0", line.OvertimeTotal, "OvertimeTotal")
	assertDec(t, "0", line.ResolvedExtraAmount, "ResolvedExtraAmount")
	assertDec(t, "122369.60", line.TotalIncome, "TotalIncome")
	assertDec(t, "3672.46", line.CcssAmount, "CcssAmount")
	assertDec(t, "3672.46", line.TotalDeductions, "TotalDeductions")
	assertDec(t, "118697.14", line.NetSalary, "NetSalary")
	assertDec(t, "2294.43", line.OvertimeRate, "OvertimeRate")
}

func TestComputeLineItem_ExtraAmountOverride(t *testing.T) {
	override := deduction.Override{ExtraAmount: dec("5000")}
	line := ComputeLineItem(partTimer(), tenWorkedDays(), ccss.DefaultRates(), override)

	assertDec(t, "5000", line.ResolvedExtraAmount, "ResolvedExtraAmount")
	assertDec(t, "127369.60", line.TotalIncome, "TotalIncome")
	assertDec(t, "123697.14", line.NetSalary, "NetSalary")
}

func TestComputeLineItem_ExtraAmountPrecedence(t *testing.T) {
	emp := partTimer()
	emp.ExtraAmount = dec("2500")

	line := ComputeLineItem(emp, nil, ccss.DefaultRates(), deduction.Override{})
	assertDec(t, "2500", line.ResolvedExtraAmount, "unset override falls back to profile")

	line = ComputeLineItem(emp, nil, ccss.DefaultRates(), deduction.Override{ExtraAmount: dec("0")})
	assertDec(t, "2500", line.ResolvedExtraAmount, "zero override falls back to profile")

	line = ComputeLineItem(emp, nil, ccss.DefaultRates(), deduction.Override{ExtraAmount: dec("100")})
	assertDec(t, "100", line.ResolvedExtraAmount, "positive override wins even when smaller")
}

func TestComputeLineItem_OffDaysNeverCount(t *testing.T) {
	offs := shifts(shift.CodeOff, shift.CodeOff, shift.CodeOff, shift.CodeOff, shift.CodeOff, shift.CodeOff)
	line := ComputeLineItem(partTimer(), offs, ccss.DefaultRates(), deduction.Override{})
	assert.Equal(t, 0, line.WorkedDays)
	assertDec(t, "0", line.TotalHours, "TotalHours")

	mixed := append(offs, shifts(shift.CodeDiurnal)...)
	assert.Equal(t, 1, CountWorkedDays(mixed))
}

func TestComputeLineItem_TierOnlyChangesContribution(t *testing.T) {
	mt := ComputeLineItem(partTimer(), tenWorkedDays(), ccss.DefaultRates(), deduction.Override{})

	emp := partTimer()
	emp.CcssType = ccss.TypeFullTime
	tc := ComputeLineItem(emp, tenWorkedDays(), ccss.DefaultRates(), deduction.Override{})

	assertDec(t, "3672.46", mt.CcssAmount, "MT CcssAmount")
	assertDec(t, "11017.39", tc.CcssAmount, "TC CcssAmount")
	assert.True(t, mt.TotalIncome.Equal(tc.TotalIncome))
	assert.True(t, mt.TotalHours.Equal(tc.TotalHours))
}

func TestComputeLineItem_NegativeNetIsNotClamped(t *testing.T) {
	override := deduction.Override{Adelanto: dec("50000"), Compras: dec("1000"), Otros: dec("250.50")}
	line := ComputeLineItem(partTimer(), shifts(shift.CodeDiurnal), ccss.DefaultRates(), override)

	assertDec(t, "12236.96", line.TotalIncome, "TotalIncome")
	assertDec(t, "54922.96", line.TotalDeductions, "TotalDeductions")
	assertDec(t, "-42686.00", line.NetSalary, "NetSalary")
	assert.True(t, line.NetSalary.IsNegative())
}

func TestComputeLineItem_DefaultHoursPerShift(t *testing.T) {
	emp := partTimer()
	emp.HoursPerShift = 0
	line := ComputeLineItem(emp, shifts(shift.CodeDiurnal, shift.CodeNocturnal), ccss.DefaultRates(), deduction.Override{})
	assert.Equal(t, 8, line.HoursPerDay)
	assertDec(t, "16", line.TotalHours, "TotalHours")

	emp.HoursPerShift = 12
	line = ComputeLineItem(emp, shifts(shift.CodeDiurnal), ccss.DefaultRates(), deduction.Override{})
	assertDec(t, "12", line.TotalHours, "TotalHours")
}

func TestComputeLineItem_IsRepeatable(t *testing.T) {
	in := tenWorkedDays()
	override := deduction.Override{Compras: dec("10")}
	first := ComputeLineItem(partTimer(), in, ccss.DefaultRates(), override)
	second := ComputeLineItem(partTimer(), in, ccss.DefaultRates(), override)
	assert.Equal(t, first.WorkedDays, second.WorkedDays)
	assert.Equal(t, first.TotalIncome.String(), second.TotalIncome.String())
	assert.Equal(t, first.NetSalary.String(), second.NetSalary.String())
	assert.Len(t, in, 12)
}

func TestVisibleCompanies(t *testing.T) {
	companies := []company.Company{
		{Key: "acme", DisplayName: "Acme"},
		{Key: "test", DisplayName: "Pruebas"},
		{Key: "beta", DisplayName: "Beta"},
	}
	got := VisibleCompanies(companies, "test")
	assert.Len(t, got, 2)
	assert.Equal(t, "acme", got[0].Key)
	assert.Equal(t, "beta", got[1].Key)

	assert.Len(t, VisibleCompanies(companies, ""), 3)
}
