package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
)

// ShiftSchemaVersion is written on every shift document. Documents without it are legacy.
const ShiftSchemaVersion = 2

// Canonical shift document fields.
const (
	fieldCompanyKey    = "company_key"
	fieldEmployeeName  = "employee_name"
	fieldYear          = "year"
	fieldMonth         = "month"
	fieldDay           = "day"
	fieldShiftCode     = "shift_code"
	fieldSchemaVersion = "schema_version"
)

// Legacy spellings accepted on read, in canonical field order.
var shiftAliases = map[string][]string{
	fieldCompanyKey:   {"companyKey", "empresa"},
	fieldEmployeeName: {"employeeName", "empleado"},
	fieldYear:         {"anio"},
	fieldMonth:        {"mes"},
	fieldDay:          {"dia"},
	fieldShiftCode:    {"shiftCode", "turno"},
}

// Normalization describes how a stored shift document was interpreted.
type Normalization struct {
	Version int
	// Ambiguous is set for legacy documents whose month was read with the configured legacy base.
	Ambiguous bool
	// Aliased is set when any field was read from a legacy spelling.
	Aliased bool
}

// NormalizeShift maps a stored document onto a ShiftRecord. ok is false when the document
// lacks an identifiable cell (company, employee or a valid date). Unknown codes normalize to
// CodeEmpty, which callers treat as an absent assignment.
func NormalizeShift(id string, data record.Data, legacyMonthBase int) (shift.ShiftRecord, Normalization, bool) {
	var n Normalization
	if v, ok := data.Int(fieldSchemaVersion); ok {
		n.Version = v
	}

	lookup := func(field string) (interface{}, bool) {
		if v, ok := data[field]; ok && v != nil {
			return v, true
		}
		for _, alias := range shiftAliases[field] {
			if v, ok := data[alias]; ok && v != nil {
				n.Aliased = true
				return v, true
			}
		}
		return nil, false
	}

	company, ok := lookupString(lookup, fieldCompanyKey)
	if !ok || company == "" {
		return shift.ShiftRecord{}, n, false
	}
	employee, ok := lookupString(lookup, fieldEmployeeName)
	if !ok || employee == "" {
		return shift.ShiftRecord{}, n, false
	}
	year, ok := lookupInt(lookup, fieldYear)
	if !ok {
		return shift.ShiftRecord{}, n, false
	}
	month, ok := lookupInt(lookup, fieldMonth)
	if !ok {
		return shift.ShiftRecord{}, n, false
	}
	day, ok := lookupInt(lookup, fieldDay)
	if !ok {
		return shift.ShiftRecord{}, n, false
	}

	if n.Version < ShiftSchemaVersion {
		n.Ambiguous = true
		month += 1 - legacyMonthBase
	}
	if month < 1 || month > 12 || year < 1 {
		return shift.ShiftRecord{}, n, false
	}
	if day < 1 || day > period.DaysInMonth(year, time.Month(month)) {
		return shift.ShiftRecord{}, n, false
	}

	code := shift.CodeEmpty
	if raw, ok := lookupString(lookup, fieldShiftCode); ok {
		if c, valid := shift.ParseCode(raw); valid {
			code = c
		}
	}

	return shift.ShiftRecord{
		ID: id,
		Key: shift.Key{
			CompanyKey:   company,
			EmployeeName: employee,
			Year:         year,
			Month:        time.Month(month),
			Day:          day,
		},
		Code: code,
	}, n, true
}

// canonicalShift is the document written for new records.
func canonicalShift(rec shift.ShiftRecord) record.Data {
	return record.Data{
		fieldCompanyKey:    rec.CompanyKey,
		fieldEmployeeName:  rec.EmployeeName,
		fieldYear:          rec.Year,
		fieldMonth:         int(rec.Month),
		fieldDay:           rec.Day,
		fieldShiftCode:     string(rec.Code),
		fieldSchemaVersion: ShiftSchemaVersion,
	}
}

func lookupString(lookup func(string) (interface{}, bool), field string) (string, bool) {
	v, ok := lookup(field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func lookupInt(lookup func(string) (interface{}, bool), field string) (int, bool) {
	v, ok := lookup(field)
	if !ok {
		return 0, false
	}
	if s, isString := v.(string); isString {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return n, err == nil
	}
	return record.Data{field: v}.Int(field)
}
