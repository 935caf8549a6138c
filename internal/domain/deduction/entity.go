package deduction

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Field string

const (
	FieldCompras     Field = "compras"
	FieldAdelanto    Field = "adelanto"
	FieldOtros       Field = "otros"
	FieldExtraAmount Field = "extraAmount"
)

var FieldValues = []string{
	string(FieldCompras),
	string(FieldAdelanto),
	string(FieldOtros),
	string(FieldExtraAmount),
}

func ParseField(raw string) (Field, bool) {
	for _, f := range FieldValues {
		if raw == f {
			return Field(f), true
		}
	}
	return "", false
}

// Override holds the clerk-entered adjustments for one employee. Zero values mean unset.
type Override struct {
	Compras     decimal.Decimal `json:"compras"`
	Adelanto    decimal.Decimal `json:"adelanto"`
	Otros       decimal.Decimal `json:"otros"`
	ExtraAmount decimal.Decimal `json:"extraAmount"`
}

func (o Override) Get(f Field) decimal.Decimal {
	switch f {
	case FieldCompras:
		return o.Compras
	case FieldAdelanto:
		return o.Adelanto
	case FieldOtros:
		return o.Otros
	case FieldExtraAmount:
		return o.ExtraAmount
	}
	return decimal.Zero
}

func (o Override) With(f Field, v decimal.Decimal) Override {
	switch f {
	case FieldCompras:
		o.Compras = v
	case FieldAdelanto:
		o.Adelanto = v
	case FieldOtros:
		o.Otros = v
	case FieldExtraAmount:
		o.ExtraAmount = v
	}
	return o
}

// OverrideKey is "{companyKey}-{employeeName}".
func OverrideKey(companyKey, employeeName string) string {
	return companyKey + "-" + employeeName
}

// FieldKey addresses one editable input: a field of one employee's override.
type FieldKey struct {
	CompanyKey   string
	EmployeeName string
	Field        Field
}

func (k FieldKey) OverrideKey() string {
	return OverrideKey(k.CompanyKey, k.EmployeeName)
}

func (k FieldKey) String() string {
	return fmt.Sprintf("%s:%s", k.OverrideKey(), k.Field)
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the longest numeric prefix of raw, ignoring leading whitespace.
// Input without a numeric prefix, or outside float64 range, commits as exactly zero.
func ParseAmount(raw string) decimal.Decimal {
	m := leadingNumber.FindString(strings.TrimLeft(raw, " \t\r\n"))
	if m == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(canonicalNumber(m), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Snapshot is an immutable copy of the committed overrides at Version.
type Snapshot struct {
	Version   uint64
	Overrides map[string]Override
}

// For returns the override for the employee, all zeros when absent.
func (s Snapshot) For(companyKey, employeeName string) Override {
	return s.Overrides[OverrideKey(companyKey, employeeName)]
}

// canonicalNumber spells "3.", ".5" and "2.e3" as "3", "0.5" and "2e3".
func canonicalNumber(m string) string {
	sign := ""
	if m[0] == '+' || m[0] == '-' {
		sign, m = m[:1], m[1:]
	}
	if sign == "+" {
		sign = ""
	}
	if strings.HasPrefix(m, ".") {
		m = "0" + m
	}
	mantissa, exp, hasExp := strings.Cut(strings.ToLower(m), "e")
	mantissa = strings.TrimSuffix(mantissa, ".")
	if hasExp {
		return sign + mantissa + "e" + exp
	}
	return sign + mantissa
}
