package shift

import (
	"strings"
	"time"
)

type Code string

const (
	CodeDiurnal   Code = "D"
	CodeNocturnal Code = "N"
	CodeOff       Code = "L"
	CodeEmpty     Code = ""
)

var CodeValues = []string{string(CodeDiurnal), string(CodeNocturnal), string(CodeOff)}

// ParseCode normalizes raw input. Blank input yields CodeEmpty; ok is false for unknown codes.
func ParseCode(raw string) (Code, bool) {
	c := Code(strings.ToUpper(strings.TrimSpace(raw)))
	switch c {
	case CodeEmpty, CodeDiurnal, CodeNocturnal, CodeOff:
		return c, true
	}
	return CodeEmpty, false
}

// IsWorked reports whether the code counts as a worked day.
func (c Code) IsWorked() bool {
	return c == CodeDiurnal || c == CodeNocturnal
}

// Key identifies one cell of the schedule grid. Month is 1-indexed.
type Key struct {
	CompanyKey   string
	EmployeeName string
	Year         int
	Month        time.Month
	Day          int
}

func (k Key) Date() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

// ShiftRecord is one stored day assignment. A stored record never has an empty code.
type ShiftRecord struct {
	ID string
	Key
	Code Code
}
