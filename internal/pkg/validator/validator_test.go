package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	codes := []string{"D", "N", "L"}
	if !IsInSlice("N", codes) {
		t.Errorf("IsInSlice(%q) = false, want true", "N")
	}
	if IsInSlice("X", codes) {
		t.Errorf("IsInSlice(%q) = true, want false", "X")
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2024-02-29"}
	invalid := []string{"2023-02-29", "2023/01/01", "", "01-01-2023"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	year, month, ok := ParseYearMonth("2025", "2")
	if !ok || year != 2025 || month != time.February {
		t.Errorf("ParseYearMonth(2025, 2) = %d, %v, %v", year, month, ok)
	}
	for _, m := range []string{"0", "13", "x", ""} {
		if _, _, ok := ParseYearMonth("2025", m); ok {
			t.Errorf("ParseYearMonth(2025, %q) ok, want rejection", m)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "day", Message: "day is outside the month"},
		{Field: "shift_code", Message: "bad"},
	}
	if got := errs.Error(); got != "day: day is outside the month; shift_code: bad" {
		t.Errorf("Error() = %q", got)
	}
	if m := errs.ToMap(); m["shift_code"] != "bad" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
