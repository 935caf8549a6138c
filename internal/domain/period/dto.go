package period

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
)

type Response struct {
	Key       string `json:"key"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Half      string `json:"half"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
}

func NewResponse(p BiweeklyPeriod) Response {
	return Response{
		Key:       p.Key(),
		Year:      p.Year,
		Month:     int(p.Month),
		Half:      string(p.Half),
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Label:     p.Label,
	}
}

// Request selects a period by query string. All fields empty means the current period.
type Request struct {
	Year  string
	Month string // 1-12
	Half  string
}

func (r Request) IsEmpty() bool {
	return r.Year == "" && r.Month == "" && r.Half == ""
}

// Resolve validates the request and builds the period, falling back to the one containing now.
func (r Request) Resolve(now time.Time) (BiweeklyPeriod, error) {
	if r.IsEmpty() {
		return Current(now), nil
	}

	var errs validator.ValidationErrors

	year, month, ok := validator.ParseYearMonth(r.Year, r.Month)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year and month (1-12) are required",
		})
	}
	half := Half(strings.ToLower(strings.TrimSpace(r.Half)))
	if !validator.IsInSlice(string(half), HalfValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "half",
			Message: "half must be one of: " + strings.Join(HalfValues, ", "),
		})
	}

	if len(errs) > 0 {
		return BiweeklyPeriod{}, errs
	}

	return New(year, month, half)
}
