package period

import (
	"fmt"
	"time"
)

type Half string

const (
	HalfFirst  Half = "first"
	HalfSecond Half = "second"
)

var HalfValues = []string{string(HalfFirst), string(HalfSecond)}

// FirstHalfLastDay is the last day of the first half of every month.
const FirstHalfLastDay = 15

// BiweeklyPeriod is a half-month payroll window: days 1-15 or 16 to the end of the month.
// StartDate and EndDate are midnight UTC of the first and last day, both inclusive.
type BiweeklyPeriod struct {
	Year      int
	Month     time.Month
	Half      Half
	StartDate time.Time
	EndDate   time.Time
	Label     string
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Key identifies the period, e.g. "2025-02-second".
func (p BiweeklyPeriod) Key() string {
	return fmt.Sprintf("%04d-%02d-%s", p.Year, int(p.Month), p.Half)
}

// Contains reports whether the calendar day of t falls inside the period.
func (p BiweeklyPeriod) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// FirstDay and LastDay are the inclusive day-of-month bounds.
func (p BiweeklyPeriod) FirstDay() int { return p.StartDate.Day() }
func (p BiweeklyPeriod) LastDay() int  { return p.EndDate.Day() }

// Days lists the days of month covered by the period in order.
func (p BiweeklyPeriod) Days() []int {
	days := make([]int, 0, p.LastDay()-p.FirstDay()+1)
	for d := p.FirstDay(); d <= p.LastDay(); d++ {
		days = append(days, d)
	}
	return days
}

func (p BiweeklyPeriod) Equal(o BiweeklyPeriod) bool {
	return p.Year == o.Year && p.Month == o.Month && p.Half == o.Half
}
