package period

import (
	"fmt"
	"sort"
	"time"
)

// DaysInMonth uses day 0 of the following month, which normalizes to the last day of month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// New builds the period for year/month/half.
func New(year int, month time.Month, half Half) (BiweeklyPeriod, error) {
	if month < time.January || month > time.December {
		return BiweeklyPeriod{}, ErrInvalidMonth
	}

	var first, last int
	switch half {
	case HalfFirst:
		first, last = 1, FirstHalfLastDay
	case HalfSecond:
		first, last = FirstHalfLastDay+1, DaysInMonth(year, month)
	default:
		return BiweeklyPeriod{}, ErrInvalidHalf
	}

	return BiweeklyPeriod{
		Year:      year,
		Month:     month,
		Half:      half,
		StartDate: time.Date(year, month, first, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, month, last, 0, 0, 0, 0, time.UTC),
		Label:     fmt.Sprintf("%d-%d %s %d", first, last, monthNames[month-1], year),
	}, nil
}

// HalfOf returns the half a day of month belongs to.
func HalfOf(day int) Half {
	if day <= FirstHalfLastDay {
		return HalfFirst
	}
	return HalfSecond
}

// Current returns the period containing the calendar date of now.
func Current(now time.Time) BiweeklyPeriod {
	p, _ := New(now.Year(), now.Month(), HalfOf(now.Day()))
	return p
}

// Available buckets the given shift dates into periods, most recent first. The period
// containing now is prepended when no date falls inside it, so there is always a
// selectable current period.
func Available(dates []time.Time, now time.Time) []BiweeklyPeriod {
	seen := make(map[string]BiweeklyPeriod)
	for _, d := range dates {
		p := Current(d)
		seen[p.Key()] = p
	}

	periods := make([]BiweeklyPeriod, 0, len(seen)+1)
	for _, p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].StartDate.After(periods[j].StartDate)
	})

	current := Current(now)
	if _, ok := seen[current.Key()]; !ok {
		periods = append([]BiweeklyPeriod{current}, periods...)
	}
	return periods
}
