package shift

import (
	"context"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
)

type Service interface {
	SetShift(ctx context.Context, req SetShiftRequest) (SetShiftResponse, error)
	GetShift(ctx context.Context, key Key) (Code, error)
	ListForPeriod(ctx context.Context, companyKey, employeeName string, p period.BiweeklyPeriod) ([]ShiftRecord, error)
	GetPeriodGrid(ctx context.Context, companyKey string, p period.BiweeklyPeriod) (PeriodGridResponse, error)
	AvailablePeriods(ctx context.Context, now time.Time) ([]period.BiweeklyPeriod, error)
}
