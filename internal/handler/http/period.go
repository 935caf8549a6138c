package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
)

type PeriodHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type periodHandlerImpl struct {
	shiftService shift.Service
	now          func() time.Time
}

func NewPeriodHandler(shiftService shift.Service, now func() time.Time) PeriodHandler {
	return &periodHandlerImpl{shiftService: shiftService, now: now}
}

// List returns every period holding at least one assignment, newest first. The optional
// date query parameter (YYYY-MM-DD) replaces today when picking the current period.
func (h *periodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, ok := validator.IsValidDate(raw)
		if !ok {
			response.ValidationError(w, map[string]string{"date": "date must be YYYY-MM-DD"})
			return
		}
		now = date
	}

	periods, err := h.shiftService.AvailablePeriods(r.Context(), now)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]period.Response, 0, len(periods))
	for _, p := range periods {
		resp = append(resp, period.NewResponse(p))
	}
	response.Success(w, resp)
}

// periodFromQuery reads year, month and half, defaulting to the current period.
func periodFromQuery(r *http.Request, now time.Time) (period.BiweeklyPeriod, error) {
	q := r.URL.Query()
	return period.Request{
		Year:  q.Get("year"),
		Month: q.Get("month"),
		Half:  q.Get("half"),
	}.Resolve(now)
}
