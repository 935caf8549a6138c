package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	GetGrid(w http.ResponseWriter, r *http.Request)
	SetShift(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.Service
	now          func() time.Time
}

func NewShiftHandler(shiftService shift.Service, now func() time.Time) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService, now: now}
}

// GetGrid implements ShiftHandler.
func (h *shiftHandlerImpl) GetGrid(w http.ResponseWriter, r *http.Request) {
	companyKey := chi.URLParam(r, "companyKey")

	p, err := periodFromQuery(r, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	grid, err := h.shiftService.GetPeriodGrid(r.Context(), companyKey, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, grid)
}

// SetShift implements ShiftHandler.
func (h *shiftHandlerImpl) SetShift(w http.ResponseWriter, r *http.Request) {
	var req shift.SetShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.CompanyKey = chi.URLParam(r, "companyKey")

	result, err := h.shiftService.SetShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift "+string(result.Action), result)
}
