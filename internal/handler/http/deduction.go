package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DeductionHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Type(w http.ResponseWriter, r *http.Request)
	Flush(w http.ResponseWriter, r *http.Request)
}

type deductionHandlerImpl struct {
	overrides      deduction.Store
	companyService company.CompanyService
}

func NewDeductionHandler(overrides deduction.Store, companyService company.CompanyService) DeductionHandler {
	return &deductionHandlerImpl{overrides: overrides, companyService: companyService}
}

// Get implements DeductionHandler.
func (h *deductionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyKey := chi.URLParam(r, "companyKey")
	employeeName := chi.URLParam(r, "employeeName")

	if _, err := h.companyService.Profile(r.Context(), companyKey, employeeName); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, deduction.NewOverrideResponse(h.overrides, companyKey, employeeName))
}

// Type implements DeductionHandler. The raw value is kept as typed and committed after the
// debounce delay, or right away with ?commit=true.
func (h *deductionHandlerImpl) Type(w http.ResponseWriter, r *http.Request) {
	var req deduction.TypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.CompanyKey = chi.URLParam(r, "companyKey")
	req.EmployeeName = chi.URLParam(r, "employeeName")
	req.Field = chi.URLParam(r, "field")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	if _, err := h.companyService.Profile(r.Context(), req.CompanyKey, req.EmployeeName); err != nil {
		response.HandleError(w, err)
		return
	}

	commit, _ := strconv.ParseBool(r.URL.Query().Get("commit"))
	if commit {
		h.overrides.Commit(req.Key(), req.Value)
		response.SuccessWithMessage(w, "Deduction committed",
			deduction.NewOverrideResponse(h.overrides, req.CompanyKey, req.EmployeeName))
		return
	}

	h.overrides.Type(req.Key(), req.Value)
	response.Accepted(w, "Deduction pending",
		deduction.NewOverrideResponse(h.overrides, req.CompanyKey, req.EmployeeName))
}

// Flush implements DeductionHandler.
func (h *deductionHandlerImpl) Flush(w http.ResponseWriter, r *http.Request) {
	pending := h.overrides.Pending()
	h.overrides.FlushAll()
	response.Success(w, map[string]interface{}{
		"flushed": pending,
		"version": h.overrides.Snapshot().Version,
	})
}
