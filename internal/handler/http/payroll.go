package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetCompany(w http.ResponseWriter, r *http.Request)
	GetAll(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	now            func() time.Time
}

func NewPayrollHandler(payrollService payroll.PayrollService, now func() time.Time) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, now: now}
}

// GetCompany implements PayrollHandler.
func (h *payrollHandlerImpl) GetCompany(w http.ResponseWriter, r *http.Request) {
	companyKey := chi.URLParam(r, "companyKey")

	p, err := periodFromQuery(r, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ComputeCompany(r.Context(), companyKey, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewCompanyPayrollResponse(result))
}

// GetAll implements PayrollHandler.
func (h *payrollHandlerImpl) GetAll(w http.ResponseWriter, r *http.Request) {
	p, err := periodFromQuery(r, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	all, err := h.payrollService.ComputeAll(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewAllPayrollResponse(p, all))
}
