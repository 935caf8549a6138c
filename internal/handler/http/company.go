package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &companyHandlerImpl{companyService: companyService}
}

// List implements CompanyHandler.
func (h *companyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, companies)
}

// Get implements CompanyHandler.
func (h *companyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.companyService.GetByKey(r.Context(), chi.URLParam(r, "companyKey"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, c)
}

// Save implements CompanyHandler.
func (h *companyHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req company.SaveCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.Key = chi.URLParam(r, "companyKey")

	c, err := h.companyService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company saved", c)
}
