package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CcssHandler interface {
	GetRates(w http.ResponseWriter, r *http.Request)
	SetRates(w http.ResponseWriter, r *http.Request)
}

type ccssHandlerImpl struct {
	resolver ccss.Resolver
}

func NewCcssHandler(resolver ccss.Resolver) CcssHandler {
	return &ccssHandlerImpl{resolver: resolver}
}

// GetRates implements CcssHandler. Rates always resolve; used_default tells whether the
// company has its own row.
func (h *ccssHandlerImpl) GetRates(w http.ResponseWriter, r *http.Request) {
	companyKey := chi.URLParam(r, "companyKey")
	res := h.resolver.Resolve(r.Context(), companyKey)
	response.Success(w, ccss.NewRatesResponse(companyKey, res))
}

// SetRates implements CcssHandler.
func (h *ccssHandlerImpl) SetRates(w http.ResponseWriter, r *http.Request) {
	var req ccss.SetRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.resolver.SetRates(r.Context(), chi.URLParam(r, "companyKey"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "CCSS rates saved", result)
}
