package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// The cell keeps its previous value; tell the client which one.
	var writeErr *shift.WriteError
	if errors.As(err, &writeErr) {
		slog.Error("Shift write failed", "action", writeErr.Action, "error", writeErr.Err)
		WriteFailed(w, "Shift could not be saved", map[string]string{
			"action":        string(writeErr.Action),
			"previous_code": string(writeErr.Previous),
		})
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		BadRequest(w, "Malformed JSON body", nil)
		return
	}

	switch {
	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidShiftCode),
		errors.Is(err, shift.ErrInvalidShiftDate),
		errors.Is(err, shift.ErrInvalidRequestData),
		errors.Is(err, shift.ErrCompanyKeyRequired),
		errors.Is(err, shift.ErrEmployeeRequired):
		BadRequest(w, err.Error(), nil)

	// Period and payroll errors
	case errors.Is(err, period.ErrInvalidHalf),
		errors.Is(err, period.ErrInvalidMonth),
		errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrCompanyKeyRequired):
		BadRequest(w, err.Error(), nil)

	// Deduction errors
	case errors.Is(err, deduction.ErrInvalidField),
		errors.Is(err, deduction.ErrCompanyKeyRequired),
		errors.Is(err, deduction.ErrEmployeeRequired):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, ccss.ErrRatesNotFound):
		NotFound(w, "CCSS rates not configured")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
