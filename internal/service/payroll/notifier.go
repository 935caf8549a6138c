package payroll

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/sse"
	deductionService "github.com/cmlabs-hris/backoffice-payroll-go/internal/service/deduction"
)

const EventPayrollInvalidated = "payroll.invalidated"

const (
	ReasonShift     = "shift"
	ReasonDeduction = "deduction"
	ReasonRates     = "ccss_rates"
	ReasonCompany   = "company"
)

// Notifier turns change hooks from the other services into payroll invalidation and
// pushes an event to the company's subscribers. The payroll service is attached after
// construction because it depends on the services that feed the notifier.
type Notifier struct {
	hub *sse.Hub

	mu      sync.RWMutex
	payroll payroll.PayrollService
	rates   ccss.Resolver
}

func NewNotifier(hub *sse.Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) Attach(svc payroll.PayrollService) {
	n.mu.Lock()
	n.payroll = svc
	n.mu.Unlock()
}

// AttachRates makes company changes drop the cached rate resolution, which is keyed by
// company but joined on the display name.
func (n *Notifier) AttachRates(r ccss.Resolver) {
	n.mu.Lock()
	n.rates = r
	n.mu.Unlock()
}

// ShiftChanged matches the shift service change hook.
func (n *Notifier) ShiftChanged(ctx context.Context, key shift.Key, action shift.Action) {
	n.invalidate(key.CompanyKey, ReasonShift, map[string]interface{}{
		"employee_name": key.EmployeeName,
		"date":          key.Date().Format("2006-01-02"),
		"action":        string(action),
	})
}

// DeductionCommitted matches the deduction store commit hook.
func (n *Notifier) DeductionCommitted(ev deductionService.CommitEvent) {
	n.invalidate(ev.Key.CompanyKey, ReasonDeduction, map[string]interface{}{
		"employee_name": ev.Key.EmployeeName,
		"field":         string(ev.Key.Field),
		"value":         ev.Value.String(),
		"version":       ev.Version,
	})
}

// RatesChanged matches the CCSS resolver change hook.
func (n *Notifier) RatesChanged(ctx context.Context, companyKey string) {
	n.invalidate(companyKey, ReasonRates, nil)
}

// CompanyChanged matches the company service change hook.
func (n *Notifier) CompanyChanged(ctx context.Context, companyKey string) {
	n.mu.RLock()
	rates := n.rates
	n.mu.RUnlock()

	if rates != nil {
		rates.Invalidate(ctx, companyKey)
	}
	n.invalidate(companyKey, ReasonCompany, nil)
}

func (n *Notifier) invalidate(companyKey, reason string, details map[string]interface{}) {
	n.mu.RLock()
	svc := n.payroll
	n.mu.RUnlock()

	if svc != nil {
		svc.Invalidate(companyKey)
	}

	data := map[string]interface{}{
		"company_key": companyKey,
		"reason":      reason,
	}
	for k, v := range details {
		data[k] = v
	}
	n.hub.Publish(companyKey, sse.Event{Event: EventPayrollInvalidated, Data: data})

	slog.Debug("payroll invalidated", "company_key", companyKey, "reason", reason)
}
