package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
)

type PayrollJobs struct {
	companyRepo company.Repository
	resolver    ccss.Resolver
	payrollSvc  payroll.PayrollService
	interval    time.Duration
	now         func() time.Time
}

func NewPayrollJobs(
	companyRepo company.Repository,
	resolver ccss.Resolver,
	payrollSvc payroll.PayrollService,
	interval time.Duration,
) *PayrollJobs {
	return &PayrollJobs{
		companyRepo: companyRepo,
		resolver:    resolver,
		payrollSvc:  payrollSvc,
		interval:    interval,
		now:         time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_ccss_rates", j.interval, j.RefreshCcssRates)
	scheduler.AddJob("warm_current_payroll", j.interval, j.WarmCurrentPayroll)
}

// RefreshCcssRates drops and re-resolves every company's cached rates, so rows edited
// outside the service are picked up within one interval.
func (j *PayrollJobs) RefreshCcssRates(ctx context.Context) error {
	companies, err := j.companyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	defaults := 0
	for _, c := range companies {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		j.resolver.Invalidate(ctx, c.Key)
		if j.resolver.Resolve(ctx, c.Key).UsedDefault {
			defaults++
		}
		j.payrollSvc.Invalidate(c.Key)
	}

	slog.Info("CCSS rates refreshed", "companies", len(companies), "using_defaults", defaults)
	return nil
}

// WarmCurrentPayroll computes the current period for every visible company.
func (j *PayrollJobs) WarmCurrentPayroll(ctx context.Context) error {
	p := period.Current(j.now())
	all, err := j.payrollSvc.ComputeAll(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to warm payroll for %s: %w", p.Key(), err)
	}
	slog.Debug("Payroll warmed", "period", p.Key(), "companies", len(all))
	return nil
}
