package payroll

import (
	"context"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
)

type PayrollService interface {
	ComputeCompany(ctx context.Context, companyKey string, p period.BiweeklyPeriod) (CompanyPayroll, error)
	// ComputeAll covers every company except the sentinel test company.
	ComputeAll(ctx context.Context, p period.BiweeklyPeriod) ([]CompanyPayroll, error)
	// Invalidate drops memoized results for the company.
	Invalidate(companyKey string)
}
