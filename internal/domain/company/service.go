package company

import (
	"context"
)

type CompanyService interface {
	List(ctx context.Context) ([]CompanyResponse, error)
	GetByKey(ctx context.Context, key string) (CompanyResponse, error)
	// Profile returns the named employee's payroll profile.
	Profile(ctx context.Context, companyKey, employeeName string) (EmployeeProfile, error)
	Save(ctx context.Context, req SaveCompanyRequest) (CompanyResponse, error)
}
