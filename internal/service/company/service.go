package company

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
)

type CompanyServiceImpl struct {
	companyRepo company.Repository
	onChange    []func(ctx context.Context, companyKey string)
}

type Option func(*CompanyServiceImpl)

// WithOnChange registers fn to run after a company profile was saved.
func WithOnChange(fn func(ctx context.Context, companyKey string)) Option {
	return func(s *CompanyServiceImpl) {
		s.onChange = append(s.onChange, fn)
	}
}

func NewCompanyService(companyRepo company.Repository, opts ...Option) company.CompanyService {
	s := &CompanyServiceImpl{companyRepo: companyRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List implements company.CompanyService.
func (s *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		resp = append(resp, company.NewCompanyResponse(c))
	}
	return resp, nil
}

// GetByKey implements company.CompanyService.
func (s *CompanyServiceImpl) GetByKey(ctx context.Context, key string) (company.CompanyResponse, error) {
	c, err := s.companyRepo.GetByKey(ctx, key)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(c), nil
}

// Profile implements company.CompanyService.
func (s *CompanyServiceImpl) Profile(ctx context.Context, companyKey, employeeName string) (company.EmployeeProfile, error) {
	c, err := s.companyRepo.GetByKey(ctx, companyKey)
	if err != nil {
		return company.EmployeeProfile{}, err
	}
	emp, ok := c.Employee(employeeName)
	if !ok {
		return company.EmployeeProfile{}, company.ErrEmployeeNotFound
	}
	return emp, nil
}

// Save implements company.CompanyService.
func (s *CompanyServiceImpl) Save(ctx context.Context, req company.SaveCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	saved, err := s.companyRepo.Save(ctx, req.Company())
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to save company: %w", err)
	}
	slog.Info("Company profile saved", "company_key", saved.Key, "employees", len(saved.Employees))

	for _, fn := range s.onChange {
		fn(ctx, saved.Key)
	}
	return company.NewCompanyResponse(saved), nil
}
