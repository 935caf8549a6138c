package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/document"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, companyKey string) ccss.Resolution {
	return m.Called(ctx, companyKey).Get(0).(ccss.Resolution)
}

func (m *mockResolver) SetRates(ctx context.Context, companyKey string, req ccss.SetRatesRequest) (ccss.RatesResponse, error) {
	args := m.Called(ctx, companyKey, req)
	return args.Get(0).(ccss.RatesResponse), args.Error(1)
}

func (m *mockResolver) Invalidate(ctx context.Context, companyKey string) {
	m.Called(ctx, companyKey)
}

type mockPayroll struct {
	mock.Mock
}

func (m *mockPayroll) ComputeCompany(ctx context.Context, companyKey string, p period.BiweeklyPeriod) (payroll.CompanyPayroll, error) {
	args := m.Called(ctx, companyKey, p)
	return args.Get(0).(payroll.CompanyPayroll), args.Error(1)
}

func (m *mockPayroll) ComputeAll(ctx context.Context, p period.BiweeklyPeriod) ([]payroll.CompanyPayroll, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]payroll.CompanyPayroll), args.Error(1)
}

func (m *mockPayroll) Invalidate(companyKey string) {
	m.Called(companyKey)
}

func seededCompanyRepo(t *testing.T) company.Repository {
	t.Helper()
	repo := document.NewCompanyRepository(memory.NewStore())
	for _, key := range []string{"acme", "beta"} {
		_, err := repo.Save(context.Background(), company.Company{Key: key, DisplayName: key})
		require.NoError(t, err)
	}
	return repo
}

func TestRefreshCcssRates(t *testing.T) {
	resolver := &mockResolver{}
	payrollSvc := &mockPayroll{}
	for _, key := range []string{"acme", "beta"} {
		resolver.On("Invalidate", mock.Anything, key).Once()
		payrollSvc.On("Invalidate", key).Once()
	}
	resolver.On("Resolve", mock.Anything, "acme").Return(ccss.Resolution{Rates: ccss.DefaultRates(), UsedDefault: true})
	resolver.On("Resolve", mock.Anything, "beta").Return(ccss.Resolution{Rates: ccss.DefaultRates()})

	jobs := NewPayrollJobs(seededCompanyRepo(t), resolver, payrollSvc, time.Hour)
	require.NoError(t, jobs.RefreshCcssRates(context.Background()))

	resolver.AssertExpectations(t)
	payrollSvc.AssertExpectations(t)
}

func TestWarmCurrentPayroll(t *testing.T) {
	payrollSvc := &mockPayroll{}
	now := time.Date(2025, time.February, 20, 9, 0, 0, 0, time.UTC)
	expected := period.Current(now)
	payrollSvc.On("ComputeAll", mock.Anything, expected).Return([]payroll.CompanyPayroll{}, nil).Once()

	jobs := NewPayrollJobs(seededCompanyRepo(t), &mockResolver{}, payrollSvc, time.Hour)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.WarmCurrentPayroll(context.Background()))
	payrollSvc.AssertExpectations(t)
}

func TestScheduler_RunOnceCountsFailures(t *testing.T) {
	s := NewScheduler(context.Background())
	var order []string
	s.AddJob("ok", time.Hour, func(context.Context) error {
		order = append(order, "ok")
		return nil
	})
	s.AddJob("broken", time.Hour, func(context.Context) error {
		order = append(order, "broken")
		return errors.New("boom")
	})

	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, []string{"ok", "broken"}, order)
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(context.Background())
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
