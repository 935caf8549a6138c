package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"golang.org/x/sync/errgroup"
)

const employeeConcurrency = 8

type memoKey struct {
	companyKey string
	periodKey  string
}

// memoEntry is valid while both the override version and the company's shift generation
// are unchanged.
type memoEntry struct {
	overrideVersion uint64
	generation      uint64
	result          payroll.CompanyPayroll
}

type PayrollServiceImpl struct {
	companyRepo company.Repository
	shiftSvc    shift.Service
	resolver    ccss.Resolver
	overrides   deduction.Store
	sentinel    string

	mu          sync.Mutex
	generations map[string]uint64
	memo        map[memoKey]memoEntry
}

// NewPayrollService builds the calculation service. sentinel names the test company that
// ComputeAll leaves out.
func NewPayrollService(
	companyRepo company.Repository,
	shiftSvc shift.Service,
	resolver ccss.Resolver,
	overrides deduction.Store,
	sentinel string,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		companyRepo: companyRepo,
		shiftSvc:    shiftSvc,
		resolver:    resolver,
		overrides:   overrides,
		sentinel:    sentinel,
		generations: make(map[string]uint64),
		memo:        make(map[memoKey]memoEntry),
	}
}

// ComputeCompany implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeCompany(ctx context.Context, companyKey string, p period.BiweeklyPeriod) (payroll.CompanyPayroll, error) {
	if companyKey == "" {
		return payroll.CompanyPayroll{}, payroll.ErrCompanyKeyRequired
	}
	if p.StartDate.IsZero() {
		return payroll.CompanyPayroll{}, payroll.ErrInvalidPeriod
	}

	c, err := s.companyRepo.GetByKey(ctx, companyKey)
	if err != nil {
		return payroll.CompanyPayroll{}, err
	}
	return s.compute(ctx, c, p)
}

func (s *PayrollServiceImpl) compute(ctx context.Context, c company.Company, p period.BiweeklyPeriod) (payroll.CompanyPayroll, error) {
	key := memoKey{companyKey: c.Key, periodKey: p.Key()}
	snap := s.overrides.Snapshot()

	s.mu.Lock()
	gen := s.generations[c.Key]
	entry, ok := s.memo[key]
	s.mu.Unlock()
	if ok && entry.overrideVersion == snap.Version && entry.generation == gen {
		return copyPayroll(entry.result), nil
	}

	rates := s.resolver.Resolve(ctx, c.Key)

	lines := make([]payroll.LineItem, len(c.Employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(employeeConcurrency)
	for i, emp := range c.Employees {
		i, emp := i, emp
		g.Go(func() error {
			shifts, err := s.shiftSvc.ListForPeriod(gctx, c.Key, emp.Name, p)
			if err != nil {
				return fmt.Errorf("failed to load shifts for %s: %w", emp.Name, err)
			}
			lines[i] = payroll.ComputeLineItem(emp, shifts, rates.Rates, snap.For(c.Key, emp.Name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.CompanyPayroll{}, err
	}

	result := payroll.CompanyPayroll{
		CompanyKey:  c.Key,
		CompanyName: c.DisplayName,
		Location:    c.Location,
		Period:      p,
		Rates:       rates,
		Lines:       lines,
	}

	s.mu.Lock()
	// A write that landed while computing bumped the generation; keep the result out of the memo.
	if s.generations[c.Key] == gen {
		s.memo[key] = memoEntry{overrideVersion: snap.Version, generation: gen, result: result}
	}
	s.mu.Unlock()

	slog.Debug("Payroll computed",
		"company_key", c.Key,
		"period", p.Key(),
		"employees", len(lines),
		"override_version", snap.Version,
		"rates_default", rates.UsedDefault,
	)
	return copyPayroll(result), nil
}

// ComputeAll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeAll(ctx context.Context, p period.BiweeklyPeriod) ([]payroll.CompanyPayroll, error) {
	if p.StartDate.IsZero() {
		return nil, payroll.ErrInvalidPeriod
	}

	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	visible := payroll.VisibleCompanies(companies, s.sentinel)

	out := make([]payroll.CompanyPayroll, 0, len(visible))
	for _, c := range visible {
		cp, err := s.compute(ctx, c, p)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// Invalidate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Invalidate(companyKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generations[companyKey]++
	for k := range s.memo {
		if k.companyKey == companyKey {
			delete(s.memo, k)
		}
	}
}

func copyPayroll(cp payroll.CompanyPayroll) payroll.CompanyPayroll {
	cp.Lines = append([]payroll.LineItem(nil), cp.Lines...)
	return cp
}
