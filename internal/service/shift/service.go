package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/period"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"golang.org/x/sync/errgroup"
)

// gridConcurrency bounds parallel employee-month reads when building a grid.
const gridConcurrency = 8

type ShiftServiceImpl struct {
	shiftRepo   shift.Repository
	companyRepo company.Repository
	onChange    []func(ctx context.Context, key shift.Key, action shift.Action)
}

type Option func(*ShiftServiceImpl)

// WithOnChange registers fn to run after every write that changed the store.
func WithOnChange(fn func(ctx context.Context, key shift.Key, action shift.Action)) Option {
	return func(s *ShiftServiceImpl) {
		s.onChange = append(s.onChange, fn)
	}
}

func NewShiftService(shiftRepo shift.Repository, companyRepo company.Repository, opts ...Option) shift.Service {
	s := &ShiftServiceImpl{
		shiftRepo:   shiftRepo,
		companyRepo: companyRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetShift implements shift.Service. Clearing a cell deletes its record, so the store only
// ever holds assigned days. A failed write returns *shift.WriteError carrying the value that
// is still stored.
func (s *ShiftServiceImpl) SetShift(ctx context.Context, req shift.SetShiftRequest) (shift.SetShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.SetShiftResponse{}, err
	}
	key := req.Key()
	code, _ := shift.ParseCode(req.ShiftCode)

	existing, err := s.shiftRepo.FindByKey(ctx, key)
	found := err == nil
	if err != nil && !errors.Is(err, shift.ErrShiftNotFound) {
		return shift.SetShiftResponse{}, fmt.Errorf("failed to read shift: %w", err)
	}

	resp := shift.SetShiftResponse{
		Action:       shift.ActionNoop,
		ShiftCode:    string(code),
		PreviousCode: string(existing.Code),
	}

	switch {
	case code == shift.CodeEmpty && !found:
		return resp, nil

	case code == shift.CodeEmpty:
		if err := s.shiftRepo.Delete(ctx, existing.ID); err != nil && !errors.Is(err, shift.ErrShiftNotFound) {
			return shift.SetShiftResponse{}, &shift.WriteError{Action: shift.ActionDeleted, Previous: existing.Code, Err: err}
		}
		resp.Action = shift.ActionDeleted

	case found && existing.Code == code:
		return resp, nil

	case found:
		if err := s.shiftRepo.UpdateCode(ctx, existing.ID, code); err != nil {
			return shift.SetShiftResponse{}, &shift.WriteError{Action: shift.ActionUpdated, Previous: existing.Code, Err: err}
		}
		resp.Action = shift.ActionUpdated

	default:
		if _, err := s.shiftRepo.Create(ctx, shift.ShiftRecord{Key: key, Code: code}); err != nil {
			return shift.SetShiftResponse{}, &shift.WriteError{Action: shift.ActionInserted, Previous: shift.CodeEmpty, Err: err}
		}
		resp.Action = shift.ActionInserted
	}

	slog.Debug("Shift written",
		"company_key", key.CompanyKey,
		"employee", key.EmployeeName,
		"date", key.Date().Format("2006-01-02"),
		"action", resp.Action,
		"code", code,
	)
	for _, fn := range s.onChange {
		fn(ctx, key, resp.Action)
	}
	return resp, nil
}

// GetShift implements shift.Service. An unassigned cell yields CodeEmpty with no error.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, key shift.Key) (shift.Code, error) {
	rec, err := s.shiftRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.CodeEmpty, nil
		}
		return shift.CodeEmpty, fmt.Errorf("failed to read shift: %w", err)
	}
	return rec.Code, nil
}

// ListForPeriod implements shift.Service.
func (s *ShiftServiceImpl) ListForPeriod(ctx context.Context, companyKey, employeeName string, p period.BiweeklyPeriod) ([]shift.ShiftRecord, error) {
	recs, err := s.shiftRepo.ListByEmployeeMonth(ctx, companyKey, employeeName, p.Year, p.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	out := make([]shift.ShiftRecord, 0, len(recs))
	for _, rec := range recs {
		if rec.Code != shift.CodeEmpty && p.Contains(rec.Date()) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// GetPeriodGrid implements shift.Service.
func (s *ShiftServiceImpl) GetPeriodGrid(ctx context.Context, companyKey string, p period.BiweeklyPeriod) (shift.PeriodGridResponse, error) {
	c, err := s.companyRepo.GetByKey(ctx, companyKey)
	if err != nil {
		return shift.PeriodGridResponse{}, err
	}

	rows := make([]shift.EmployeeRowResponse, len(c.Employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(gridConcurrency)
	for i, emp := range c.Employees {
		i, emp := i, emp
		g.Go(func() error {
			recs, err := s.ListForPeriod(gctx, companyKey, emp.Name, p)
			if err != nil {
				return err
			}
			row := shift.EmployeeRowResponse{
				EmployeeName: emp.Name,
				Shifts:       make(map[string]string, len(recs)),
			}
			for _, rec := range recs {
				row.Shifts[strconv.Itoa(rec.Day)] = string(rec.Code)
				if rec.Code.IsWorked() {
					row.WorkedDays++
				}
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return shift.PeriodGridResponse{}, err
	}

	return shift.PeriodGridResponse{
		CompanyKey: companyKey,
		Period:     period.NewResponse(p),
		Days:       p.Days(),
		Rows:       rows,
	}, nil
}

// AvailablePeriods implements shift.Service.
func (s *ShiftServiceImpl) AvailablePeriods(ctx context.Context, now time.Time) ([]period.BiweeklyPeriod, error) {
	recs, err := s.shiftRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	dates := make([]time.Time, 0, len(recs))
	for _, rec := range recs {
		if rec.Code != shift.CodeEmpty {
			dates = append(dates, rec.Date())
		}
	}
	return period.Available(dates, now), nil
}
