package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
)

type shiftRepositoryImpl struct {
	store           record.Store
	legacyMonthBase int
}

// NewShiftRepository stores shifts as schema_version 2 documents and reads legacy
// documents using legacyMonthBase (0 or 1) for their month field.
func NewShiftRepository(store record.Store, legacyMonthBase int) shift.Repository {
	return &shiftRepositoryImpl{store: store, legacyMonthBase: legacyMonthBase}
}

// FindByKey implements shift.Repository. A legacy document holding an empty or unknown code
// is still returned so the caller can clean it up.
func (r *shiftRepositoryImpl) FindByKey(ctx context.Context, key shift.Key) (shift.ShiftRecord, error) {
	recs, err := r.employeeMonth(ctx, key.CompanyKey, key.EmployeeName, key.Year, key.Month)
	if err != nil {
		return shift.ShiftRecord{}, err
	}
	var found *shift.ShiftRecord
	for i := range recs {
		if recs[i].Day != key.Day {
			continue
		}
		if found == nil || (found.Code == shift.CodeEmpty && recs[i].Code != shift.CodeEmpty) {
			found = &recs[i]
		}
	}
	if found == nil {
		return shift.ShiftRecord{}, shift.ErrShiftNotFound
	}
	return *found, nil
}

// Create implements shift.Repository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, rec shift.ShiftRecord) (shift.ShiftRecord, error) {
	id, err := r.store.Add(ctx, record.CollectionShifts, canonicalShift(rec))
	if err != nil {
		return shift.ShiftRecord{}, fmt.Errorf("failed to create shift: %w", err)
	}
	rec.ID = id
	return rec, nil
}

// UpdateCode implements shift.Repository. Only the code is touched so a legacy document keeps
// its original month interpretation.
func (r *shiftRepositoryImpl) UpdateCode(ctx context.Context, id string, code shift.Code) error {
	err := r.store.Update(ctx, record.CollectionShifts, id, record.Data{fieldShiftCode: string(code)})
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to update shift: %w", err)
	}
	return nil
}

// Delete implements shift.Repository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, record.CollectionShifts, id); err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// ListByEmployeeMonth implements shift.Repository.
func (r *shiftRepositoryImpl) ListByEmployeeMonth(ctx context.Context, companyKey, employeeName string, year int, month time.Month) ([]shift.ShiftRecord, error) {
	recs, err := r.employeeMonth(ctx, companyKey, employeeName, year, month)
	if err != nil {
		return nil, err
	}
	out := make([]shift.ShiftRecord, 0, len(recs))
	for _, rec := range recs {
		if rec.Code != shift.CodeEmpty {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ListAll implements shift.Repository.
func (r *shiftRepositoryImpl) ListAll(ctx context.Context) ([]shift.ShiftRecord, error) {
	docs, err := r.store.GetAll(ctx, record.CollectionShifts)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	out := make([]shift.ShiftRecord, 0, len(docs))
	for _, doc := range docs {
		rec, _, ok := NormalizeShift(doc.ID, doc.Data, r.legacyMonthBase)
		if ok && rec.Code != shift.CodeEmpty {
			out = append(out, rec)
		}
	}
	return out, nil
}

// employeeMonth queries once per spelling of the company field and keeps the documents that
// normalize onto the employee's month. Years, months and days may be stored as strings or in
// either month base, so they are only compared after normalization.
func (r *shiftRepositoryImpl) employeeMonth(ctx context.Context, companyKey, employeeName string, year int, month time.Month) ([]shift.ShiftRecord, error) {
	spellings := append([]string{fieldCompanyKey}, shiftAliases[fieldCompanyKey]...)

	seen := make(map[string]bool)
	var out []shift.ShiftRecord
	for _, field := range spellings {
		docs, err := r.store.Query(ctx, record.CollectionShifts, record.Query{
			Conditions: []record.Condition{record.Eq(field, companyKey)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query shifts: %w", err)
		}
		for _, doc := range docs {
			if seen[doc.ID] {
				continue
			}
			seen[doc.ID] = true
			rec, _, ok := NormalizeShift(doc.ID, doc.Data, r.legacyMonthBase)
			if !ok || rec.CompanyKey != companyKey || rec.EmployeeName != employeeName ||
				rec.Year != year || rec.Month != month {
				continue
			}
			out = append(out, rec)
		}
	}
	return out, nil
}
