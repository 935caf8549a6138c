package document

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRepository_CreateFindUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewShiftRepository(store, 0)

	key := shift.Key{CompanyKey: "acme", EmployeeName: "Ana", Year: 2025, Month: time.March, Day: 5}

	_, err := repo.FindByKey(ctx, key)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)

	created, err := repo.Create(ctx, shift.ShiftRecord{Key: key, Code: shift.CodeDiurnal})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	doc, err := store.GetByID(ctx, record.CollectionShifts, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, doc.Data["month"], "months are stored 1-indexed")
	assert.EqualValues(t, ShiftSchemaVersion, doc.Data["schema_version"])

	found, err := repo.FindByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, shift.CodeDiurnal, found.Code)

	require.NoError(t, repo.UpdateCode(ctx, created.ID, shift.CodeNocturnal))
	found, err = repo.FindByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, shift.CodeNocturnal, found.Code)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByKey(ctx, key)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), shift.ErrShiftNotFound)
	assert.ErrorIs(t, repo.UpdateCode(ctx, created.ID, shift.CodeOff), shift.ErrShiftNotFound)
}

func TestShiftRepository_ListByEmployeeMonthReadsLegacyDocuments(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewShiftRepository(store, 0)

	_, err := repo.Create(ctx, shift.ShiftRecord{
		Key:  shift.Key{CompanyKey: "acme", EmployeeName: "Ana", Year: 2025, Month: time.February, Day: 1},
		Code: shift.CodeDiurnal,
	})
	require.NoError(t, err)

	// 0-indexed legacy document for February.
	_, err = store.Add(ctx, record.CollectionShifts, record.Data{
		"company_key": "acme", "employee_name": "Ana", "year": 2025, "month": 1, "day": 2, "shift_code": "N",
	})
	require.NoError(t, err)
	// Aliased legacy document for February.
	_, err = store.Add(ctx, record.CollectionShifts, record.Data{
		"empresa": "acme", "empleado": "Ana", "anio": 2025, "mes": 1, "dia": 3, "turno": "L",
	})
	require.NoError(t, err)
	// Canonical January record shares the stored month value with the legacy February one.
	_, err = repo.Create(ctx, shift.ShiftRecord{
		Key:  shift.Key{CompanyKey: "acme", EmployeeName: "Ana", Year: 2025, Month: time.January, Day: 20},
		Code: shift.CodeDiurnal,
	})
	require.NoError(t, err)
	// Another employee.
	_, err = repo.Create(ctx, shift.ShiftRecord{
		Key:  shift.Key{CompanyKey: "acme", EmployeeName: "Luis", Year: 2025, Month: time.February, Day: 1},
		Code: shift.CodeDiurnal,
	})
	require.NoError(t, err)

	recs, err := repo.ListByEmployeeMonth(ctx, "acme", "Ana", 2025, time.February)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	days := map[int]shift.Code{}
	for _, r := range recs {
		assert.Equal(t, time.February, r.Month)
		days[r.Day] = r.Code
	}
	assert.Equal(t, map[int]shift.Code{1: shift.CodeDiurnal, 2: shift.CodeNocturnal, 3: shift.CodeOff}, days)
}

func TestShiftRepository_ListAllSkipsEmptyAndInvalid(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewShiftRepository(store, 1)

	_, err := repo.Create(ctx, shift.ShiftRecord{
		Key:  shift.Key{CompanyKey: "acme", EmployeeName: "Ana", Year: 2025, Month: time.May, Day: 16},
		Code: shift.CodeOff,
	})
	require.NoError(t, err)
	_, err = store.Add(ctx, record.CollectionShifts, record.Data{
		"company_key": "acme", "employee_name": "Ana", "year": 2025, "month": 5, "day": 17, "shift_code": "",
	})
	require.NoError(t, err)
	_, err = store.Add(ctx, record.CollectionShifts, record.Data{"company_key": "acme"})
	require.NoError(t, err)

	recs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 16, recs[0].Day)
}

func TestShiftRepository_FindByKeyReturnsEmptyLegacyRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewShiftRepository(store, 1)

	id, err := store.Add(ctx, record.CollectionShifts, record.Data{
		"company_key": "acme", "employee_name": "Ana", "year": 2025, "month": 5, "day": 17, "shift_code": "",
	})
	require.NoError(t, err)

	found, err := repo.FindByKey(ctx, shift.Key{CompanyKey: "acme", EmployeeName: "Ana", Year: 2025, Month: time.May, Day: 17})
	require.NoError(t, err)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, shift.CodeEmpty, found.Code)
}

func TestShiftRepository_FindsCamelCaseAndStringNumberDocuments(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewShiftRepository(store, 0)

	// Legacy 0-indexed months: 2 is March.
	_, err := store.Add(ctx, record.CollectionShifts, record.Data{
		"companyKey": "acme", "employeeName": "Ana", "year": 2025, "month": 2, "day": 5, "shiftCode": "D",
	})
	require.NoError(t, err)
	_, err = store.Add(ctx, record.CollectionShifts, record.Data{
		"empresa": "acme", "empleado": "Ana", "anio": "2025", "mes": "2", "dia": "6", "turno": "n",
	})
	require.NoError(t, err)
	_, err = store.Add(ctx, record.CollectionShifts, record.Data{
		"company_key": "acme", "employee_name": "Ana", "year": "2025", "month": "3", "day": "7",
		"shift_code": "L", "schema_version": 2,
	})
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	recs, err := repo.ListByEmployeeMonth(ctx, "acme", "Ana", 2025, time.March)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	assert.Len(t, recs, len(all))

	found, err := repo.FindByKey(ctx, shift.Key{CompanyKey: "acme", EmployeeName: "Ana", Year: 2025, Month: time.March, Day: 5})
	require.NoError(t, err)
	assert.Equal(t, shift.CodeDiurnal, found.Code)

	found, err = repo.FindByKey(ctx, shift.Key{CompanyKey: "acme", EmployeeName: "Ana", Year: 2025, Month: time.March, Day: 6})
	require.NoError(t, err)
	assert.Equal(t, shift.CodeNocturnal, found.Code)
}
