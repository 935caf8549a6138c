package document

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCompanyRepository(memory.NewStore())

	saved, err := repo.Save(ctx, company.Company{
		Key:         "acme",
		DisplayName: "Acme S.A.",
		Location:    "San José",
		Employees: []company.EmployeeProfile{
			{Name: "Ana", CcssType: ccss.TypeFullTime, HoursPerShift: 10, ExtraAmount: decimal.NewFromInt(5000)},
			{Name: "Luis", CcssType: ccss.TypePartTime},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := repo.GetByKey(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Acme S.A.", got.DisplayName)
	require.Len(t, got.Employees, 2)
	assert.Equal(t, ccss.TypeFullTime, got.Employees[0].CcssType)
	assert.Equal(t, 10, got.Employees[0].HoursPerShift)
	assert.Equal(t, "5000", got.Employees[0].ExtraAmount.String())
	assert.Equal(t, company.DefaultHoursPerShift, got.Employees[1].EffectiveHoursPerShift())

	// Saving again replaces in place.
	got.Location = "Heredia"
	_, err = repo.Save(ctx, got)
	require.NoError(t, err)
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Heredia", all[0].Location)
}

func TestCompanyRepository_GetByKeyNotFound(t *testing.T) {
	_, err := NewCompanyRepository(memory.NewStore()).GetByKey(context.Background(), "ghost")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCompanyRepository_DecodesLooseProfiles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.Add(ctx, record.CollectionCompanies, record.Data{
		"key": "beta",
		"employees": []interface{}{
			map[string]interface{}{"name": "Eva", "ccssType": "tc", "hoursPerShift": float64(6), "extraAmount": float64(250.5)},
			map[string]interface{}{"name": "Juan", "ccssType": "XX", "hoursPerShift": float64(0)},
			map[string]interface{}{"ccssType": "TC"},
		},
	})
	require.NoError(t, err)
	_, err = store.Add(ctx, record.CollectionCompanies, record.Data{"name": "no key"})
	require.NoError(t, err)

	all, err := NewCompanyRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	c := all[0]
	assert.Equal(t, "beta", c.DisplayName, "display name falls back to the key")
	require.Len(t, c.Employees, 2)
	assert.Equal(t, ccss.TypeFullTime, c.Employees[0].CcssType)
	assert.Equal(t, "250.5", c.Employees[0].ExtraAmount.String())
	assert.Equal(t, ccss.TypePartTime, c.Employees[1].CcssType)
	assert.Equal(t, 8, c.Employees[1].EffectiveHoursPerShift())
	assert.True(t, c.Employees[1].ExtraAmount.IsZero())
}
