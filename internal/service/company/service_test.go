package company

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/document"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_SaveNormalizesProfiles(t *testing.T) {
	ctx := context.Background()
	var changed []string
	svc := NewCompanyService(document.NewCompanyRepository(memory.NewStore()), WithOnChange(func(_ context.Context, key string) {
		changed = append(changed, key)
	}))

	resp, err := svc.Save(ctx, company.SaveCompanyRequest{
		Key:         "acme",
		DisplayName: " Acme S.A. ",
		Employees: []company.EmployeeRequest{
			{Name: "Ana", CcssType: "tc", HoursPerShift: 10, ExtraAmount: decimal.NewFromInt(500)},
			{Name: "Luis", CcssType: "whatever"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme S.A.", resp.DisplayName)
	assert.Equal(t, []string{"acme"}, changed)

	ana, err := svc.Profile(ctx, "acme", "Ana")
	require.NoError(t, err)
	assert.Equal(t, ccss.TypeFullTime, ana.CcssType)
	assert.Equal(t, 10, ana.EffectiveHoursPerShift())

	luis, err := svc.Profile(ctx, "acme", "Luis")
	require.NoError(t, err)
	assert.Equal(t, ccss.TypePartTime, luis.CcssType)
	assert.Equal(t, company.DefaultHoursPerShift, luis.EffectiveHoursPerShift())

	_, err = svc.Profile(ctx, "acme", "Nobody")
	assert.ErrorIs(t, err, company.ErrEmployeeNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 8, list[0].Employees[1].HoursPerShift)
}

func TestCompanyService_SaveValidation(t *testing.T) {
	svc := NewCompanyService(document.NewCompanyRepository(memory.NewStore()))

	_, err := svc.Save(context.Background(), company.SaveCompanyRequest{
		Key:       "acme",
		Employees: []company.EmployeeRequest{{Name: "Ana"}, {Name: "Ana"}, {Name: ""}},
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestCompanyService_GetByKeyNotFound(t *testing.T) {
	svc := NewCompanyService(document.NewCompanyRepository(memory.NewStore()))

	_, err := svc.GetByKey(context.Background(), "ghost")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}
