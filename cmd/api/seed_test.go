package main

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/document"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/memory"
	companyService "github.com/cmlabs-hris/backoffice-payroll-go/internal/service/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSeed(t *testing.T) {
	repo := document.NewCompanyRepository(memory.NewStore())
	svc := companyService.NewCompanyService(repo)

	n, err := decodeSeed(context.Background(), svc, strings.NewReader(`[
		{"key": "acme", "company_name": "Acme S.A.", "location": "San José",
		 "employees": [{"name": "Ana", "ccss_type": "TC", "hours_per_shift": 8, "extra_amount": "1500"}]},
		{"key": "test", "company_name": "test", "employees": [{"name": "Dummy"}]}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	c, err := repo.GetByKey(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme S.A.", c.DisplayName)
	require.Len(t, c.Employees, 1)
	assert.Equal(t, ccss.TypeFullTime, c.Employees[0].CcssType)
	assert.Equal(t, "1500", c.Employees[0].ExtraAmount.String())
}

func TestDecodeSeed_StopsOnInvalidCompany(t *testing.T) {
	svc := companyService.NewCompanyService(document.NewCompanyRepository(memory.NewStore()))

	n, err := decodeSeed(context.Background(), svc, strings.NewReader(`[
		{"key": "acme", "company_name": "Acme"},
		{"key": "", "company_name": "Nameless"}
	]`))
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}
