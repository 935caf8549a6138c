package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/shopspring/decimal"
)

const (
	fieldKey           = "key"
	fieldName          = "name"
	fieldLocation      = "location"
	fieldEmployees     = "employees"
	fieldCcssType      = "ccssType"
	fieldHoursPerShift = "hoursPerShift"
	fieldExtraAmount   = "extraAmount"
)

type companyRepositoryImpl struct {
	store record.Store
}

func NewCompanyRepository(store record.Store) company.Repository {
	return &companyRepositoryImpl{store: store}
}

// List implements company.Repository. Documents without a key are skipped.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	docs, err := r.store.GetAll(ctx, record.CollectionCompanies)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	companies := make([]company.Company, 0, len(docs))
	for _, doc := range docs {
		if c, ok := decodeCompany(doc); ok {
			companies = append(companies, c)
		}
	}
	return companies, nil
}

// GetByKey implements company.Repository.
func (r *companyRepositoryImpl) GetByKey(ctx context.Context, key string) (company.Company, error) {
	doc, found, err := r.find(ctx, key)
	if err != nil {
		return company.Company{}, err
	}
	if !found {
		return company.Company{}, company.ErrCompanyNotFound
	}
	c, ok := decodeCompany(doc)
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

// Save implements company.Repository.
func (r *companyRepositoryImpl) Save(ctx context.Context, c company.Company) (company.Company, error) {
	data := encodeCompany(c)

	doc, found, err := r.find(ctx, c.Key)
	if err != nil {
		return company.Company{}, err
	}
	if found {
		if err := r.store.Update(ctx, record.CollectionCompanies, doc.ID, data); err != nil {
			return company.Company{}, fmt.Errorf("failed to update company: %w", err)
		}
		c.ID = doc.ID
		return c, nil
	}

	id, err := r.store.Add(ctx, record.CollectionCompanies, data)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to add company: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *companyRepositoryImpl) find(ctx context.Context, key string) (record.Record, bool, error) {
	docs, err := r.store.Query(ctx, record.CollectionCompanies, record.Query{
		Conditions: []record.Condition{record.Eq(fieldKey, key)},
		Limit:      1,
	})
	if err != nil {
		return record.Record{}, false, fmt.Errorf("failed to query companies: %w", err)
	}
	if len(docs) == 0 {
		return record.Record{}, false, nil
	}
	return docs[0], true, nil
}

func decodeCompany(doc record.Record) (company.Company, bool) {
	key, _ := doc.Data.String(fieldKey)
	if strings.TrimSpace(key) == "" {
		return company.Company{}, false
	}
	name, _ := doc.Data.String(fieldName)
	if name == "" {
		name = key
	}
	location, _ := doc.Data.String(fieldLocation)

	c := company.Company{
		ID:          doc.ID,
		Key:         key,
		DisplayName: name,
		Location:    location,
	}
	for _, e := range dataList(doc.Data, fieldEmployees) {
		profile, ok := decodeProfile(e)
		if ok {
			c.Employees = append(c.Employees, profile)
		}
	}
	return c, true
}

func decodeProfile(d record.Data) (company.EmployeeProfile, bool) {
	name, _ := d.String(fieldName)
	name = strings.TrimSpace(name)
	if name == "" {
		return company.EmployeeProfile{}, false
	}
	ccssType, _ := d.String(fieldCcssType)
	hours, _ := d.Int(fieldHoursPerShift)
	extra, ok := decimalField(d, fieldExtraAmount)
	if !ok {
		extra = decimal.Zero
	}
	return company.EmployeeProfile{
		Name:          name,
		CcssType:      ccss.ParseType(strings.ToUpper(strings.TrimSpace(ccssType))),
		HoursPerShift: hours,
		ExtraAmount:   extra,
	}, true
}

func encodeCompany(c company.Company) record.Data {
	employees := make([]interface{}, 0, len(c.Employees))
	for _, e := range c.Employees {
		employees = append(employees, map[string]interface{}{
			fieldName:          e.Name,
			fieldCcssType:      string(e.CcssType),
			fieldHoursPerShift: e.HoursPerShift,
			fieldExtraAmount:   e.ExtraAmount.String(),
		})
	}
	return record.Data{
		fieldKey:       c.Key,
		fieldName:      c.DisplayName,
		fieldLocation:  c.Location,
		fieldEmployees: employees,
	}
}
