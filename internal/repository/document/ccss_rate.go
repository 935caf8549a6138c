package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/shopspring/decimal"
)

const (
	fieldCompanyName = "company_name"
	fieldRateTC      = "tc"
	fieldRateMT      = "mt"
	fieldRateHora    = "horabruta"
	fieldRateExtra   = "hora_extra"
)

type ccssRateRepositoryImpl struct {
	store record.Store
}

func NewCcssRateRepository(store record.Store) ccss.RateRepository {
	return &ccssRateRepositoryImpl{store: store}
}

// GetRates implements ccss.RateRepository. A row missing one of the values keeps the
// default for that value only.
func (r *ccssRateRepositoryImpl) GetRates(ctx context.Context, companyName string) (ccss.Rates, error) {
	doc, found, err := r.find(ctx, companyName)
	if err != nil {
		return ccss.Rates{}, err
	}
	if !found {
		return ccss.Rates{}, ccss.ErrRatesNotFound
	}

	rates := ccss.DefaultRates()
	if v, ok := decimalField(doc.Data, fieldRateTC); ok {
		rates.TC = v
	}
	if v, ok := decimalField(doc.Data, fieldRateMT); ok {
		rates.MT = v
	}
	if v, ok := decimalField(doc.Data, fieldRateHora); ok {
		rates.HoraBruta = v
	}
	if v, ok := decimalField(doc.Data, fieldRateExtra); ok {
		rates.OvertimeRate = v
	}
	return rates, nil
}

// Upsert implements ccss.RateRepository.
func (r *ccssRateRepositoryImpl) Upsert(ctx context.Context, companyName string, rates ccss.Rates) error {
	companyName = strings.TrimSpace(companyName)
	data := record.Data{
		fieldCompanyName: companyName,
		fieldRateTC:      rates.TC.String(),
		fieldRateMT:      rates.MT.String(),
		fieldRateHora:    rates.HoraBruta.String(),
		fieldRateExtra:   nonZeroOr(rates.OvertimeRate, ccss.DefaultOvertimeRate).String(),
	}

	doc, found, err := r.find(ctx, companyName)
	if err != nil {
		return err
	}
	if found {
		if err := r.store.Update(ctx, record.CollectionCcssRates, doc.ID, data); err != nil {
			return fmt.Errorf("failed to update ccss rates: %w", err)
		}
		return nil
	}
	if _, err := r.store.Add(ctx, record.CollectionCcssRates, data); err != nil {
		return fmt.Errorf("failed to add ccss rates: %w", err)
	}
	return nil
}

func (r *ccssRateRepositoryImpl) find(ctx context.Context, companyName string) (record.Record, bool, error) {
	docs, err := r.store.Query(ctx, record.CollectionCcssRates, record.Query{
		Conditions: []record.Condition{record.Eq(fieldCompanyName, strings.TrimSpace(companyName))},
		Limit:      1,
	})
	if err != nil {
		return record.Record{}, false, fmt.Errorf("failed to query ccss rates: %w", err)
	}
	if len(docs) == 0 {
		return record.Record{}, false, nil
	}
	return docs[0], true, nil
}

func nonZeroOr(v, fallback decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return fallback
	}
	return v
}
