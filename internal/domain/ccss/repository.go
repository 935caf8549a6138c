package ccss

import "context"

// RateRepository looks up rate rows by company display name.
type RateRepository interface {
	// GetRates returns ErrRatesNotFound when no row matches.
	GetRates(ctx context.Context, companyName string) (Rates, error)
	Upsert(ctx context.Context, companyName string, rates Rates) error
}
