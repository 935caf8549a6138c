package ccss

import "context"

// Resolver never fails: missing rows and unavailable configuration resolve to DefaultRates.
type Resolver interface {
	Resolve(ctx context.Context, companyKey string) Resolution
	// SetRates stores the company's rate row and drops any cached resolution.
	SetRates(ctx context.Context, companyKey string, req SetRatesRequest) (RatesResponse, error)
	Invalidate(ctx context.Context, companyKey string)
}
