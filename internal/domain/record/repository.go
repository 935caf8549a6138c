package record

import "context"

// Store is a keyed document store with equality-filtered queries.
// Every method may fail with a generic I/O error; callers decide whether to retry.
type Store interface {
	GetAll(ctx context.Context, collection string) ([]Record, error)
	GetByID(ctx context.Context, collection, id string) (Record, error)
	Add(ctx context.Context, collection string, data Data) (string, error)
	// Update shallow-merges partial into the stored document.
	Update(ctx context.Context, collection, id string, partial Data) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]Record, error)
}

// Collection names used by the back office.
const (
	CollectionShifts    = "shifts"
	CollectionCcssRates = "ccss_rates"
	CollectionCompanies = "companies"
)
