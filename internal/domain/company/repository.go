package company

import "context"

type Repository interface {
	List(ctx context.Context) ([]Company, error)
	// GetByKey returns ErrCompanyNotFound when no company has the key.
	GetByKey(ctx context.Context, key string) (Company, error)
	// Save inserts or replaces the company stored under c.Key.
	Save(ctx context.Context, c Company) (Company, error)
}
