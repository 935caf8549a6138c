package shift

import (
	"context"
	"time"
)

type Repository interface {
	FindByKey(ctx context.Context, key Key) (ShiftRecord, error)
	Create(ctx context.Context, rec ShiftRecord) (ShiftRecord, error)
	UpdateCode(ctx context.Context, id string, code Code) error
	Delete(ctx context.Context, id string) error
	ListByEmployeeMonth(ctx context.Context, companyKey, employeeName string, year int, month time.Month) ([]ShiftRecord, error)
	// ListAll returns every stored record with a non-empty code, across companies.
	ListAll(ctx context.Context) ([]ShiftRecord, error)
}
