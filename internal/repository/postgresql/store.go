package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS records (
		id          UUID PRIMARY KEY,
		collection  TEXT NOT NULL,
		data        JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS records_collection_idx ON records (collection, created_at)`,
	`CREATE INDEX IF NOT EXISTS records_data_idx ON records USING GIN (data jsonb_path_ops)`,
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type recordStoreImpl struct {
	db *database.DB
}

func NewRecordStore(db *database.DB) record.Store {
	return &recordStoreImpl{db: db}
}

// EnsureSchema creates the records table and its indexes.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}

// GetAll implements record.Store.
func (r *recordStoreImpl) GetAll(ctx context.Context, collection string) ([]record.Record, error) {
	return r.Query(ctx, collection, record.Query{})
}

// GetByID implements record.Store.
func (r *recordStoreImpl) GetByID(ctx context.Context, collection, id string) (record.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return record.Record{}, record.ErrNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT id::text, data FROM records WHERE collection = $1 AND id = $2`

	var rec record.Record
	var raw []byte
	err := q.QueryRow(ctx, query, collection, id).Scan(&rec.ID, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.Record{}, record.ErrNotFound
		}
		return record.Record{}, fmt.Errorf("failed to get record: %w", err)
	}
	if rec.Data, err = decodeData(raw); err != nil {
		return record.Record{}, err
	}
	return rec, nil
}

// Add implements record.Store.
func (r *recordStoreImpl) Add(ctx context.Context, collection string, data record.Data) (string, error) {
	if strings.TrimSpace(collection) == "" {
		return "", record.ErrInvalidCollection
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO records (id, collection, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW(), NOW())
	`
	if _, err := q.Exec(ctx, query, id.String(), collection, payload); err != nil {
		return "", fmt.Errorf("failed to add record: %w", err)
	}
	return id.String(), nil
}

// Update implements record.Store.
func (r *recordStoreImpl) Update(ctx context.Context, collection, id string, partial record.Data) error {
	if _, err := uuid.Parse(id); err != nil {
		return record.ErrNotFound
	}
	payload, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE records
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`
	commandTag, err := q.Exec(ctx, query, collection, id, payload)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return record.ErrNotFound
	}
	return nil
}

// Delete implements record.Store.
func (r *recordStoreImpl) Delete(ctx context.Context, collection, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return record.ErrNotFound
	}
	q := GetQuerier(ctx, r.db)
	commandTag, err := q.Exec(ctx, `DELETE FROM records WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return record.ErrNotFound
	}
	return nil
}

// Query implements record.Store. Equality conditions become a single JSONB containment
// test, which compares numbers by value.
func (r *recordStoreImpl) Query(ctx context.Context, collection string, rq record.Query) ([]record.Record, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, record.ErrInvalidCollection
	}
	q := GetQuerier(ctx, r.db)

	where := "collection = $1"
	args := []interface{}{collection}
	argIdx := 2

	if len(rq.Conditions) > 0 {
		filter := make(map[string]interface{}, len(rq.Conditions))
		for _, c := range rq.Conditions {
			filter[c.Field] = c.Value
		}
		payload, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query: %w", err)
		}
		where += fmt.Sprintf(" AND data @> $%d::jsonb", argIdx)
		args = append(args, payload)
		argIdx++
	}

	orderBy := "created_at ASC, id ASC"
	if rq.OrderBy != "" {
		if !fieldNamePattern.MatchString(rq.OrderBy) {
			return nil, fmt.Errorf("invalid order by field %q", rq.OrderBy)
		}
		dir := "ASC"
		if rq.Direction == record.Desc {
			dir = "DESC"
		}
		orderBy = fmt.Sprintf("data -> $%d %s, created_at ASC", argIdx, dir)
		args = append(args, rq.OrderBy)
		argIdx++
	}

	query := fmt.Sprintf("SELECT id::text, data FROM records WHERE %s ORDER BY %s", where, orderBy)
	if rq.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, rq.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	out := make([]record.Record, 0)
	for rows.Next() {
		var rec record.Record
		var raw []byte
		if err := rows.Scan(&rec.ID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if rec.Data, err = decodeData(raw); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return out, nil
}

func decodeData(raw []byte) (record.Data, error) {
	var d record.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if d == nil {
		d = record.Data{}
	}
	return d, nil
}
