package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	"github.com/google/uuid"
)

type collection struct {
	docs  map[string]record.Data
	order []string
}

// Store is an in-process record.Store. Documents are copied on the way in and out.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

func NewStore() *Store {
	return &Store{collections: make(map[string]*collection)}
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]record.Data)}
		s.collections[name] = c
	}
	return c
}

// GetAll implements record.Store.
func (s *Store) GetAll(ctx context.Context, name string) ([]record.Record, error) {
	return s.Query(ctx, name, record.Query{})
}

// GetByID implements record.Store.
func (s *Store) GetByID(ctx context.Context, name, id string) (record.Record, error) {
	if err := validCollection(name); err != nil {
		return record.Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return record.Record{}, record.ErrNotFound
	}
	d, ok := c.docs[id]
	if !ok {
		return record.Record{}, record.ErrNotFound
	}
	return record.Record{ID: id, Data: d.Clone()}, nil
}

// Add implements record.Store.
func (s *Store) Add(ctx context.Context, name string, data record.Data) (string, error) {
	if err := validCollection(name); err != nil {
		return "", err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(name)
	c.docs[id.String()] = data.Clone()
	c.order = append(c.order, id.String())
	return id.String(), nil
}

// Update implements record.Store.
func (s *Store) Update(ctx context.Context, name, id string, partial record.Data) error {
	if err := validCollection(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return record.ErrNotFound
	}
	d, ok := c.docs[id]
	if !ok {
		return record.ErrNotFound
	}
	merged := d.Clone()
	for k, v := range partial {
		merged[k] = v
	}
	c.docs[id] = merged
	return nil
}

// Delete implements record.Store.
func (s *Store) Delete(ctx context.Context, name, id string) error {
	if err := validCollection(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return record.ErrNotFound
	}
	if _, ok := c.docs[id]; !ok {
		return record.ErrNotFound
	}
	delete(c.docs, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Query implements record.Store.
func (s *Store) Query(ctx context.Context, name string, q record.Query) ([]record.Record, error) {
	if err := validCollection(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return []record.Record{}, nil
	}

	out := make([]record.Record, 0)
	for _, id := range c.order {
		d := c.docs[id]
		if q.Matches(d) {
			out = append(out, record.Record{ID: id, Data: d.Clone()})
		}
	}

	if q.OrderBy != "" {
		desc := q.Direction == record.Desc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := record.Compare(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy])
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func validCollection(name string) error {
	if strings.TrimSpace(name) == "" {
		return record.ErrInvalidCollection
	}
	return nil
}
