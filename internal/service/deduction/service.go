package deduction

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/debounce"
	"github.com/shopspring/decimal"
)

// CommitEvent describes one committed field.
type CommitEvent struct {
	Key     deduction.FieldKey
	Value   decimal.Decimal
	Version uint64
}

type StoreImpl struct {
	mu        sync.RWMutex
	typing    map[deduction.FieldKey]string
	committed map[string]deduction.Override
	version   uint64

	timers   *debounce.Registry
	onCommit []func(CommitEvent)
}

type Option func(*options)

type options struct {
	debounceOpts []debounce.Option
	onCommit     []func(CommitEvent)
}

// WithAfterFunc replaces the timer factory behind the debounce delay.
func WithAfterFunc(after debounce.AfterFunc) Option {
	return func(o *options) {
		o.debounceOpts = append(o.debounceOpts, debounce.WithAfterFunc(after))
	}
}

// WithOnCommit registers fn to run after every commit, outside the store lock.
func WithOnCommit(fn func(CommitEvent)) Option {
	return func(o *options) {
		o.onCommit = append(o.onCommit, fn)
	}
}

// NewStore creates the override store. Typed values commit after delay of quiet on their field.
func NewStore(delay time.Duration, opts ...Option) deduction.Store {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &StoreImpl{
		typing:    make(map[deduction.FieldKey]string),
		committed: make(map[string]deduction.Override),
		timers:    debounce.New(delay, o.debounceOpts...),
		onCommit:  o.onCommit,
	}
}

// Type implements deduction.Store.
func (s *StoreImpl) Type(key deduction.FieldKey, raw string) {
	s.mu.Lock()
	s.typing[key] = raw
	s.mu.Unlock()

	s.timers.Schedule(key.String(), func() {
		s.commitTyped(key)
	})
}

func (s *StoreImpl) commitTyped(key deduction.FieldKey) {
	s.mu.Lock()
	raw, ok := s.typing[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.typing, key)
	ev := s.apply(key, deduction.ParseAmount(raw))
	s.mu.Unlock()

	s.notify(ev)
}

// Commit implements deduction.Store.
func (s *StoreImpl) Commit(key deduction.FieldKey, raw string) {
	s.timers.Cancel(key.String())

	s.mu.Lock()
	delete(s.typing, key)
	ev := s.apply(key, deduction.ParseAmount(raw))
	s.mu.Unlock()

	s.notify(ev)
}

// apply must be called with s.mu held.
func (s *StoreImpl) apply(key deduction.FieldKey, value decimal.Decimal) CommitEvent {
	ovKey := key.OverrideKey()
	s.committed[ovKey] = s.committed[ovKey].With(key.Field, value)
	s.version++
	return CommitEvent{Key: key, Value: value, Version: s.version}
}

func (s *StoreImpl) notify(ev CommitEvent) {
	slog.Debug("Deduction override committed",
		"key", ev.Key.String(),
		"value", ev.Value.String(),
		"version", ev.Version,
	)
	for _, fn := range s.onCommit {
		fn(ev)
	}
}

// FlushAll implements deduction.Store.
func (s *StoreImpl) FlushAll() {
	if n := s.timers.FlushAll(); n > 0 {
		slog.Info("Flushed pending deduction edits", "count", n)
	}
}

// Typing implements deduction.Store.
func (s *StoreImpl) Typing(key deduction.FieldKey) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.typing[key]
	return raw, ok
}

// IsPending implements deduction.Store.
func (s *StoreImpl) IsPending(key deduction.FieldKey) bool {
	return s.timers.IsPending(key.String())
}

// Get implements deduction.Store.
func (s *StoreImpl) Get(companyKey, employeeName string) deduction.Override {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed[deduction.OverrideKey(companyKey, employeeName)]
}

// Snapshot implements deduction.Store. The returned map is a copy.
func (s *StoreImpl) Snapshot() deduction.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	overrides := make(map[string]deduction.Override, len(s.committed))
	for k, v := range s.committed {
		overrides[k] = v
	}
	return deduction.Snapshot{Version: s.version, Overrides: overrides}
}

// Pending implements deduction.Store.
func (s *StoreImpl) Pending() int {
	return s.timers.Pending()
}
