package deduction

import (
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldKey(employee string, f deduction.Field) deduction.FieldKey {
	return deduction.FieldKey{CompanyKey: "acme", EmployeeName: employee, Field: f}
}

func newTestStore(t *testing.T) (deduction.Store, *debounce.FakeClock, *[]CommitEvent) {
	t.Helper()
	clock := debounce.NewFakeClock()
	var mu sync.Mutex
	events := &[]CommitEvent{}
	s := NewStore(time.Second,
		WithAfterFunc(clock.AfterFunc),
		WithOnCommit(func(ev CommitEvent) {
			mu.Lock()
			defer mu.Unlock()
			*events = append(*events, ev)
		}),
	)
	return s, clock, events
}

func TestStore_TypingIsVisibleBeforeCommit(t *testing.T) {
	s, clock, events := newTestStore(t)
	key := fieldKey("Ana", deduction.FieldCompras)

	s.Type(key, "12")
	s.Type(key, "12.")

	typed, ok := s.Typing(key)
	require.True(t, ok)
	assert.Equal(t, "12.", typed)
	assert.True(t, s.Get("acme", "Ana").Compras.IsZero())
	assert.True(t, s.IsPending(key))
	assert.Equal(t, 1, clock.Active(), "retyping replaces the timer")

	clock.FireAll()

	assert.Equal(t, "12", s.Get("acme", "Ana").Compras.String())
	_, ok = s.Typing(key)
	assert.False(t, ok)
	assert.False(t, s.IsPending(key))
	require.Len(t, *events, 1)
	assert.Equal(t, uint64(1), (*events)[0].Version)
}

func TestStore_UnparseableCommitsZero(t *testing.T) {
	s, _, _ := newTestStore(t)
	key := fieldKey("Ana", deduction.FieldOtros)

	s.Commit(key, "500")
	require.Equal(t, "500", s.Get("acme", "Ana").Otros.String())

	s.Commit(key, "abc")
	assert.True(t, s.Get("acme", "Ana").Otros.IsZero())

	s.Commit(key, "")
	assert.True(t, s.Get("acme", "Ana").Otros.IsZero())
	assert.Equal(t, uint64(3), s.Snapshot().Version)
}

func TestStore_CommitDoesNotDisturbOtherTimers(t *testing.T) {
	s, clock, _ := newTestStore(t)
	comprasA := fieldKey("Ana", deduction.FieldCompras)
	adelantoA := fieldKey("Ana", deduction.FieldAdelanto)
	otrosB := fieldKey("Luis", deduction.FieldOtros)

	s.Type(comprasA, "100")
	s.Type(adelantoA, "200")
	s.Type(otrosB, "300")

	s.Commit(comprasA, "150")

	assert.Equal(t, "150", s.Get("acme", "Ana").Compras.String())
	assert.True(t, s.Get("acme", "Ana").Adelanto.IsZero(), "other fields stay uncommitted")
	assert.True(t, s.Get("acme", "Luis").Otros.IsZero())
	assert.True(t, s.IsPending(adelantoA))
	assert.True(t, s.IsPending(otrosB))
	assert.False(t, s.IsPending(comprasA))
	assert.Equal(t, 2, s.Pending())

	typed, ok := s.Typing(adelantoA)
	require.True(t, ok)
	assert.Equal(t, "200", typed)

	clock.FireAll()

	assert.Equal(t, "150", s.Get("acme", "Ana").Compras.String())
	assert.Equal(t, "200", s.Get("acme", "Ana").Adelanto.String())
	assert.Equal(t, "300", s.Get("acme", "Luis").Otros.String())
}

func TestStore_EmployeesLandInSeparateEntries(t *testing.T) {
	s, clock, _ := newTestStore(t)

	s.Type(fieldKey("Ana", deduction.FieldOtros), "1000")
	s.Type(fieldKey("Luis", deduction.FieldOtros), "2500.50")
	clock.FireAll()

	snap := s.Snapshot()
	require.Len(t, snap.Overrides, 2)
	assert.Equal(t, "1000", snap.Overrides["acme-Ana"].Otros.String())
	assert.Equal(t, "2500.5", snap.Overrides["acme-Luis"].Otros.String())
}

func TestStore_FlushAll(t *testing.T) {
	s, clock, events := newTestStore(t)

	s.Type(fieldKey("Ana", deduction.FieldCompras), "10")
	s.Type(fieldKey("Ana", deduction.FieldExtraAmount), "5000")

	s.FlushAll()

	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, clock.Active())
	assert.Equal(t, "10", s.Get("acme", "Ana").Compras.String())
	assert.Equal(t, "5000", s.Get("acme", "Ana").ExtraAmount.String())
	assert.Len(t, *events, 2)
}

func TestStore_SnapshotIsCopyOnRead(t *testing.T) {
	s, _, _ := newTestStore(t)
	key := fieldKey("Ana", deduction.FieldCompras)

	s.Commit(key, "10")
	snap := s.Snapshot()

	s.Commit(key, "20")
	s.Commit(fieldKey("Luis", deduction.FieldCompras), "30")

	assert.Equal(t, uint64(1), snap.Version)
	assert.Len(t, snap.Overrides, 1)
	assert.Equal(t, "10", snap.For("acme", "Ana").Compras.String())
	assert.True(t, snap.For("acme", "Nobody").Compras.IsZero())
}

func TestStore_LateTimerAfterCommitIsIgnored(t *testing.T) {
	s, clock, events := newTestStore(t)
	key := fieldKey("Ana", deduction.FieldCompras)

	s.Type(key, "99")
	s.Commit(key, "5")

	// The cancelled timer races the commit and fires anyway.
	clock.Fire(0)

	assert.Equal(t, "5", s.Get("acme", "Ana").Compras.String())
	assert.Len(t, *events, 1)
}

func TestNewOverrideResponse(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Commit(fieldKey("Ana", deduction.FieldCompras), "10")
	s.Type(fieldKey("Ana", deduction.FieldOtros), "7.")

	resp := deduction.NewOverrideResponse(s, "acme", "Ana")

	require.Len(t, resp.Fields, 4)
	byField := map[string]deduction.FieldStateResponse{}
	for _, f := range resp.Fields {
		byField[f.Field] = f
	}
	assert.Equal(t, "10", byField["compras"].Typing)
	assert.False(t, byField["compras"].Pending)
	assert.Equal(t, "7.", byField["otros"].Typing)
	assert.True(t, byField["otros"].Pending)
	assert.True(t, byField["otros"].Committed.IsZero())
}
