package debounce

import (
	"sync"
	"time"
)

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the production implementation.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type pending struct {
	timer Timer
	gen   uint64
	fn    func()
}

// Registry keeps one cancelable timer per key. Scheduling a key replaces only that key's
// pending call; other keys are never touched.
type Registry struct {
	mu      sync.Mutex
	delay   time.Duration
	after   AfterFunc
	gen     uint64
	pending map[string]*pending
}

type Option func(*Registry)

// WithAfterFunc swaps the timer factory, mainly for tests.
func WithAfterFunc(after AfterFunc) Option {
	return func(r *Registry) {
		r.after = after
	}
}

func New(delay time.Duration, opts ...Option) *Registry {
	r := &Registry{
		delay:   delay,
		after:   stdAfterFunc,
		pending: make(map[string]*pending),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Schedule runs fn once key has been quiet for the registry delay.
func (r *Registry) Schedule(key string, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pending[key]; ok {
		p.timer.Stop()
	}
	r.gen++
	gen := r.gen
	p := &pending{gen: gen, fn: fn}
	p.timer = r.after(r.delay, func() { r.fire(key, gen) })
	r.pending[key] = p
}

func (r *Registry) fire(key string, gen uint64) {
	r.mu.Lock()
	p, ok := r.pending[key]
	if !ok || p.gen != gen {
		// Replaced or flushed since this timer was armed.
		r.mu.Unlock()
		return
	}
	delete(r.pending, key)
	r.mu.Unlock()

	p.fn()
}

// Cancel drops the pending call for key without running it.
func (r *Registry) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[key]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(r.pending, key)
	return true
}

// Flush runs the pending call for key now. It reports false when nothing was pending.
func (r *Registry) Flush(key string) bool {
	r.mu.Lock()
	p, ok := r.pending[key]
	if ok {
		p.timer.Stop()
		delete(r.pending, key)
	}
	r.mu.Unlock()

	if ok {
		p.fn()
	}
	return ok
}

// FlushAll runs every pending call now and returns how many ran.
func (r *Registry) FlushAll() int {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.pending))
	for key, p := range r.pending {
		p.timer.Stop()
		fns = append(fns, p.fn)
		delete(r.pending, key)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// IsPending reports whether key has a call waiting.
func (r *Registry) IsPending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[key]
	return ok
}
