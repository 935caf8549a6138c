package debounce

import (
	"sync"
	"time"
)

// FakeClock is a manual AfterFunc for tests. Timers only fire through Fire or FireAll.
type FakeClock struct {
	mu     sync.Mutex
	timers []*FakeTimer
}

type FakeTimer struct {
	clock   *FakeClock
	Delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *FakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// AfterFunc satisfies the AfterFunc signature.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTimer{clock: c, Delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Active returns the number of timers that are neither stopped nor fired.
func (c *FakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// FireAll fires every active timer, as if the delay elapsed for all of them.
func (c *FakeClock) FireAll() int {
	c.mu.Lock()
	var due []*FakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Fire fires the i-th timer ever created, even if it was stopped. Real timers can race a Stop,
// so the registry must tolerate late callbacks.
func (c *FakeClock) Fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	t.fired = true
	c.mu.Unlock()
	t.fn()
}
