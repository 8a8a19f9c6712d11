// Package clock supplies "now" as an injectable dependency.
package clock

import (
	"sync"
	"time"
)

// Real returns the wall clock time in a fixed location.
type Real struct {
	Location *time.Location
}

// NewReal creates a wall clock bound to loc. A nil loc means time.Local.
func NewReal(loc *time.Location) *Real {
	if loc == nil {
		loc = time.Local
	}
	return &Real{Location: loc}
}

// Now returns the current instant in the clock location.
func (r *Real) Now() time.Time {
	if r == nil || r.Location == nil {
		return time.Now()
	}
	return time.Now().In(r.Location)
}

// Fake is a controllable clock for tests.
type Fake struct {
	mu      sync.Mutex
	current time.Time
}

// NewFake returns a fake clock set to start.
func NewFake(start time.Time) *Fake {
	return &Fake{current: start}
}

// Now returns the instant tracked by the clock.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Set moves the clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.current = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (f *Fake) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.current.Add(d)
	return f.current
}
