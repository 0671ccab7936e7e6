// Package clock abstracts time.Now so services that depend on the current
// time (booking timestamps, hold expiry) can be tested with a fixed
// instant instead of sleeping.
package clock

import "time"

// Clock supplies the current time in UTC.
type Clock interface {
    Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now().UTC() }

type fixedClock struct{ now time.Time }

// NewFixed returns a clock pinned to the given instant, for tests.
func NewFixed(t time.Time) Clock { return fixedClock{now: t.UTC()} }

func (f fixedClock) Now() time.Time { return f.now }
