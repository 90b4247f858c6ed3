// Package clock provides the current time to the decision engine.
// Using an interface enables deterministic tests via a controllable implementation.
package clock

import "time"

// Clock provides time to the application.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the current wall-clock time in a fixed location.
// Weekend and business-hours rules are evaluated in that location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a SystemClock for loc. A nil loc means time.Local.
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{loc: loc}
}

func (c SystemClock) Now() time.Time { return time.Now().In(c.loc) }

// Fixed is a Clock that always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }
