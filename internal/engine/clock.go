package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The countdown projects the birthday from Now() and the runner timestamps frames with it.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
