// Package clock abstracts wall-clock access so the time-driven transfer and
// quarantine transitions can be exercised deterministically in tests.
package clock

import "time"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock (UTC)
func System() Clock {
	return systemClock{}
}
