// Package clock abstracts the wall clock so game documents and drink
// records can be timestamped deterministically in tests.
package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/Ogoter374s/BusfahrerV2-sub001/internal/common/clock Clock

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock
type DefaultClock struct{}

// Now returns the current system time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}
