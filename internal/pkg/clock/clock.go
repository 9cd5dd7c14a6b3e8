// Package clock abstracts the wall clock so expiry logic can be tested
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/rpg-combat/internal/pkg/clock Clock

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// Real implements Clock using system time in UTC
type Real struct{}

// Now returns the current time
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// New returns a real clock
func New() Clock {
	return Real{}
}
