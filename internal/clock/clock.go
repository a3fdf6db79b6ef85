// Package clock lets services read "now" through an injectable source.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewReal returns a Clock backed by the system time.
func NewReal() Clock {
	return realClock{}
}

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

func (c Fixed) Now() time.Time { return c.T }

// NewFixed returns a Clock frozen at t.
func NewFixed(t time.Time) Clock {
	return Fixed{T: t}
}
