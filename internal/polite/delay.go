package polite

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayProfile defines a named delay configuration.
type DelayProfile string

const (
	ProfileCautious   DelayProfile = "cautious"
	ProfileNormal     DelayProfile = "normal"
	ProfileAggressive DelayProfile = "aggressive"
)

// Delay adds randomized jitter between requests so fallback attempts do not
// hammer the provider in a tight loop.
type Delay struct {
	Min time.Duration
	Max time.Duration
}

// NewDelay creates a delay generator for the given profile.
func NewDelay(profile DelayProfile) *Delay {
	switch profile {
	case ProfileCautious:
		return &Delay{Min: 2 * time.Second, Max: 5 * time.Second}
	case ProfileNormal:
		return &Delay{Min: 500 * time.Millisecond, Max: 2 * time.Second}
	default: // aggressive — a feed sync hits a handful of URLs at most
		return &Delay{Min: 100 * time.Millisecond, Max: 400 * time.Millisecond}
	}
}

// Wait sleeps for a random duration within the configured range.
func (d *Delay) Wait(ctx context.Context) error {
	select {
	case <-time.After(d.next()):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Delay) next() time.Duration {
	if d.Min >= d.Max {
		return d.Min
	}
	return d.Min + time.Duration(rand.Int64N(int64(d.Max-d.Min)))
}
