// Package ratelimit tracks the upstream API request quota. The B365 API
// reports quota usage via X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset response headers; the tracker keeps the last-known
// values so callers can throttle themselves before the server cuts them off.
package ratelimit

import (
	"time"
)

// DefaultNearLimitThreshold is the fraction of the quota considered "close
// to exhausted" when the caller does not supply one.
const DefaultNearLimitThreshold = 0.1

// State is the last-known quota state reported by the upstream API.
// Zero values mean the corresponding signal has not been seen yet.
type State struct {
	// Limit is the maximum number of requests per quota window (e.g. 3600/hour).
	Limit int

	// Remaining is the number of requests left in the current window,
	// as reported by the server. It is never computed locally.
	Remaining int

	// ResetAt is when the current quota window resets.
	ResetAt time.Time

	// LastUpdate is when any of the fields above last changed.
	LastUpdate time.Time
}

// Known reports whether the server has told us its quota limit yet.
func (s State) Known() bool {
	return s.Limit > 0
}

// FractionRemaining returns Remaining/Limit, or 1 when the limit is unknown.
func (s State) FractionRemaining() float64 {
	if s.Limit <= 0 {
		return 1
	}
	return float64(s.Remaining) / float64(s.Limit)
}

// TimeUntilReset returns the duration until the quota window resets.
// Returns 0 if the reset time has passed or was never reported.
func (s State) TimeUntilReset() time.Duration {
	if s.ResetAt.IsZero() {
		return 0
	}
	d := time.Until(s.ResetAt)
	if d < 0 {
		return 0
	}
	return d
}
