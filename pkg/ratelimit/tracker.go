package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for quota tracking.
var (
	rateLimitRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ttapi_rate_limit_remaining",
		Help: "Requests remaining in the current upstream quota window",
	})

	rateLimitLimit = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ttapi_rate_limit_max",
		Help: "Maximum requests per upstream quota window",
	})
)

// Snapshot is a partial quota update. Nil fields were absent from the
// response and leave the tracked value unchanged.
type Snapshot struct {
	Limit     *int
	Remaining *int
	ResetAt   *time.Time
}

// Tracker holds the per-client quota state. A client instance may be shared
// across goroutines, so all access goes through the mutex.
type Tracker struct {
	mu     sync.Mutex
	state  State
	logger zerolog.Logger
}

// NewTracker creates a tracker with unknown initial state.
func NewTracker(logger zerolog.Logger) *Tracker {
	return &Tracker{logger: logger}
}

// Update overwrites the fields present in the snapshot; absent fields keep
// their prior value. It never fails.
func (t *Tracker) Update(s Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := false
	if s.Limit != nil {
		t.state.Limit = *s.Limit
		rateLimitLimit.Set(float64(*s.Limit))
		changed = true
	}
	if s.Remaining != nil {
		t.state.Remaining = *s.Remaining
		rateLimitRemaining.Set(float64(*s.Remaining))
		changed = true
	}
	if s.ResetAt != nil {
		t.state.ResetAt = *s.ResetAt
		changed = true
	}
	if !changed {
		return
	}
	t.state.LastUpdate = time.Now()

	t.logger.Debug().
		Int("limit", t.state.Limit).
		Int("remaining", t.state.Remaining).
		Time("reset_at", t.state.ResetAt).
		Msg("Rate limit state updated")
}

// UpdateFromHeaders parses the X-RateLimit-* response headers and applies
// whatever subset is present. Malformed values are skipped.
func (t *Tracker) UpdateFromHeaders(headers http.Header) {
	var snap Snapshot

	if v := headers.Get("X-RateLimit-Limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			snap.Limit = &n
		} else {
			t.logger.Warn().Str("value", v).Msg("Unparseable X-RateLimit-Limit header")
		}
	}
	if v := headers.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			snap.Remaining = &n
		} else {
			t.logger.Warn().Str("value", v).Msg("Unparseable X-RateLimit-Remaining header")
		}
	}
	if v := headers.Get("X-RateLimit-Reset"); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
			reset := time.Unix(unix, 0)
			snap.ResetAt = &reset
		} else {
			t.logger.Warn().Str("value", v).Msg("Unparseable X-RateLimit-Reset header")
		}
	}

	t.Update(snap)
}

// IsNearLimit reports whether the remaining quota fraction is at or below
// the threshold. A threshold <= 0 uses DefaultNearLimitThreshold. Returns
// false while the limit is still unknown.
func (t *Tracker) IsNearLimit(threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultNearLimitThreshold
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.Known() {
		return false
	}
	return t.state.FractionRemaining() <= threshold
}

// State returns a copy of the current quota state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Limit returns the last-known quota limit (0 if never reported).
func (t *Tracker) Limit() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Limit
}

// Remaining returns the last-known remaining request count.
func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Remaining
}

// ResetAt returns the last-known quota window reset time.
func (t *Tracker) ResetAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.ResetAt
}
