// Package tabletennis exposes the B365 table tennis API as typed resource
// managers for events, leagues, players and odds, sharing one authenticated
// client and one rate-limit tracker.
package tabletennis

import (
	"net/http"
	"time"

	"github.com/spinshot/tabletennis-client/pkg/client"
	"github.com/spinshot/tabletennis-client/pkg/ratelimit"
)

// API is the entry point: one client instance with per-resource managers.
type API struct {
	client *client.Client

	Events  *EventsManager
	Leagues *LeagueManager
	Players *PlayerManager
	Odds    *OddsManager
}

// Option adjusts the underlying client configuration.
type Option func(*client.Config)

// WithBaseURL overrides the API host.
func WithBaseURL(baseURL string) Option {
	return func(cfg *client.Config) { cfg.BaseURL = baseURL }
}

// WithHTTPClient overrides the HTTP transport (for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *client.Config) { cfg.HTTPClient = httpClient }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *client.Config) { cfg.Timeout = timeout }
}

// WithSportID overrides the sport filter (defaults to table tennis).
func WithSportID(sportID int) Option {
	return func(cfg *client.Config) { cfg.SportID = sportID }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(cfg *client.Config) { cfg.UserAgent = userAgent }
}

// New creates an API facade for the given token. An empty token fails fast
// with an invalid_argument error.
func New(apiKey string, opts ...Option) (*API, error) {
	cfg := client.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}

	c, err := client.New(cfg)
	if err != nil {
		return nil, err
	}

	return &API{
		client:  c,
		Events:  &EventsManager{client: c},
		Leagues: &LeagueManager{client: c},
		Players: &PlayerManager{client: c},
		Odds:    &OddsManager{client: c},
	}, nil
}

// RateLimit returns a copy of the last-known quota state.
func (a *API) RateLimit() ratelimit.State {
	return a.client.RateLimit()
}

// IsNearLimit reports whether the remaining quota fraction is at or below
// the threshold (0 applies the default threshold).
func (a *API) IsNearLimit(threshold float64) bool {
	return a.client.Tracker().IsNearLimit(threshold)
}
