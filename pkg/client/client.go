// Package client provides the core B365 table tennis API client:
// authenticated request construction, envelope decoding, typed error
// classification, and rate-limit bookkeeping.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spinshot/tabletennis-client/pkg/models"
	"github.com/spinshot/tabletennis-client/pkg/ratelimit"
)

// Prometheus metrics for API client operations.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ttapi_requests_total",
		Help: "Total API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ttapi_request_duration_seconds",
		Help:    "API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ttapi_errors_total",
		Help: "Total API errors by kind",
	}, []string{"kind"})
)

const (
	// DefaultBaseURL is the production B365 API host.
	DefaultBaseURL = "https://api.b365api.com"

	// SportTableTennis is the B365 sport_id for table tennis.
	SportTableTennis = 92

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "tabletennis-client/0.1.0"

	// maxPayloadSummary caps how much of an unparseable body is attached
	// to a parse error.
	maxPayloadSummary = 512
)

// Config holds the client configuration.
type Config struct {
	// APIKey is the B365 authentication token (required).
	APIKey string

	// BaseURL overrides the API host (optional).
	BaseURL string

	// SportID selects the sport for endpoints that filter by sport.
	SportID int

	// UserAgent sent with every request.
	UserAgent string

	// Timeout for a single request round trip.
	Timeout time.Duration

	// HTTPClient overrides the transport (for testing).
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration for the given token.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:    apiKey,
		BaseURL:   DefaultBaseURL,
		SportID:   SportTableTennis,
		UserAgent: defaultUserAgent,
		Timeout:   defaultTimeout,
	}
}

// Client executes authenticated requests against the API. One rate-limit
// tracker is attached per client instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sportID    int
	userAgent  string
	tracker    *ratelimit.Tracker
	logger     zerolog.Logger
}

// New creates a new API client. An empty API key fails fast.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, Errorf(KindInvalidArgument, "api key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SportID == 0 {
		cfg.SportID = SportTableTennis
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := log.With().Str("component", "ttapi-client").Logger()

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		sportID:    cfg.SportID,
		userAgent:  cfg.UserAgent,
		tracker:    ratelimit.NewTracker(logger),
		logger:     logger,
	}, nil
}

// Get performs a single synchronous GET against a versioned endpoint and
// returns the decoded envelope. The API token is merged into the query
// parameters, along with sport_id for the endpoints that filter by sport.
// No retry, no caching: one invocation is one round trip.
func (c *Client) Get(ctx context.Context, version, endpoint string, params url.Values) (*models.Envelope, error) {
	endpoint = strings.TrimLeft(endpoint, "/")

	startTime := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	query := url.Values{}
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	query.Set("token", c.apiKey)
	if needsSportID(endpoint) && query.Get("sport_id") == "" {
		query.Set("sport_id", strconv.Itoa(c.sportID))
	}

	requestURL := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, version, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, c.fail(&Error{Kind: KindTransport, Message: "create request", Err: err}, endpoint, "build_error")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("version", version).
		Msg("Executing API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(&Error{Kind: KindTransport, Message: "request failed", Err: err}, endpoint, "network_error")
	}
	defer resp.Body.Close()

	// Quota headers may ride on any response, including errors.
	c.tracker.UpdateFromHeaders(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&Error{Kind: KindTransport, Message: "read response body", Err: err}, endpoint, "network_error")
	}

	status := strconv.Itoa(resp.StatusCode)
	if typedErr := c.classifyStatus(resp.StatusCode); typedErr != nil {
		return nil, c.fail(typedErr, endpoint, status)
	}

	envelope, err := models.DecodeEnvelope(body)
	if err != nil {
		return nil, c.fail(&Error{
			Kind:       KindParse,
			StatusCode: resp.StatusCode,
			Message:    "malformed response envelope",
			Payload:    summarize(body),
			Err:        err,
		}, endpoint, "parse_error")
	}

	if !envelope.OK() {
		kind := KindAPI
		if isQuotaMessage(envelope.Error) {
			kind = KindRateLimit
		}
		typedErr := &Error{
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(envelope.Error),
		}
		if kind == KindRateLimit {
			typedErr.ResetAt = c.tracker.ResetAt()
		}
		return nil, c.fail(typedErr, endpoint, "api_error")
	}

	apiRequestsTotal.WithLabelValues(endpoint, status).Inc()
	return envelope, nil
}

// RateLimit returns a copy of the last-known quota state.
func (c *Client) RateLimit() ratelimit.State {
	return c.tracker.State()
}

// Tracker exposes the rate-limit tracker for threshold checks.
func (c *Client) Tracker() *ratelimit.Tracker {
	return c.tracker
}

// classifyStatus maps an HTTP error status onto the error taxonomy.
// Returns nil for 2xx.
func (c *Client) classifyStatus(statusCode int) *Error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &Error{Kind: KindAuthentication, StatusCode: statusCode, Message: "api token rejected"}
	case statusCode == http.StatusTooManyRequests:
		return &Error{
			Kind:       KindRateLimit,
			StatusCode: statusCode,
			Message:    "rate limit exceeded",
			ResetAt:    c.tracker.ResetAt(),
		}
	default:
		return &Error{Kind: KindAPI, StatusCode: statusCode, Message: http.StatusText(statusCode)}
	}
}

// fail records error metrics and a log line, then returns the error.
func (c *Client) fail(typedErr *Error, endpoint, status string) *Error {
	apiErrorsTotal.WithLabelValues(string(typedErr.Kind)).Inc()
	apiRequestsTotal.WithLabelValues(endpoint, status).Inc()

	c.logger.Warn().
		Str("endpoint", endpoint).
		Str("kind", string(typedErr.Kind)).
		Int("status", typedErr.StatusCode).
		Msg("API request failed")

	return typedErr
}

// needsSportID reports whether an endpoint requires the sport_id parameter.
func needsSportID(endpoint string) bool {
	for _, prefix := range []string{"events/", "event/", "league", "team"} {
		if strings.HasPrefix(endpoint, prefix) {
			return true
		}
	}
	return false
}

// isQuotaMessage detects response bodies that signal quota exhaustion on a
// success status.
func isQuotaMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "rate limit") || strings.Contains(lower, "quota")
}

func upstreamMessage(msg string) string {
	if msg == "" {
		return "unknown API error"
	}
	return msg
}

func summarize(body []byte) string {
	if len(body) > maxPayloadSummary {
		return string(body[:maxPayloadSummary]) + "..."
	}
	return string(body)
}
