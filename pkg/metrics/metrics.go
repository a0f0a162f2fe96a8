// Package metrics provides the central Prometheus registry reference for
// the table tennis API client. Metrics are defined in their owning packages
// (client, ratelimit) via promauto to avoid circular dependencies; this
// package documents what exists.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry the client registers into.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - ttapi_requests_total{endpoint, status} (Counter): requests by endpoint and HTTP status
//   - ttapi_request_duration_seconds{endpoint} (Histogram): request duration by endpoint
//   - ttapi_errors_total{kind} (Counter): errors by kind
//     (invalid_argument, authentication, rate_limit, api, parse, transport, partial_results)
//
// Rate Limit Metrics (pkg/ratelimit):
//   - ttapi_rate_limit_remaining (Gauge): requests remaining in the current quota window
//   - ttapi_rate_limit_max (Gauge): maximum requests per quota window
//
// Pagination Metrics (pkg/pagination):
//   - ttapi_pages_fetched_total (Counter): pages fetched during full-collection aggregation
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(ttapi_errors_total[5m])
//
//   # Quota Headroom
//   ttapi_rate_limit_remaining / ttapi_rate_limit_max
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(ttapi_request_duration_seconds_bucket[5m]))
