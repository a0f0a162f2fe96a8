// Package testutil provides a configurable mock of the upstream B365 API
// for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// MockAPI is a configurable mock API server for testing.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Tracking
	RequestCount int
	LastQuery    url.Values
	LastPath     string
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastQuery = r.URL.Query()
		mock.LastPath = r.URL.Path
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking state.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastQuery = nil
	m.LastPath = ""
}

// GetRequestCount returns the number of requests the server has seen.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetLastQuery returns the query parameters of the most recent request.
func (m *MockAPI) GetLastQuery() url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastQuery
}

// GetLastPath returns the URL path of the most recent request.
func (m *MockAPI) GetLastPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastPath
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetPaginated configures a path to serve the given result records across
// pages of per_page items, driven by the request's page parameter, with a
// pager block reporting the full total.
func (m *MockAPI) SetPaginated(path string, results []string, headers map[string]string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if perPage < 1 {
			perPage = 50
		}

		start := (page - 1) * perPage
		end := start + perPage
		if start > len(results) {
			start = len(results)
		}
		if end > len(results) {
			end = len(results)
		}

		for key, value := range headers {
			w.Header().Set(key, value)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"success":1,"pager":{"page":%d,"per_page":%d,"total":%d},"results":[%s]}`,
			page, perPage, len(results), joinRecords(results[start:end]))
	})
}

func joinRecords(records []string) string {
	out := ""
	for i, r := range records {
		if i > 0 {
			out += ","
		}
		out += r
	}
	return out
}

// EnvelopeBody builds a success envelope body with an optional pager block.
func EnvelopeBody(results []string, page, perPage, total int) string {
	body := fmt.Sprintf(`{"success":1,"results":[%s]`, joinRecords(results))
	if perPage > 0 {
		body += fmt.Sprintf(`,"pager":{"page":%d,"per_page":%d,"total":%d}`, page, perPage, total)
	}
	return body + "}"
}

// LeagueRecord builds a raw league result record.
func LeagueRecord(id, name, cc string, hasTable, hasTopList int) string {
	rec := map[string]any{
		"id": id, "name": name, "cc": cc,
		"has_leaguetable": hasTable, "has_toplist": hasTopList,
	}
	b, _ := json.Marshal(rec)
	return string(b)
}

// PlayerRecord builds a raw player result record.
func PlayerRecord(id, name, cc string, imageID int) string {
	rec := map[string]any{"id": id, "name": name, "cc": cc, "image_id": imageID}
	b, _ := json.Marshal(rec)
	return string(b)
}

// EventSummaryRecord builds a raw event listing record.
func EventSummaryRecord(id, timeStatus, homeName, awayName, leagueID, score string) string {
	return EventRecordAt(id, timeStatus, homeName, awayName, leagueID, score, 1722268800)
}

// EventRecordAt builds a raw event listing record with an explicit start
// time for tests that filter on date windows.
func EventRecordAt(id, timeStatus, homeName, awayName, leagueID, score string, startUnix int64) string {
	rec := map[string]any{
		"id":          id,
		"sport_id":    "92",
		"time":        strconv.FormatInt(startUnix, 10),
		"time_status": timeStatus,
		"league":      map[string]any{"id": leagueID, "name": "TT Cup", "cc": "cz"},
		"home":        map[string]any{"id": "h" + id, "name": homeName, "cc": "cz", "image_id": 0},
		"away":        map[string]any{"id": "a" + id, "name": awayName, "cc": "cz", "image_id": 0},
		"ss":          score,
	}
	b, _ := json.Marshal(rec)
	return string(b)
}

// RateLimitHeaders builds the standard quota headers.
func RateLimitHeaders(limit, remaining int, resetUnix int64) map[string]string {
	return map[string]string{
		"X-RateLimit-Limit":     strconv.Itoa(limit),
		"X-RateLimit-Remaining": strconv.Itoa(remaining),
		"X-RateLimit-Reset":     strconv.FormatInt(resetUnix, 10),
	}
}

// NewSuccessResponse creates a 200 envelope response with quota headers.
func NewSuccessResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers:    RateLimitHeaders(3600, 3599, 1893456000),
	}
}

// NewRateLimitResponse creates a 429 response without a body, as the
// upstream sends when the hourly quota is exhausted.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
	}
}

// NewAuthErrorResponse creates a 401 response.
func NewAuthErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusUnauthorized,
		Body:       `{"success":0,"error":"PERMISSION_DENIED"}`,
	}
}

// defaultHandler serves an empty success envelope.
func (m *MockAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success":1,"results":[]}`))
}
