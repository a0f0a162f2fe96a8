package pagination

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/spinshot/tabletennis-client/pkg/client"
	"github.com/spinshot/tabletennis-client/pkg/models"
)

var pagesFetched = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ttapi_pages_fetched_total",
	Help: "Pages fetched during full-collection aggregation",
})

// DefaultMaxRequests is the request ceiling applied when a caller does not
// supply one. It bounds runaway aggregation against endpoints with tens of
// thousands of records.
const DefaultMaxRequests = 50

// PageFetcher fetches a single page of an endpoint. Implementations merge
// page and per_page into the endpoint's query parameters and perform one
// request; they carry no pagination logic of their own.
type PageFetcher func(ctx context.Context, page, perPage int) (*models.Envelope, error)

// PartialError is returned by FetchAll when the request ceiling was reached
// before all pages were retrieved. It carries everything collected so far,
// so callers that prefer best-effort data over failure can keep the payload.
type PartialError struct {
	Collected []json.RawMessage
	Requests  int
	Total     int
}

// Error implements the error interface.
func (e *PartialError) Error() string {
	return fmt.Sprintf("ttapi partial_results error: collected %d of %d records in %d requests",
		len(e.Collected), e.Total, e.Requests)
}

// ErrorKind classifies the error for client.KindOf.
func (e *PartialError) ErrorKind() client.Kind {
	return client.KindPartialResults
}

// FetchPage validates the page arguments and fetches exactly one page.
// Invalid arguments fail before any network call.
func FetchPage(ctx context.Context, fetch PageFetcher, page, perPage int) (*models.Envelope, error) {
	if page < 1 {
		return nil, client.Errorf(client.KindInvalidArgument, "page must be >= 1 (got %d)", page)
	}
	if perPage < 1 {
		return nil, client.Errorf(client.KindInvalidArgument, "per_page must be >= 1 (got %d)", perPage)
	}
	return fetch(ctx, page, perPage)
}

// FetchAll aggregates every page of a collection, in page order, starting
// at page 1. It stops when the accumulated count reaches the pager total,
// when the response carries no pager block (single-page endpoint), or when
// maxRequests pages have been fetched. In the last case the collected
// records are returned together with a *PartialError.
//
// maxRequests <= 0 applies DefaultMaxRequests. Guarantees: at most
// maxRequests requests, no page fetched twice, no page skipped.
func FetchAll(ctx context.Context, fetch PageFetcher, perPage, maxRequests int) ([]json.RawMessage, error) {
	if perPage < 1 {
		return nil, client.Errorf(client.KindInvalidArgument, "per_page must be >= 1 (got %d)", perPage)
	}
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}

	var collected []json.RawMessage
	total := 0
	requests := 0

	for page := 1; ; page++ {
		if requests >= maxRequests {
			log.Warn().
				Int("requests", requests).
				Int("collected", len(collected)).
				Int("total", total).
				Msg("Aggregation hit request ceiling")
			return collected, &PartialError{Collected: collected, Requests: requests, Total: total}
		}

		envelope, err := fetch(ctx, page, perPage)
		requests++
		pagesFetched.Inc()
		if err != nil {
			return collected, err
		}

		items, err := envelope.ResultList()
		if err != nil {
			return collected, &client.Error{Kind: client.KindParse, Message: "paginated results", Err: err}
		}
		collected = append(collected, items...)

		log.Debug().
			Int("page", page).
			Int("page_items", len(items)).
			Int("collected", len(collected)).
			Msg("Fetched page")

		if envelope.Pager == nil {
			// Single-page endpoint.
			return collected, nil
		}
		total = envelope.Pager.Total.Int()
		if len(collected) >= total {
			return collected, nil
		}
		if len(items) == 0 {
			// Upstream totals occasionally overcount; an empty page ends the walk.
			return collected, nil
		}
	}
}
