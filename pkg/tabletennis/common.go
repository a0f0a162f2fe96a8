package tabletennis

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/spinshot/tabletennis-client/pkg/client"
	"github.com/spinshot/tabletennis-client/pkg/models"
	"github.com/spinshot/tabletennis-client/pkg/pagination"
)

// Per-manager page size defaults.
const (
	defaultEventsPerPage  = 50
	defaultLeaguesPerPage = 100
	defaultPlayersPerPage = 100
)

// pageFetcher binds an endpoint and its fixed query parameters into a
// pagination.PageFetcher. Only page and per_page vary between calls.
func pageFetcher(c *client.Client, version, endpoint string, params url.Values) pagination.PageFetcher {
	return func(ctx context.Context, page, perPage int) (*models.Envelope, error) {
		query := cloneValues(params)
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(perPage))
		return c.Get(ctx, version, endpoint, query)
	}
}

func cloneValues(params url.Values) url.Values {
	cloned := url.Values{}
	for key, values := range params {
		for _, v := range values {
			cloned.Add(key, v)
		}
	}
	return cloned
}

// orFirstPage maps the zero value of a page option to page 1. Explicit
// negative pages still reach the engine and fail validation there.
func orFirstPage(page int) int {
	if page == 0 {
		return 1
	}
	return page
}

func orDefault(n, fallback int) int {
	if n == 0 {
		return fallback
	}
	return n
}

// decodePage decodes every raw record of an envelope page with the given
// parse function, surfacing the first failure as a parse error.
func decodePage[T any](envelope *models.Envelope, parse func(json.RawMessage) (T, error)) (*models.Page[T], error) {
	raws, err := envelope.ResultList()
	if err != nil {
		return nil, &client.Error{Kind: client.KindParse, Message: "decode results", Err: err}
	}
	results, err := decodeRecords(raws, parse)
	if err != nil {
		return nil, err
	}
	return &models.Page[T]{Results: results, Pager: envelope.Pager}, nil
}

func decodeRecords[T any](raws []json.RawMessage, parse func(json.RawMessage) (T, error)) ([]T, error) {
	results := make([]T, 0, len(raws))
	for _, raw := range raws {
		record, err := parse(raw)
		if err != nil {
			return nil, &client.Error{Kind: client.KindParse, Message: "decode record", Err: err, Payload: string(raw)}
		}
		results = append(results, record)
	}
	return results, nil
}
