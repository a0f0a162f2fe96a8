package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/spinshot/tabletennis-client/pkg/client"
	"github.com/spinshot/tabletennis-client/pkg/models"
)

// pagedFetcher serves total records perPage at a time and counts calls.
func pagedFetcher(total int) (PageFetcher, *int) {
	calls := new(int)
	fetch := func(ctx context.Context, page, perPage int) (*models.Envelope, error) {
		*calls++
		start := (page - 1) * perPage
		end := start + perPage
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}

		items := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			items = append(items, fmt.Sprintf(`{"id":"%d"}`, i))
		}

		body := fmt.Sprintf(`{"success":1,"pager":{"page":%d,"per_page":%d,"total":%d},"results":[`, page, perPage, total)
		for i, item := range items {
			if i > 0 {
				body += ","
			}
			body += item
		}
		body += "]}"
		return models.DecodeEnvelope([]byte(body))
	}
	return fetch, calls
}

func TestFetchPageValidation(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, page, perPage int) (*models.Envelope, error) {
		calls++
		return &models.Envelope{Success: 1}, nil
	}

	tests := []struct {
		name    string
		page    int
		perPage int
	}{
		{"zero page", 0, 50},
		{"negative page", -1, 50},
		{"zero per page", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FetchPage(context.Background(), fetch, tt.page, tt.perPage)
			if !client.IsKind(err, client.KindInvalidArgument) {
				t.Errorf("kind = %q, want %q", client.KindOf(err), client.KindInvalidArgument)
			}
		})
	}
	if calls != 0 {
		t.Errorf("fetcher called %d times during validation failures, want 0", calls)
	}
}

func TestFetchPagePassesThrough(t *testing.T) {
	fetch, calls := pagedFetcher(5)

	env, err := FetchPage(context.Background(), fetch, 1, 3)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	items, _ := env.ResultList()
	if len(items) != 3 {
		t.Errorf("got %d items, want 3", len(items))
	}
	if *calls != 1 {
		t.Errorf("fetcher called %d times, want 1", *calls)
	}
}

func TestFetchAllSinglePage(t *testing.T) {
	fetch, calls := pagedFetcher(7)

	items, err := FetchAll(context.Background(), fetch, 50, 0)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(items) != 7 {
		t.Errorf("got %d items, want 7", len(items))
	}
	if *calls != 1 {
		t.Errorf("fetcher called %d times, want 1", *calls)
	}
}

func TestFetchAllMultiPage(t *testing.T) {
	// 1111 records at 100 per page: 12 requests, last page short.
	fetch, calls := pagedFetcher(1111)

	items, err := FetchAll(context.Background(), fetch, 100, 0)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(items) != 1111 {
		t.Errorf("got %d items, want 1111", len(items))
	}
	if *calls != 12 {
		t.Errorf("fetcher called %d times, want 12", *calls)
	}

	// No duplicates, order preserved.
	seen := make(map[string]bool, len(items))
	for i, raw := range items {
		var rec struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			t.Fatalf("item %d undecodable: %v", i, err)
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate record id %s", rec.ID)
		}
		seen[rec.ID] = true
		if rec.ID != fmt.Sprintf("%d", i) {
			t.Fatalf("item %d out of order: id %s", i, rec.ID)
		}
	}
}

func TestFetchAllNoPager(t *testing.T) {
	fetch := func(ctx context.Context, page, perPage int) (*models.Envelope, error) {
		return models.DecodeEnvelope([]byte(`{"success":1,"results":[{"id":"1"},{"id":"2"}]}`))
	}

	items, err := FetchAll(context.Background(), fetch, 50, 0)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestFetchAllRequestCeiling(t *testing.T) {
	fetch, calls := pagedFetcher(1000)

	items, err := FetchAll(context.Background(), fetch, 100, 3)
	if err == nil {
		t.Fatal("FetchAll succeeded, want partial results error")
	}

	var partial *PartialError
	if !errors.As(err, &partial) {
		t.Fatalf("error %T is not *PartialError", err)
	}
	if !client.IsKind(err, client.KindPartialResults) {
		t.Errorf("kind = %q, want %q", client.KindOf(err), client.KindPartialResults)
	}
	if *calls != 3 {
		t.Errorf("fetcher called %d times, want 3", *calls)
	}
	if len(items) != 300 {
		t.Errorf("returned %d items, want 300", len(items))
	}
	if len(partial.Collected) != 300 {
		t.Errorf("Collected has %d items, want 300", len(partial.Collected))
	}
	if partial.Total != 1000 {
		t.Errorf("Total = %d, want 1000", partial.Total)
	}
}

func TestFetchAllEmptyPageEndsWalk(t *testing.T) {
	// Pager claims 100 records but the server runs dry after 2.
	fetch := func(ctx context.Context, page, perPage int) (*models.Envelope, error) {
		if page == 1 {
			return models.DecodeEnvelope([]byte(
				`{"success":1,"pager":{"page":1,"per_page":2,"total":100},"results":[{"id":"1"},{"id":"2"}]}`))
		}
		return models.DecodeEnvelope([]byte(
			fmt.Sprintf(`{"success":1,"pager":{"page":%d,"per_page":2,"total":100},"results":[]}`, page)))
	}

	items, err := FetchAll(context.Background(), fetch, 2, 0)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestFetchAllMidFlightError(t *testing.T) {
	fetch := func(ctx context.Context, page, perPage int) (*models.Envelope, error) {
		if page == 2 {
			return nil, client.Errorf(client.KindRateLimit, "rate limit exceeded")
		}
		return models.DecodeEnvelope([]byte(
			`{"success":1,"pager":{"page":1,"per_page":1,"total":5},"results":[{"id":"1"}]}`))
	}

	items, err := FetchAll(context.Background(), fetch, 1, 0)
	if !client.IsKind(err, client.KindRateLimit) {
		t.Fatalf("kind = %q, want %q", client.KindOf(err), client.KindRateLimit)
	}
	if len(items) != 1 {
		t.Errorf("returned %d collected items alongside the error, want 1", len(items))
	}
}

func TestFetchAllValidation(t *testing.T) {
	fetch, calls := pagedFetcher(10)

	_, err := FetchAll(context.Background(), fetch, 0, 0)
	if !client.IsKind(err, client.KindInvalidArgument) {
		t.Errorf("kind = %q, want %q", client.KindOf(err), client.KindInvalidArgument)
	}
	if *calls != 0 {
		t.Errorf("fetcher called %d times, want 0", *calls)
	}
}
