package tabletennis

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spinshot/tabletennis-client/pkg/client"
	"github.com/spinshot/tabletennis-client/pkg/models"
	"github.com/spinshot/tabletennis-client/pkg/pagination"
)

// maxViewBatch is the upstream cap on ids per event/view request.
const maxViewBatch = 10

// EventsManager covers the event listing, detail, search and history
// endpoints.
type EventsManager struct {
	client *client.Client
}

// EventListOptions filters a single-page event listing. A zero Page means
// the first page; a zero PerPage applies the manager default.
type EventListOptions struct {
	LeagueID string
	Page     int
	PerPage  int
}

// EventAggregateOptions controls full-collection listing. A zero PerPage
// applies the manager default; a zero MaxRequests applies
// pagination.DefaultMaxRequests.
type EventAggregateOptions struct {
	LeagueID    string
	PerPage     int
	MaxRequests int
}

// EventSearchOptions filters the event search endpoint. The upstream search
// only behaves for this sport when home, away and day are all present, so
// all three are required.
type EventSearchOptions struct {
	Home    string
	Away    string
	Day     time.Time
	Page    int
	PerPage int
}

// EventHistory groups the head-to-head record and each player's recent
// matches for one event.
type EventHistory struct {
	H2H  []models.EventSummary
	Home []models.EventSummary
	Away []models.EventSummary
}

// InPlay returns one page of live events.
func (m *EventsManager) InPlay(ctx context.Context, opts EventListOptions) (*models.Page[models.EventSummary], error) {
	return m.listPage(ctx, "events/inplay", opts)
}

// Upcoming returns one page of scheduled events.
func (m *EventsManager) Upcoming(ctx context.Context, opts EventListOptions) (*models.Page[models.EventSummary], error) {
	return m.listPage(ctx, "events/upcoming", opts)
}

// Ended returns one page of finished events.
func (m *EventsManager) Ended(ctx context.Context, opts EventListOptions) (*models.Page[models.EventSummary], error) {
	return m.listPage(ctx, "events/ended", opts)
}

// InPlayAll aggregates every page of live events.
func (m *EventsManager) InPlayAll(ctx context.Context, opts EventAggregateOptions) ([]models.EventSummary, error) {
	return m.listAll(ctx, "events/inplay", opts)
}

// UpcomingAll aggregates every page of scheduled events.
func (m *EventsManager) UpcomingAll(ctx context.Context, opts EventAggregateOptions) ([]models.EventSummary, error) {
	return m.listAll(ctx, "events/upcoming", opts)
}

// EndedAll aggregates every page of finished events.
func (m *EventsManager) EndedAll(ctx context.Context, opts EventAggregateOptions) ([]models.EventSummary, error) {
	return m.listAll(ctx, "events/ended", opts)
}

// Search returns one page of events matching both player names on the
// given day.
func (m *EventsManager) Search(ctx context.Context, opts EventSearchOptions) (*models.Page[models.EventSummary], error) {
	if opts.Home == "" || opts.Away == "" || opts.Day.IsZero() {
		return nil, client.Errorf(client.KindInvalidArgument,
			"event search requires home, away and day")
	}

	params := url.Values{}
	params.Set("home", opts.Home)
	params.Set("away", opts.Away)
	params.Set("time", opts.Day.Format("20060102"))

	fetch := pageFetcher(m.client, "v1", "events/search", params)
	envelope, err := pagination.FetchPage(ctx, fetch, orFirstPage(opts.Page), orDefault(opts.PerPage, defaultEventsPerPage))
	if err != nil {
		return nil, err
	}
	return decodePage(envelope, models.ParseEventSummary)
}

// View fetches detailed events with timeline data for up to 10 ids in one
// batch request.
func (m *EventsManager) View(ctx context.Context, eventIDs ...string) ([]models.Event, error) {
	if len(eventIDs) == 0 {
		return nil, client.Errorf(client.KindInvalidArgument, "at least one event id is required")
	}
	if len(eventIDs) > maxViewBatch {
		return nil, client.Errorf(client.KindInvalidArgument,
			"at most %d event ids per request (got %d)", maxViewBatch, len(eventIDs))
	}
	for _, id := range eventIDs {
		if id == "" {
			return nil, client.Errorf(client.KindInvalidArgument, "event id must not be empty")
		}
	}

	params := url.Values{}
	params.Set("event_id", strings.Join(eventIDs, ","))

	envelope, err := m.client.Get(ctx, "v1", "event/view", params)
	if err != nil {
		return nil, err
	}
	raws, err := envelope.ResultList()
	if err != nil {
		return nil, &client.Error{Kind: client.KindParse, Message: "decode results", Err: err}
	}
	return decodeRecords(raws, models.ParseEvent)
}

// History returns the head-to-head and per-player recent match lists for
// one event. qty bounds each list (1..20); zero applies the upstream
// default of 10.
func (m *EventsManager) History(ctx context.Context, eventID string, qty int) (*EventHistory, error) {
	if eventID == "" {
		return nil, client.Errorf(client.KindInvalidArgument, "event id must not be empty")
	}
	qty = orDefault(qty, 10)
	if qty < 1 || qty > 20 {
		return nil, client.Errorf(client.KindInvalidArgument, "qty must be between 1 and 20 (got %d)", qty)
	}

	params := url.Values{}
	params.Set("event_id", eventID)
	params.Set("qty", strconv.Itoa(qty))

	envelope, err := m.client.Get(ctx, "v1", "event/history", params)
	if err != nil {
		return nil, err
	}

	var raw struct {
		H2H  []json.RawMessage `json:"h2h"`
		Home []json.RawMessage `json:"home"`
		Away []json.RawMessage `json:"away"`
	}
	if err := envelope.ResultObject(&raw); err != nil {
		return nil, &client.Error{Kind: client.KindParse, Message: "decode history results", Err: err}
	}

	history := &EventHistory{}
	if history.H2H, err = decodeRecords(raw.H2H, models.ParseEventSummary); err != nil {
		return nil, err
	}
	if history.Home, err = decodeRecords(raw.Home, models.ParseEventSummary); err != nil {
		return nil, err
	}
	if history.Away, err = decodeRecords(raw.Away, models.ParseEventSummary); err != nil {
		return nil, err
	}
	return history, nil
}

func (m *EventsManager) listPage(ctx context.Context, endpoint string, opts EventListOptions) (*models.Page[models.EventSummary], error) {
	fetch := pageFetcher(m.client, "v3", endpoint, eventListParams(opts.LeagueID))
	envelope, err := pagination.FetchPage(ctx, fetch, orFirstPage(opts.Page), orDefault(opts.PerPage, defaultEventsPerPage))
	if err != nil {
		return nil, err
	}
	return decodePage(envelope, models.ParseEventSummary)
}

func (m *EventsManager) listAll(ctx context.Context, endpoint string, opts EventAggregateOptions) ([]models.EventSummary, error) {
	fetch := pageFetcher(m.client, "v3", endpoint, eventListParams(opts.LeagueID))
	raws, err := pagination.FetchAll(ctx, fetch, orDefault(opts.PerPage, defaultEventsPerPage), opts.MaxRequests)
	// Whatever was collected before a ceiling or mid-flight failure is still
	// returned alongside the error.
	results, decodeErr := decodeRecords(raws, models.ParseEventSummary)
	if decodeErr != nil {
		return nil, decodeErr
	}
	return results, err
}

func eventListParams(leagueID string) url.Values {
	params := url.Values{}
	if leagueID != "" {
		params.Set("league_id", leagueID)
	}
	return params
}
