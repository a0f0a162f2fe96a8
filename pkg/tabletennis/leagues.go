package tabletennis

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/spinshot/tabletennis-client/pkg/client"
	"github.com/spinshot/tabletennis-client/pkg/models"
	"github.com/spinshot/tabletennis-client/pkg/pagination"
)

// LeagueManager covers the league listing, standings and rankings endpoints.
type LeagueManager struct {
	client *client.Client
}

// LeagueListOptions filters a single-page league listing.
type LeagueListOptions struct {
	CC      string // country code filter, e.g. "cz"
	Page    int
	PerPage int
}

// LeagueAggregateOptions controls full-collection listing.
type LeagueAggregateOptions struct {
	CC          string
	PerPage     int
	MaxRequests int
}

// List returns one page of leagues, optionally filtered by country code.
func (m *LeagueManager) List(ctx context.Context, opts LeagueListOptions) (*models.Page[models.League], error) {
	fetch := pageFetcher(m.client, "v1", "league", leagueListParams(opts.CC))
	envelope, err := pagination.FetchPage(ctx, fetch, orFirstPage(opts.Page), orDefault(opts.PerPage, defaultLeaguesPerPage))
	if err != nil {
		return nil, err
	}
	return decodePage(envelope, models.ParseLeague)
}

// ListAll aggregates every league page. Collected leagues are returned even
// when the walk ends with a partial-results error.
func (m *LeagueManager) ListAll(ctx context.Context, opts LeagueAggregateOptions) ([]models.League, error) {
	fetch := pageFetcher(m.client, "v1", "league", leagueListParams(opts.CC))
	raws, err := pagination.FetchAll(ctx, fetch, orDefault(opts.PerPage, defaultLeaguesPerPage), opts.MaxRequests)
	results, decodeErr := decodeRecords(raws, models.ParseLeague)
	if decodeErr != nil {
		return nil, decodeErr
	}
	return results, err
}

// Table returns the standings rows for a league. Only leagues where
// SupportsStandings is true publish one; rows stay raw because their shape
// varies per league format.
func (m *LeagueManager) Table(ctx context.Context, leagueID string) ([]json.RawMessage, error) {
	return m.rawLookup(ctx, "league/table", leagueID)
}

// TopList returns the player ranking rows for a league. Only leagues where
// SupportsRankings is true publish one.
func (m *LeagueManager) TopList(ctx context.Context, leagueID string) ([]json.RawMessage, error) {
	return m.rawLookup(ctx, "league/toplist", leagueID)
}

func (m *LeagueManager) rawLookup(ctx context.Context, endpoint, leagueID string) ([]json.RawMessage, error) {
	if leagueID == "" {
		return nil, client.Errorf(client.KindInvalidArgument, "league id must not be empty")
	}

	params := url.Values{}
	params.Set("league_id", leagueID)

	envelope, err := m.client.Get(ctx, "v1", endpoint, params)
	if err != nil {
		return nil, err
	}
	rows, err := envelope.ResultList()
	if err != nil {
		return nil, &client.Error{Kind: client.KindParse, Message: "decode results", Err: err}
	}
	return rows, nil
}

func leagueListParams(cc string) url.Values {
	params := url.Values{}
	if cc != "" {
		params.Set("cc", strings.ToLower(cc))
	}
	return params
}
