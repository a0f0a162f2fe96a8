package tabletennis

import (
	"context"
	"net/url"
	"strings"

	"github.com/spinshot/tabletennis-client/pkg/client"
	"github.com/spinshot/tabletennis-client/pkg/models"
	"github.com/spinshot/tabletennis-client/pkg/pagination"
)

// PlayerManager covers the player/team listing endpoint. The upstream API
// models both singles players and doubles pairs as "team" records.
type PlayerManager struct {
	client *client.Client
}

// PlayerListOptions filters a single-page player listing.
type PlayerListOptions struct {
	CC      string
	Page    int
	PerPage int
}

// PlayerAggregateOptions controls full-collection listing. The player
// collection runs to tens of thousands of records; size MaxRequests
// accordingly.
type PlayerAggregateOptions struct {
	CC          string
	PerPage     int
	MaxRequests int
}

// PlayerSearchOptions bounds a client-side name search.
type PlayerSearchOptions struct {
	CC       string
	Limit    int // max matches to return, default 20
	MaxPages int // pages to scan before giving up, default 10
}

// List returns one page of players, optionally filtered by country code.
func (m *PlayerManager) List(ctx context.Context, opts PlayerListOptions) (*models.Page[models.Player], error) {
	fetch := pageFetcher(m.client, "v2", "team", playerListParams(opts.CC))
	envelope, err := pagination.FetchPage(ctx, fetch, orFirstPage(opts.Page), orDefault(opts.PerPage, defaultPlayersPerPage))
	if err != nil {
		return nil, err
	}
	return decodePage(envelope, models.ParsePlayer)
}

// ListAll aggregates every player page. Collected players are returned even
// when the walk ends with a partial-results error.
func (m *PlayerManager) ListAll(ctx context.Context, opts PlayerAggregateOptions) ([]models.Player, error) {
	fetch := pageFetcher(m.client, "v2", "team", playerListParams(opts.CC))
	raws, err := pagination.FetchAll(ctx, fetch, orDefault(opts.PerPage, defaultPlayersPerPage), opts.MaxRequests)
	results, decodeErr := decodeRecords(raws, models.ParsePlayer)
	if decodeErr != nil {
		return nil, decodeErr
	}
	return results, err
}

// Search scans listing pages for players whose name contains the query
// (case-insensitive). The upstream has no server-side name search, so this
// walks at most MaxPages pages and stops once Limit matches are found.
func (m *PlayerManager) Search(ctx context.Context, query string, opts PlayerSearchOptions) ([]models.Player, error) {
	if strings.TrimSpace(query) == "" {
		return nil, client.Errorf(client.KindInvalidArgument, "search query must not be empty")
	}
	limit := orDefault(opts.Limit, 20)
	maxPages := orDefault(opts.MaxPages, 10)
	if limit < 1 {
		return nil, client.Errorf(client.KindInvalidArgument, "limit must be >= 1 (got %d)", limit)
	}
	if maxPages < 1 {
		return nil, client.Errorf(client.KindInvalidArgument, "max pages must be >= 1 (got %d)", maxPages)
	}

	needle := strings.ToLower(query)
	var matches []models.Player

	for page := 1; page <= maxPages; page++ {
		result, err := m.List(ctx, PlayerListOptions{CC: opts.CC, Page: page})
		if err != nil {
			return matches, err
		}

		for _, player := range result.Results {
			if strings.Contains(strings.ToLower(player.Name), needle) {
				matches = append(matches, player)
				if len(matches) >= limit {
					return matches, nil
				}
			}
		}

		if result.Pager == nil || !result.Pager.HasNext() {
			break
		}
	}
	return matches, nil
}

// Singles returns one page of players with doubles pairs filtered out.
// The pager still describes the unfiltered page.
func (m *PlayerManager) Singles(ctx context.Context, opts PlayerListOptions) (*models.Page[models.Player], error) {
	return m.filtered(ctx, opts, func(p models.Player) bool { return !p.IsDoublesPair() })
}

// Doubles returns one page of doubles pairs only.
func (m *PlayerManager) Doubles(ctx context.Context, opts PlayerListOptions) (*models.Page[models.Player], error) {
	return m.filtered(ctx, opts, models.Player.IsDoublesPair)
}

// WithImages returns one page of players that have a profile image.
func (m *PlayerManager) WithImages(ctx context.Context, opts PlayerListOptions) (*models.Page[models.Player], error) {
	return m.filtered(ctx, opts, models.Player.HasImage)
}

func (m *PlayerManager) filtered(ctx context.Context, opts PlayerListOptions, keep func(models.Player) bool) (*models.Page[models.Player], error) {
	result, err := m.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Player, 0, len(result.Results))
	for _, player := range result.Results {
		if keep(player) {
			filtered = append(filtered, player)
		}
	}
	return &models.Page[models.Player]{Results: filtered, Pager: result.Pager}, nil
}

func playerListParams(cc string) url.Values {
	params := url.Values{}
	if cc != "" {
		params.Set("cc", strings.ToLower(cc))
	}
	return params
}
