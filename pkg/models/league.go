package models

import (
	"encoding/json"
	"fmt"
)

// League is a table tennis league or tournament.
type League struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CC   string `json:"cc,omitempty"`

	// Raw integer flags from the API; see SupportsStandings / SupportsRankings.
	HasLeagueTable FlexInt `json:"has_leaguetable"`
	HasTopList     FlexInt `json:"has_toplist"`
}

// ParseLeague decodes a raw league record, rejecting records that lack the
// required id or name fields.
func ParseLeague(raw json.RawMessage) (League, error) {
	var l League
	if err := json.Unmarshal(raw, &l); err != nil {
		return League{}, fmt.Errorf("decode league record: %w", err)
	}
	if l.ID == "" {
		return League{}, fmt.Errorf("league record missing id")
	}
	if l.Name == "" {
		return League{}, fmt.Errorf("league record %s missing name", l.ID)
	}
	return l, nil
}

// SupportsStandings reports whether the league publishes a standings table
// (league/table lookups only work when this is true).
func (l League) SupportsStandings() bool {
	return l.HasLeagueTable != 0
}

// SupportsRankings reports whether the league publishes player rankings
// (league/toplist lookups only work when this is true).
func (l League) SupportsRankings() bool {
	return l.HasTopList != 0
}
