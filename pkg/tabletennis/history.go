package tabletennis

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/spinshot/tabletennis-client/pkg/client"
	"github.com/spinshot/tabletennis-client/pkg/models"
)

// Bounds on the ended-event scan behind PlayerHistory.
const (
	defaultHistoryDays  = 30
	maxHistoryDays      = 365
	defaultHistoryPages = 10
	maxHistoryPages     = 50
	recentFormSize      = 10
)

// PlayerHistoryOptions controls the look-back window and request budget of
// a player history scan. Zero values apply the defaults.
type PlayerHistoryOptions struct {
	Days     int // look-back window in days, default 30, max 365
	MaxPages int // ended pages to scan, default 10, max 50
	PerPage  int
	SkipH2H  bool // skip grouping matches by opponent
}

// PlayerMatchHistory is a player's recent match record with win/loss
// statistics, aggregated from the ended-event listings.
type PlayerMatchHistory struct {
	PlayerName  string
	Days        int
	Matches     []models.EventSummary
	H2H         map[string][]models.EventSummary // opponent name -> matches
	Wins        int
	Losses      int
	Tournaments []string
	Opponents   []string
}

// TotalMatches returns the number of matches in the window.
func (h *PlayerMatchHistory) TotalMatches() int {
	return len(h.Matches)
}

// WinRate returns the fraction of matches won (0 when no matches).
func (h *PlayerMatchHistory) WinRate() float64 {
	if len(h.Matches) == 0 {
		return 0
	}
	return float64(h.Wins) / float64(len(h.Matches))
}

// RecentForm returns the win/loss pattern of the last matches in
// chronological order (true = win), capped at the ten most recent.
func (h *PlayerMatchHistory) RecentForm() []bool {
	sorted := make([]models.EventSummary, len(h.Matches))
	copy(sorted, h.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime().Before(sorted[j].StartTime())
	})
	if len(sorted) > recentFormSize {
		sorted = sorted[len(sorted)-recentFormSize:]
	}

	form := make([]bool, 0, len(sorted))
	for _, match := range sorted {
		form = append(form, match.IsWinner(h.PlayerName))
	}
	return form
}

// PlayerHistory scans recent ended events for a player's matches and
// aggregates them into win/loss statistics, tournament participation and
// per-opponent head-to-head records. The upstream has no per-player match
// endpoint, so this walks the ended listings page by page, bounded by
// MaxPages, and filters client-side on exact player name.
func (m *EventsManager) PlayerHistory(ctx context.Context, playerName string, opts PlayerHistoryOptions) (*PlayerMatchHistory, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, client.Errorf(client.KindInvalidArgument, "player name must not be empty")
	}
	days := orDefault(opts.Days, defaultHistoryDays)
	if days < 1 || days > maxHistoryDays {
		return nil, client.Errorf(client.KindInvalidArgument,
			"days must be between 1 and %d (got %d)", maxHistoryDays, days)
	}
	maxPages := orDefault(opts.MaxPages, defaultHistoryPages)
	if maxPages < 1 || maxPages > maxHistoryPages {
		return nil, client.Errorf(client.KindInvalidArgument,
			"max pages must be between 1 and %d (got %d)", maxHistoryPages, maxPages)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	seen := make(map[string]bool)
	var matches []models.EventSummary

	for page := 1; page <= maxPages; page++ {
		result, err := m.Ended(ctx, EventListOptions{Page: page, PerPage: opts.PerPage})
		if err != nil {
			return nil, err
		}

		found := 0
		for _, event := range result.Results {
			if event.Home.Name != playerName && event.Away.Name != playerName {
				continue
			}
			if event.StartTime().Before(cutoff) {
				continue
			}
			found++
			if seen[event.ID] {
				continue
			}
			seen[event.ID] = true
			matches = append(matches, event)
		}

		// Ended listings run newest first; a page without any in-window
		// matches past the first means the window is exhausted.
		if found == 0 && page > 1 {
			break
		}
		if result.Pager == nil || !result.Pager.HasNext() {
			break
		}
	}

	history := buildPlayerHistory(playerName, days, matches)
	if !opts.SkipH2H {
		history.H2H = groupByOpponent(playerName, matches)
	}
	return history, nil
}

func buildPlayerHistory(playerName string, days int, matches []models.EventSummary) *PlayerMatchHistory {
	wins := 0
	tournaments := make(map[string]bool)
	opponents := make(map[string]bool)

	for _, match := range matches {
		if match.IsWinner(playerName) {
			wins++
		}
		if match.League.Name != "" {
			tournaments[match.League.Name] = true
		}
		opponents[opponentOf(playerName, match)] = true
	}

	return &PlayerMatchHistory{
		PlayerName:  playerName,
		Days:        days,
		Matches:     matches,
		Wins:        wins,
		Losses:      len(matches) - wins,
		Tournaments: sortedKeys(tournaments),
		Opponents:   sortedKeys(opponents),
	}
}

// groupByOpponent buckets the collected matches per opponent. The matches
// are already in hand, so no additional requests are issued.
func groupByOpponent(playerName string, matches []models.EventSummary) map[string][]models.EventSummary {
	h2h := make(map[string][]models.EventSummary)
	for _, match := range matches {
		opponent := opponentOf(playerName, match)
		h2h[opponent] = append(h2h[opponent], match)
	}
	return h2h
}

func opponentOf(playerName string, match models.EventSummary) string {
	if match.Home.Name == playerName {
		return match.Away.Name
	}
	return match.Home.Name
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
