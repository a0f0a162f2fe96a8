package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Event time_status values used by the API.
const (
	StatusUpcoming  = "0"
	StatusScheduled = "1"
	StatusLive      = "2"
	StatusFinished  = "3"
)

// LeagueRef is the nested league block inside event records.
type LeagueRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CC   string `json:"cc,omitempty"`
}

// GameScore is the per-game score pair inside the scores map, keyed by
// game number ("1", "2", ...).
type GameScore struct {
	Home FlexInt `json:"home"`
	Away FlexInt `json:"away"`
}

// EventSummary is the event shape returned by the listing endpoints
// (inplay, upcoming, ended, search).
type EventSummary struct {
	ID         string               `json:"id"`
	SportID    string               `json:"sport_id"`
	Time       string               `json:"time"` // unix seconds as string
	TimeStatus string               `json:"time_status"`
	League     LeagueRef            `json:"league"`
	Home       Player               `json:"home"`
	Away       Player               `json:"away"`
	Score      string               `json:"ss"`
	GameScores map[string]GameScore `json:"scores,omitempty"`
	Bet365ID   string               `json:"bet365_id,omitempty"`
}

type eventSummaryJSON struct {
	ID         string               `json:"id"`
	SportID    string               `json:"sport_id"`
	Time       string               `json:"time"`
	TimeStatus string               `json:"time_status"`
	League     *LeagueRef           `json:"league"`
	Home       *Player              `json:"home"`
	Away       *Player              `json:"away"`
	OHome      *Player              `json:"o_home"`
	OAway      *Player              `json:"o_away"`
	Score      string               `json:"ss"`
	GameScores map[string]GameScore `json:"scores"`
	Bet365ID   string               `json:"bet365_id"`
}

// ParseEventSummary decodes a raw listing record. The o_home/o_away blocks
// carry the canonical player identities when present and take precedence
// over home/away.
func ParseEventSummary(raw json.RawMessage) (EventSummary, error) {
	var e eventSummaryJSON
	if err := json.Unmarshal(raw, &e); err != nil {
		return EventSummary{}, fmt.Errorf("decode event summary: %w", err)
	}
	if e.ID == "" {
		return EventSummary{}, fmt.Errorf("event record missing id")
	}
	if e.League == nil {
		return EventSummary{}, fmt.Errorf("event record %s missing league", e.ID)
	}

	home := e.Home
	if e.OHome != nil {
		home = e.OHome
	}
	away := e.Away
	if e.OAway != nil {
		away = e.OAway
	}
	if home == nil || away == nil {
		return EventSummary{}, fmt.Errorf("event record %s missing players", e.ID)
	}

	return EventSummary{
		ID:         e.ID,
		SportID:    e.SportID,
		Time:       e.Time,
		TimeStatus: e.TimeStatus,
		League:     *e.League,
		Home:       *home,
		Away:       *away,
		Score:      e.Score,
		GameScores: e.GameScores,
		Bet365ID:   e.Bet365ID,
	}, nil
}

// StartTime converts the unix time field to a time.Time.
// Returns the zero time when the field is absent or malformed.
func (e EventSummary) StartTime() time.Time {
	return unixStringToTime(e.Time)
}

// IsScheduled reports whether the event has not started yet.
func (e EventSummary) IsScheduled() bool {
	return e.TimeStatus == StatusUpcoming || e.TimeStatus == StatusScheduled
}

// IsLive reports whether the event is currently being played.
func (e EventSummary) IsLive() bool {
	return e.TimeStatus == StatusLive
}

// IsFinished reports whether the event has ended.
func (e EventSummary) IsFinished() bool {
	return e.TimeStatus == StatusFinished
}

// StatusDescription returns a human-readable event status.
func (e EventSummary) StatusDescription() string {
	return statusDescription(e.TimeStatus)
}

// SetsScore returns the sets score as (home, away). Returns (0, 0) when no
// score has been reported.
func (e EventSummary) SetsScore() (home, away int) {
	return splitScore(e.Score)
}

// IsWinner reports whether the named player won this event. Always false
// for unfinished events.
func (e EventSummary) IsWinner(playerName string) bool {
	if !e.IsFinished() {
		return false
	}
	home, away := e.SetsScore()
	switch {
	case home > away:
		return e.Home.Name == playerName
	case away > home:
		return e.Away.Name == playerName
	default:
		return false
	}
}

// TimelineEntry is a single point in the match timeline: who scored in
// which game, and the running score after the point.
type TimelineEntry struct {
	ID    string `json:"id"`
	Game  string `json:"gm"`
	Team  string `json:"te"` // "0"=home, "1"=away
	Score string `json:"ss"` // "home-away"
}

// Points returns the running (home, away) score after this point.
func (t TimelineEntry) Points() (home, away int) {
	return splitScore(t.Score)
}

// ScoringSide returns "home" or "away" for the team that scored the point.
func (t TimelineEntry) ScoringSide() string {
	if t.Team == "0" {
		return "home"
	}
	return "away"
}

// StadiumData is the venue block under extra.stadium_data.
type StadiumData struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	Capacity    FlexInt `json:"capacity,omitempty"`
	Coordinates string  `json:"googlecoords,omitempty"`
}

// EventExtra carries the best-of-sets configuration and venue data.
type EventExtra struct {
	BestOfSets FlexInt      `json:"bestofsets"`
	Stadium    *StadiumData `json:"stadium_data,omitempty"`
}

// Event is the detailed event shape from the event/view endpoint,
// including the full point-by-point timeline.
type Event struct {
	ID         string               `json:"id"`
	SportID    string               `json:"sport_id"`
	Time       string               `json:"time"`
	TimeStatus string               `json:"time_status"`
	League     LeagueRef            `json:"league"`
	Home       Player               `json:"home"`
	Away       Player               `json:"away"`
	FinalScore string               `json:"ss"`
	GameScores map[string]GameScore `json:"scores,omitempty"`
	Timeline   []TimelineEntry      `json:"timeline,omitempty"`
	Extra      *EventExtra          `json:"extra,omitempty"`

	InplayCreatedAt string `json:"inplay_created_at,omitempty"`
	InplayUpdatedAt string `json:"inplay_updated_at,omitempty"`
	ConfirmedAt     string `json:"confirmed_at,omitempty"`
	Bet365ID        string `json:"bet365_id,omitempty"`
}

// ParseEvent decodes a raw event/view record.
func ParseEvent(raw json.RawMessage) (Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if ev.ID == "" {
		return Event{}, fmt.Errorf("event record missing id")
	}
	if ev.League.ID == "" {
		return Event{}, fmt.Errorf("event record %s missing league", ev.ID)
	}
	if ev.Home.ID == "" || ev.Away.ID == "" {
		return Event{}, fmt.Errorf("event record %s missing players", ev.ID)
	}
	return ev, nil
}

// StartTime converts the unix time field to a time.Time.
func (e Event) StartTime() time.Time {
	return unixStringToTime(e.Time)
}

// IsScheduled reports whether the event has not started yet.
func (e Event) IsScheduled() bool {
	return e.TimeStatus == StatusScheduled
}

// IsLive reports whether the event is currently being played.
func (e Event) IsLive() bool {
	return e.TimeStatus == StatusLive
}

// IsFinished reports whether the event has ended.
func (e Event) IsFinished() bool {
	return e.TimeStatus == StatusFinished
}

// StatusDescription returns a human-readable event status.
func (e Event) StatusDescription() string {
	return statusDescription(e.TimeStatus)
}

// HomeSetsWon returns the number of sets the home player won.
func (e Event) HomeSetsWon() int {
	home, _ := splitScore(e.FinalScore)
	return home
}

// AwaySetsWon returns the number of sets the away player won.
func (e Event) AwaySetsWon() int {
	_, away := splitScore(e.FinalScore)
	return away
}

// Winner returns the winning player, or nil while the event is unfinished.
func (e Event) Winner() *Player {
	if !e.IsFinished() {
		return nil
	}
	if e.HomeSetsWon() > e.AwaySetsWon() {
		return &e.Home
	}
	return &e.Away
}

// TotalPointsPlayed returns the number of points in the match timeline.
func (e Event) TotalPointsPlayed() int {
	return len(e.Timeline)
}

func statusDescription(status string) string {
	switch status {
	case StatusUpcoming:
		return "Upcoming"
	case StatusScheduled:
		return "Scheduled"
	case StatusLive:
		return "Live"
	case StatusFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// splitScore parses an "n-m" score string; malformed scores yield (0, 0).
func splitScore(score string) (home, away int) {
	parts := strings.SplitN(score, "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	a, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return h, a
}

func unixStringToTime(s string) time.Time {
	unix, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
