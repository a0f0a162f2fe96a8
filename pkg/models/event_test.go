package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

const summaryFixture = `{
	"id": "7286516",
	"sport_id": "92",
	"time": "1722268800",
	"time_status": "3",
	"league": {"id": "29097", "name": "TT Elite Series", "cc": "pl"},
	"home": {"id": "1", "name": "Kubik M", "cc": "pl", "image_id": 0},
	"away": {"id": "2", "name": "Zemraj K", "cc": "pl", "image_id": 0},
	"ss": "3-1",
	"scores": {"1": {"home": "11", "away": "9"}, "2": {"home": 8, "away": 11}}
}`

func TestParseEventSummary(t *testing.T) {
	e, err := ParseEventSummary(json.RawMessage(summaryFixture))
	if err != nil {
		t.Fatalf("ParseEventSummary failed: %v", err)
	}

	if e.ID != "7286516" {
		t.Errorf("ID = %q", e.ID)
	}
	if e.League.Name != "TT Elite Series" {
		t.Errorf("League.Name = %q", e.League.Name)
	}
	if !e.IsFinished() {
		t.Error("IsFinished() = false, want true")
	}
	if e.StatusDescription() != "Finished" {
		t.Errorf("StatusDescription() = %q", e.StatusDescription())
	}

	home, away := e.SetsScore()
	if home != 3 || away != 1 {
		t.Errorf("SetsScore() = (%d, %d), want (3, 1)", home, away)
	}

	want := time.Unix(1722268800, 0)
	if !e.StartTime().Equal(want) {
		t.Errorf("StartTime() = %v, want %v", e.StartTime(), want)
	}

	g1, ok := e.GameScores["1"]
	if !ok {
		t.Fatal("game 1 missing from scores")
	}
	if g1.Home.Int() != 11 || g1.Away.Int() != 9 {
		t.Errorf("game 1 = %d-%d, want 11-9", g1.Home.Int(), g1.Away.Int())
	}
}

func TestEventSummaryRoundTrip(t *testing.T) {
	e, err := ParseEventSummary(json.RawMessage(summaryFixture))
	if err != nil {
		t.Fatalf("ParseEventSummary failed: %v", err)
	}

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	again, err := ParseEventSummary(b)
	if err != nil {
		t.Fatalf("ParseEventSummary of re-encoded event failed: %v", err)
	}
	if !reflect.DeepEqual(e, again) {
		t.Errorf("round trip changed event: %+v != %+v", e, again)
	}

	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		t.Fatalf("Unmarshal re-encoded event failed: %v", err)
	}
	for _, key := range []string{"id", "sport_id", "time", "time_status", "league", "home", "away", "ss", "scores"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("field %q lost in round trip", key)
		}
	}
	if fields["id"] != "7286516" || fields["time"] != "1722268800" || fields["ss"] != "3-1" {
		t.Errorf("re-encoded fields = %v", fields)
	}
}

func TestParseEventSummaryPrefersOHome(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "1",
		"time_status": "2",
		"league": {"id": "10", "name": "TT Cup"},
		"home": {"id": "h-generic", "name": "Home"},
		"away": {"id": "a-generic", "name": "Away"},
		"o_home": {"id": "433385", "name": "Vaclav Hruska Snr"},
		"o_away": {"id": "433386", "name": "Marek Fabini"}
	}`)

	e, err := ParseEventSummary(raw)
	if err != nil {
		t.Fatalf("ParseEventSummary failed: %v", err)
	}
	if e.Home.ID != "433385" {
		t.Errorf("Home.ID = %q, want canonical o_home id", e.Home.ID)
	}
	if e.Away.Name != "Marek Fabini" {
		t.Errorf("Away.Name = %q", e.Away.Name)
	}
}

func TestParseEventSummaryMissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing id", `{"league":{"id":"1","name":"x"},"home":{"id":"1","name":"a"},"away":{"id":"2","name":"b"}}`},
		{"missing league", `{"id":"1","home":{"id":"1","name":"a"},"away":{"id":"2","name":"b"}}`},
		{"missing players", `{"id":"1","league":{"id":"1","name":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseEventSummary(json.RawMessage(tt.raw)); err == nil {
				t.Error("ParseEventSummary succeeded, want error")
			}
		})
	}
}

func TestEventSummaryStatus(t *testing.T) {
	tests := []struct {
		status    string
		scheduled bool
		live      bool
		finished  bool
		desc      string
	}{
		{StatusUpcoming, true, false, false, "Upcoming"},
		{StatusScheduled, true, false, false, "Scheduled"},
		{StatusLive, false, true, false, "Live"},
		{StatusFinished, false, false, true, "Finished"},
		{"99", false, false, false, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			e := EventSummary{TimeStatus: tt.status}
			if e.IsScheduled() != tt.scheduled || e.IsLive() != tt.live || e.IsFinished() != tt.finished {
				t.Errorf("status %q: got (%v,%v,%v)", tt.status, e.IsScheduled(), e.IsLive(), e.IsFinished())
			}
			if e.StatusDescription() != tt.desc {
				t.Errorf("StatusDescription() = %q, want %q", e.StatusDescription(), tt.desc)
			}
		})
	}
}

func TestEventSummaryIsWinner(t *testing.T) {
	finished := EventSummary{
		TimeStatus: StatusFinished,
		Home:       Player{ID: "1", Name: "Kubik M"},
		Away:       Player{ID: "2", Name: "Zemraj K"},
		Score:      "3-1",
	}

	if !finished.IsWinner("Kubik M") {
		t.Error("IsWinner(home) = false, want true")
	}
	if finished.IsWinner("Zemraj K") {
		t.Error("IsWinner(away) = true, want false")
	}

	live := finished
	live.TimeStatus = StatusLive
	if live.IsWinner("Kubik M") {
		t.Error("IsWinner on live event = true, want false")
	}
}

func TestSplitScoreMalformed(t *testing.T) {
	tests := []string{"", "3", "a-b", "3-"}
	for _, score := range tests {
		home, away := splitScore(score)
		if home != 0 || away != 0 {
			t.Errorf("splitScore(%q) = (%d, %d), want (0, 0)", score, home, away)
		}
	}
}

func TestParseEvent(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "7286516",
		"sport_id": "92",
		"time": "1722268800",
		"time_status": "3",
		"league": {"id": "29097", "name": "TT Elite Series"},
		"home": {"id": "1", "name": "Kubik M"},
		"away": {"id": "2", "name": "Zemraj K"},
		"ss": "3-1",
		"timeline": [
			{"id": "100", "gm": "1", "te": "0", "ss": "1-0"},
			{"id": "101", "gm": "1", "te": "1", "ss": "1-1"}
		],
		"extra": {"bestofsets": "5", "stadium_data": {"id": "7", "name": "Arena Lodz", "city": "Lodz"}}
	}`)

	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}

	if ev.HomeSetsWon() != 3 || ev.AwaySetsWon() != 1 {
		t.Errorf("sets = %d-%d, want 3-1", ev.HomeSetsWon(), ev.AwaySetsWon())
	}
	winner := ev.Winner()
	if winner == nil || winner.Name != "Kubik M" {
		t.Errorf("Winner() = %+v, want home player", winner)
	}
	if ev.TotalPointsPlayed() != 2 {
		t.Errorf("TotalPointsPlayed() = %d, want 2", ev.TotalPointsPlayed())
	}
	if ev.Extra == nil || ev.Extra.BestOfSets.Int() != 5 {
		t.Errorf("Extra = %+v, want bestofsets 5", ev.Extra)
	}
	if ev.Extra.Stadium == nil || ev.Extra.Stadium.Name != "Arena Lodz" {
		t.Errorf("Stadium = %+v", ev.Extra.Stadium)
	}
}

func TestEventRoundTrip(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "7286516",
		"sport_id": "92",
		"time": "1722268800",
		"time_status": "3",
		"league": {"id": "29097", "name": "TT Elite Series"},
		"home": {"id": "1", "name": "Kubik M"},
		"away": {"id": "2", "name": "Zemraj K"},
		"ss": "3-1",
		"scores": {"1": {"home": "11", "away": "9"}},
		"timeline": [
			{"id": "100", "gm": "1", "te": "0", "ss": "1-0"},
			{"id": "101", "gm": "1", "te": "1", "ss": "1-1"}
		],
		"extra": {"bestofsets": "5", "stadium_data": {"id": "7", "name": "Arena Lodz", "city": "Lodz"}},
		"bet365_id": "176543210"
	}`)

	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}

	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	again, err := ParseEvent(b)
	if err != nil {
		t.Fatalf("ParseEvent of re-encoded event failed: %v", err)
	}
	if !reflect.DeepEqual(ev, again) {
		t.Errorf("round trip changed event: %+v != %+v", ev, again)
	}

	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		t.Fatalf("Unmarshal re-encoded event failed: %v", err)
	}
	for _, key := range []string{"id", "sport_id", "time", "time_status", "league", "home", "away", "ss", "scores", "timeline", "extra", "bet365_id"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("field %q lost in round trip", key)
		}
	}
	if timeline, ok := fields["timeline"].([]any); !ok || len(timeline) != 2 {
		t.Errorf("timeline = %v, want 2 entries", fields["timeline"])
	}
	if fields["bet365_id"] != "176543210" {
		t.Errorf("bet365_id = %v", fields["bet365_id"])
	}
}

func TestEventWinnerUnfinished(t *testing.T) {
	ev := Event{TimeStatus: StatusLive, FinalScore: "2-1"}
	if ev.Winner() != nil {
		t.Error("Winner() on live event != nil")
	}
}

func TestTimelineEntry(t *testing.T) {
	entry := TimelineEntry{ID: "100", Game: "2", Team: "1", Score: "11-9"}

	home, away := entry.Points()
	if home != 11 || away != 9 {
		t.Errorf("Points() = (%d, %d), want (11, 9)", home, away)
	}
	if entry.ScoringSide() != "away" {
		t.Errorf("ScoringSide() = %q, want away", entry.ScoringSide())
	}

	entry.Team = "0"
	if entry.ScoringSide() != "home" {
		t.Errorf("ScoringSide() = %q, want home", entry.ScoringSide())
	}
}
