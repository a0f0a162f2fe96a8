package ratelimit

import (
	"testing"
	"time"
)

func TestStateKnown(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"zero state", State{}, false},
		{"limit reported", State{Limit: 3600}, true},
		{"remaining without limit", State{Remaining: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Known(); got != tt.want {
				t.Errorf("Known() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateFractionRemaining(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  float64
	}{
		{"unknown limit", State{}, 1.0},
		{"full quota", State{Limit: 3600, Remaining: 3600}, 1.0},
		{"half quota", State{Limit: 100, Remaining: 50}, 0.5},
		{"exhausted", State{Limit: 3600, Remaining: 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.FractionRemaining(); got != tt.want {
				t.Errorf("FractionRemaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateTimeUntilReset(t *testing.T) {
	t.Run("never reported", func(t *testing.T) {
		s := State{}
		if got := s.TimeUntilReset(); got != 0 {
			t.Errorf("TimeUntilReset() = %v, want 0", got)
		}
	})

	t.Run("reset in the past", func(t *testing.T) {
		s := State{ResetAt: time.Now().Add(-time.Minute)}
		if got := s.TimeUntilReset(); got != 0 {
			t.Errorf("TimeUntilReset() = %v, want 0", got)
		}
	})

	t.Run("reset in the future", func(t *testing.T) {
		s := State{ResetAt: time.Now().Add(time.Hour)}
		got := s.TimeUntilReset()
		if got <= 59*time.Minute || got > time.Hour {
			t.Errorf("TimeUntilReset() = %v, want ~1h", got)
		}
	})
}
