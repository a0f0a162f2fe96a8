package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Player is a table tennis player, or a doubles pair when the name joins
// two players with a "/" separator.
type Player struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	CC      string  `json:"cc,omitempty"`
	ImageID FlexInt `json:"image_id,omitempty"`
}

// ParsePlayer decodes a raw player record, rejecting records that lack the
// required id or name fields.
func ParsePlayer(raw json.RawMessage) (Player, error) {
	var p Player
	if err := json.Unmarshal(raw, &p); err != nil {
		return Player{}, fmt.Errorf("decode player record: %w", err)
	}
	if p.ID == "" {
		return Player{}, fmt.Errorf("player record missing id")
	}
	if p.Name == "" {
		return Player{}, fmt.Errorf("player record %s missing name", p.ID)
	}
	return p, nil
}

// IsDoublesPair reports whether this record represents a doubles pair.
func (p Player) IsDoublesPair() bool {
	return strings.Contains(p.Name, "/")
}

// Names returns the individual player names, splitting doubles pairs on
// the "/" separator. Singles return a one-element slice.
func (p Player) Names() []string {
	if !p.IsDoublesPair() {
		return []string{p.Name}
	}
	parts := strings.Split(p.Name, "/")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		names = append(names, strings.TrimSpace(part))
	}
	return names
}

// HasImage reports whether the player has a profile image. The API sends
// image_id 0 for players without one.
func (p Player) HasImage() bool {
	return p.ImageID != 0
}
