// Package oddsutil provides odds arithmetic and small text helpers used
// when post-processing API data: American/decimal odds conversion, implied
// probability, player-name normalization and score-string parsing.
package oddsutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// AmericanToDecimal converts American odds (e.g. -150, +200) to decimal
// odds. Zero is not a valid American odds value.
func AmericanToDecimal(odds int) (decimal.Decimal, error) {
	if odds == 0 {
		return decimal.Zero, fmt.Errorf("american odds must not be zero")
	}
	d := decimal.NewFromInt(int64(odds))
	if odds > 0 {
		// 1 + odds/100
		return one.Add(d.Div(hundred)), nil
	}
	// 1 + 100/|odds|
	return one.Add(hundred.Div(d.Abs())), nil
}

// ImpliedProbability converts decimal odds to the implied win probability
// as a percentage.
func ImpliedProbability(dec decimal.Decimal) (decimal.Decimal, error) {
	if dec.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("decimal odds must be positive (got %s)", dec)
	}
	return one.Div(dec).Mul(hundred), nil
}

// NormalizePlayerName lowercases, trims, and strips punctuation from a
// player name so names from different endpoints can be matched.
func NormalizePlayerName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", "")
	return normalized
}

// GamePoints is one game's point score inside a match score string.
type GamePoints struct {
	Home int
	Away int
}

// MatchScore is a parsed match score string.
type MatchScore struct {
	// Match is the sets score, e.g. "3-1".
	Match string
	// Games holds the per-game point scores when present.
	Games []GamePoints
}

// ParseScore parses a score string like "3-1 (11-9, 8-11, 11-7, 11-8)".
// The parenthesized per-game part is optional.
func ParseScore(score string) (*MatchScore, error) {
	score = strings.TrimSpace(score)
	if score == "" {
		return nil, fmt.Errorf("score string is empty")
	}

	parts := strings.SplitN(score, " (", 2)
	result := &MatchScore{Match: strings.TrimSpace(parts[0])}

	if len(parts) == 1 {
		return result, nil
	}

	games := strings.TrimSuffix(parts[1], ")")
	for _, game := range strings.Split(games, ",") {
		home, away, err := splitPoints(strings.TrimSpace(game))
		if err != nil {
			return nil, fmt.Errorf("parse game score %q: %w", game, err)
		}
		result.Games = append(result.Games, GamePoints{Home: home, Away: away})
	}
	return result, nil
}

func splitPoints(game string) (home, away int, err error) {
	parts := strings.SplitN(game, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected home-away pair")
	}
	if home, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, err
	}
	if away, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, err
	}
	return home, away, nil
}
