package tabletennis

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/spinshot/tabletennis-client/pkg/client"
)

// DefaultBookmaker is the odds source used when none is given.
const DefaultBookmaker = "bet365"

// OddsManager covers the betting odds endpoints. Odds payloads stay raw
// JSON: their market structure varies by bookmaker and the upstream adds
// markets without notice.
type OddsManager struct {
	client *client.Client
}

// Summary returns the cross-bookmaker odds summary for one event.
func (m *OddsManager) Summary(ctx context.Context, eventID string) (json.RawMessage, error) {
	if eventID == "" {
		return nil, client.Errorf(client.KindInvalidArgument, "event id must not be empty")
	}

	params := url.Values{}
	params.Set("event_id", eventID)

	envelope, err := m.client.Get(ctx, "v2", "event/odds/summary", params)
	if err != nil {
		return nil, err
	}
	return envelope.Results, nil
}

// Detailed returns the odds history for one event from a single bookmaker.
// An empty bookmaker applies DefaultBookmaker.
func (m *OddsManager) Detailed(ctx context.Context, eventID, bookmaker string) (json.RawMessage, error) {
	if eventID == "" {
		return nil, client.Errorf(client.KindInvalidArgument, "event id must not be empty")
	}
	if bookmaker == "" {
		bookmaker = DefaultBookmaker
	}

	params := url.Values{}
	params.Set("event_id", eventID)
	params.Set("source", bookmaker)

	envelope, err := m.client.Get(ctx, "v2", "event/odds", params)
	if err != nil {
		return nil, err
	}
	return envelope.Results, nil
}
