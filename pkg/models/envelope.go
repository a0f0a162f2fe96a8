// Package models defines the typed records the B365 table tennis API returns:
// the common response envelope, pagination metadata, and the domain entities
// (leagues, players, events, timelines). All records are flat snapshots
// constructed once per response; none carry independent lifecycle.
package models

import (
	"encoding/json"
	"fmt"
)

// Envelope is the outer structure common to all API responses:
// a success flag, an optional pager block, and the results payload.
// Results stays raw because its shape is endpoint-specific (array for
// listings, object for history and odds lookups).
type Envelope struct {
	Success int             `json:"success"`
	Pager   *PaginationInfo `json:"pager,omitempty"`
	Results json.RawMessage `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type envelopeJSON struct {
	Success FlexInt         `json:"success"`
	Pager   *PaginationInfo `json:"pager"`
	Results json.RawMessage `json:"results"`
	Error   string          `json:"error"`
}

// DecodeEnvelope strictly parses a response body into an Envelope.
// A body that is not a JSON object with a success field is rejected.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("response body is not a JSON object: %w", err)
	}
	if _, ok := raw["success"]; !ok {
		return nil, fmt.Errorf("response envelope missing success field")
	}

	var e envelopeJSON
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}

	return &Envelope{
		Success: e.Success.Int(),
		Pager:   e.Pager,
		Results: e.Results,
		Error:   e.Error,
	}, nil
}

// OK reports whether the API accepted the request (success == 1).
func (e *Envelope) OK() bool {
	return e.Success == 1
}

// ResultList decodes the results payload as an ordered sequence of raw
// records, preserving the API return order. An absent or null results
// field yields an empty list, which is a normal empty response.
func (e *Envelope) ResultList() ([]json.RawMessage, error) {
	if len(e.Results) == 0 || string(e.Results) == "null" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(e.Results, &items); err != nil {
		return nil, fmt.Errorf("results is not a list: %w", err)
	}
	return items, nil
}

// ResultObject decodes the results payload into the given destination for
// endpoints that return a single object instead of a list.
func (e *Envelope) ResultObject(dst any) error {
	if len(e.Results) == 0 || string(e.Results) == "null" {
		return fmt.Errorf("results object is absent")
	}
	if err := json.Unmarshal(e.Results, dst); err != nil {
		return fmt.Errorf("decode results object: %w", err)
	}
	return nil
}
