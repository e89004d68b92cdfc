package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Payload is the legacy data handed to a migration run. Any subset of the
// collections may be present; a nil Plan means no plan was supplied.
type Payload struct {
	Accounts    []Raw `json:"accounts,omitempty"`
	Trades      []Raw `json:"trades,omitempty"`
	MacroEvents []Raw `json:"macroEvents,omitempty"`
	Plan        Raw   `json:"plan,omitempty"`
}

// Empty reports whether p carries nothing to migrate.
func (p Payload) Empty() bool {
	return len(p.Accounts) == 0 && len(p.Trades) == 0 && len(p.MacroEvents) == 0 && p.Plan == nil
}

// DecodePayload reads a JSON object holding any of "accounts", "trades",
// "macroEvents" and "plan". Collections that are not arrays are ignored and
// array elements that are not objects become empty records.
func DecodePayload(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

// UnmarshalJSON applies the tolerance described on DecodePayload and keeps
// numbers as json.Number.
func (p *Payload) UnmarshalJSON(b []byte) error {
	var top map[string]any
	if err := decodeJSON(bytes.NewReader(b), &top); err != nil {
		return err
	}
	*p = Payload{
		Accounts:    records(top["accounts"]),
		Trades:      records(top["trades"]),
		MacroEvents: records(first(top, "macroEvents", "macro_events")),
		Plan:        object(top["plan"]),
	}
	return nil
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}

func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func records(v any) []Raw {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Raw, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Raw(m))
			continue
		}
		out = append(out, Raw{})
	}
	return out
}

func object(v any) Raw {
	if m, ok := v.(map[string]any); ok {
		return Raw(m)
	}
	return nil
}
