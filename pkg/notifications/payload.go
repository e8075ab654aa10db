package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// Payload is the structured, already decoded notification data.
type Payload map[string]any

// UnmarshalJSON accepts either a JSON object or a JSON string that itself
// encodes an object, which is how some producers store the column.
func (p *Payload) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		parsed, err := ParseData(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	*p = m
	return nil
}

// Clone returns a shallow copy that is safe to extend.
func (p Payload) Clone() Payload {
	if p == nil {
		return Payload{}
	}
	return maps.Clone(p)
}

// ParseData decodes a raw notification payload into a Payload.
//
// Accepted inputs: nil, Payload, map[string]any, string, []byte and
// json.RawMessage. Empty text yields an empty payload. Text that is not a
// JSON object returns ErrInvalidData together with an empty, non-nil payload
// so callers can continue without it.
func ParseData(raw any) (Payload, error) {
	switch v := raw.(type) {
	case nil:
		return Payload{}, nil
	case Payload:
		return v.Clone(), nil
	case map[string]any:
		return Payload(v).Clone(), nil
	case string:
		return parseText([]byte(v))
	case []byte:
		return parseText(v)
	case json.RawMessage:
		return parseText(v)
	default:
		return Payload{}, fmt.Errorf("%w: unsupported payload type %T", ErrInvalidData, raw)
	}
}

func parseText(b []byte) (Payload, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return Payload{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if m == nil {
		return Payload{}, nil
	}
	return m, nil
}
