package notifications

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     any
		want    Payload
		wantErr bool
	}{
		{"nil", nil, Payload{}, false},
		{"map", map[string]any{"a": 1}, Payload{"a": 1}, false},
		{"payload", Payload{"a": "b"}, Payload{"a": "b"}, false},
		{"json string", `{"from":"John Doe"}`, Payload{"from": "John Doe"}, false},
		{"bytes", []byte(`{"n":1}`), Payload{"n": float64(1)}, false},
		{"raw message", json.RawMessage(`{"ok":true}`), Payload{"ok": true}, false},
		{"empty string", "  ", Payload{}, false},
		{"json null", "null", Payload{}, false},
		{"invalid json", "{invalid json", Payload{}, true},
		{"json array", `[1,2]`, Payload{}, true},
		{"unsupported", 42, Payload{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseData(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidData)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseData_ClonesInput(t *testing.T) {
	t.Parallel()
	src := map[string]any{"a": 1}
	got, err := ParseData(src)
	require.NoError(t, err)
	got["b"] = 2
	assert.NotContains(t, src, "b")
}

func TestPayload_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var n Notification
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","data":"{\"from\":\"x\"}"}`), &n))
	assert.Equal(t, "x", n.Data["from"])

	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","data":{"k":"v"}}`), &n))
	assert.Equal(t, "v", n.Data["k"])

	err := json.Unmarshal([]byte(`{"id":"3","data":"{broken"}`), &n)
	assert.ErrorIs(t, err, ErrInvalidData)
}
