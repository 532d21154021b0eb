package fieldfmt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unitkey/fieldfmt"
)

func TestToJSON(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input any
		want  string
	}{
		"compact single line": {
			input: map[string]any{"b": 1, "a": map[string]any{"c": []any{1, 2}}},
			want:  `{"a":{"c":[1,2]},"b":1}`,
		},
		"keys and values stay raw": {
			input: map[string]any{"size_bytes": 2048, "duration_ms": 1500},
			want:  `{"duration_ms":1500,"size_bytes":2048}`,
		},
		"secret redacted": {
			input: map[string]any{"api_secret": "xyz", "user": "bob"},
			want:  `{"api_secret":"***","user":"bob"}`,
		},
		"uppercase secret redacted": {
			input: map[string]any{"API_SECRET": "xyz"},
			want:  `{"API_SECRET":"***"}`,
		},
		"nested secret redacted": {
			input: map[string]any{"db": map[string]any{"password_secret": "pw"}},
			want:  `{"db":{"password_secret":"***"}}`,
		},
		"scalar": {
			input: 42,
			want:  "42",
		},
		"nil": {
			input: nil,
			want:  "null",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fieldfmt.ToJSON(tt.input))
		})
	}
}

func TestToJSONDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	input := map[string]any{"api_secret": "xyz"}
	_ = fieldfmt.ToJSON(input)
	assert.Equal(t, "xyz", input["api_secret"])
}

func TestToJSONSingleLine(t *testing.T) {
	t.Parallel()
	input := map[string]any{"msg": "a\nb", "nested": map[string]any{"x": []any{1, 2, 3}}}
	assert.False(t, strings.Contains(fieldfmt.ToJSON(input), "\n"))
}
