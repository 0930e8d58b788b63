package codec

import (
	"testing"

	"figedit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONDecodePartial(t *testing.T) {
	fig, err := Decode([]byte(`{"Width": 5}`), JSON)
	require.NoError(t, err)
	assert.Equal(t, domain.NewFigure("", 5, 0), fig)
}

func TestJSONDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Figure
	}{
		{"any key order", `{"Height": 2, "Name": "Box", "Width": 1}`, domain.NewFigure("Box", 1, 2)},
		{"unknown keys", `{"Name": "a", "Depth": 9, "Tags": ["x"]}`, domain.NewFigure("a", 0, 0)},
		{"empty object", `{}`, domain.Figure{}},
		{"case insensitive keys", `{"name": "low", "WIDTH": 3}`, domain.NewFigure("low", 3, 0)},
		{"explicit null field", `{"Name": null, "Width": 4}`, domain.NewFigure("", 4, 0)},
		{"byte order mark", "\ufeff{\"Name\":\"a\",\"Width\":1,\"Height\":2}", domain.NewFigure("a", 1, 2)},
	}

	c := NewJSONCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONEncode(t *testing.T) {
	data, err := NewJSONCodec().Encode(domain.NewFigure("Box <1>", 10, 20))
	require.NoError(t, err)

	want := "{\n  \"Name\": \"Box <1>\",\n  \"Width\": 10,\n  \"Height\": 20\n}"
	assert.Equal(t, want, string(data))
}
