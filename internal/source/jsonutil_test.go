package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want float64
	}{
		{name: "number", in: 12.5, want: 12.5},
		{name: "json number", in: json.Number("7.25"), want: 7.25},
		{name: "numeric string", in: "100", want: 100},
		{name: "brazilian price string", in: "R$ 1.299,90", want: 1299.90},
		{name: "garbage string", in: "grátis", want: 0},
		{name: "true", in: true, want: 1},
		{name: "nil", in: nil, want: 0},
		{name: "object", in: map[string]any{"value": 3.0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, asFloat(tt.in), 1e-9)
		})
	}
}

func TestFlexFloat(t *testing.T) {
	t.Parallel()

	var v struct {
		A flexFloat `json:"a"`
		B flexFloat `json:"b"`
		C flexFloat `json:"c"`
		D flexFloat `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 3, "b": "40", "c": {"x": 1}, "d": null}`), &v))

	assert.InDelta(t, 3.0, float64(v.A), 1e-9)
	assert.InDelta(t, 40.0, float64(v.B), 1e-9)
	assert.Zero(t, float64(v.C))
	assert.Zero(t, float64(v.D))
}

func TestFindKey(t *testing.T) {
	t.Parallel()

	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{
		"a": {"products": []},
		"b": [{"x": 1}, {"products": [{"name": "first"}, 3]}],
		"c": {"products": [{"name": "second"}]}
	}`), &doc))

	products := findObjects(doc, "products")
	require.Len(t, products, 1)
	assert.Equal(t, "first", products[0]["name"])

	assert.Nil(t, findKey(doc, "missing"))
	assert.Len(t, lookup(doc, "c", "products"), 1)
	assert.Nil(t, lookup(doc, "a", "products", "name"))
}
