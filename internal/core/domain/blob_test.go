package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseBlob_NilAndEmpty(t *testing.T) {
	b := ParseBlob(nil)
	require.NotNil(t, b)
	assert.Empty(t, b)

	b = ParseBlob(strPtr(""))
	require.NotNil(t, b)
	assert.Empty(t, b)
}

func TestParseBlob_Invalid(t *testing.T) {
	tests := []string{
		"{not json",
		"[1, 2, 3]",
		"\"just a string\"",
		"42",
		"null",
		`{"a": 1} trailing`,
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			b := ParseBlob(strPtr(raw))
			require.NotNil(t, b)
			assert.Empty(t, b)
		})
	}
}

func TestParseBlob_Object(t *testing.T) {
	b := ParseBlob(strPtr(`{"title": "An Act relative to transit", "bill_label": "H.491"}`))

	assert.Len(t, b, 2)
	assert.Equal(t, "An Act relative to transit", b.Get("title", nil))
}

func TestJGet(t *testing.T) {
	raw := strPtr(`{"reported_out": true}`)

	assert.Equal(t, true, JGet(raw, "reported_out", false))
	assert.Equal(t, "fallback", JGet(raw, "missing", "fallback"))
	assert.Equal(t, "fallback", JGet(strPtr("{oops"), "reported_out", "fallback"))
	assert.Nil(t, JGet(nil, "reported_out", nil))
}

func TestBlob_String(t *testing.T) {
	b := ParseBlob(strPtr(`{"s": "2025-03-01", "n": 12, "f": 1.5, "b": false, "o": {"x": 1}, "z": null}`))

	require.NotNil(t, b.String("s"))
	assert.Equal(t, "2025-03-01", *b.String("s"))
	require.NotNil(t, b.String("n"))
	assert.Equal(t, "12", *b.String("n"))
	require.NotNil(t, b.String("f"))
	assert.Equal(t, "1.5", *b.String("f"))
	require.NotNil(t, b.String("b"))
	assert.Equal(t, "false", *b.String("b"))
	assert.Nil(t, b.String("o"))
	assert.Nil(t, b.String("z"))
	assert.Nil(t, b.String("missing"))
}

func TestBlob_Truthy(t *testing.T) {
	b := ParseBlob(strPtr(`{
		"t": true, "f": false, "one": 1, "zero": 0, "zf": 0.0,
		"s": "yes", "es": "", "a": [1], "ea": [], "o": {"k": 1}, "eo": {}, "n": null
	}`))

	assert.True(t, b.Truthy("t"))
	assert.True(t, b.Truthy("one"))
	assert.True(t, b.Truthy("s"))
	assert.True(t, b.Truthy("a"))
	assert.True(t, b.Truthy("o"))

	assert.False(t, b.Truthy("f"))
	assert.False(t, b.Truthy("zero"))
	assert.False(t, b.Truthy("zf"))
	assert.False(t, b.Truthy("es"))
	assert.False(t, b.Truthy("ea"))
	assert.False(t, b.Truthy("eo"))
	assert.False(t, b.Truthy("n"))
	assert.False(t, b.Truthy("missing"))
	assert.False(t, Blob{}.Truthy("anything"))
}

func TestBlob_Number(t *testing.T) {
	b := ParseBlob(strPtr(`{"gap": 5, "neg": -2, "frac": 5.7, "str": " 9 ", "bad": "soon", "big": 1e400, "nan": "NaN", "b": true}`))

	tests := []struct {
		key  string
		want float64
	}{
		{"gap", 5},
		{"neg", -2},
		{"frac", 5.7},
		{"str", 9},
	}
	for _, tt := range tests {
		got := b.Number(tt.key)
		if assert.NotNil(t, got, tt.key) {
			assert.Equal(t, tt.want, *got, tt.key)
		}
	}

	for _, key := range []string{"bad", "big", "nan", "b", "missing"} {
		assert.Nil(t, b.Number(key), key)
	}
}
