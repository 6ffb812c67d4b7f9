package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// Blob is a parsed JSON object column such as bill_metadata or
// computation_metadata. The zero value is an empty blob.
//
// Every accessor is total: a missing key, a malformed source value and a
// value of the wrong JSON type all read as "absent".
type Blob map[string]any

// ParseBlob parses an optional JSON object. Nil, empty, unparsable and
// non-object input all yield an empty, non-nil Blob.
func ParseBlob(raw *string) Blob {
	if raw == nil || *raw == "" {
		return Blob{}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(*raw)))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return Blob{}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		// trailing data after the object
		return Blob{}
	}
	return Blob(obj)
}

// JGet returns the value at key in the JSON object raw, or def when raw is
// absent, unparsable, or lacks the key.
func JGet(raw *string, key string, def any) any {
	return ParseBlob(raw).Get(key, def)
}

// Get returns the value at key, or def when the key is missing.
func (b Blob) Get(key string, def any) any {
	v, ok := b[key]
	if !ok {
		return def
	}
	return v
}

// String returns the value at key as text. Strings pass through, numbers
// and booleans are formatted, anything else is absent.
func (b Blob) String(key string) *string {
	v, ok := b[key]
	if !ok || v == nil {
		return nil
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil
	}
	return &s
}

// Truthy reports whether the value at key is truthy in the JSON sense used
// by the upstream producer: null, false, 0, "", [] and {} are false.
func (b Blob) Truthy(key string) bool {
	return truthy(b[key])
}

// Number returns the numeric value at key. Integers and fractions pass
// through unchanged, numeric strings are parsed, anything else (including
// values outside float64 range) is absent.
func (b Blob) Number(key string) *float64 {
	v, ok := b[key]
	if !ok || v == nil {
		return nil
	}

	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return nil
	}
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
