// Package flex decodes loosely typed JSON scalars. Public open-data sources
// publish the same column as "1234", 1234, true, "S" or null depending on the
// export; Value absorbs all of them as text and converts on read.
package flex

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a JSON scalar kept as trimmed text. Arrays of scalars are joined
// with ", "; objects decode to "".
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*v = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(strings.TrimSpace(s))
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*v = Value(b)
	case b[0] == '[':
		var items []Value
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			if it != "" {
				parts = append(parts, string(it))
			}
		}
		*v = Value(strings.Join(parts, ", "))
	case b[0] == '{':
		*v = ""
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*v = Value(n.String())
	}
	return nil
}

func (v Value) String() string {
	return string(v)
}

// Or returns v, or fallback when v is empty.
func (v Value) Or(fallback string) string {
	if v == "" {
		return fallback
	}
	return string(v)
}

// Float parses a decimal using '.' or ',' as separator; 0 when unparsable.
func (v Value) Float() float64 {
	s := strings.ReplaceAll(strings.TrimSpace(string(v)), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Int truncates Float toward zero.
func (v Value) Int() int {
	return int(v.Float())
}

// Bool interprets common yes/no spellings. ok is false when v is empty or
// not recognised.
func (v Value) Bool() (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(string(v))) {
	case "true", "s", "si", "sí", "1", "yes":
		return true, true
	case "false", "n", "no", "0":
		return false, true
	default:
		return false, false
	}
}
