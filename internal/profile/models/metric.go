package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Metric is a numeric indicator that may be unknown.
// On the wire an unknown metric is -1. Decoding -1 or 0 yields unknown,
// matching how the public datasets mark missing figures.
type Metric struct {
	value float64
	known bool
}

// Known returns a metric with value v.
func Known(v float64) Metric {
	return Metric{value: v, known: true}
}

// Unknown returns a metric without a value.
func Unknown() Metric {
	return Metric{}
}

// MetricFrom treats 0 and negative values as unknown.
func MetricFrom(v float64) Metric {
	if v <= 0 {
		return Unknown()
	}
	return Known(v)
}

// Value returns the value and whether it is known.
func (m Metric) Value() (float64, bool) {
	return m.value, m.known
}

// IsKnown reports whether the metric carries a value.
func (m Metric) IsKnown() bool {
	return m.known
}

// Float returns the value or -1 when unknown.
func (m Metric) Float() float64 {
	if !m.known {
		return -1
	}
	return m.value
}

// String renders the value, or "X" when unknown or zero.
func (m Metric) String() string {
	if !m.known || m.value == 0 || m.value == -1 {
		return UnknownMarker
	}
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}

// UnknownMarker replaces missing values in exports.
const UnknownMarker = "X"

func (m Metric) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Float())
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = Unknown()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == 0 || v == -1 {
		*m = Unknown()
		return nil
	}
	*m = Known(v)
	return nil
}
