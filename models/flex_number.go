package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat64 decodes a JSON number or numeric string. Anything else,
// including null, decodes to zero without error. Set reports whether a
// usable value was present.
type FlexFloat64 struct {
	Value float64
	Set   bool
}

func (f *FlexFloat64) UnmarshalJSON(b []byte) error {
	*f = FlexFloat64{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var raw string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(b)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value, f.Set = v, true
	return nil
}

func (f FlexFloat64) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// Or returns the decoded value, or def when none was present.
func (f FlexFloat64) Or(def float64) float64 {
	if !f.Set {
		return def
	}
	return f.Value
}
