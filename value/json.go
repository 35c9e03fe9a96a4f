package value

import (
	gojson "github.com/goccy/go-json"
)

// MarshalJSON renders the value graph as JSON with sorted record keys, which
// keeps debug output and test fixtures deterministic.
func (v *Value) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(v.Generic())
}

// String is the JSON rendering; it never fails for values produced by the
// encoder, so errors collapse to an empty string.
func (v *Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}
