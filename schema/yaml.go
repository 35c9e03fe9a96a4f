package schema

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	xmlavro "github.com/retailpipe/xmlavro"
)

// ParseYAML reads a YAML-authored schema document. YAML is a convenience
// surface for hand-written schemas; the document is decoded to plain data,
// re-encoded as JSON, and handed to the regular parser so both inputs share
// one set of rules.
func ParseYAML(data []byte) (*Schema, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, xmlavro.Issues{{
			Path:    "/",
			Code:    xmlavro.CodeParseError,
			Message: "malformed schema YAML",
			Cause:   err,
		}}
	}
	node = yamlAnyToStringKeys(node)
	raw, err := gojson.Marshal(node)
	if err != nil {
		return nil, xmlavro.Issues{{
			Path:    "/",
			Code:    xmlavro.CodeParseError,
			Message: "schema YAML is not JSON-representable",
			Cause:   err,
		}}
	}
	return Parse(raw)
}

// yamlAnyToStringKeys normalizes yaml.v3 maps to string-keyed maps so the
// JSON re-encoding cannot fail on interface keys.
func yamlAnyToStringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = yamlAnyToStringKeys(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = yamlAnyToStringKeys(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = yamlAnyToStringKeys(t[i])
		}
		return t
	default:
		return v
	}
}
