package container

// Package container frames an encoded value graph as an Avro object
// container file. The binary encoding itself is delegated to hamba/avro;
// this package only reshapes the value graph into the generic form that
// library expects (nil or a single-key map at union positions, schema
// defaults coerced to their declared branch).

import (
	"fmt"
	"io"

	"github.com/hamba/avro/v2/ocf"

	"github.com/retailpipe/xmlavro/schema"
	"github.com/retailpipe/xmlavro/value"
)

// Write serializes v against the Avro schema document avsc and writes a
// single-record object container file to w.
func Write(w io.Writer, avsc []byte, v *value.Value) error {
	sc, err := schema.Parse(avsc)
	if err != nil {
		return err
	}
	enc, err := ocf.NewEncoder(string(avsc), w)
	if err != nil {
		return fmt.Errorf("ocf encoder: %w", err)
	}
	g, err := generic(v, sc)
	if err != nil {
		return err
	}
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("ocf encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("ocf close: %w", err)
	}
	return nil
}

func generic(v *value.Value, s *schema.Schema) (any, error) {
	if s.Kind == schema.KindUnion {
		return genericUnion(v, s)
	}
	if v != nil && v.Kind == value.KindRaw {
		return genericRaw(v.Raw, s)
	}

	switch s.Kind {
	case schema.KindRecord:
		if v == nil || v.Kind != value.KindRecord {
			return nil, fmt.Errorf("container: record value expected for %q", s.Name)
		}
		out := make(map[string]any, len(s.Fields))
		for _, f := range s.Fields {
			fv := v.Fields[f.Name]
			// a missing field is an omitted "no value"; render it as null
			// and let the writer reject it when the field is not nullable
			if fv == nil && f.Schema.Kind != schema.KindUnion && f.Schema.Kind != schema.KindNull {
				return nil, fmt.Errorf("container: no value for field %q", f.Name)
			}
			g, err := generic(fv, f.Schema)
			if err != nil {
				return nil, err
			}
			out[f.Name] = g
		}
		return out, nil
	case schema.KindArray:
		if v == nil || v.Kind != value.KindArray {
			return nil, fmt.Errorf("container: array value expected")
		}
		out := make([]any, 0, len(v.Items))
		for _, it := range v.Items {
			g, err := generic(it, s.Elem)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
		return out, nil
	case schema.KindNull:
		return nil, nil
	default:
		if v == nil {
			return nil, fmt.Errorf("container: no value at %s position", s.Kind)
		}
		return v.Generic(), nil
	}
}

// genericUnion wraps the value per hamba's generic union convention: nil for
// the null branch, otherwise a single-key map naming the chosen branch. The
// branch is re-resolved here the same way the encoder chose it: the first
// branch whose kind the value matches.
func genericUnion(v *value.Value, s *schema.Schema) (any, error) {
	if v == nil || v.Kind == value.KindNull {
		return nil, nil
	}
	if v.Kind == value.KindRaw && v.Raw == nil {
		return nil, nil
	}
	for _, b := range s.Branches {
		if !matchesBranch(v, b) {
			continue
		}
		if b.Kind == schema.KindNull {
			return nil, nil
		}
		g, err := generic(v, b)
		if err != nil {
			return nil, err
		}
		return map[string]any{branchName(b): g}, nil
	}
	return nil, fmt.Errorf("container: no union branch for value kind")
}

func matchesBranch(v *value.Value, b *schema.Schema) bool {
	switch v.Kind {
	case value.KindString:
		return b.Kind == schema.KindString
	case value.KindInt:
		return b.Kind == schema.KindInt
	case value.KindLong:
		return b.Kind == schema.KindLong
	case value.KindFloat:
		return b.Kind == schema.KindFloat
	case value.KindDouble:
		return b.Kind == schema.KindDouble
	case value.KindBoolean:
		return b.Kind == schema.KindBoolean
	case value.KindRecord:
		return b.Kind == schema.KindRecord
	case value.KindArray:
		return b.Kind == schema.KindArray
	case value.KindRaw:
		// defaults conventionally match the first non-null branch; nil Raw
		// matched the null branch earlier
		return v.Raw != nil && b.Kind != schema.KindNull
	}
	return false
}

func branchName(b *schema.Schema) string {
	if b.Kind == schema.KindRecord && b.Name != "" {
		return b.Name
	}
	return b.Kind.String()
}

// genericRaw coerces a verbatim schema default (plain decoded JSON) into the
// Go shape the binary writer expects for the declared branch.
func genericRaw(raw any, s *schema.Schema) (any, error) {
	switch s.Kind {
	case schema.KindNull:
		return nil, nil
	case schema.KindInt:
		if i, ok := raw.(int64); ok {
			return int(i), nil
		}
	case schema.KindLong:
		if i, ok := raw.(int64); ok {
			return i, nil
		}
	case schema.KindFloat:
		switch n := raw.(type) {
		case float64:
			return float32(n), nil
		case int64:
			return float32(n), nil
		}
	case schema.KindDouble:
		switch n := raw.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		}
	case schema.KindString:
		if str, ok := raw.(string); ok {
			return str, nil
		}
	case schema.KindBoolean:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case schema.KindRecord:
		m, ok := raw.(map[string]any)
		if !ok {
			break
		}
		out := make(map[string]any, len(s.Fields))
		for _, f := range s.Fields {
			fraw, ok := m[f.Name]
			if !ok {
				fraw = f.Default
			}
			g, err := genericRaw(fraw, f.Schema)
			if err != nil {
				return nil, err
			}
			out[f.Name] = g
		}
		return out, nil
	case schema.KindArray:
		items, ok := raw.([]any)
		if !ok {
			break
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			g, err := genericRaw(it, s.Elem)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
		return out, nil
	case schema.KindUnion:
		// a union default always belongs to the first declared branch
		b := s.Branches[0]
		if b.Kind == schema.KindNull {
			return nil, nil
		}
		g, err := genericRaw(raw, b)
		if err != nil {
			return nil, err
		}
		return map[string]any{branchName(b): g}, nil
	}
	return nil, fmt.Errorf("container: default %v does not fit %s", raw, s.Kind)
}
