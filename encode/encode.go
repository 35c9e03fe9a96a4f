package encode

// Package encode walks a document tree together with a schema and produces
// the conforming value graph: unions resolved, defaults injected, scalars
// coerced, records and arrays materialized recursively.

import (
	"fmt"
	"strconv"
	"strings"

	xmlavro "github.com/retailpipe/xmlavro"
	"github.com/retailpipe/xmlavro/codec"
	"github.com/retailpipe/xmlavro/schema"
	"github.com/retailpipe/xmlavro/tree"
	"github.com/retailpipe/xmlavro/value"
)

// Record encodes a document tree against a record schema. Fatal conditions
// (cardinality mismatches, unparseable scalars) abort with no partial value
// graph; droppable ones (unschematized fields, unsupported coercions, null
// fallbacks) are reported to diag and absorbed. A nil diag discards them.
func Record(node *tree.Node, s *schema.Schema, diag *xmlavro.Diag) (*value.Value, error) {
	if s == nil || s.Kind != schema.KindRecord {
		return nil, xmlavro.Issues{{
			Path:    "/",
			Code:    xmlavro.CodeParseError,
			Message: "top-level schema must be a record",
		}}
	}
	return record(node, s, diag, "")
}

func record(node *tree.Node, s *schema.Schema, diag *xmlavro.Diag, path string) (*value.Value, error) {
	rec := value.NewRecord()
	fields := s.FieldMap()

	present := make(map[string]bool)
	for _, k := range node.Keys() {
		present[k] = true
	}

	// the binary writer cannot populate default fields itself, so every
	// field that declares a default is processed even when the tree has no
	// data for it. Defaults first in schema order, then tree keys in
	// insertion order, for reproducible diagnostics.
	for _, key := range unionKeys(s.DefaultFields(), node.Keys()) {
		field, ok := fields[key]
		if !ok {
			diag.Report(xmlavro.IssueAt(path+"/"+key, xmlavro.CodeUnschematizedField,
				fmt.Sprintf("field %q is not present in the schema and will be dropped", key)))
			continue
		}

		fpath := path + "/" + key
		if !present[key] {
			// the schema carries a properly prepared default value; it only
			// needs to be placed into the record, untouched
			rec.Put(key, value.FromRaw(field.Default))
			continue
		}

		values := node.Values(key)
		fs := field.Schema
		if fs.Kind == schema.KindUnion {
			fs = resolveUnion(values, fs.Branches)
		}

		switch fs.Kind {
		case schema.KindArray:
			av, err := array(values, fs, diag, fpath)
			if err != nil {
				return nil, err
			}
			rec.Put(key, av)
		case schema.KindRecord:
			one, err := tree.EnsureSingle(values, fpath)
			if err != nil {
				return nil, err
			}
			rv, err := record(one, fs, diag, fpath)
			if err != nil {
				return nil, err
			}
			rec.Put(key, rv)
		default:
			one, err := tree.EnsureSingle(values, fpath)
			if err != nil {
				return nil, err
			}
			pv, err := primitive(one, fs.Kind, diag, fpath)
			if err != nil {
				return nil, err
			}
			if pv != nil {
				rec.Put(key, pv)
			}
		}
	}
	return rec, nil
}

// array fans the field's tree values out into an ordered list. Elements with
// no encodable value (null or unsupported element kinds) become explicit
// nulls so positions are preserved.
func array(values []*tree.Node, s *schema.Schema, diag *xmlavro.Diag, path string) (*value.Value, error) {
	out := value.NewArray(len(values))
	for i, n := range values {
		ipath := path + "/" + strconv.Itoa(i)
		if s.Elem.Kind == schema.KindRecord {
			rv, err := record(n, s.Elem, diag, ipath)
			if err != nil {
				return nil, err
			}
			out.Append(rv)
			continue
		}
		pv, err := primitive(n, s.Elem.Kind, diag, ipath)
		if err != nil {
			return nil, err
		}
		if pv == nil {
			pv = value.Null()
		}
		out.Append(pv)
	}
	return out, nil
}

// primitive coerces a node's scalar text into the target kind. A nil result
// with nil error means "no value": the field is omitted from its record.
func primitive(n *tree.Node, kind schema.Kind, diag *xmlavro.Diag, path string) (*value.Value, error) {
	data, ok := n.Scalar()

	switch kind {
	case schema.KindString:
		if !ok {
			return nil, nil
		}
		return value.FromString(data), nil

	case schema.KindDouble:
		f, err := strconv.ParseFloat(data, 64)
		if err != nil {
			return nil, malformed(path, "double", data, err)
		}
		return value.FromFloat64(f), nil

	case schema.KindFloat:
		f, err := strconv.ParseFloat(data, 32)
		if err != nil {
			return nil, malformed(path, "float", data, err)
		}
		return value.FromFloat32(float32(f)), nil

	case schema.KindLong:
		if codec.LooksLikeDateTime(data) {
			ms, err := codec.ParseDateTimeMillis(data)
			if err != nil {
				return nil, malformed(path, "long (date-time)", data, err)
			}
			return value.FromInt64(ms), nil
		}
		i, err := strconv.ParseInt(data, 10, 64)
		if err != nil {
			return nil, malformed(path, "long", data, err)
		}
		return value.FromInt64(i), nil

	case schema.KindInt:
		i, err := strconv.ParseInt(data, 10, 32)
		if err != nil {
			return nil, malformed(path, "int", data, err)
		}
		return value.FromInt32(int32(i)), nil

	case schema.KindBoolean:
		// anything but a case-insensitive "true" is false; never an error
		return value.FromBool(strings.EqualFold(data, "true")), nil

	case schema.KindNull:
		// usually a union whose matching failed; the first branch is
		// conventionally null, and an empty field is fine
		diag.Report(xmlavro.IssueAt(path, xmlavro.CodeNullCoercion,
			"null data type, possible data loss"))
		return nil, nil

	default:
		diag.Report(xmlavro.IssueAt(path, xmlavro.CodeUnsupportedCoercion,
			fmt.Sprintf("unsupported type %q", kind)))
		return nil, nil
	}
}

// resolveUnion picks one concrete branch for the field's data. With no data
// (the default-only case) the first branch wins; otherwise only the first
// value is inspected and the first matching branch in declared order wins.
// No deeper structural check and no backtracking happen: if the first value
// misrepresents later ones, the selection is silently wrong.
func resolveUnion(values []*tree.Node, branches []*schema.Schema) *schema.Schema {
	if len(values) == 0 {
		return branches[0]
	}
	for _, b := range branches {
		if appropriate(values[0], b) {
			return b
		}
	}
	// no match usually means null, and a null branch comes first by
	// convention
	return branches[0]
}

func appropriate(n *tree.Node, s *schema.Schema) bool {
	if _, ok := n.Scalar(); ok && s.Kind.Primitive() {
		return true
	}
	// complex branches are accepted unconditionally, best effort
	return s.Kind.Complex()
}

func unionKeys(defaults, present []string) []string {
	keys := make([]string, 0, len(defaults)+len(present))
	seen := make(map[string]bool, len(defaults)+len(present))
	for _, k := range defaults {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, k := range present {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func malformed(path, kind, data string, cause error) error {
	return xmlavro.Issues{{
		Path:    path,
		Code:    xmlavro.CodeMalformedScalar,
		Message: fmt.Sprintf("cannot parse %q as %s", data, kind),
		Cause:   cause,
	}}
}
