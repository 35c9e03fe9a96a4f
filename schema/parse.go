package schema

import (
	"fmt"

	"github.com/valyala/fastjson"

	xmlavro "github.com/retailpipe/xmlavro"
)

// Parse reads an Avro schema document (.avsc JSON). Only the structural
// subset is understood: primitive names, records, arrays, and unions. The
// schema itself is trusted, not validated.
func Parse(data []byte) (*Schema, error) {
	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return nil, xmlavro.Issues{{
			Path:    "/",
			Code:    xmlavro.CodeParseError,
			Message: "malformed schema JSON",
			Cause:   err,
		}}
	}
	return fromValue(v, "/")
}

func fromValue(v *fastjson.Value, path string) (*Schema, error) {
	switch v.Type() {
	case fastjson.TypeString:
		return fromName(string(v.GetStringBytes()), path)
	case fastjson.TypeArray:
		return fromUnion(v.GetArray(), path)
	case fastjson.TypeObject:
		return fromObject(v, path)
	default:
		return nil, parseErr(path, fmt.Sprintf("unexpected schema value of type %s", v.Type()))
	}
}

var namedKinds = map[string]Kind{
	"string":  KindString,
	"int":     KindInt,
	"long":    KindLong,
	"float":   KindFloat,
	"double":  KindDouble,
	"boolean": KindBoolean,
	"null":    KindNull,
}

func fromName(name, path string) (*Schema, error) {
	if k, ok := namedKinds[name]; ok {
		return &Schema{Kind: k}, nil
	}
	return nil, parseErr(path, fmt.Sprintf("unsupported schema type %q", name))
}

func fromUnion(branches []*fastjson.Value, path string) (*Schema, error) {
	if len(branches) == 0 {
		return nil, parseErr(path, "empty union")
	}
	s := &Schema{Kind: KindUnion}
	for i, bv := range branches {
		b, err := fromValue(bv, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		s.Branches = append(s.Branches, b)
	}
	return s, nil
}

func fromObject(v *fastjson.Value, path string) (*Schema, error) {
	tv := v.Get("type")
	if tv == nil {
		return nil, parseErr(path, "schema object without \"type\"")
	}
	// {"type": <complex schema or union>} is valid Avro; unwrap.
	if tv.Type() != fastjson.TypeString {
		return fromValue(tv, path)
	}

	switch name := string(tv.GetStringBytes()); name {
	case "record":
		return fromRecord(v, path)
	case "array":
		items := v.Get("items")
		if items == nil {
			return nil, parseErr(path, "array schema without \"items\"")
		}
		elem, err := fromValue(items, path+"/items")
		if err != nil {
			return nil, err
		}
		return &Schema{Kind: KindArray, Elem: elem}, nil
	default:
		// {"type":"string"} style wrapped primitive.
		return fromName(name, path)
	}
}

func fromRecord(v *fastjson.Value, path string) (*Schema, error) {
	s := &Schema{Kind: KindRecord, Name: string(v.GetStringBytes("name"))}
	fields := v.GetArray("fields")
	if fields == nil {
		return nil, parseErr(path, "record schema without \"fields\"")
	}
	for _, fv := range fields {
		name := string(fv.GetStringBytes("name"))
		if name == "" {
			return nil, parseErr(path, "record field without \"name\"")
		}
		fpath := path + "/" + name
		ft := fv.Get("type")
		if ft == nil {
			return nil, parseErr(fpath, "record field without \"type\"")
		}
		fs, err := fromValue(ft, fpath)
		if err != nil {
			return nil, err
		}
		f := Field{Name: name, Schema: fs}
		if dv := fv.Get("default"); dv != nil {
			// an explicit null default still counts as a default
			f.Default = decodeAny(dv)
			f.HasDefault = true
		}
		s.Fields = append(s.Fields, f)
	}
	return s, nil
}

// decodeAny converts a JSON value into plain Go data. Defaults are injected
// into the output verbatim, so this is the only decoding they get.
func decodeAny(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		if i, err := v.Int64(); err == nil {
			return i
		}
		return v.GetFloat64()
	case fastjson.TypeArray:
		items := v.GetArray()
		out := make([]any, 0, len(items))
		for _, it := range items {
			out = append(out, decodeAny(it))
		}
		return out
	case fastjson.TypeObject:
		out := make(map[string]any)
		o, _ := v.Object()
		o.Visit(func(key []byte, val *fastjson.Value) {
			out[string(key)] = decodeAny(val)
		})
		return out
	}
	return nil
}

func parseErr(path, msg string) error {
	return xmlavro.Issues{{Path: path, Code: xmlavro.CodeParseError, Message: msg}}
}
