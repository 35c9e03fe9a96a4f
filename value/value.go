package value

// Package value holds the encoder's output: a value graph whose every node
// matches exactly one schema kind, ready for binary serialization.

// Kind tags the variant a Value carries.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBoolean
	KindNull
	KindRecord
	KindArray
	// KindRaw carries a schema-declared default injected verbatim: decoded
	// JSON data that intentionally never went through coercion.
	KindRaw
)

// Value is one node of the value graph. Exactly the fields matching Kind
// are populated.
type Value struct {
	Kind Kind

	Str     string
	Int32   int32
	Int64   int64
	Float32 float32
	Float64 float64
	Bool    bool

	Fields map[string]*Value // KindRecord
	Items  []*Value          // KindArray
	Raw    any               // KindRaw
}

func FromString(v string) *Value   { return &Value{Kind: KindString, Str: v} }
func FromInt32(v int32) *Value     { return &Value{Kind: KindInt, Int32: v} }
func FromInt64(v int64) *Value     { return &Value{Kind: KindLong, Int64: v} }
func FromFloat32(v float32) *Value { return &Value{Kind: KindFloat, Float32: v} }
func FromFloat64(v float64) *Value { return &Value{Kind: KindDouble, Float64: v} }
func FromBool(v bool) *Value       { return &Value{Kind: KindBoolean, Bool: v} }
func Null() *Value                 { return &Value{Kind: KindNull} }
func FromRaw(v any) *Value         { return &Value{Kind: KindRaw, Raw: v} }

// NewRecord returns an empty record value.
func NewRecord() *Value {
	return &Value{Kind: KindRecord, Fields: make(map[string]*Value)}
}

// Put sets a record field.
func (v *Value) Put(name string, field *Value) {
	v.Fields[name] = field
}

// NewArray returns an array value with capacity for n items.
func NewArray(n int) *Value {
	return &Value{Kind: KindArray, Items: make([]*Value, 0, n)}
}

// Append adds an item to an array value.
func (v *Value) Append(item *Value) {
	v.Items = append(v.Items, item)
}

// Generic converts the value graph to plain Go data: records become
// map[string]any, arrays []any, scalars their Go scalar, Raw its stored
// default as-is.
func (v *Value) Generic() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int32
	case KindLong:
		return v.Int64
	case KindFloat:
		return v.Float32
	case KindDouble:
		return v.Float64
	case KindBoolean:
		return v.Bool
	case KindNull:
		return nil
	case KindRecord:
		out := make(map[string]any, len(v.Fields))
		for name, f := range v.Fields {
			out[name] = f.Generic()
		}
		return out
	case KindArray:
		out := make([]any, 0, len(v.Items))
		for _, it := range v.Items {
			out = append(out, it.Generic())
		}
		return out
	case KindRaw:
		return v.Raw
	}
	return nil
}
