package schema

// Package schema models the structural subset of Avro schemas the converter
// targets: primitives, records with optional field defaults, arrays, and
// ordered unions.

// Kind enumerates the supported schema kinds. The set is closed on purpose:
// union resolution and the coercion table switch over it exhaustively.
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
	KindUnion
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindBoolean: "boolean",
	KindNull:    "null",
	KindRecord:  "record",
	KindArray:   "array",
	KindUnion:   "union",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// primitiveKinds are the kinds a union branch can match against a scalar
// tree value; complexKinds are accepted unconditionally during union
// matching. Both are readonly.
var primitiveKinds = map[Kind]bool{
	KindString:  true,
	KindInt:     true,
	KindLong:    true,
	KindFloat:   true,
	KindDouble:  true,
	KindBoolean: true,
}

var complexKinds = map[Kind]bool{
	KindArray:  true,
	KindRecord: true,
}

// Primitive reports whether k is a scalar kind (null excluded).
func (k Kind) Primitive() bool { return primitiveKinds[k] }

// Complex reports whether k is a structured kind.
func (k Kind) Complex() bool { return complexKinds[k] }

// Schema is one node of the recursive schema descriptor. Exactly the fields
// matching Kind are populated.
type Schema struct {
	Kind     Kind
	Name     string    // Record name, informational.
	Fields   []Field   // KindRecord, declared order.
	Elem     *Schema   // KindArray element schema.
	Branches []*Schema // KindUnion candidates, declared order.
}

// Field is one named record field.
type Field struct {
	Name       string
	Schema     *Schema
	Default    any  // Decoded JSON default value; meaningful when HasDefault.
	HasDefault bool // Distinguishes an explicit null default from none.
}

// FieldMap returns the record's fields keyed by name.
func (s *Schema) FieldMap() map[string]Field {
	m := make(map[string]Field, len(s.Fields))
	for _, f := range s.Fields {
		m[f.Name] = f
	}
	return m
}

// DefaultFields returns the names of fields carrying a declared default.
func (s *Schema) DefaultFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.HasDefault {
			names = append(names, f.Name)
		}
	}
	return names
}
