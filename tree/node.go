package tree

import (
	"fmt"
	"strings"

	xmlavro "github.com/retailpipe/xmlavro"
)

// Node is the intermediate representation of one XML element, built before
// any schema is consulted.
//
// Tags and attributes are treated equally: named children land in one field
// namespace, and repeated names are appended to the same list, so a list
// longer than one is what the schema must model as an array. A node may
// carry both a scalar and fields (XML allows text plus attributes); that
// ambiguity cannot be resolved without the schema, so it is deferred to the
// encoding step.
type Node struct {
	// keys preserves insertion order; fields holds the actual lists. The
	// encoder does not depend on the order, but reproducible output does.
	keys   []string
	fields map[string][]*Node

	scalar    string
	hasScalar bool
}

// NewScalar is a shorthand to create a node holding only a text value.
func NewScalar(value string) *Node {
	n := &Node{}
	n.SetScalar(value)
	return n
}

// SetScalar stores the node's text value.
func (n *Node) SetScalar(value string) {
	n.scalar = value
	n.hasScalar = true
}

// Scalar returns the node's text value and whether one was set.
func (n *Node) Scalar() (string, bool) {
	return n.scalar, n.hasScalar
}

// AddField appends value under name.
func (n *Node) AddField(name string, value *Node) {
	if n.fields == nil {
		n.fields = make(map[string][]*Node)
	}
	if _, ok := n.fields[name]; !ok {
		n.keys = append(n.keys, name)
	}
	n.fields[name] = append(n.fields[name], value)
}

// AddFieldAlt appends value under name, or under alt when name is already
// occupied. This is the attribute/element collision rule: the later-arriving
// construct moves to the alternate key instead of merging into the existing
// list.
func (n *Node) AddFieldAlt(name, alt string, value *Node) {
	if _, ok := n.fields[name]; ok {
		n.AddField(alt, value)
		return
	}
	n.AddField(name, value)
}

// Keys returns the field names in insertion order. The slice is never nil;
// an empty set is needed for type matching on empty unions.
func (n *Node) Keys() []string {
	if n.keys == nil {
		return []string{}
	}
	return n.keys
}

// Has reports whether the node carries any values under name.
func (n *Node) Has(name string) bool {
	_, ok := n.fields[name]
	return ok
}

// Values retrieves all nodes stored under name. A field can be absent, but
// the caller may still need to check schema defaults, so absent yields an
// empty list rather than an error.
func (n *Node) Values(name string) []*Node {
	return n.fields[name]
}

// Value is like Values but requires exactly one stored node.
func (n *Node) Value(name string) (*Node, error) {
	return EnsureSingle(n.Values(name), "/"+name)
}

// EnsureSingle rejects field lists that do not hold exactly one node: the
// document contains an array where the schema has a record, and the
// conversion cannot resolve that ambiguity. path locates the field, its last
// segment being the field name.
func EnsureSingle(values []*Node, path string) (*Node, error) {
	if len(values) != 1 {
		name := path[strings.LastIndex(path, "/")+1:]
		return nil, xmlavro.Issues{{
			Path:    path,
			Code:    xmlavro.CodeStructuralAmbiguity,
			Message: fmt.Sprintf("%d values for field %q; possibly an array is needed in the schema", len(values), name),
		}}
	}
	return values[0], nil
}

// Dump formats the node and its children as indented "key : value" text.
func (n *Node) Dump() string {
	return n.dump("| ")
}

func (n *Node) dump(prefix string) string {
	b := &strings.Builder{}
	for _, key := range n.keys {
		for _, child := range n.fields[key] {
			v, _ := child.Scalar()
			fmt.Fprintf(b, "%s%s : %s\n", prefix, key, v)
			b.WriteString(child.dump(prefix + "  "))
		}
	}
	return b.String()
}
