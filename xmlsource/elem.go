package xmlsource

// Package xmlsource reads XML into the abstract element model consumed by
// tree.Build. The model keeps exactly what the tree builder needs: names,
// attributes, and the ordered child constructs of every element.

// ChildKind enumerates the constructs an element can contain.
type ChildKind int

const (
	ChildElem  ChildKind = iota // Nested element.
	ChildText                   // Plain character data.
	ChildCDATA                  // Verbatim CDATA section; whitespace is significant.
)

// Attr is a single attribute with its raw text value.
type Attr struct {
	Name  string
	Value string
}

// Child is one ordered construct inside an element: either a nested element
// or a block of (possibly verbatim) text.
type Child struct {
	Kind ChildKind
	Text string // Set for ChildText and ChildCDATA.
	Elem *Elem  // Set for ChildElem.
}

// Elem is one XML element: its name as written (namespace prefix included),
// its attributes in document order, and its child constructs in document
// order.
type Elem struct {
	Name     string
	Attrs    []Attr
	Children []Child
}

// Elements returns the nested elements among the children, in order.
func (e *Elem) Elements() []*Elem {
	var out []*Elem
	for _, c := range e.Children {
		if c.Kind == ChildElem {
			out = append(out, c.Elem)
		}
	}
	return out
}
