package tree

import (
	"strings"

	"github.com/retailpipe/xmlavro/xmlsource"
)

// attrSuffix derives the alternate field key when an attribute's name is
// already taken by a child element of the same spelling.
const attrSuffix = "_attr"

// Build converts an XML element into the tree representation.
//
// The returned node is a wrapper holding the document element under its own
// filtered name, so the top-level schema record is expected to declare a
// field named after the root tag.
func Build(root *xmlsource.Elem) *Node {
	parent := &Node{}
	buildInto(parent, root)
	return parent
}

func buildInto(parent *Node, e *xmlsource.Elem) {
	n := &Node{}
	if text, ok := pureText(e); ok {
		// ideally a text node would have nothing else, but XML still allows
		// attributes next to it. Avro cannot hold both and we cannot decide
		// which to keep without a schema, so the ambiguity is resolved in
		// the encoding step.
		n.SetScalar(text)
	}
	parent.AddField(filterName(e.Name), n)

	for _, child := range e.Elements() {
		buildInto(n, child)
	}

	// attributes become ordinary fields of the current node, renamed when a
	// child element already claimed the name
	for _, attr := range e.Attrs {
		name := filterName(attr.Name)
		n.AddFieldAlt(name, name+attrSuffix, NewScalar(attr.Value))
	}
}

// pureText reports whether the element contains nothing except a single text
// block, and returns that text verbatim.
//
// Almost every element has a child text node, but it usually carries
// formatting from the XML: indentation and end-of-line characters. CDATA is
// different: it is explicitly tagged and its whitespace and empty strings
// are significant. So a lone CDATA block always qualifies, while plain text
// qualifies only when it is non-blank after trimming; the trim is used for
// the classification only, never for the stored value.
func pureText(e *xmlsource.Elem) (string, bool) {
	if len(e.Children) != 1 {
		return "", false
	}
	c := e.Children[0]
	switch c.Kind {
	case xmlsource.ChildCDATA:
		return c.Text, true
	case xmlsource.ChildText:
		if strings.TrimSpace(c.Text) != "" {
			return c.Text, true
		}
	}
	return "", false
}

// filterName strips namespace prefixes: Avro names cannot contain a colon
// (or anything besides [A-Za-z0-9_]), so "ns:local" reduces to "local".
func filterName(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return name
}
