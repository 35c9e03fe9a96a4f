package tree_test

import (
	"testing"

	"github.com/retailpipe/xmlavro/tree"
	"github.com/retailpipe/xmlavro/xmlsource"
)

func text(s string) xmlsource.Child {
	return xmlsource.Child{Kind: xmlsource.ChildText, Text: s}
}

func cdata(s string) xmlsource.Child {
	return xmlsource.Child{Kind: xmlsource.ChildCDATA, Text: s}
}

func elem(e *xmlsource.Elem) xmlsource.Child {
	return xmlsource.Child{Kind: xmlsource.ChildElem, Elem: e}
}

// Build returns a wrapper holding the document element under its own name.
func root(t *testing.T, n *tree.Node, name string) *tree.Node {
	t.Helper()
	vs := n.Values(name)
	if len(vs) != 1 {
		t.Fatalf("wrapper must hold exactly one %q node, got %d", name, len(vs))
	}
	return vs[0]
}

func TestBuild_PureTextLeaf(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{Name: "a", Children: []xmlsource.Child{text(" 42 ")}})
	a := root(t, n, "a")

	got, ok := a.Scalar()
	if !ok {
		t.Fatalf("expected a scalar")
	}
	if got != " 42 " {
		t.Fatalf("scalar = %q, want untrimmed %q", got, " 42 ")
	}
	if len(a.Keys()) != 0 {
		t.Fatalf("pure text node must have no fields, got %v", a.Keys())
	}
}

func TestBuild_WhitespaceTextIsNotScalar(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{Name: "a", Children: []xmlsource.Child{text("\n  \t")}})
	if _, ok := root(t, n, "a").Scalar(); ok {
		t.Fatalf("formatting whitespace must not become a scalar")
	}
}

func TestBuild_CDATAKeepsWhitespace(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{Name: "a", Children: []xmlsource.Child{cdata("  ")}})
	got, ok := root(t, n, "a").Scalar()
	if !ok || got != "  " {
		t.Fatalf("CDATA whitespace is significant, got %q ok=%v", got, ok)
	}
}

func TestBuild_MixedContentIsNotPureText(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{Name: "a", Children: []xmlsource.Child{
		text("\n  "),
		elem(&xmlsource.Elem{Name: "b", Children: []xmlsource.Child{text("1")}}),
		text("\n"),
	}})
	a := root(t, n, "a")
	if _, ok := a.Scalar(); ok {
		t.Fatalf("element with children must not be pure text")
	}
	if len(a.Values("b")) != 1 {
		t.Fatalf("missing child b")
	}
}

func TestBuild_RepeatedTagsBecomeLists(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{Name: "list", Children: []xmlsource.Child{
		elem(&xmlsource.Elem{Name: "item", Children: []xmlsource.Child{text("1")}}),
		elem(&xmlsource.Elem{Name: "item", Children: []xmlsource.Child{text("2")}}),
		elem(&xmlsource.Elem{Name: "item", Children: []xmlsource.Child{text("3")}}),
	}})
	items := root(t, n, "list").Values("item")
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got, _ := items[i].Scalar(); got != want {
			t.Fatalf("items[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestBuild_AttributesBecomeScalarFields(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{
		Name:  "a",
		Attrs: []xmlsource.Attr{{Name: "id", Value: "7"}},
	})
	a := root(t, n, "a")
	id := a.Values("id")
	if len(id) != 1 {
		t.Fatalf("missing id field")
	}
	if got, _ := id[0].Scalar(); got != "7" {
		t.Fatalf("id = %q, want 7", got)
	}
}

func TestBuild_AttributeElementCollision(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{
		Name:  "a",
		Attrs: []xmlsource.Attr{{Name: "x", Value: "attr"}},
		Children: []xmlsource.Child{
			elem(&xmlsource.Elem{Name: "x", Children: []xmlsource.Child{text("elem")}}),
		},
	})
	a := root(t, n, "a")

	xs := a.Values("x")
	if len(xs) != 1 {
		t.Fatalf("x values = %d, want 1", len(xs))
	}
	if got, _ := xs[0].Scalar(); got != "elem" {
		t.Fatalf("x = %q, want the element value", got)
	}
	alt := a.Values("x_attr")
	if len(alt) != 1 {
		t.Fatalf("expected derived x_attr key, keys = %v", a.Keys())
	}
	if got, _ := alt[0].Scalar(); got != "attr" {
		t.Fatalf("x_attr = %q, want the attribute value", got)
	}
}

func TestBuild_NamespacePrefixStripped(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{
		Name:  "ns:doc",
		Attrs: []xmlsource.Attr{{Name: "xsi:type", Value: "t"}},
	})
	doc := root(t, n, "doc")
	if !doc.Has("type") {
		t.Fatalf("prefixed attribute must be stored under its local name, keys = %v", doc.Keys())
	}
}

func TestBuild_TextWithAttributesKeepsBoth(t *testing.T) {
	n := tree.Build(&xmlsource.Elem{
		Name:     "a",
		Attrs:    []xmlsource.Attr{{Name: "unit", Value: "ms"}},
		Children: []xmlsource.Child{text("42")},
	})
	a := root(t, n, "a")
	if got, ok := a.Scalar(); !ok || got != "42" {
		t.Fatalf("scalar = %q ok=%v", got, ok)
	}
	if !a.Has("unit") {
		t.Fatalf("attribute lost next to text content")
	}
}
