package xmlsource_test

import (
	"strings"
	"testing"

	"github.com/retailpipe/xmlavro/xmlsource"
)

func TestDecode_Shape(t *testing.T) {
	doc := `<order id="7"><sku>abc</sku><sku>def</sku><note> hi </note></order>`
	e, err := xmlsource.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.Name != "order" {
		t.Fatalf("name = %q", e.Name)
	}
	if len(e.Attrs) != 1 || e.Attrs[0].Name != "id" || e.Attrs[0].Value != "7" {
		t.Fatalf("attrs = %+v", e.Attrs)
	}
	els := e.Elements()
	if len(els) != 3 || els[0].Name != "sku" || els[2].Name != "note" {
		t.Fatalf("elements = %+v", els)
	}
	if len(els[2].Children) != 1 || els[2].Children[0].Text != " hi " {
		t.Fatalf("note children = %+v", els[2].Children)
	}
}

func TestDecode_CDATADistinguished(t *testing.T) {
	e, err := xmlsource.DecodeBytes([]byte(`<a><![CDATA[ 42 ]]></a>`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(e.Children) != 1 {
		t.Fatalf("children = %+v", e.Children)
	}
	c := e.Children[0]
	if c.Kind != xmlsource.ChildCDATA {
		t.Fatalf("kind = %v, want CDATA", c.Kind)
	}
	if c.Text != " 42 " {
		t.Fatalf("text = %q", c.Text)
	}
}

func TestDecode_PlainTextIsNotCDATA(t *testing.T) {
	e, err := xmlsource.DecodeBytes([]byte(`<a>42</a>`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.Children[0].Kind != xmlsource.ChildText {
		t.Fatalf("kind = %v, want text", e.Children[0].Kind)
	}
}

func TestDecode_TextAroundCDATASplits(t *testing.T) {
	e, err := xmlsource.DecodeBytes([]byte(`<a>x<![CDATA[y]]></a>`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(e.Children) != 2 {
		t.Fatalf("children = %d, want 2 (text and CDATA stay distinct)", len(e.Children))
	}
}

func TestDecode_CommentsDiscarded(t *testing.T) {
	e, err := xmlsource.DecodeBytes([]byte(`<a><!-- note -->42</a>`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(e.Children) != 1 || e.Children[0].Kind != xmlsource.ChildText {
		t.Fatalf("children = %+v", e.Children)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, doc := range []string{``, `<a>`, `<a></b>`, `not xml`} {
		if _, err := xmlsource.DecodeBytes([]byte(doc)); err == nil {
			t.Fatalf("expected error for %q", doc)
		}
	}
}
