package xmlsource

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const cdataOpen = "<![CDATA["

// Decode reads a complete XML document and returns its document element.
// Comments, processing instructions and directives are discarded; character
// data and CDATA sections are kept as distinct child constructs because the
// downstream pure-text classification treats them differently.
func Decode(r io.Reader) (*Elem, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xml read: %w", err)
	}
	return DecodeBytes(raw)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(raw []byte) (*Elem, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var root *Elem
	var stack []*Elem
	for {
		// encoding/xml surfaces CDATA sections as plain CharData; the raw
		// bytes at the token's start offset are the only way to tell them
		// apart, and the classification rule needs the distinction.
		off := dec.InputOffset()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml decode: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e := &Elem{Name: rawName(t.Name)}
			for _, a := range t.Attr {
				e.Attrs = append(e.Attrs, Attr{Name: rawName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xml decode: unexpected element <%s> after document end", e.Name)
				}
				root = e
			} else {
				p := stack[len(stack)-1]
				p.Children = append(p.Children, Child{Kind: ChildElem, Elem: e})
			}
			stack = append(stack, e)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("xml decode: unexpected </%s>", rawName(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue // prolog/epilog whitespace
			}
			kind := ChildText
			if isCDATAAt(raw, off) {
				kind = ChildCDATA
			}
			p := stack[len(stack)-1]
			p.Children = append(p.Children, Child{Kind: kind, Text: string(t)})
		}
	}
	if root == nil {
		return nil, errors.New("xml decode: no document element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("xml decode: unclosed element <%s>", stack[len(stack)-1].Name)
	}
	return root, nil
}

func isCDATAAt(raw []byte, off int64) bool {
	if off < 0 || int(off)+len(cdataOpen) > len(raw) {
		return false
	}
	return string(raw[off:int(off)+len(cdataOpen)]) == cdataOpen
}

// rawName restores the name as written, prefix included, so the tree builder
// can apply its own prefix filtering.
func rawName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}
