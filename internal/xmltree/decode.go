package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// Options controls decoding. It is passed explicitly into Decode so tests
// and callers can vary the always-array set per document.
type Options struct {
	// ArrayElements lists element names (case-insensitive) that decode as
	// arrays even when a document contains exactly one instance, so single
	// vs. multiple occurrences look identical downstream.
	ArrayElements []string
}

// DefaultOptions covers the repeatable elements seen across the feed
// provider's export variants: product cards, images and variants.
func DefaultOptions() Options {
	return Options{
		ArrayElements: []string{
			"Urun", "UrunKarti", "Product", "Item",
			"Resim", "Image", "Picture",
			"Secenek", "Option", "Variant",
		},
	}
}

func (o Options) alwaysArray(name string) bool {
	for _, e := range o.ArrayElements {
		if strings.EqualFold(e, name) {
			return true
		}
	}
	return false
}

// Decode parses an XML document into a generic tree. The returned node is an
// Object whose single field is the document's root element. Character data,
// including CDATA sections, is preserved as plain scalar text; attributes
// become scalar fields of their element.
func Decode(data []byte, opts Options) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}

	// Legacy exports occasionally ship windows-1254 bytes without an
	// encoding declaration; the XML decoder would reject them as invalid
	// UTF-8, so transcode up front.
	if !utf8.Valid(data) && !hasEncodingDecl(data) {
		if out, err := charmap.Windows1254.NewDecoder().Bytes(data); err == nil {
			data = out
		}
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false

	doc := NewObject()
	type frame struct {
		name    string
		node    *Node
		text    strings.Builder
		hasElem bool
	}
	stack := []*frame{{node: doc}}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{name: t.Name.Local, node: NewObject()}
			for _, attr := range t.Attr {
				f.node.Set(attr.Name.Local, NewScalar(attr.Value))
			}
			stack = append(stack, f)
		case xml.CharData:
			if len(stack) > 1 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			if len(stack) < 2 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.hasElem = true

			node := f.node
			text := strings.TrimSpace(f.text.String())
			switch {
			case !f.hasElem && len(f.node.keys) == 0:
				node = NewScalar(text)
			case text != "":
				// An element with attributes (or mixed content) stays an
				// Object; its character data must not be lost with it.
				f.node.Set(textKey, NewScalar(text))
			}
			attach(parent.node, f.name, node, opts.alwaysArray(f.name))
		}
	}

	if len(doc.keys) == 0 {
		return nil, errors.New("document has no root element")
	}
	return doc, nil
}

// attach places a finished child under its parent, coercing repeated and
// always-array elements into Array nodes.
func attach(parent *Node, name string, child *Node, always bool) {
	if existing, ok := parent.fields[name]; ok {
		if existing.kind == Array {
			existing.items = append(existing.items, child)
		} else {
			parent.fields[name] = NewArray(existing, child)
		}
		return
	}
	if always {
		child = NewArray(child)
	}
	parent.Set(name, child)
}

func hasEncodingDecl(data []byte) bool {
	head := data
	if len(head) > 128 {
		head = head[:128]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("encoding="))
}
