// Package xmltree decodes XML documents of unknown shape into a generic
// typed tree, so downstream code can search and extract fields without a
// fixed schema.
package xmltree

import "strings"

// Kind discriminates the three node shapes.
type Kind int

const (
	Scalar Kind = iota // text leaf (element text, CDATA or attribute value)
	Object             // element with named children
	Array              // repeated element collection
)

// textKey is the reserved field name holding an element's character data
// when attributes force the node to remain an Object.
const textKey = "#text"

// Node is one schema-free XML fragment. Nodes are immutable once decoding
// finishes; the zero value is not usable, construct via the New* helpers.
type Node struct {
	kind   Kind
	text   string
	keys   []string
	fields map[string]*Node
	items  []*Node
}

// NewScalar creates a text leaf.
func NewScalar(text string) *Node {
	return &Node{kind: Scalar, text: text}
}

// NewObject creates an empty object node.
func NewObject() *Node {
	return &Node{kind: Object, fields: make(map[string]*Node)}
}

// NewArray creates an array node holding the given items.
func NewArray(items ...*Node) *Node {
	return &Node{kind: Array, items: items}
}

// Kind returns the node shape.
func (n *Node) Kind() Kind { return n.kind }

// Text returns the scalar text. For object nodes it returns the element's
// character data when present (attributed scalar elements like
// <Resim Sira="1">url</Resim>), otherwise "".
func (n *Node) Text() string {
	switch n.kind {
	case Scalar:
		return n.text
	case Object:
		if c, ok := n.fields[textKey]; ok {
			return c.text
		}
	}
	return ""
}

// Keys returns the object's field names in document order.
func (n *Node) Keys() []string { return n.keys }

// Field returns the named child of an object node.
func (n *Node) Field(name string) (*Node, bool) {
	if n.kind != Object {
		return nil, false
	}
	c, ok := n.fields[name]
	return c, ok
}

// FieldFold returns the first child whose name matches case-insensitively.
// Feed schemas flip between UrunAdi, urunadi and URUNADI across exports.
func (n *Node) FieldFold(name string) (*Node, bool) {
	if n.kind != Object {
		return nil, false
	}
	if c, ok := n.fields[name]; ok {
		return c, true
	}
	for _, k := range n.keys {
		if strings.EqualFold(k, name) {
			return n.fields[k], true
		}
	}
	return nil, false
}

// Items returns the array elements, or nil for non-array nodes.
func (n *Node) Items() []*Node {
	if n.kind != Array {
		return nil
	}
	return n.items
}

// Len returns the number of array elements.
func (n *Node) Len() int { return len(n.items) }

// Set adds or replaces a named child on an object node and returns the node
// for chaining. Used by the decoder and by tests building synthetic trees.
func (n *Node) Set(name string, child *Node) *Node {
	if n.kind != Object {
		return n
	}
	if _, ok := n.fields[name]; !ok {
		n.keys = append(n.keys, name)
	}
	n.fields[name] = child
	return n
}

// Append adds an item to an array node and returns the node for chaining.
func (n *Node) Append(items ...*Node) *Node {
	if n.kind == Array {
		n.items = append(n.items, items...)
	}
	return n
}
