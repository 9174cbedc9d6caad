// Package dom implements the canonical document tree this program operates
// on: a bidirectional HTML codec plus traversal, search and mutation
// primitives. The tree is built once from parser output, mutated in place by
// a single owner and serialized back to HTML text.
package dom

// NodeKind distinguishes the two canonical node variants.
type NodeKind string

const (
	NodeElement NodeKind = "element"
	NodeText    NodeKind = "text"
)

// Node is a tagged union: an element or bare character data. Exactly one of
// Elem/Text is meaningful, selected by Kind. A zero Node is inert - every
// operation treats it as an empty contribution.
type Node struct {
	Kind NodeKind
	Elem *Element
	Text string
}

// Attr is a single element attribute. Keys within one element are unique and
// keep their insertion order so serialization stays deterministic.
type Attr struct {
	Key   string
	Value string
}

// Element is a named node with attributes and ordered children. Children may
// be nil which everywhere means "no children". There are no parent
// back-references - traversal is purely top-down.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// NewElement creates an element with the given attributes.
func NewElement(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Text wraps character data into a Node.
func Text(s string) Node {
	return Node{Kind: NodeText, Text: s}
}

// Elem wraps an element into a Node.
func Elem(e *Element) Node {
	return Node{Kind: NodeElement, Elem: e}
}

// AttrValue returns the value of the attribute with the given key, or dflt
// when the element has no such attribute. Safe on a nil element.
func (e *Element) AttrValue(key, dflt string) string {
	if e == nil {
		return dflt
	}
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return dflt
}

// HasAttr reports whether the attribute with the given key is present,
// regardless of its value. Safe on a nil element.
func (e *Element) HasAttr(key string) bool {
	if e == nil {
		return false
	}
	for _, a := range e.Attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr updates the value of an existing attribute in place or appends a
// new one, keeping keys unique and insertion order stable. A nil element is
// left untouched.
func (e *Element) SetAttr(key, value string) {
	if e == nil {
		return
	}
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
}

// ChildElement returns the first direct child element with the given name or
// nil when there is none. Text children are skipped. Safe on a nil element.
func (e *Element) ChildElement(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Kind == NodeElement && c.Elem != nil && c.Elem.Name == name {
			return c.Elem
		}
	}
	return nil
}
