package dom

import (
	"slices"
	"strings"
)

// Default values for the document metadata helpers.
const (
	DefaultCharset  = "utf-8"
	DefaultViewport = "width=device-width, initial-scale=1"
)

// EnsureHead returns the direct child element named "head", creating one
// when missing. A new head is inserted immediately before the first direct
// child named "body", or at index 0 when there is no body.
func (e *Element) EnsureHead() *Element {
	if e == nil {
		return nil
	}
	if head := e.ChildElement("head"); head != nil {
		return head
	}
	head := NewElement("head")
	at := 0
	for i, c := range e.Children {
		if c.Kind == NodeElement && c.Elem.Name == "body" {
			at = i
			break
		}
	}
	e.Children = slices.Insert(e.Children, at, Elem(head))
	return head
}

// SetTitle sets the document title. When one or more "title" elements exist
// anywhere in the tree, the children of every one of them are replaced with
// a single text node. Otherwise a new title element is prepended to head.
func (e *Element) SetTitle(text string) {
	if e == nil {
		return
	}
	if Exists(Elem(e), func(v NodeView) bool { return v.Name == "title" }) {
		Walk(Elem(e), func(n Node) {
			if n.Kind == NodeElement && n.Elem.Name == "title" {
				n.Elem.Children = []Node{Text(text)}
			}
		})
		return
	}
	title := NewElement("title")
	title.Children = []Node{Text(text)}
	head := e.EnsureHead()
	head.Children = slices.Insert(head.Children, 0, Elem(title))
}

// SetCharset declares the document character encoding. The call is a no-op
// when any meta element already declares one, through any of the three
// recognized forms:
//
//   - a "charset" attribute, regardless of value
//   - http-equiv "content-type" (case-insensitive) with "charset" somewhere
//     in the content value (case-insensitive)
//   - a "name" attribute equal to "charset" (case-insensitive)
//
// Otherwise a meta element with the given charset is prepended to head.
func (e *Element) SetCharset(charset string) {
	if e == nil {
		return
	}
	declared := Exists(Elem(e), func(v NodeView) bool {
		if v.Name != "meta" {
			return false
		}
		if _, ok := v.Attrs["charset"]; ok {
			return true
		}
		if strings.EqualFold(v.Attrs["http-equiv"], "content-type") &&
			strings.Contains(strings.ToLower(v.Attrs["content"]), "charset") {
			return true
		}
		return strings.EqualFold(v.Attrs["name"], "charset")
	})
	if declared {
		return
	}
	head := e.EnsureHead()
	head.Children = slices.Insert(head.Children, 0, Elem(NewElement("meta", Attr{Key: "charset", Value: charset})))
}

// SetViewport declares the viewport. The call is a no-op when a meta element
// with name exactly equal to "viewport" exists anywhere in the tree;
// otherwise a meta element with the given content is appended to head.
func (e *Element) SetViewport(content string) {
	if e == nil {
		return
	}
	declared := Exists(Elem(e), func(v NodeView) bool {
		return v.Name == "meta" && v.Attrs["name"] == "viewport"
	})
	if declared {
		return
	}
	head := e.EnsureHead()
	head.Children = append(head.Children, Elem(NewElement("meta",
		Attr{Key: "name", Value: "viewport"},
		Attr{Key: "content", Value: content},
	)))
}

// InsertLink appends a link element to head. An empty rel defaults to
// "stylesheet". Extra attributes follow rel and href in the given order;
// an extra attribute with a key already present overwrites its value in
// place. No duplicate check is performed - repeated calls insert repeated
// links.
func (e *Element) InsertLink(href, rel string, extra ...Attr) {
	if e == nil {
		return
	}
	if rel == "" {
		rel = "stylesheet"
	}
	link := NewElement("link",
		Attr{Key: "rel", Value: rel},
		Attr{Key: "href", Value: href},
	)
	for _, a := range extra {
		link.SetAttr(a.Key, a.Value)
	}
	head := e.EnsureHead()
	head.Children = append(head.Children, Elem(link))
}

// InsertInlineScript appends a script element whose sole child is the given
// text, verbatim. No duplicate check is performed.
func (e *Element) InsertInlineScript(text string) {
	if e == nil {
		return
	}
	script := NewElement("script")
	script.Children = []Node{Text(text)}
	head := e.EnsureHead()
	head.Children = append(head.Children, Elem(script))
}
