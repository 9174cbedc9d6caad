package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// rawKind is the type discriminator of the low-level parse tree produced by
// the tokenizer adapter.
type rawKind int

const (
	rawElement rawKind = iota
	rawText
	rawComment
	rawDoctype
)

// rawNode mirrors tokenizer output one to one: element-like nodes carry name,
// attributes and children, text-like nodes carry data. Nothing here is
// normalized yet.
type rawNode struct {
	kind     rawKind
	name     string
	attrs    []html.Attribute
	data     string
	children []*rawNode
}

// Parse converts HTML text into the canonical tree. The returned element is
// the first top-level "html" element of the input; when the input has none
// the result is nil without an error - fragment and garbage inputs are a
// normal condition for this codec. A non-nil error means the underlying
// tokenizer failed on the byte stream itself.
func Parse(r io.Reader) (*Element, error) {
	root, err := parseRaw(r)
	if err != nil {
		return nil, fmt.Errorf("unable to tokenize HTML: %w", err)
	}
	for _, c := range root.children {
		if c.kind == rawElement && c.name == "html" {
			n := convertRaw(c)
			if n.Kind != NodeElement {
				// this should never happen
				panic("html raw node did not convert to an element")
			}
			return n.Elem, nil
		}
	}
	return nil, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

// parseRaw assembles a raw parse tree from the token stream. The tokenizer
// owns all lexical concerns (entity decoding, attribute parsing, raw-text
// handling for script/style); assembly only tracks open elements. Unmatched
// close tags are ignored and unclosed elements stay open until the end of
// input, which keeps the adapter tolerant of real-world markup.
func parseRaw(r io.Reader) (*rawNode, error) {
	var (
		root  = &rawNode{kind: rawElement}
		stack = []*rawNode{root}
	)

	top := func() *rawNode { return stack[len(stack)-1] }

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return root, nil

		case html.TextToken:
			t := top()
			t.children = append(t.children, &rawNode{kind: rawText, data: string(z.Text())})

		case html.StartTagToken:
			name, attrs := tagNameAndAttrs(z)
			n := &rawNode{kind: rawElement, name: name, attrs: attrs}
			t := top()
			t.children = append(t.children, n)
			if !isVoidElement(name) {
				stack = append(stack, n)
			}

		case html.SelfClosingTagToken:
			name, attrs := tagNameAndAttrs(z)
			t := top()
			t.children = append(t.children, &rawNode{kind: rawElement, name: name, attrs: attrs})

		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].name == string(name) {
					stack = stack[:i]
					break
				}
			}

		case html.CommentToken:
			t := top()
			t.children = append(t.children, &rawNode{kind: rawComment, data: string(z.Text())})

		case html.DoctypeToken:
			t := top()
			t.children = append(t.children, &rawNode{kind: rawDoctype, data: string(z.Text())})
		}
	}
}

func tagNameAndAttrs(z *html.Tokenizer) (string, []html.Attribute) {
	name, hasAttr := z.TagName()
	var attrs []html.Attribute
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return string(name), attrs
}

// convertRaw maps a raw node into the canonical representation. Text that is
// pure whitespace and node kinds other than element/text produce a zero Node
// which the caller must drop.
func convertRaw(rn *rawNode) Node {
	switch rn.kind {
	case rawText:
		if strings.TrimSpace(rn.data) == "" {
			return Node{}
		}
		return Text(rn.data)

	case rawElement:
		e := &Element{Name: rn.name}
		for _, a := range rn.attrs {
			// first occurrence wins on duplicate attribute keys
			if !e.HasAttr(a.Key) {
				e.Attrs = append(e.Attrs, Attr{Key: a.Key, Value: a.Val})
			}
		}
		for _, c := range rn.children {
			if n := convertRaw(c); n.Kind != "" {
				e.Children = append(e.Children, n)
			}
		}
		return Elem(e)

	default:
		return Node{}
	}
}
