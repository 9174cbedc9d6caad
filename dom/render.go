package dom

import (
	"strings"
)

// voidElements always render in the self-closing form when they have no
// children. The set is fixed; it is also what keeps the raw tree assembly
// from waiting for close tags that never come.
var voidElements = map[string]struct{}{
	"meta":   {},
	"base":   {},
	"link":   {},
	"img":    {},
	"br":     {},
	"hr":     {},
	"input":  {},
	"area":   {},
	"source": {},
}

func isVoidElement(name string) bool {
	_, ok := voidElements[name]
	return ok
}

// Render serializes a canonical node back into HTML text. Character data and
// attribute values are emitted verbatim: the codec never escapes on output,
// mirroring the fact that it never re-encodes entities on input beyond what
// the tokenizer already decoded. Callers own the safety of the text they put
// into the tree.
func Render(n Node) string {
	var sb strings.Builder
	renderNode(&sb, n)
	return sb.String()
}

// HTML serializes the element subtree.
func (e *Element) HTML() string {
	return Render(Elem(e))
}

func renderNode(sb *strings.Builder, n Node) {
	switch n.Kind {
	case NodeText:
		sb.WriteString(n.Text)
	case NodeElement:
		if n.Elem != nil {
			renderElement(sb, n.Elem)
		}
	}
}

func renderElement(sb *strings.Builder, e *Element) {
	sb.WriteByte('<')
	sb.WriteString(e.Name)
	for _, a := range e.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}

	if isVoidElement(e.Name) && len(e.Children) == 0 {
		sb.WriteString(" />")
		return
	}

	sb.WriteByte('>')
	for _, c := range e.Children {
		renderNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(e.Name)
	sb.WriteByte('>')
}
