package dom

// NodeView is the normalized projection handed to predicates. It hides the
// representational difference between elements and character data:
//
//   - character data: Name is empty, Attrs is nil, Content is the text;
//   - element: Name and Attrs are set; Content carries the text of the sole
//     child if and only if the element has exactly one child and that child
//     is character data, otherwise Content stays empty.
//
// Attrs is nil for text nodes on purpose - lookups like view.Attrs["class"]
// are safe on any view.
type NodeView struct {
	Name    string
	Attrs   map[string]string
	Content string
}

func viewOf(n Node) NodeView {
	switch n.Kind {
	case NodeText:
		return NodeView{Content: n.Text}
	case NodeElement:
		e := n.Elem
		if e == nil {
			return NodeView{}
		}
		v := NodeView{Name: e.Name, Attrs: make(map[string]string, len(e.Attrs))}
		for _, a := range e.Attrs {
			v.Attrs[a.Key] = a.Value
		}
		if len(e.Children) == 1 && e.Children[0].Kind == NodeText {
			v.Content = e.Children[0].Text
		}
		return v
	default:
		return NodeView{}
	}
}

// Exists reports whether any node of the subtree matches the predicate.
// The search is depth-first pre-order, same order as Walk, but short-circuits
// on the first match. Zero nodes never match.
func Exists(n Node, match func(NodeView) bool) bool {
	switch n.Kind {
	case NodeText:
		return match(viewOf(n))
	case NodeElement:
		if n.Elem == nil {
			return false
		}
		if match(viewOf(n)) {
			return true
		}
		for _, c := range n.Elem.Children {
			if Exists(c, match) {
				return true
			}
		}
	}
	return false
}

// ExistsAll reports whether any node of any subtree in the sequence matches
// the predicate. A nil or empty sequence yields false.
func ExistsAll(nodes []Node, match func(NodeView) bool) bool {
	for _, n := range nodes {
		if Exists(n, match) {
			return true
		}
	}
	return false
}
