package dom

// Walk performs a pre-order depth-first traversal of the node and its
// descendants, left to right, invoking visit for every node including
// character data. The walk is total: it never stops early and its only
// output is the visit side effects. Zero nodes contribute nothing.
func Walk(n Node, visit func(Node)) {
	switch n.Kind {
	case NodeText:
		visit(n)
	case NodeElement:
		if n.Elem == nil {
			return
		}
		visit(n)
		for _, c := range n.Elem.Children {
			Walk(c, visit)
		}
	}
}

// WalkAll walks every node of the sequence in order. A nil or empty sequence
// is a no-op.
func WalkAll(nodes []Node, visit func(Node)) {
	for _, n := range nodes {
		Walk(n, visit)
	}
}
