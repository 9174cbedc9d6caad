package dom

import (
	"slices"
)

// Prune removes every descendant for which the predicate matches its
// NodeView. Children sequences are filtered in place at every level; pruned
// subtrees are not descended into. The receiver itself is never evaluated
// against the predicate - only descendants are candidates for removal.
func (e *Element) Prune(match func(NodeView) bool) {
	if e == nil {
		return
	}
	e.Children = slices.DeleteFunc(e.Children, func(n Node) bool {
		return match(viewOf(n))
	})
	for _, c := range e.Children {
		if c.Kind == NodeElement {
			c.Elem.Prune(match)
		}
	}
}

// PruneAll prunes each node of the sequence as an independent root: the
// sequence members themselves are kept, their descendants are filtered.
// A nil or empty sequence is a no-op.
func PruneAll(nodes []Node, match func(NodeView) bool) {
	for _, n := range nodes {
		if n.Kind == NodeElement {
			n.Elem.Prune(match)
		}
	}
}
