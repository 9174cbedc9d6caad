package dom

import (
	"fmt"
	"strings"

	"htmlfix/utils/debug"
)

// String renders the element as an indented tree, one node per line, for
// logs and debug dumps.
func (e *Element) String() string {
	w := debug.NewTreeWriter()
	e.dump(w, 0)
	return w.String()
}

// String renders the node as an indented tree.
func (n Node) String() string {
	w := debug.NewTreeWriter()
	n.dump(w, 0)
	return w.String()
}

func (e *Element) dump(w *debug.TreeWriter, depth int) {
	if e == nil {
		w.Line(depth, "<nil element>")
		return
	}
	var sb strings.Builder
	sb.WriteString(e.Name)
	for _, a := range e.Attrs {
		fmt.Fprintf(&sb, " %s=%q", a.Key, a.Value)
	}
	w.Line(depth, "%s", sb.String())
	for _, c := range e.Children {
		c.dump(w, depth+1)
	}
}

func (n Node) dump(w *debug.TreeWriter, depth int) {
	switch n.Kind {
	case NodeText:
		w.Quoted(depth, n.Text)
	case NodeElement:
		n.Elem.dump(w, depth)
	}
}
