package trees

import (
	"fmt"
	"strings"
)

// String renders the subtree rooted at n in bracket notation: a leaf is its
// payload, a branch is its payload followed by "( ", each child and a space,
// then ")". A forest sentinel renders as "( ... )", or "()" when empty.
func (n *Node[T]) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node[T]) format(b *strings.Builder) {
	var w walk[T]
	if n.isForest() {
		if n.head == nil {
			b.WriteString("()")
			return
		}
		b.WriteString("( ")
		w.onForest(n.head)
		writeWalk(b, &w, 0)
		b.WriteString(")")
		return
	}
	w.onNode(n)
	writeWalk(b, &w, 1)
}

// writeWalk prints every visit of w. Nodes deeper than bare frames are
// followed by a space.
func writeWalk[T any](b *strings.Builder, w *walk[T], bare int) {
	for v, ok := w.get(); ok; v, ok = w.next() {
		switch v.Kind {
		case VisitBegin:
			fmt.Fprint(b, v.Node.value)
			b.WriteString("( ")
			continue
		case VisitLeaf:
			fmt.Fprint(b, v.Node.value)
		case VisitEnd:
			b.WriteByte(')')
		}
		if len(w.path) > bare {
			b.WriteByte(' ')
		}
	}
}
