package trees

import (
	"github.com/joshuapare/treekit/pkg/types"
)

// Tree exclusively owns one root node and everything below it.
type Tree[T any] struct {
	root *Node[T]
}

// New creates a single-node tree in scattered storage.
func New[T any](value T) *Tree[T] {
	return &Tree[T]{root: newHeapNode(value)}
}

func (t *Tree[T]) node() *Node[T] {
	if t == nil || t.root == nil {
		panic(types.ErrReleased)
	}
	return t.root
}

// take hands the root to a new owner and empties t.
func (t *Tree[T]) take() *Node[T] {
	n := t.node()
	t.root = nil
	return n
}

// Root returns the root node.
func (t *Tree[T]) Root() *Node[T] { return t.node() }

// Valid reports whether t still owns its nodes (not dropped or consumed).
func (t *Tree[T]) Valid() bool { return t != nil && t.root != nil }

// Data returns a copy of the root payload.
func (t *Tree[T]) Data() T { return t.node().Data() }

// DataMut returns a pointer to the root payload.
func (t *Tree[T]) DataMut() *T { return t.node().DataMut() }

// HasNoChild reports whether the root has no children.
func (t *Tree[T]) HasNoChild() bool { return t.node().HasNoChild() }

// Degree returns the number of children of the root.
func (t *Tree[T]) Degree() int { return t.node().Degree() }

// NodeCount returns the number of nodes in the tree.
func (t *Tree[T]) NodeCount() int { return t.node().NodeCount() }

// Size returns the root's size.
func (t *Tree[T]) Size() Size { return t.node().Size() }

// Strategy reports the storage strategy of the root.
func (t *Tree[T]) Strategy() Strategy { return t.node().Strategy() }

// Front returns the first child of the root, or nil.
func (t *Tree[T]) Front() *Node[T] { return t.node().Front() }

// Back returns the last child of the root, or nil.
func (t *Tree[T]) Back() *Node[T] { return t.node().Back() }

// PushFront adds tree as the first child of the root, consuming tree.
func (t *Tree[T]) PushFront(tree *Tree[T]) { t.node().PushFront(tree) }

// PushBack adds tree as the last child of the root, consuming tree.
func (t *Tree[T]) PushBack(tree *Tree[T]) { t.node().PushBack(tree) }

// PopFront removes and returns the first child, or nil.
func (t *Tree[T]) PopFront() *Tree[T] { return t.node().PopFront() }

// PopBack removes and returns the last child, or nil.
func (t *Tree[T]) PopBack() *Tree[T] { return t.node().PopBack() }

// Prepend moves forest's trees in front of the root's children, consuming forest.
func (t *Tree[T]) Prepend(forest *Forest[T]) { t.node().Prepend(forest) }

// Append moves forest's trees after the root's children, consuming forest.
func (t *Tree[T]) Append(forest *Forest[T]) { t.node().Append(forest) }

// Abandon removes all children of the root and returns them as a forest. The
// tree keeps its root payload. The children keep their storage strategy.
func (t *Tree[T]) Abandon() *Forest[T] {
	old := t.node()
	old.mustPayload()
	fresh := newHeapNode(old.value)

	var zero T
	old.value = zero
	if old.kind == dataPiled {
		old.kind = dataPiledNone
	} else {
		old.kind = dataScatteredNone
	}
	t.root = fresh
	return &Forest[T]{root: old}
}

// IntoData drops every descendant and returns the root payload, consuming t.
func (t *Tree[T]) IntoData() T {
	n := t.take()
	n.mustPayload()
	value := n.value
	releaseSubtree(n)
	return value
}

// Drop releases the tree. Nodes still referenced by an RcNode survive with
// their subtrees; everything else is released. Dropping twice panics.
func (t *Tree[T]) Drop() {
	releaseSubtree(t.take())
}

// IntoRc converts the tree into the first shared handle of its root without
// touching the count, consuming t.
func (t *Tree[T]) IntoRc() *RcNode[T] {
	n := t.take()
	n.mustPayload()
	return &RcNode[T]{home: n.home}
}

// IntoIter returns an owning iterator yielding the tree itself once, consuming t.
func (t *Tree[T]) IntoIter() *IntoIter[T] {
	f := NewForest[T]()
	f.PushBack(t)
	return f.IntoIter()
}

// String renders the tree in bracket notation, e.g. "0( 1( 2 3 ) 4 )".
func (t *Tree[T]) String() string {
	if !t.Valid() {
		return "<released>"
	}
	return t.root.String()
}
