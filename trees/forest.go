package trees

import (
	"github.com/joshuapare/treekit/pkg/types"
)

// Forest exclusively owns an ordered list of trees. Internally the trees hang
// off a sentinel node that carries no payload and is never exposed.
type Forest[T any] struct {
	root *Node[T]
}

// NewForest creates an empty forest in scattered storage.
func NewForest[T any]() *Forest[T] {
	return &Forest[T]{root: newHeapSentinel[T]()}
}

func (f *Forest[T]) node() *Node[T] {
	if f == nil || f.root == nil {
		panic(types.ErrReleased)
	}
	return f.root
}

func (f *Forest[T]) take() *Node[T] {
	n := f.node()
	f.root = nil
	return n
}

// Valid reports whether f still owns its trees (not dropped or consumed).
func (f *Forest[T]) Valid() bool { return f != nil && f.root != nil }

// HasNoChild reports whether the forest is empty.
func (f *Forest[T]) HasNoChild() bool { return f.node().HasNoChild() }

// Degree returns the number of top-level trees.
func (f *Forest[T]) Degree() int { return f.node().Degree() }

// NodeCount returns the number of nodes across all trees.
func (f *Forest[T]) NodeCount() int { return f.node().NodeCount() }

// Size returns the forest's degree and total node count.
func (f *Forest[T]) Size() Size { return f.node().Size() }

// Strategy reports the storage strategy of the forest's sentinel.
func (f *Forest[T]) Strategy() Strategy { return f.node().Strategy() }

// Front returns the root of the first tree, or nil.
func (f *Forest[T]) Front() *Node[T] { return f.node().Front() }

// Back returns the root of the last tree, or nil.
func (f *Forest[T]) Back() *Node[T] { return f.node().Back() }

// PushFront adds tree as the first tree, consuming it.
func (f *Forest[T]) PushFront(tree *Tree[T]) { f.node().PushFront(tree) }

// PushBack adds tree as the last tree, consuming it.
func (f *Forest[T]) PushBack(tree *Tree[T]) { f.node().PushBack(tree) }

// PopFront removes and returns the first tree, or nil.
func (f *Forest[T]) PopFront() *Tree[T] { return f.node().PopFront() }

// PopBack removes and returns the last tree, or nil.
func (f *Forest[T]) PopBack() *Tree[T] { return f.node().PopBack() }

// Prepend moves other's trees in front of f's trees, consuming other.
func (f *Forest[T]) Prepend(other *Forest[T]) { f.node().Prepend(other) }

// Append moves other's trees after f's trees, consuming other.
func (f *Forest[T]) Append(other *Forest[T]) { f.node().Append(other) }

// Drop releases the forest and every tree in it.
func (f *Forest[T]) Drop() {
	releaseSubtree(f.take())
}

// IntoTree makes the forest the children of a new scattered root, consuming f.
func (f *Forest[T]) IntoTree(value T) *Tree[T] {
	t := New(value)
	t.Append(f)
	return t
}

// String renders the forest in bracket notation, e.g. "( 1 2( 3 ) )" or "()".
func (f *Forest[T]) String() string {
	if !f.Valid() {
		return "<released>"
	}
	return f.root.String()
}
