package trees

import "github.com/joshuapare/treekit/pkg/types"

// CloneFunc copies one payload. Deep clones use plain assignment when none is given.
type CloneFunc[T any] func(T) T

// A clone is rebuilt from a linearization of a structure that is consistent
// by construction, so a failure means the source itself is corrupt.
func mustClone[S any](s S, err error) S {
	if err != nil {
		panic(&types.Error{Kind: types.ErrKindCorrupt, Msg: types.ErrCorrupt.Msg, Err: err})
	}
	return s
}

var trusted = DecodeOptions{Trust: true}

// DeepClone copies the subtree rooted at n into a new piled tree.
func (n *Node[T]) DeepClone() *Tree[T] { return n.DeepCloneFunc(nil) }

// DeepCloneFunc is DeepClone with a payload copy function.
func (n *Node[T]) DeepCloneFunc(clone CloneFunc[T]) *Tree[T] {
	b := n.BFS()
	if clone != nil {
		b = MapTree[T, T](b, clone)
	}
	return mustClone(DecodeTree(b, trusted))
}

// DeepCloneForest copies the children of n into a new piled forest.
func (n *Node[T]) DeepCloneForest() *Forest[T] { return n.DeepCloneForestFunc(nil) }

// DeepCloneForestFunc is DeepCloneForest with a payload copy function.
func (n *Node[T]) DeepCloneForestFunc(clone CloneFunc[T]) *Forest[T] {
	b := n.BFSChildren()
	if clone != nil {
		b = MapForest[T, T](b, clone)
	}
	return mustClone(DecodeForest(b, trusted))
}

// DeepClone copies the tree into new piled storage.
func (t *Tree[T]) DeepClone() *Tree[T] { return t.node().DeepClone() }

// DeepCloneFunc copies the tree, copying payloads with clone.
func (t *Tree[T]) DeepCloneFunc(clone CloneFunc[T]) *Tree[T] { return t.node().DeepCloneFunc(clone) }

// DeepClone copies the forest into new piled storage.
func (f *Forest[T]) DeepClone() *Forest[T] { return f.node().DeepCloneForest() }

// DeepCloneFunc copies the forest, copying payloads with clone.
func (f *Forest[T]) DeepCloneFunc(clone CloneFunc[T]) *Forest[T] {
	return f.node().DeepCloneForestFunc(clone)
}
