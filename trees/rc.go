package trees

import (
	"iter"

	"github.com/joshuapare/treekit/pkg/types"
)

var (
	errNotRoot   = &types.Error{Kind: types.ErrKindState, Msg: "shared node is not a root"}
	errNotUnique = &types.Error{Kind: types.ErrKindState, Msg: "shared node has other strong handles"}
	errSentinel  = &types.Error{Kind: types.ErrKindState, Msg: "forest sentinel cannot be shared"}
)

// RcNode is a strong shared handle to a node of either storage strategy.
//
// Each RcNode holds one strong share and must be dropped exactly once. The
// node's parent holds a share of its own, so a handle to a child stays valid
// after the child is popped and dropped elsewhere. When the last share of a
// root goes away its children are released in turn.
//
// Payload access is checked at run time: Data may be held by many readers,
// DataMut by one writer, and structural mutation needs no outstanding borrow.
// A conflicting borrow panics with a *types.Error of kind types.ErrKindBorrow.
type RcNode[T any] struct {
	home storage[T]
}

// WeakNode refers to a node without keeping its payload alive.
type WeakNode[T any] struct {
	home storage[T]
}

// Rc returns a new strong handle to n, incrementing its count.
func (n *Node[T]) Rc() *RcNode[T] {
	if n.isForest() {
		panic(errSentinel)
	}
	n.mustPayload()
	n.home.retain()
	return &RcNode[T]{home: n.home}
}

func (r *RcNode[T]) node() *Node[T] {
	if r == nil || r.home == nil {
		panic(types.ErrReleased)
	}
	return r.home.node()
}

// read runs fn under a shared borrow.
func (r *RcNode[T]) read(fn func(n *Node[T])) {
	n := r.node()
	f := r.home.borrows()
	f.acquire()
	defer f.release()
	fn(n)
}

// write runs fn under an exclusive borrow.
func (r *RcNode[T]) write(fn func(n *Node[T])) {
	n := r.node()
	f := r.home.borrows()
	f.acquireMut()
	defer f.releaseMut()
	fn(n)
}

// Clone returns another strong handle to the same node.
func (r *RcNode[T]) Clone() *RcNode[T] {
	r.node()
	r.home.retain()
	return &RcNode[T]{home: r.home}
}

// Drop gives back this handle's share. If it was the last share of a root
// node, its children are released as well. Dropping twice panics.
func (r *RcNode[T]) Drop() {
	n := r.node()
	r.home = nil
	releaseSubtree(n)
}

// Downgrade returns a weak handle to the same node.
func (r *RcNode[T]) Downgrade() *WeakNode[T] {
	r.node()
	r.home.retainWeak()
	return &WeakNode[T]{home: r.home}
}

// StrongCount returns the number of strong shares, the parent's included.
func (r *RcNode[T]) StrongCount() int {
	r.node()
	return r.home.strongCount()
}

// WeakCount returns the number of live weak handles.
func (r *RcNode[T]) WeakCount() int {
	r.node()
	return r.home.weakCount()
}

// Strategy reports the node's storage strategy.
func (r *RcNode[T]) Strategy() Strategy { return r.node().Strategy() }

// Ptr returns the underlying node. The pointer bypasses borrow checking and
// is valid while any strong handle exists.
func (r *RcNode[T]) Ptr() *Node[T] { return r.node() }

// SameNode reports whether r and other refer to the same node.
func (r *RcNode[T]) SameNode(other *RcNode[T]) bool { return r.node() == other.node() }

// IsRoot reports whether the node has no parent.
func (r *RcNode[T]) IsRoot() bool {
	var root bool
	r.read(func(n *Node[T]) { root = n.Parent() == nil })
	return root
}

// Data borrows the payload for reading. Release the returned Ref when done.
func (r *RcNode[T]) Data() *Ref[T] {
	n := r.node()
	f := r.home.borrows()
	f.acquire()
	return &Ref[T]{value: &n.value, flag: f}
}

// DataMut borrows the payload for writing. Release the returned RefMut when done.
func (r *RcNode[T]) DataMut() *RefMut[T] {
	n := r.node()
	f := r.home.borrows()
	f.acquireMut()
	return &RefMut[T]{value: &n.value, flag: f}
}

// Read calls fn with the payload under a shared borrow.
func (r *RcNode[T]) Read(fn func(T)) { r.read(func(n *Node[T]) { fn(n.value) }) }

// Update calls fn with a pointer to the payload under an exclusive borrow.
func (r *RcNode[T]) Update(fn func(*T)) { r.write(func(n *Node[T]) { fn(&n.value) }) }

// HasNoChild reports whether the node has no children.
func (r *RcNode[T]) HasNoChild() bool {
	var ok bool
	r.read(func(n *Node[T]) { ok = n.HasNoChild() })
	return ok
}

// Degree returns the number of children.
func (r *RcNode[T]) Degree() int {
	var d int
	r.read(func(n *Node[T]) { d = n.Degree() })
	return d
}

// NodeCount returns the number of nodes in the subtree.
func (r *RcNode[T]) NodeCount() int {
	var c int
	r.read(func(n *Node[T]) { c = n.NodeCount() })
	return c
}

// rcOf wraps n in a new strong handle, or returns nil.
func rcOf[T any](n *Node[T]) *RcNode[T] {
	if n == nil {
		return nil
	}
	return n.Rc()
}

// Front returns a new handle to the first child, or nil.
func (r *RcNode[T]) Front() *RcNode[T] {
	var out *RcNode[T]
	r.read(func(n *Node[T]) { out = rcOf(n.Front()) })
	return out
}

// Back returns a new handle to the last child, or nil.
func (r *RcNode[T]) Back() *RcNode[T] {
	var out *RcNode[T]
	r.read(func(n *Node[T]) { out = rcOf(n.Back()) })
	return out
}

// Parent returns a new handle to the parent, or nil.
func (r *RcNode[T]) Parent() *RcNode[T] {
	var out *RcNode[T]
	r.read(func(n *Node[T]) { out = rcOf(n.Parent()) })
	return out
}

// PushFront adds tree as the first child, consuming tree.
func (r *RcNode[T]) PushFront(tree *Tree[T]) { r.write(func(n *Node[T]) { n.PushFront(tree) }) }

// PushBack adds tree as the last child, consuming tree.
func (r *RcNode[T]) PushBack(tree *Tree[T]) { r.write(func(n *Node[T]) { n.PushBack(tree) }) }

// PopFront removes the first child. The parent's share moves to the returned handle.
func (r *RcNode[T]) PopFront() *RcNode[T] {
	var out *RcNode[T]
	r.write(func(n *Node[T]) {
		if t := n.PopFront(); t != nil {
			out = t.IntoRc()
		}
	})
	return out
}

// PopBack removes the last child. The parent's share moves to the returned handle.
func (r *RcNode[T]) PopBack() *RcNode[T] {
	var out *RcNode[T]
	r.write(func(n *Node[T]) {
		if t := n.PopBack(); t != nil {
			out = t.IntoRc()
		}
	})
	return out
}

// Prepend moves forest's trees in front of the children, consuming forest.
func (r *RcNode[T]) Prepend(forest *Forest[T]) { r.write(func(n *Node[T]) { n.Prepend(forest) }) }

// Append moves forest's trees after the children, consuming forest.
func (r *RcNode[T]) Append(forest *Forest[T]) { r.write(func(n *Node[T]) { n.Append(forest) }) }

// InsertPrevSib inserts sib before the node, consuming sib.
func (r *RcNode[T]) InsertPrevSib(sib *Tree[T]) { r.write(func(n *Node[T]) { n.InsertPrevSib(sib) }) }

// InsertNextSib inserts sib after the node, consuming sib.
func (r *RcNode[T]) InsertNextSib(sib *Tree[T]) { r.write(func(n *Node[T]) { n.InsertNextSib(sib) }) }

// Detach unlinks the node from its parent. The parent's share is given back;
// this handle keeps the subtree alive.
func (r *RcNode[T]) Detach() {
	var t *Tree[T]
	r.write(func(n *Node[T]) { t = n.Detach() })
	releaseSubtree(t.take())
}

// Iter returns an iterator producing a new handle for each child.
func (r *RcNode[T]) Iter() *IterRc[T] {
	var it *Iter[T]
	r.read(func(n *Node[T]) { it = n.Iter() })
	return &IterRc[T]{it: it}
}

// Children yields a new handle for each child. The loop body owns each
// handle and must drop it.
func (r *RcNode[T]) Children() iter.Seq[*RcNode[T]] {
	return func(yield func(*RcNode[T]) bool) {
		it := r.Iter()
		for c, ok := it.Next(); ok; c, ok = it.Next() {
			if !yield(c) {
				return
			}
		}
	}
}

// DeepClone copies the subtree into a new piled tree.
func (r *RcNode[T]) DeepClone() *Tree[T] {
	var t *Tree[T]
	r.read(func(n *Node[T]) { t = n.DeepClone() })
	return t
}

// IntoTree turns the handle back into an exclusively owned tree. The node must
// be a root and this must be its only strong handle.
func (r *RcNode[T]) IntoTree() *Tree[T] {
	n := r.node()
	if n.up != nil {
		panic(errNotRoot)
	}
	if r.home.strongCount() != 1 {
		panic(errNotUnique)
	}
	if *r.home.borrows() != 0 {
		panic(types.ErrAlreadyBorrowed)
	}
	r.home = nil
	return &Tree[T]{root: n}
}

// String renders the subtree in bracket notation.
func (r *RcNode[T]) String() string {
	var s string
	r.read(func(n *Node[T]) { s = n.String() })
	return s
}

// RcEqual reports whether two handles refer to equal subtrees.
func RcEqual[T comparable](a, b *RcNode[T]) bool { return EqualNodes(a.node(), b.node()) }

// IterRc yields a new strong handle for each sibling.
type IterRc[T any] struct {
	it *Iter[T]
}

// Next returns a handle to the next sibling.
func (it *IterRc[T]) Next() (*RcNode[T], bool) {
	n, ok := it.it.Next()
	if !ok {
		return nil, false
	}
	return n.Rc(), true
}

// Len returns the number of siblings not yet returned.
func (it *IterRc[T]) Len() int { return it.it.Len() }

func (w *WeakNode[T]) live() storage[T] {
	if w == nil || w.home == nil {
		panic(types.ErrReleased)
	}
	return w.home
}

// Upgrade returns a strong handle while the node's payload is alive.
func (w *WeakNode[T]) Upgrade() (*RcNode[T], bool) {
	h := w.live()
	if h.strongCount() == 0 {
		return nil, false
	}
	h.retain()
	return &RcNode[T]{home: h}, true
}

// Drop gives back the weak share. Dropping twice panics.
func (w *WeakNode[T]) Drop() {
	h := w.live()
	w.home = nil
	h.releaseWeak()
}
