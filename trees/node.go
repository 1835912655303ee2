package trees

import (
	"github.com/joshuapare/treekit/pkg/types"
)

// Node is one element of a tree: a payload, an intrusive sibling list of
// children and a link to its parent.
//
// Nodes are never created directly; they come from [New], the bulk builders,
// or a node's children. A *Node stays valid while the structure that owns it
// does.
type Node[T any] struct {
	prev, next *Node[T] // siblings
	head, tail *Node[T] // first and last child
	up         *Node[T] // parent, or the forest sentinel for top-level trees
	size       Size
	kind       dataKind
	value      T
	home       storage[T]
}

// isForest reports whether n is a forest sentinel.
func (n *Node[T]) isForest() bool {
	return n.kind == dataScatteredNone || n.kind == dataPiledNone
}

func (n *Node[T]) hasPayload() bool {
	return n.kind == dataScattered || n.kind == dataPiled
}

func (n *Node[T]) clearPayload() {
	var zero T
	n.value = zero
	n.kind = dataNone
}

func (n *Node[T]) mustPayload() {
	if !n.hasPayload() {
		panic(types.ErrReleased)
	}
}

func (n *Node[T]) connectNext(next *Node[T]) {
	n.next = next
	next.prev = n
}

// incSizes accounts for degree new children holding descendants nodes in total.
// The degree change stays local; the descendant delta reaches every ancestor.
func (n *Node[T]) incSizes(degree, descendants int) {
	n.size.Degree += degree
	n.size.Descendants += descendants
	for p := n.up; p != nil; p = p.up {
		p.size.Descendants += descendants
	}
}

func (n *Node[T]) decSizes(degree, descendants int) {
	n.size.Degree -= degree
	n.size.Descendants -= descendants
	for p := n.up; p != nil; p = p.up {
		p.size.Descendants -= descendants
	}
}

// Data returns a copy of the payload.
func (n *Node[T]) Data() T {
	n.mustPayload()
	return n.value
}

// DataMut returns a pointer to the payload for in-place mutation.
func (n *Node[T]) DataMut() *T {
	n.mustPayload()
	return &n.value
}

// SetData replaces the payload.
func (n *Node[T]) SetData(v T) {
	n.mustPayload()
	n.value = v
}

// HasNoChild reports whether n has no children.
func (n *Node[T]) HasNoChild() bool { return n.head == nil }

// Degree returns the number of direct children.
func (n *Node[T]) Degree() int { return n.size.Degree }

// Size returns the node's degree and descendant count.
func (n *Node[T]) Size() Size { return n.size }

// NodeCount returns the number of nodes in the subtree rooted at n, n included.
func (n *Node[T]) NodeCount() int {
	if n.isForest() {
		return n.size.Descendants
	}
	return n.size.Descendants + 1
}

// Strategy reports how n's memory is held.
func (n *Node[T]) Strategy() Strategy {
	if n.home == nil {
		return Released
	}
	return n.home.strategy()
}

// Parent returns the parent of n, or nil for a tree root or a top-level tree of a forest.
func (n *Node[T]) Parent() *Node[T] {
	for p := n.up; p != nil; p = p.up {
		if !p.isForest() {
			return p
		}
	}
	return nil
}

// Front returns the first child, or nil.
func (n *Node[T]) Front() *Node[T] { return n.head }

// Back returns the last child, or nil.
func (n *Node[T]) Back() *Node[T] { return n.tail }

// NextSib returns the following sibling, or nil.
func (n *Node[T]) NextSib() *Node[T] { return n.next }

// PrevSib returns the preceding sibling, or nil.
func (n *Node[T]) PrevSib() *Node[T] { return n.prev }

// PushFront adds tree as the first child of n, consuming tree.
func (n *Node[T]) PushFront(tree *Tree[T]) {
	child := tree.take()
	child.up = n
	if n.head == nil {
		n.tail = child
	} else {
		child.connectNext(n.head)
	}
	n.head = child
	n.incSizes(1, child.NodeCount())
}

// PushBack adds tree as the last child of n, consuming tree.
func (n *Node[T]) PushBack(tree *Tree[T]) {
	child := tree.take()
	child.up = n
	if n.tail == nil {
		n.head = child
	} else {
		n.tail.connectNext(child)
	}
	n.tail = child
	n.incSizes(1, child.NodeCount())
}

// PopFront removes the first child and returns it as a tree, or nil if n has no children.
func (n *Node[T]) PopFront() *Tree[T] {
	head := n.head
	if head == nil {
		return nil
	}
	if n.size.Degree == 1 {
		n.head, n.tail = nil, nil
	} else {
		n.head = head.next
		n.head.prev = nil
		head.next = nil
	}
	n.decSizes(1, head.NodeCount())
	head.up = nil
	return &Tree[T]{root: head}
}

// PopBack removes the last child and returns it as a tree, or nil if n has no children.
func (n *Node[T]) PopBack() *Tree[T] {
	tail := n.tail
	if tail == nil {
		return nil
	}
	if n.size.Degree == 1 {
		n.head, n.tail = nil, nil
	} else {
		n.tail = tail.prev
		n.tail.next = nil
		tail.prev = nil
	}
	n.decSizes(1, tail.NodeCount())
	tail.up = nil
	return &Tree[T]{root: tail}
}

// InsertPrevSib inserts sib immediately before n, consuming sib.
// A running iterator over n's siblings does not visit the inserted tree.
// Panics if n has no parent.
func (n *Node[T]) InsertPrevSib(sib *Tree[T]) {
	up := n.up
	if up == nil {
		panic(types.ErrNoParent)
	}
	s := sib.take()
	s.up = up
	if n.prev != nil {
		n.prev.connectNext(s)
	} else {
		up.head = s
	}
	s.connectNext(n)
	up.incSizes(1, s.NodeCount())
}

// InsertNextSib inserts sib immediately after n, consuming sib.
// A running iterator over n's siblings does not visit the inserted tree.
// Panics if n has no parent.
func (n *Node[T]) InsertNextSib(sib *Tree[T]) {
	up := n.up
	if up == nil {
		panic(types.ErrNoParent)
	}
	s := sib.take()
	s.up = up
	if n.next != nil {
		s.connectNext(n.next)
	} else {
		up.tail = s
	}
	n.connectNext(s)
	up.incSizes(1, s.NodeCount())
}

// Prepend moves every tree of forest in front of n's children, consuming forest.
// Cost is proportional to the forest's degree, not its node count.
func (n *Node[T]) Prepend(forest *Forest[T]) {
	f := forest.take()
	if f.head != nil {
		f.adopt(n)
		if n.head == nil {
			n.tail = f.tail
		} else {
			f.tail.connectNext(n.head)
		}
		n.head = f.head
		n.incSizes(f.size.Degree, f.size.Descendants)
		f.clearChildren()
	}
	releaseSubtree(f)
}

// Append moves every tree of forest after n's children, consuming forest.
// Cost is proportional to the forest's degree, not its node count.
func (n *Node[T]) Append(forest *Forest[T]) {
	f := forest.take()
	if f.head != nil {
		f.adopt(n)
		if n.tail == nil {
			n.head = f.head
		} else {
			n.tail.connectNext(f.head)
		}
		n.tail = f.tail
		n.incSizes(f.size.Degree, f.size.Descendants)
		f.clearChildren()
	}
	releaseSubtree(f)
}

// adopt re-parents every child of n onto parent.
func (n *Node[T]) adopt(parent *Node[T]) {
	for c := n.head; c != nil; c = c.next {
		c.up = parent
	}
}

func (n *Node[T]) clearChildren() {
	n.head, n.tail = nil, nil
	n.size = Size{}
}

// Detach unlinks n from its parent in O(1) and returns it as a standalone tree.
// Panics if n has no parent.
func (n *Node[T]) Detach() *Tree[T] {
	up := n.up
	if up == nil {
		panic(types.ErrNoParent)
	}
	switch {
	case up.size.Degree == 1:
		up.head, up.tail = nil, nil
	case n.prev == nil:
		up.head = n.next
		n.next.prev = nil
	case n.next == nil:
		up.tail = n.prev
		n.prev.next = nil
	default:
		n.prev.connectNext(n.next)
	}
	n.prev, n.next = nil, nil
	up.decSizes(1, n.NodeCount())
	n.up = nil
	return &Tree[T]{root: n}
}

// releaseSubtree gives back the share held on root and, for every node whose
// last share that was, the shares held on its children. It uses an explicit
// work list so depth never grows the call stack.
func releaseSubtree[T any](root *Node[T]) {
	work := []*Node[T]{root}
	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]

		if n.home.strongCount() == 1 {
			for c := n.head; c != nil; {
				next := c.next
				c.prev, c.next, c.up = nil, nil, nil
				work = append(work, c)
				c = next
			}
			n.clearChildren()
		}
		n.home.release()
	}
}
