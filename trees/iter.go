package trees

import "iter"

// Iter is a sized forward iterator over a run of sibling nodes.
//
// The number of items is fixed when the iterator is created, so siblings
// inserted next to the current item during iteration are not visited.
type Iter[T any] struct {
	cur     *Node[T]
	remains int
}

func newIter[T any](head *Node[T], n int) *Iter[T] {
	if head == nil {
		n = 0
	}
	return &Iter[T]{cur: head, remains: n}
}

// Next returns the next sibling, or false once all have been returned.
func (it *Iter[T]) Next() (*Node[T], bool) {
	if it.remains == 0 {
		return nil, false
	}
	n := it.cur
	it.cur = n.next
	it.remains--
	return n, true
}

// Len returns the number of siblings not yet returned.
func (it *Iter[T]) Len() int { return it.remains }

// Iter returns an iterator over the children of n.
func (n *Node[T]) Iter() *Iter[T] { return newIter(n.head, n.size.Degree) }

// Children returns a range-over-func sequence over the children of n.
func (n *Node[T]) Children() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		it := n.Iter()
		for c, ok := it.Next(); ok; c, ok = it.Next() {
			if !yield(c) {
				return
			}
		}
	}
}

// once returns an iterator yielding only n.
func once[T any](n *Node[T]) *Iter[T] { return &Iter[T]{cur: n, remains: 1} }

// Iter returns an iterator over the children of the root.
func (t *Tree[T]) Iter() *Iter[T] { return t.node().Iter() }

// Children returns a sequence over the children of the root.
func (t *Tree[T]) Children() iter.Seq[*Node[T]] { return t.node().Children() }

// Iter returns an iterator over the roots of the forest's trees.
func (f *Forest[T]) Iter() *Iter[T] { return f.node().Iter() }

// Children returns a sequence over the roots of the forest's trees.
func (f *Forest[T]) Children() iter.Seq[*Node[T]] { return f.node().Children() }

// IntoIter pops trees off the front of a forest it owns.
type IntoIter[T any] struct {
	forest *Forest[T]
}

// IntoIter returns an owning iterator over the forest's trees, consuming f.
func (f *Forest[T]) IntoIter() *IntoIter[T] {
	return &IntoIter[T]{forest: &Forest[T]{root: f.take()}}
}

// Next removes and returns the next tree. The caller owns it. Once the
// forest is exhausted its sentinel is released.
func (it *IntoIter[T]) Next() (*Tree[T], bool) {
	if !it.forest.Valid() {
		return nil, false
	}
	t := it.forest.PopFront()
	if t == nil {
		it.forest.Drop()
		return nil, false
	}
	return t, true
}

// Len returns the number of trees not yet returned.
func (it *IntoIter[T]) Len() int {
	if !it.forest.Valid() {
		return 0
	}
	return it.forest.Degree()
}

// Close drops the trees that were never returned. Calling Close more than
// once is harmless.
func (it *IntoIter[T]) Close() {
	if it.forest.Valid() {
		it.forest.Drop()
	}
}

// All returns a sequence over the remaining trees. Trees left over when the
// loop breaks early are dropped.
func (it *IntoIter[T]) All() iter.Seq[*Tree[T]] {
	return func(yield func(*Tree[T]) bool) {
		defer it.Close()
		for t, ok := it.Next(); ok; t, ok = it.Next() {
			if !yield(t) {
				return
			}
		}
	}
}
