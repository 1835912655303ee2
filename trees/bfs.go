package trees

import (
	"iter"
	"slices"
)

// Visit is one level-order item: a payload and the size of the node it came
// from. Size.Degree tells a decoder how many later visits are its children.
type Visit[V any] struct {
	Data V
	Size Size
}

// Sibs is a sized iterator over a run of siblings. *Iter and *IntoIter
// implement it for nodes and owned trees.
type Sibs[S any] interface {
	Next() (S, bool)
	Len() int
}

// SplitFunc breaks one item into its payload, an iterator over its direct
// children, and its descendant count.
type SplitFunc[S, V any] func(item S) (data V, children Sibs[S], descendants int)

// Splitted linearizes a hierarchy into level order. It keeps a FIFO of
// pending sibling iterators; each item taken from the front iterator is split
// and its children are queued at the back.
type Splitted[S, V any] struct {
	queue []Sibs[S]
	split SplitFunc[S, V]
}

// NewSplitted starts a linearization from seed.
func NewSplitted[S, V any](seed Sibs[S], split SplitFunc[S, V]) *Splitted[S, V] {
	return &Splitted[S, V]{queue: []Sibs[S]{seed}, split: split}
}

// Next returns the next visit in level order.
func (s *Splitted[S, V]) Next() (Visit[V], bool) {
	for len(s.queue) > 0 {
		item, ok := s.queue[0].Next()
		if !ok {
			s.queue[0] = nil
			s.queue = s.queue[1:]
			continue
		}
		data, children, descendants := s.split(item)
		s.queue = append(s.queue, children)
		return Visit[V]{Data: data, Size: Size{Degree: children.Len(), Descendants: descendants}}, true
	}
	return Visit[V]{}, false
}

// Close releases whatever the queued iterators still own.
func (s *Splitted[S, V]) Close() {
	for i, sibs := range s.queue {
		if c, ok := sibs.(interface{ Close() }); ok {
			c.Close()
		}
		s.queue[i] = nil
	}
	s.queue = nil
}

// All returns the remaining visits as a sequence. The linearizer is closed
// when the loop ends, so owned items not yet reached are released.
func (s *Splitted[S, V]) All() iter.Seq[Visit[V]] {
	return func(yield func(Visit[V]) bool) {
		defer s.Close()
		for v, ok := s.Next(); ok; v, ok = s.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// BFSTree is the level-order form of a tree. Size is {1, root descendants}.
type BFSTree[V any] struct {
	Visits iter.Seq[Visit[V]]
	Size   Size
}

// BFSForest is the level-order form of a forest. Size is the forest's own
// {degree, node count}.
type BFSForest[V any] struct {
	Visits iter.Seq[Visit[V]]
	Size   Size
}

// NewBFSTree wraps a recorded visit list. The first visit is the root.
func NewBFSTree[V any](visits []Visit[V]) BFSTree[V] {
	var size Size
	if len(visits) > 0 {
		size = Size{Degree: 1, Descendants: visits[0].Size.Descendants}
	}
	return BFSTree[V]{Visits: slices.Values(visits), Size: size}
}

// NewBFSForest wraps a recorded visit list of a forest of the given size.
func NewBFSForest[V any](size Size, visits []Visit[V]) BFSForest[V] {
	return BFSForest[V]{Visits: slices.Values(visits), Size: size}
}

// Collect drains the visits into a slice.
func (b BFSTree[V]) Collect() []Visit[V] { return collectVisits(b.Visits, b.Size.Descendants+1) }

// Collect drains the visits into a slice.
func (b BFSForest[V]) Collect() []Visit[V] { return collectVisits(b.Visits, b.Size.Descendants) }

func collectVisits[V any](seq iter.Seq[Visit[V]], hint int) []Visit[V] {
	if hint < 0 {
		hint = 0
	}
	out := make([]Visit[V], 0, hint)
	for v := range seq {
		out = append(out, v)
	}
	return out
}

// MapTree transforms every payload of b with f, keeping sizes.
func MapTree[V, W any](b BFSTree[V], f func(V) W) BFSTree[W] {
	return BFSTree[W]{Visits: mapVisits(b.Visits, f), Size: b.Size}
}

// MapForest transforms every payload of b with f, keeping sizes.
func MapForest[V, W any](b BFSForest[V], f func(V) W) BFSForest[W] {
	return BFSForest[W]{Visits: mapVisits(b.Visits, f), Size: b.Size}
}

func mapVisits[V, W any](seq iter.Seq[Visit[V]], f func(V) W) iter.Seq[Visit[W]] {
	return func(yield func(Visit[W]) bool) {
		for v := range seq {
			if !yield(Visit[W]{Data: f(v.Data), Size: v.Size}) {
				return
			}
		}
	}
}

// ============================================================================
// Split capabilities
// ============================================================================

func splitRef[T any](n *Node[T]) (T, Sibs[*Node[T]], int) {
	return n.value, n.Iter(), n.size.Descendants
}

func splitMut[T any](n *Node[T]) (*T, Sibs[*Node[T]], int) {
	return &n.value, n.Iter(), n.size.Descendants
}

// splitOwned consumes t: its children become an owning iterator and its root
// payload is moved out.
func splitOwned[T any](t *Tree[T]) (T, Sibs[*Tree[T]], int) {
	descendants := t.node().size.Descendants
	children := t.Abandon().IntoIter()
	return t.IntoData(), children, descendants
}

func rootSize[T any](n *Node[T]) Size {
	return Size{Degree: 1, Descendants: n.size.Descendants}
}

// levelOrder yields the visits of a fresh linearization each time it is
// ranged over. Owned seeds hand out the same iterator, so they run once.
func levelOrder[S, V any](seed func() Sibs[S], split SplitFunc[S, V]) iter.Seq[Visit[V]] {
	return func(yield func(Visit[V]) bool) {
		NewSplitted(seed(), split).All()(yield)
	}
}

// BFS linearizes the subtree rooted at n, copying payloads.
func (n *Node[T]) BFS() BFSTree[T] {
	seed := func() Sibs[*Node[T]] { return once(n) }
	return BFSTree[T]{Visits: levelOrder(seed, splitRef[T]), Size: rootSize(n)}
}

// BFSMut linearizes the subtree rooted at n with pointers to the payloads.
func (n *Node[T]) BFSMut() BFSTree[*T] {
	seed := func() Sibs[*Node[T]] { return once(n) }
	return BFSTree[*T]{Visits: levelOrder(seed, splitMut[T]), Size: rootSize(n)}
}

// BFSChildren linearizes n's children as a forest.
func (n *Node[T]) BFSChildren() BFSForest[T] {
	seed := func() Sibs[*Node[T]] { return n.Iter() }
	return BFSForest[T]{Visits: levelOrder(seed, splitRef[T]), Size: n.size}
}

// BFSChildrenMut linearizes n's children as a forest with pointers to the payloads.
func (n *Node[T]) BFSChildrenMut() BFSForest[*T] {
	seed := func() Sibs[*Node[T]] { return n.Iter() }
	return BFSForest[*T]{Visits: levelOrder(seed, splitMut[T]), Size: n.size}
}

// BFS linearizes the tree, copying payloads.
func (t *Tree[T]) BFS() BFSTree[T] { return t.node().BFS() }

// BFSMut linearizes the tree with pointers to the payloads.
func (t *Tree[T]) BFSMut() BFSTree[*T] { return t.node().BFSMut() }

// BFSChildrenMut linearizes the root's children with pointers to the payloads.
func (t *Tree[T]) BFSChildrenMut() BFSForest[*T] { return t.node().BFSChildrenMut() }

// IntoBFS linearizes the tree by moving payloads out, consuming t. Each node
// is released once visited; nodes not reached when the sequence stops early
// are released then. The sequence can be ranged over once.
func (t *Tree[T]) IntoBFS() BFSTree[T] {
	size := rootSize(t.node())
	it := t.IntoIter()
	seed := func() Sibs[*Tree[T]] { return it }
	return BFSTree[T]{Visits: levelOrder(seed, splitOwned[T]), Size: size}
}

// BFS linearizes the forest, copying payloads.
func (f *Forest[T]) BFS() BFSForest[T] { return f.node().BFSChildren() }

// BFSMut linearizes the forest with pointers to the payloads.
func (f *Forest[T]) BFSMut() BFSForest[*T] { return f.node().BFSChildrenMut() }

// IntoBFS linearizes the forest by moving payloads out, consuming f. The
// sequence can be ranged over once.
func (f *Forest[T]) IntoBFS() BFSForest[T] {
	size := f.node().size
	it := f.IntoIter()
	seed := func() Sibs[*Tree[T]] { return it }
	return BFSForest[T]{Visits: levelOrder(seed, splitOwned[T]), Size: size}
}
