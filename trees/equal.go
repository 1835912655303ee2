package trees

// EqualNodes reports whether the subtrees rooted at a and b have the same
// shape and payloads.
func EqualNodes[T comparable](a, b *Node[T]) bool {
	return EqualNodesFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualNodesFunc is EqualNodes with a payload comparison.
//
// Level order with per-node sizes determines a tree uniquely, so comparing
// the two linearizations visit by visit is enough.
func EqualNodesFunc[T any](a, b *Node[T], eq func(T, T) bool) bool {
	if a == b {
		return true
	}
	return equalRuns(once(a), once(b), eq)
}

// Equal reports whether two trees have the same shape and payloads.
func Equal[T comparable](a, b *Tree[T]) bool { return EqualNodes(a.node(), b.node()) }

// EqualFunc is Equal with a payload comparison.
func EqualFunc[T any](a, b *Tree[T], eq func(T, T) bool) bool {
	return EqualNodesFunc(a.node(), b.node(), eq)
}

// ForestEqual reports whether two forests hold equal trees in the same order.
func ForestEqual[T comparable](a, b *Forest[T]) bool {
	return ForestEqualFunc(a, b, func(x, y T) bool { return x == y })
}

// ForestEqualFunc is ForestEqual with a payload comparison.
func ForestEqualFunc[T any](a, b *Forest[T], eq func(T, T) bool) bool {
	ra, rb := a.node(), b.node()
	if ra.size != rb.size {
		return false
	}
	return equalRuns(ra.Iter(), rb.Iter(), eq)
}

func equalRuns[T any](a, b *Iter[T], eq func(T, T) bool) bool {
	sa := NewSplitted[*Node[T], T](a, splitRef[T])
	sb := NewSplitted[*Node[T], T](b, splitRef[T])
	for {
		va, oka := sa.Next()
		vb, okb := sb.Next()
		if oka != okb {
			return false
		}
		if !oka {
			return true
		}
		if va.Size != vb.Size || !eq(va.Data, vb.Data) {
			return false
		}
	}
}
