package trees

import (
	"fmt"

	"github.com/joshuapare/treekit/pkg/types"
)

func corrupt(format string, args ...any) error {
	return &types.Error{Kind: types.ErrKindCorrupt, Msg: types.ErrCorrupt.Msg, Err: fmt.Errorf(format, args...)}
}

// CheckSizes verifies every node reachable from n: children point back to
// their parent, sibling links are symmetric, tail is the last child, degree
// equals the number of children and descendants equals the sum over children
// of one plus their descendants. The first violation is returned as a
// types.ErrKindCorrupt error.
//
// The check is iterative and stops early on cycles, so it is safe on any input.
func CheckSizes[T any](n *Node[T]) error {
	budget := n.size.Descendants + 1
	visited := 0
	stack := []*Node[T]{n}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visited++
		if visited > budget {
			return corrupt("more than %d nodes reachable", budget)
		}

		var (
			got  Size
			prev *Node[T]
		)
		for c := x.head; c != nil; c = c.next {
			if got.Degree == x.size.Degree {
				return corrupt("node %s: more children than degree %d", label(x), x.size.Degree)
			}
			if c.up != x {
				return corrupt("node %s: child %d does not point back", label(x), got.Degree)
			}
			if c.prev != prev {
				return corrupt("node %s: child %d has a broken prev link", label(x), got.Degree)
			}
			if c.kind == dataNone {
				return corrupt("node %s: child %d is released", label(x), got.Degree)
			}
			got.Degree++
			got.Descendants += 1 + c.size.Descendants
			prev = c
			stack = append(stack, c)
		}
		if x.tail != prev {
			return corrupt("node %s: tail is not the last child", label(x))
		}
		if got != x.size {
			return corrupt("node %s: size %+v, children add up to %+v", label(x), x.size, got)
		}
	}
	return nil
}

func label[T any](n *Node[T]) string {
	if n.hasPayload() {
		return fmt.Sprint(n.value)
	}
	if n.isForest() {
		return "<forest>"
	}
	return "<released>"
}

// Check verifies the size bookkeeping of the whole tree.
func (t *Tree[T]) Check() error { return CheckSizes(t.node()) }

// Check verifies the size bookkeeping of every tree in the forest.
func (f *Forest[T]) Check() error { return CheckSizes(f.node()) }
