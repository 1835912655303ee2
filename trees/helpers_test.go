package trees

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/treekit/pkg/types"
)

// tr builds a scattered tree with the given children.
func tr(v int, children ...*Tree[int]) *Tree[int] {
	t := New(v)
	for _, c := range children {
		t.PushBack(c)
	}
	return t
}

// fr builds a scattered forest of the given trees.
func fr(trees ...*Tree[int]) *Forest[int] {
	f := NewForest[int]()
	for _, t := range trees {
		f.PushBack(t)
	}
	return f
}

// scenarioA is 0( 1( 2 3 ) 4( 5 6 ) ).
func scenarioA() *Tree[int] {
	return tr(0, tr(1, tr(2), tr(3)), tr(4, tr(5), tr(6)))
}

// piledA is scenarioA rebuilt in one arena.
func piledA(t *testing.T) *Tree[int] {
	t.Helper()
	p, err := TreeFromBFS(scenarioA().IntoBFS())
	require.NoError(t, err)
	return p
}

func describe(v WalkVisit[int], ok bool) string {
	if !ok {
		return "None"
	}
	return fmt.Sprintf("%s(%v)", v.Kind, v.Node.Data())
}

func arenaOf[T any](n *Node[T]) *arena[T] {
	return n.home.(*slot[T]).owner
}

// requirePanicKind asserts fn panics with a *types.Error of kind.
func requirePanicKind(t *testing.T, kind types.ErrKind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(*types.Error)
		require.True(t, ok, "panic value %T is not *types.Error", r)
		require.Equal(t, kind, err.Kind, "panic: %v", err)
	}()
	fn()
}
