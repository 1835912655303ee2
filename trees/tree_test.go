package trees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/treekit/pkg/types"
)

func TestTree_NewIsScattered(t *testing.T) {
	tree := New("a")
	assert.Equal(t, Scattered, tree.Strategy())
	assert.Equal(t, "a", tree.Data())
	assert.Equal(t, 1, tree.NodeCount())
	assert.True(t, tree.HasNoChild())
}

func TestTree_Abandon(t *testing.T) {
	tree := tr(0, tr(1), tr(2))

	forest := tree.Abandon()

	assert.Equal(t, "( 1 2 )", forest.String())
	assert.Equal(t, "0", tree.String())
	assert.True(t, Equal(tree, New(0)))
	assert.Nil(t, forest.Front().Parent())
	require.NoError(t, forest.Check())
}

func TestTree_AbandonKeepsChildStrategy(t *testing.T) {
	tree := piledA(t)
	a := arenaOf(tree.Root())

	forest := tree.Abandon()

	assert.Equal(t, Scattered, tree.Strategy())
	assert.Equal(t, Piled, forest.Strategy())
	assert.Equal(t, Piled, forest.Front().Strategy())
	assert.Equal(t, "( 1( 2 3 ) 4( 5 6 ) )", forest.String())

	tree.Drop()
	assert.Equal(t, 7, a.live)
	forest.Drop()
	assert.Equal(t, 0, a.live)
	assert.Nil(t, a.slots)
}

func TestTree_IntoData(t *testing.T) {
	tree := tr(7, tr(8))
	child := tree.Front()

	assert.Equal(t, 7, tree.IntoData())
	assert.False(t, tree.Valid())
	assert.Equal(t, Released, child.Strategy())
}

func TestTree_DropReleasesEveryNode(t *testing.T) {
	w := NewTreeWalk(scenarioA())
	var nodes []*Node[int]
	for v := range w.All() {
		if v.Kind != VisitEnd {
			nodes = append(nodes, v.Node)
		}
	}
	tree := w.Finish()
	require.Len(t, nodes, 7)

	tree.Drop()

	for _, n := range nodes {
		assert.Equal(t, Released, n.Strategy())
	}
	requirePanicKind(t, types.ErrKindState, tree.Drop)
}

func TestTree_DropPiledFreesArena(t *testing.T) {
	tree := piledA(t)
	a := arenaOf(tree.Root())
	require.Equal(t, 7, a.live)
	require.Len(t, a.slots, 7)

	tree.Drop()

	assert.Equal(t, 0, a.live)
	assert.Nil(t, a.slots)
}

func TestTree_DropDeepTreeIsIterative(t *testing.T) {
	const depth = 200_000
	tree := New(depth - 1)
	deepest := tree.Root()
	for i := depth - 2; i >= 0; i-- {
		parent := New(i)
		parent.PushBack(tree)
		tree = parent
	}
	assert.Equal(t, depth, tree.NodeCount())
	assert.Equal(t, depth, tree.Stats().MaxDepth)
	require.NoError(t, tree.Check())

	tree.Drop()
	assert.Equal(t, Released, deepest.Strategy())
}

func TestTree_MixedStrategiesGraft(t *testing.T) {
	host := tr(10, tr(11))
	piled := piledA(t)
	a := arenaOf(piled.Root())

	host.PushBack(piled)

	assert.Equal(t, "10( 11 0( 1( 2 3 ) 4( 5 6 ) ) )", host.String())
	assert.Equal(t, 9, host.NodeCount())
	s := host.Stats()
	assert.Equal(t, 2, s.Scattered)
	assert.Equal(t, 7, s.Piled)
	require.NoError(t, host.Check())

	// Moving a piled subtree out and dropping it only releases its own slots.
	sub := host.Back().PopFront() // 1( 2 3 )
	sub.Drop()
	assert.Equal(t, 4, a.live)

	host.Drop()
	assert.Equal(t, 0, a.live)
}

func TestTree_IntoIterYieldsItself(t *testing.T) {
	it := tr(1, tr(2)).IntoIter()
	assert.Equal(t, 1, it.Len())

	got, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "1( 2 )", got.String())

	_, ok = it.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, it.Len())
}

func TestTree_StringOfReleased(t *testing.T) {
	tree := New(1)
	tree.Drop()
	assert.Equal(t, "<released>", tree.String())
}
