package trees

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(data int, degree, descendants int) Visit[int] {
	return Visit[int]{Data: data, Size: Size{Degree: degree, Descendants: descendants}}
}

var scenarioAVisits = []Visit[int]{
	v(0, 2, 6),
	v(1, 2, 2),
	v(4, 2, 2),
	v(2, 0, 0),
	v(3, 0, 0),
	v(5, 0, 0),
	v(6, 0, 0),
}

// TestBFS_ScenarioA checks level order and per-visit sizes.
func TestBFS_ScenarioA(t *testing.T) {
	for _, tc := range []struct {
		name string
		tree func(t *testing.T) *Tree[int]
	}{
		{"scattered", func(*testing.T) *Tree[int] { return scenarioA() }},
		{"piled", piledA},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tree := tc.tree(t)
			b := tree.BFS()
			assert.Equal(t, Size{Degree: 1, Descendants: 6}, b.Size)
			if diff := cmp.Diff(scenarioAVisits, b.Collect()); diff != "" {
				t.Errorf("visits mismatch (-want +got):\n%s", diff)
			}
			// By-reference sequences can be ranged over again.
			assert.Len(t, b.Collect(), 7)
		})
	}
}

func TestBFS_Forest(t *testing.T) {
	f := fr(tr(1, tr(2), tr(3)), tr(4, tr(5), tr(6)))
	b := f.BFS()

	assert.Equal(t, Size{Degree: 2, Descendants: 6}, b.Size)
	want := []Visit[int]{v(1, 2, 2), v(4, 2, 2), v(2, 0, 0), v(3, 0, 0), v(5, 0, 0), v(6, 0, 0)}
	if diff := cmp.Diff(want, b.Collect()); diff != "" {
		t.Errorf("visits mismatch (-want +got):\n%s", diff)
	}
}

func TestBFS_ChildrenOfNode(t *testing.T) {
	tree := scenarioA()
	b := tree.Root().BFSChildren()
	assert.Equal(t, Size{Degree: 2, Descendants: 6}, b.Size)
	assert.Len(t, b.Collect(), 6)
}

func TestBFS_MutUpdatesInPlace(t *testing.T) {
	tree := scenarioA()
	for visit := range tree.BFSMut().Visits {
		*visit.Data *= 10
	}
	assert.Equal(t, "0( 10( 20 30 ) 40( 50 60 ) )", tree.String())

	for visit := range tree.BFSChildrenMut().Visits {
		*visit.Data++
	}
	assert.Equal(t, "0( 11( 21 31 ) 41( 51 61 ) )", tree.String())

	f := fr(tr(1), tr(2))
	for visit := range f.BFSMut().Visits {
		*visit.Data = -*visit.Data
	}
	assert.Equal(t, "( -1 -2 )", f.String())
}

func TestBFS_IntoBFSMovesAndReleases(t *testing.T) {
	tree := piledA(t)
	a := arenaOf(tree.Root())

	got := tree.IntoBFS().Collect()

	assert.False(t, tree.Valid())
	if diff := cmp.Diff(scenarioAVisits, got); diff != "" {
		t.Errorf("visits mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, a.live)
}

func TestBFS_IntoBFSEarlyStopReleasesRest(t *testing.T) {
	f, err := ForestFromBFS(fr(tr(1, tr(2)), tr(3, tr(4))).IntoBFS())
	require.NoError(t, err)
	a := arenaOf(f.root)

	for visit := range f.IntoBFS().Visits {
		assert.Equal(t, 1, visit.Data)
		break
	}
	assert.Equal(t, 0, a.live)
}

func TestBFS_RoundTrip(t *testing.T) {
	tree := scenarioA()
	rebuilt, err := TreeFromBFS(tree.BFS())
	require.NoError(t, err)

	assert.True(t, Equal(tree, rebuilt))
	assert.Equal(t, Piled, rebuilt.Strategy())
	assert.Equal(t, "0( 1( 2 3 ) 4( 5 6 ) )", rebuilt.String())
	require.NoError(t, rebuilt.Check())

	f := fr(tr(1, tr(2), tr(3)), tr(4, tr(5), tr(6)))
	rf, err := ForestFromBFS(f.BFS())
	require.NoError(t, err)
	assert.True(t, ForestEqual(f, rf))
	assert.Equal(t, "( 1( 2 3 ) 4( 5 6 ) )", rf.String())
}

func TestBFS_MapTree(t *testing.T) {
	b := MapTree(scenarioA().BFS(), strconv.Itoa)
	tree, err := TreeFromBFS(b)
	require.NoError(t, err)
	assert.Equal(t, "0( 1( 2 3 ) 4( 5 6 ) )", tree.String())
	assert.Equal(t, "4", tree.Back().Data())

	fb := MapForest(fr(tr(1), tr(2)).BFS(), func(i int) float64 { return float64(i) / 2 })
	forest, err := ForestFromBFS(fb)
	require.NoError(t, err)
	assert.Equal(t, "( 0.5 1 )", forest.String())
}

// nested is a plain recursive value used to check Splitted on foreign types.
type nested struct {
	name     string
	children []*nested
}

type nestedSibs struct{ items []*nested }

func (s *nestedSibs) Next() (*nested, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	n := s.items[0]
	s.items = s.items[1:]
	return n, true
}

func (s *nestedSibs) Len() int { return len(s.items) }

func (n *nested) count() int {
	c := 0
	stack := append([]*nested(nil), n.children...)
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c++
		stack = append(stack, x.children...)
	}
	return c
}

func TestSplitted_ForeignHierarchy(t *testing.T) {
	doc := &nested{name: "a", children: []*nested{
		{name: "b", children: []*nested{{name: "d"}}},
		{name: "c"},
	}}
	split := func(n *nested) (string, Sibs[*nested], int) {
		return n.name, &nestedSibs{items: n.children}, n.count()
	}

	s := NewSplitted[*nested, string](&nestedSibs{items: []*nested{doc}}, split)
	tree, err := TreeFromBFS(BFSTree[string]{Visits: s.All(), Size: Size{Degree: 1, Descendants: doc.count()}})
	require.NoError(t, err)
	assert.Equal(t, "a( b( d ) c )", tree.String())
}

func TestNewBFSTree_Empty(t *testing.T) {
	b := NewBFSTree[int](nil)
	assert.Equal(t, Size{}, b.Size)
	assert.Empty(t, b.Collect())
}
