package trees

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	a := scenarioA()
	assert.True(t, Equal(a, a))
	assert.True(t, Equal(a, scenarioA()))
	assert.True(t, Equal(a, piledA(t)), "storage strategy does not matter")

	assert.False(t, Equal(a, tr(0, tr(1, tr(2), tr(3)), tr(4, tr(5)))))
	assert.False(t, Equal(a, tr(0, tr(1, tr(2), tr(3)), tr(4, tr(5), tr(7)))))
	// same level order, different shape
	assert.False(t, Equal(tr(0, tr(1, tr(3)), tr(2)), tr(0, tr(1), tr(2, tr(3)))))
	assert.True(t, EqualNodes(a.Front(), scenarioA().Front()))
}

func TestEqualFunc(t *testing.T) {
	a := New("Root")
	a.PushBack(New("Leaf"))
	b := New("root")
	b.PushBack(New("LEAF"))

	assert.False(t, Equal(a, b))
	assert.True(t, EqualFunc(a, b, strings.EqualFold))
}

func TestForestEqual(t *testing.T) {
	assert.True(t, ForestEqual(fr(tr(1, tr(2)), tr(3)), fr(tr(1, tr(2)), tr(3))))
	assert.True(t, ForestEqual(NewForest[int](), NewForest[int]()))
	assert.False(t, ForestEqual(fr(tr(1, tr(2)), tr(3)), fr(tr(1), tr(2), tr(3))))
	assert.False(t, ForestEqual(fr(tr(1), tr(3)), fr(tr(3), tr(1))))

	f := fr(tr(1, tr(2)), tr(3))
	assert.True(t, ForestEqualFunc(f, f.DeepClone(), func(x, y int) bool { return x == y }))
}
