package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitPresets(t *testing.T) {
	def := DefaultLimits()
	relaxed := RelaxedLimits()
	strict := StrictLimits()

	assert.Greater(t, relaxed.MaxNodes, def.MaxNodes)
	assert.Less(t, strict.MaxNodes, def.MaxNodes)
	assert.Greater(t, relaxed.MaxDepth, def.MaxDepth)
	assert.Less(t, strict.MaxDegree, def.MaxDegree)
}

func TestLimitChecks(t *testing.T) {
	l := Limits{MaxNodes: 10, MaxDegree: 3, MaxDepth: 2}

	require.NoError(t, l.CheckNodes(10))
	require.NoError(t, l.CheckDegree(3))
	require.NoError(t, l.CheckDepth(2))

	err := l.CheckNodes(11)
	require.Error(t, err)
	var le *LimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "MaxNodes", le.Limit)
	assert.Equal(t, int64(11), le.Current)
	assert.Equal(t, int64(10), le.Maximum)

	assert.Error(t, l.CheckDegree(4))
	assert.Error(t, l.CheckDepth(3))
}

func TestUnlimitedAcceptsAnything(t *testing.T) {
	l := Unlimited()
	assert.NoError(t, l.CheckNodes(1<<40))
	assert.NoError(t, l.CheckDegree(1<<40))
	assert.NoError(t, l.CheckDepth(1<<40))
}

func TestLimitViolation(t *testing.T) {
	err := LimitViolation(StrictLimits().CheckNodes(StrictMaxNodes + 1))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrKindLimit, kind)

	var le *LimitError
	assert.True(t, errors.As(err, &le))

	plain := errors.New("boom")
	assert.Same(t, plain, LimitViolation(plain))
}
