package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCommand(t *testing.T) {
	tree := writeDoc(t, "tree.yaml", []byte(scenarioYAML))
	forest := writeDoc(t, "forest.json", []byte(forestJSON))

	tests := []struct {
		name  string
		path  string
		piled bool
		json  bool
		want  string
	}{
		{"tree", tree, false, false, "0( 1( 2 3 ) 4( 5 6 ) )\n"},
		{"tree piled", tree, true, false, "0( 1( 2 3 ) 4( 5 6 ) )\n"},
		{"forest", forest, false, false, "( a( b ) c )\n"},
		{"forest piled", forest, true, false, "( a( b ) c )\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			piled = tt.piled
			out, err := captureOutput(t, func() error { return runPrint([]string{tt.path}) })
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPrintCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut, piled = true, true
	path := writeDoc(t, "tree.yaml", []byte(scenarioYAML))

	out, err := captureOutput(t, func() error { return runPrint([]string{path}) })
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0( 1( 2 3 ) 4( 5 6 ) )", got["text"])
	assert.Equal(t, "piled", got["strategy"])
	assert.Equal(t, false, got["forest"])
}

func TestPrintCommand_Quiet(t *testing.T) {
	resetFlags()
	quiet = true
	path := writeDoc(t, "tree.yaml", []byte(scenarioYAML))
	out, err := captureOutput(t, func() error { return runPrint([]string{path}) })
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBFSCommand(t *testing.T) {
	resetFlags()
	path := writeDoc(t, "tree.yaml", []byte(scenarioYAML))

	out, err := captureOutput(t, func() error { return runBFS([]string{path}) })
	require.NoError(t, err)
	want := strings.Join([]string{
		"size: degree=1 descendants=6",
		"0\t2\t6",
		"1\t2\t2",
		"4\t2\t2",
		"2\t0\t0",
		"3\t0\t0",
		"5\t0\t0",
		"6\t0\t0",
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestBFSCommand_JSONForest(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeDoc(t, "forest.json", []byte(forestJSON))

	out, err := captureOutput(t, func() error { return runBFS([]string{path}) })
	require.NoError(t, err)

	var got struct {
		Degree      int         `json:"degree"`
		Descendants int         `json:"descendants"`
		Visits      []visitJSON `json:"visits"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Degree)
	assert.Equal(t, 3, got.Descendants)
	assert.Equal(t, []visitJSON{
		{Data: "a", Degree: 1, Descendants: 1},
		{Data: "c"},
		{Data: "b"},
	}, got.Visits)
}

func TestWalkCommand(t *testing.T) {
	resetFlags()
	path := writeDoc(t, "tree.yaml", []byte("value: r\nchildren:\n  - value: x\n    children: [y]\n  - z\n"))

	out, err := captureOutput(t, func() error { return runWalk([]string{path}) })
	require.NoError(t, err)
	want := "Begin r\n  Begin x\n    Leaf y\n  End x\n  Leaf z\nEnd r\n"
	assert.Equal(t, want, out)
}

func TestWalkCommand_JSONForest(t *testing.T) {
	resetFlags()
	jsonOut, piled = true, true
	path := writeDoc(t, "forest.json", []byte(forestJSON))

	out, err := captureOutput(t, func() error { return runWalk([]string{path}) })
	require.NoError(t, err)

	var got []walkEvent
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []walkEvent{
		{Kind: "Begin", Data: "a", Depth: 1},
		{Kind: "Leaf", Data: "b", Depth: 2},
		{Kind: "End", Data: "a", Depth: 1},
		{Kind: "Leaf", Data: "c", Depth: 1},
	}, got)
}

func TestStatsCommand(t *testing.T) {
	path := writeDoc(t, "tree.yaml", []byte(scenarioYAML))

	for _, p := range []bool{false, true} {
		resetFlags()
		jsonOut, piled = true, p
		out, err := captureOutput(t, func() error { return runStats([]string{path}) })
		require.NoError(t, err)

		var got map[string]int
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 7, got["Nodes"])
		assert.Equal(t, 4, got["Leaves"])
		assert.Equal(t, 3, got["MaxDepth"])
		if p {
			assert.Equal(t, 7, got["Piled"])
		} else {
			assert.Equal(t, 7, got["Scattered"])
		}
	}

	resetFlags()
	out, err := captureOutput(t, func() error { return runStats([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Branches:   3")
}

func TestCheckCommand(t *testing.T) {
	tree := writeDoc(t, "tree.yaml", []byte(scenarioYAML))
	forest := writeDoc(t, "forest.json", []byte(forestJSON))

	for _, path := range []string{tree, forest} {
		for _, p := range []bool{false, true} {
			resetFlags()
			piled = p
			out, err := captureOutput(t, func() error { return runCheck([]string{path}) })
			require.NoError(t, err, "%s piled=%t", filepath.Base(path), p)
			assert.Equal(t, "sizes:      ok\nround trip: ok\n", out)
		}
	}
}

func TestCheckCommand_Limits(t *testing.T) {
	var b strings.Builder
	b.WriteString("value: root\nchildren:\n")
	for range 5000 {
		b.WriteString("  - x\n")
	}
	path := writeDoc(t, "wide.yaml", []byte(b.String()))

	// the heap build is unbounded, so only the rebuild trips the limit
	resetFlags()
	limitsName = "strict"
	out, err := captureOutput(t, func() error { return runCheck([]string{path}) })
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "sizes:      ok")
	assert.Contains(t, out, "MaxDegree")

	resetFlags()
	limitsName, piled = "strict", true
	_, err = captureOutput(t, func() error { return runCheck([]string{path}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxDegree")

	resetFlags()
	limitsName, piled = "none", true
	_, err = captureOutput(t, func() error { return runCheck([]string{path}) })
	require.NoError(t, err)
}

func TestCloneCommand(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeDoc(t, "tree.yaml", []byte(scenarioYAML))

	out, err := captureOutput(t, func() error { return runClone([]string{path}) })
	require.NoError(t, err)

	var got cloneResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Equal)
	assert.Equal(t, "piled", got.Strategy)
	assert.Equal(t, "0( 1( 2 3 ) 4( 5 6 ) )", got.Source)
	assert.Equal(t, "0'( 1'( 2' 3' ) 4'( 5' 6' ) )", got.Clone)
}

func TestCloneCommand_Forest(t *testing.T) {
	resetFlags()
	cloneSuffix = "2"
	path := writeDoc(t, "forest.json", []byte(forestJSON))

	out, err := captureOutput(t, func() error { return runClone([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "source:   ( a( b ) c )")
	assert.Contains(t, out, "clone:    ( a2( b2 ) c2 )")
	assert.Contains(t, out, "equal:    true")
}

func TestCommands_Errors(t *testing.T) {
	resetFlags()
	_, err := captureOutput(t, func() error { return runPrint([]string{filepath.Join(t.TempDir(), "missing.yaml")}) })
	assert.ErrorContains(t, err, "failed to open document")

	bad := writeDoc(t, "bad.yaml", []byte("kids: []\n"))
	_, err = captureOutput(t, func() error { return runStats([]string{bad}) })
	assert.ErrorContains(t, err, "unknown key")

	limitsName = "huge"
	good := writeDoc(t, "tree.yaml", []byte(scenarioYAML))
	_, err = captureOutput(t, func() error { return runBFS([]string{good}) })
	assert.ErrorContains(t, err, `unknown limits "huge"`)
}

func TestRootCommand_LogDir(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	path := writeDoc(t, "tree.yaml", []byte(scenarioYAML))

	rootCmd.SetArgs([]string{"print", "--piled", "--log-dir", dir, path})
	_, err := captureOutput(t, rootCmd.Execute)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "arena allocated")

	resetFlags()
	require.NoError(t, setupLogging(nil, nil))
}
