//go:build cgo

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonelycodes/excali-script/internal/graph"
)

func TestGraphDB_PersistThenQuery(t *testing.T) {
	db := filepath.Join(t.TempDir(), "graph")

	_, stderr, err := execute(t, "--graph-db", db, "-o", "-", fixtureRoot)
	require.NoError(t, err)
	assert.Contains(t, stderr, "graph persisted")

	index, err := graph.NewResolver(nil).Canonicalize(filepath.Join(fixtureRoot, "src", "index.ts"))
	require.NoError(t, err)

	stdout, _, err := execute(t, "--graph-db", db, "deps", index)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 4, "greet, Widget, left-pad, format")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "2  "), "format.js is two hops away")

	stdout, _, err = execute(t, "--graph-db", db, "deps", "--upstream", "--depth", "1", index)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(stdout))
}

func TestGraphDB_MissingDatabase(t *testing.T) {
	_, _, err := execute(t, "--graph-db", filepath.Join(t.TempDir(), "none"), "deps", "x.ts")
	assert.Error(t, err)
}
