package fptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classic transaction database from the FP-growth literature: with a
// floor of 3 the frequent items are c and f (4 occurrences) and a, b,
// m and p (3 occurrences).
func classicPaths() []Path {
	return []Path{
		{Items: []string{"f", "a", "c", "d", "g", "i", "m", "p"}, Count: 1},
		{Items: []string{"a", "b", "c", "f", "l", "m", "o"}, Count: 1},
		{Items: []string{"b", "f", "h", "j", "o"}, Count: 1},
		{Items: []string{"b", "c", "k", "s", "p"}, Count: 1},
		{Items: []string{"a", "f", "c", "e", "l", "p", "m", "n"}, Count: 1},
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	_, err := Build(classicPaths(), 0, "")
	assert.Error(t, err)
	_, err = Build([]Path{{Items: []string{"a"}, Count: 0}}, 1, "")
	assert.Error(t, err)
	_, err = Build([]Path{{Items: []string{"a"}, Count: -2}}, 1, "")
	assert.Error(t, err)
}

func TestBuildEmptyDatabase(t *testing.T) {
	tree, err := Build(nil, 1, "")
	require.NoError(t, err)
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.NodeCount())
	assert.Equal(t, 0, tree.MaxDepth())
	assert.Empty(t, tree.Headers())
}

func TestBuildFloorAboveEveryItem(t *testing.T) {
	tree, err := Build(classicPaths(), 10, "")
	require.NoError(t, err)
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.NodeCount())
}

func TestBuildClassicDatabase(t *testing.T) {
	tree, err := Build(classicPaths(), 3, "")
	require.NoError(t, err)
	assert.False(t, tree.Empty())

	// c,f,a,m,p + b,m + b,p + f,b share prefixes down to 11 nodes
	// across 5 levels
	assert.Equal(t, 11, tree.NodeCount())
	assert.Equal(t, 5, tree.MaxDepth())

	headers := tree.Headers()
	expected := []HeaderEntry{
		{Item: "a", Count: 3},
		{Item: "b", Count: 3},
		{Item: "m", Count: 3},
		{Item: "p", Count: 3},
		{Item: "c", Count: 4},
		{Item: "f", Count: 4},
	}
	assert.Equal(t, expected, headers)
}

func TestBuildCountsDuplicateLabelsOnce(t *testing.T) {
	tree, err := Build([]Path{
		{Items: []string{"a", "a", "a", "b"}, Count: 1},
		{Items: []string{"a", "b"}, Count: 1},
	}, 2, "")
	require.NoError(t, err)
	headers := tree.Headers()
	require.Len(t, headers, 2)
	assert.Equal(t, HeaderEntry{Item: "a", Count: 2}, headers[0])
	assert.Equal(t, HeaderEntry{Item: "b", Count: 2}, headers[1])
	// one shared a->b branch, not one per repeated label
	assert.Equal(t, 2, tree.NodeCount())
}

func TestBuildWeightedPaths(t *testing.T) {
	tree, err := Build([]Path{
		{Items: []string{"a", "b"}, Count: 3},
		{Items: []string{"a"}, Count: 2},
	}, 2, "")
	require.NoError(t, err)
	headers := tree.Headers()
	require.Len(t, headers, 2)
	assert.Equal(t, HeaderEntry{Item: "b", Count: 3}, headers[0])
	assert.Equal(t, HeaderEntry{Item: "a", Count: 5}, headers[1])
}

func TestPrefixPaths(t *testing.T) {
	tree, err := Build(classicPaths(), 3, "")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		item     string
		expected []Path
	}{
		{
			name: "item with two distinct prefixes",
			item: "p",
			expected: []Path{
				{Items: []string{"c", "f", "a", "m"}, Count: 2},
				{Items: []string{"c", "b"}, Count: 1},
			},
		},
		{
			name: "item with branching prefixes",
			item: "m",
			expected: []Path{
				{Items: []string{"c", "f", "a"}, Count: 2},
				{Items: []string{"c", "f", "a", "b"}, Count: 1},
			},
		},
		{
			name:     "item only under the root",
			item:     "c",
			expected: nil,
		},
		{
			name:     "item absent from the tree",
			item:     "z",
			expected: nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tree.PrefixPaths(tc.item))
		})
	}
}

func TestPrefixPathsChainOrder(t *testing.T) {
	// b occurs on three branches; paths come back in node-creation
	// order
	tree, err := Build(classicPaths(), 3, "")
	require.NoError(t, err)
	paths := tree.PrefixPaths("b")
	expected := []Path{
		{Items: []string{"c", "f", "a"}, Count: 1},
		{Items: []string{"f"}, Count: 1},
		{Items: []string{"c"}, Count: 1},
	}
	assert.Equal(t, expected, paths)
}

func TestPrefixPathsSkipRootChildren(t *testing.T) {
	// f hangs both directly from the root and under c; only the
	// occurrence under c yields a conditional path
	tree, err := Build(classicPaths(), 3, "")
	require.NoError(t, err)
	paths := tree.PrefixPaths("f")
	expected := []Path{
		{Items: []string{"c"}, Count: 3},
	}
	assert.Equal(t, expected, paths)
}

func TestRootLabel(t *testing.T) {
	tree, err := Build(nil, 1, "beer")
	require.NoError(t, err)
	assert.Equal(t, "beer", tree.RootLabel())
}

func TestMemoryBytesGrowsWithNodes(t *testing.T) {
	small, err := Build([]Path{{Items: []string{"a"}, Count: 1}}, 1, "")
	require.NoError(t, err)
	big, err := Build(classicPaths(), 3, "")
	require.NoError(t, err)
	assert.Greater(t, big.MemoryBytes(), small.MemoryBytes())
}

func TestStatsAbsorb(t *testing.T) {
	big, err := Build(classicPaths(), 3, "")
	require.NoError(t, err)
	small, err := Build([]Path{{Items: []string{"a"}, Count: 1}}, 1, "")
	require.NoError(t, err)

	s := &Stats{}
	s.Absorb(big)
	s.Absorb(small)
	assert.Equal(t, 2, s.TreesBuilt)
	assert.Equal(t, big.NodeCount(), s.MaxNodes)
	assert.Equal(t, big.MaxDepth(), s.MaxDepth)
	assert.Equal(t, big.MemoryBytes()+small.MemoryBytes(), s.MemoryBytes)
}

func TestStatsMerge(t *testing.T) {
	s := Stats{TreesBuilt: 2, MaxNodes: 5, MaxDepth: 3, MemoryBytes: 1000}
	s.Merge(Stats{TreesBuilt: 3, MaxNodes: 9, MaxDepth: 2, MemoryBytes: 500})
	assert.Equal(t, Stats{TreesBuilt: 5, MaxNodes: 9, MaxDepth: 3, MemoryBytes: 1500}, s)
}
