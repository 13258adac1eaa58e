package itemset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIgnoresOrder(t *testing.T) {
	assert.Equal(t, Key([]string{"milk", "bread"}), Key([]string{"bread", "milk"}))
	assert.NotEqual(t, Key([]string{"bread"}), Key([]string{"bread", "milk"}))
}

func TestKeyDoesNotModifyInput(t *testing.T) {
	items := []string{"milk", "bread"}
	Key(items)
	assert.Equal(t, []string{"milk", "bread"}, items)
}

func TestPatternKeyAndString(t *testing.T) {
	p := &Pattern{Items: []string{"beer", "diapers"}, Support: 3}
	assert.Equal(t, 2, p.Size())
	assert.Equal(t, Key([]string{"diapers", "beer"}), p.Key())
	assert.Equal(t, "beer,diapers", p.String())
}

func TestTableAddAndSupport(t *testing.T) {
	table := NewTable()
	table.Add([]string{"milk", "bread"}, 3)

	support, ok := table.Support([]string{"bread", "milk"})
	require.True(t, ok)
	assert.Equal(t, 3, support)

	_, ok = table.Support([]string{"bread"})
	assert.False(t, ok)

	// re-adding the same unordered set replaces the entry
	table.Add([]string{"bread", "milk"}, 5)
	assert.Equal(t, 1, table.Len())
	support, _ = table.Support([]string{"bread", "milk"})
	assert.Equal(t, 5, support)
}

func TestTableAddCopiesItems(t *testing.T) {
	items := []string{"milk", "bread"}
	table := NewTable()
	table.Add(items, 2)
	items[0] = "beer"

	_, ok := table.Support([]string{"bread", "milk"})
	assert.True(t, ok)
}

func TestTableMerge(t *testing.T) {
	a := NewTable()
	a.Add([]string{"bread"}, 4)
	b := NewTable()
	b.Add([]string{"milk"}, 3)
	b.Add([]string{"bread", "milk"}, 2)

	a.Merge(b)
	assert.Equal(t, 3, a.Len())
	support, ok := a.Support([]string{"milk"})
	require.True(t, ok)
	assert.Equal(t, 3, support)
}

func TestTablePatternsOrder(t *testing.T) {
	table := NewTable()
	table.Add([]string{"milk", "bread"}, 3)
	table.Add([]string{"milk"}, 4)
	table.Add([]string{"beer"}, 3)
	table.Add([]string{"bread"}, 4)

	patterns := table.Patterns()
	require.Len(t, patterns, 4)
	assert.Equal(t, "beer", patterns[0].String())
	assert.Equal(t, "bread", patterns[1].String())
	assert.Equal(t, "milk", patterns[2].String())
	assert.Equal(t, "bread,milk", patterns[3].String())
}

func TestTableCountBySize(t *testing.T) {
	table := NewTable()
	table.Add([]string{"bread"}, 4)
	table.Add([]string{"milk"}, 4)
	table.Add([]string{"bread", "milk"}, 3)

	assert.Equal(t, map[int]int{1: 2, 2: 1}, table.CountBySize())
}
