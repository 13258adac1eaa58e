/*
Package itemset defines frequent itemsets and the pattern table
that accumulates them during mining.
*/
package itemset

import (
	"sort"
	"strings"
)

// keySeparator joins item labels into canonical table keys. It is a
// control character so it cannot collide with retail item labels.
const keySeparator = "\x1f"

/*
Pattern is a frequent itemset together with its support count: the
number of transactions that contain every one of its items. Items are
kept sorted so that two patterns denoting the same unordered set of
labels always compare equal.
*/
type Pattern struct {
	Items   []string `json:"items"`
	Support int      `json:"support"`
}

// Size returns the number of items in the pattern.
func (p *Pattern) Size() int {
	return len(p.Items)
}

// Key returns the canonical table key for the pattern's itemset.
func (p *Pattern) Key() string {
	return Key(p.Items)
}

func (p *Pattern) String() string {
	return strings.Join(p.Items, ",")
}

/*
Key takes a slice of item labels and returns the canonical key that
identifies the unordered set of those labels. The input slice is not
modified.
*/
func Key(items []string) string {
	sorted := normalize(items)
	return strings.Join(sorted, keySeparator)
}

func normalize(items []string) []string {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	return sorted
}

/*
Table is a pattern table: a mapping from itemset to support count.
No two entries denote the same set of items. The zero value is not
usable, use NewTable.
*/
type Table struct {
	patterns map[string]*Pattern
}

// NewTable returns an empty pattern table.
func NewTable() *Table {
	return &Table{patterns: make(map[string]*Pattern)}
}

/*
Add records the given itemset with the given support count,
replacing any previous entry for the same set of items. The items
slice is copied and sorted, the caller keeps ownership of it.
*/
func (t *Table) Add(items []string, support int) {
	sorted := normalize(items)
	t.patterns[strings.Join(sorted, keySeparator)] = &Pattern{Items: sorted, Support: support}
}

/*
Support takes a slice of item labels and returns the support count
recorded for that set of items and whether the set is present in the
table at all.
*/
func (t *Table) Support(items []string) (int, bool) {
	p, ok := t.patterns[Key(items)]
	if !ok {
		return 0, false
	}
	return p.Support, true
}

// Len returns the number of itemsets in the table.
func (t *Table) Len() int {
	return len(t.patterns)
}

/*
Merge folds every pattern of the other table into this one. Keys
produced by recursive mining calls carry distinct prefixes and cannot
collide, so merging is a plain union.
*/
func (t *Table) Merge(other *Table) {
	for k, p := range other.patterns {
		t.patterns[k] = p
	}
}

/*
Patterns returns the patterns in the table sorted by ascending itemset
size and then by their canonical key, so that iteration order is
deterministic for a given table content.
*/
func (t *Table) Patterns() []*Pattern {
	result := make([]*Pattern, 0, len(t.patterns))
	for _, p := range t.patterns {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if len(result[i].Items) != len(result[j].Items) {
			return len(result[i].Items) < len(result[j].Items)
		}
		return result[i].Key() < result[j].Key()
	})
	return result
}

/*
CountBySize returns a histogram of the table's itemsets keyed by
itemset size.
*/
func (t *Table) CountBySize() map[int]int {
	result := make(map[int]int)
	for _, p := range t.patterns {
		result[len(p.Items)]++
	}
	return result
}
