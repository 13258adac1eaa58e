/*
Package fptree implements the FP-tree: a compressed prefix tree of
transactions ordered by descending item frequency, with per-item node
chains that allow reconstructing every prefix path for an item without
scanning the whole tree.

Trees are transient: one is built per mining call (top-level and every
conditional sub-call), consulted, and discarded. Nodes live in a
per-tree arena and refer to each other by index, so a completed tree
holds no pointers that outlive it.
*/
package fptree

import (
	"fmt"
	"sort"
)

// noNode terminates parent references and same-item chains.
const noNode = int32(-1)

// approximate arena cost of one node, used for the memory accounting
// of the optional Stats record. Item label bytes are added on top.
const nodeBaseBytes = 88

/*
Path is a sequence of item labels together with the number of
transactions it stands for. Raw transactions are paths with Count 1;
conditional databases produced by PrefixPaths carry the multiplicity
of the originating node instead of being materialized Count times.
*/
type Path struct {
	Items []string
	Count int
}

/*
HeaderEntry is one entry of a tree's header table: an item that is
frequent in the tree's database and its total occurrence count there.
*/
type HeaderEntry struct {
	Item  string
	Count int
}

type header struct {
	count      int
	head, tail int32
}

type node struct {
	item     string
	count    int
	parent   int32
	next     int32
	children map[string]int32
}

/*
Tree is an FP-tree built over one (possibly conditional) transaction
database. The root is a sentinel node with no label; every other node
holds one item and the number of paths that traverse it.
*/
type Tree struct {
	rootLabel string
	nodes     []node
	headers   map[string]*header
	maxDepth  int
	itemBytes int
}

/*
Build takes a transaction database as a slice of weighted paths and an
absolute support floor, and returns the FP-tree over it.

Items occurring fewer than floor times (counting each path Count
times, but duplicate labels within one path only once) are discarded.
Within every path the surviving items are sorted by descending
frequency, ties broken by ascending label so that the layout is
deterministic, and inserted from the root. An empty header table is a
normal terminal state, not an error.

rootLabel only annotates the sentinel root for diagnostics on
conditional trees; it may be empty.

Build returns an error if floor is not positive or any path carries a
non-positive multiplicity.
*/
func Build(paths []Path, floor int, rootLabel string) (*Tree, error) {
	if floor < 1 {
		return nil, fmt.Errorf("building tree: support floor must be at least 1, got %d", floor)
	}
	deduped := make([][]string, len(paths))
	counts := make(map[string]int)
	for i, p := range paths {
		if p.Count < 1 {
			return nil, fmt.Errorf("building tree: path %d has multiplicity %d, must be at least 1", i, p.Count)
		}
		deduped[i] = dedupe(p.Items)
		for _, item := range deduped[i] {
			counts[item] += p.Count
		}
	}
	t := &Tree{
		rootLabel: rootLabel,
		nodes:     []node{{parent: noNode, next: noNode}},
		headers:   make(map[string]*header),
	}
	frequent := make(map[string]int)
	for item, count := range counts {
		if count >= floor {
			frequent[item] = count
		}
	}
	if len(frequent) == 0 {
		return t, nil
	}
	for i, items := range deduped {
		kept := items[:0]
		for _, item := range items {
			if _, ok := frequent[item]; ok {
				kept = append(kept, item)
			}
		}
		sort.Slice(kept, func(a, b int) bool {
			if frequent[kept[a]] != frequent[kept[b]] {
				return frequent[kept[a]] > frequent[kept[b]]
			}
			return kept[a] < kept[b]
		})
		t.insert(kept, paths[i].Count, frequent)
	}
	return t, nil
}

// dedupe drops repeated labels keeping the first occurrence, since a
// repeated item within one transaction does not increase its support.
func dedupe(items []string) []string {
	result := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

func (t *Tree) insert(items []string, weight int, frequent map[string]int) {
	current := int32(0)
	for depth, item := range items {
		child, ok := t.nodes[current].children[item]
		if !ok {
			child = int32(len(t.nodes))
			t.nodes = append(t.nodes, node{
				item:   item,
				parent: current,
				next:   noNode,
			})
			if t.nodes[current].children == nil {
				t.nodes[current].children = make(map[string]int32)
			}
			t.nodes[current].children[item] = child
			t.itemBytes += len(item)
			t.link(item, child, frequent[item])
			if depth+1 > t.maxDepth {
				t.maxDepth = depth + 1
			}
		}
		t.nodes[child].count += weight
		current = child
	}
}

// link appends the node to the tail of the item's same-item chain, so
// the chain preserves node-creation order.
func (t *Tree) link(item string, n int32, count int) {
	h, ok := t.headers[item]
	if !ok {
		t.headers[item] = &header{count: count, head: n, tail: n}
		return
	}
	t.nodes[h.tail].next = n
	h.tail = n
}

// Empty reports whether the tree has no header entries, the terminal
// state of the mining recursion.
func (t *Tree) Empty() bool {
	return len(t.headers) == 0
}

/*
Headers returns the header-table entries sorted by ascending count,
ties broken by ascending item label. This is the bottom-up mining
order: rarest items first, so each conditional database is as small as
possible at the point it is built.
*/
func (t *Tree) Headers() []HeaderEntry {
	result := make([]HeaderEntry, 0, len(t.headers))
	for item, h := range t.headers {
		result = append(result, HeaderEntry{Item: item, Count: h.count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count < result[j].Count
		}
		return result[i].Item < result[j].Item
	})
	return result
}

/*
PrefixPaths takes an item and returns the conditional database for it:
one path per node in the item's same-item chain, holding the item
labels from the root down to (but excluding) that node, with the
node's count as multiplicity. Nodes directly under the root yield no
path. An item absent from the header table yields an empty slice.
*/
func (t *Tree) PrefixPaths(item string) []Path {
	h, ok := t.headers[item]
	if !ok {
		return nil
	}
	var paths []Path
	for n := h.head; n != noNode; n = t.nodes[n].next {
		var items []string
		for p := t.nodes[n].parent; p > 0; p = t.nodes[p].parent {
			items = append(items, t.nodes[p].item)
		}
		if len(items) == 0 {
			continue
		}
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
		paths = append(paths, Path{Items: items, Count: t.nodes[n].count})
	}
	return paths
}

// RootLabel returns the diagnostic label the tree was built with.
func (t *Tree) RootLabel() string {
	return t.rootLabel
}

// NodeCount returns the number of item nodes in the tree, excluding
// the sentinel root.
func (t *Tree) NodeCount() int {
	return len(t.nodes) - 1
}

// MaxDepth returns the length of the longest root-to-node path.
func (t *Tree) MaxDepth() int {
	return t.maxDepth
}

// MemoryBytes returns the approximate memory footprint of the tree's
// arena, counting a fixed per-node cost plus item label bytes.
func (t *Tree) MemoryBytes() int {
	return len(t.nodes)*nodeBaseBytes + t.itemBytes
}
