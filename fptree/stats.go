package fptree

/*
Stats is the resource-accounting record for one mining run: how many
trees were built across the whole recursive decomposition, the largest
single tree observed, the deepest one, and the summed approximate
memory of all of them. Trees-built and memory are additive, the two
maxima are running maxima, never sums.
*/
type Stats struct {
	TreesBuilt  int `json:"trees_built"`
	MaxNodes    int `json:"max_nodes"`
	MaxDepth    int `json:"max_depth"`
	MemoryBytes int `json:"memory_bytes"`
}

// Absorb folds one freshly built tree into the record.
func (s *Stats) Absorb(t *Tree) {
	s.TreesBuilt++
	if t.NodeCount() > s.MaxNodes {
		s.MaxNodes = t.NodeCount()
	}
	if t.MaxDepth() > s.MaxDepth {
		s.MaxDepth = t.MaxDepth()
	}
	s.MemoryBytes += t.MemoryBytes()
}

// Merge folds the record of a completed sibling or child mining call
// into this one.
func (s *Stats) Merge(other Stats) {
	s.TreesBuilt += other.TreesBuilt
	if other.MaxNodes > s.MaxNodes {
		s.MaxNodes = other.MaxNodes
	}
	if other.MaxDepth > s.MaxDepth {
		s.MaxDepth = other.MaxDepth
	}
	s.MemoryBytes += other.MemoryBytes
}
