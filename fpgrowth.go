/*
Package fpgrowth mines frequent itemsets from retail-style
transaction databases with the FP-growth technique: transactions are
compressed into an FP-tree and mined by a recursive divide-and-conquer
decomposition into conditional trees, with no candidate-generation
step.
*/
package fpgrowth

import (
	"context"
	"fmt"

	"github.com/basketlab/fpgrowth/basket"
	"github.com/basketlab/fpgrowth/fptree"
	"github.com/basketlab/fpgrowth/itemset"
)

/*
Options control a mining run. The zero value mines sequentially and
keeps no accounting.
*/
type Options struct {
	// TrackStats enables the resource-accounting record: trees
	// built, peak node count, peak depth and summed approximate
	// memory across the whole run.
	TrackStats bool
	// Workers over 1 mines the top-level header entries with that
	// many goroutines. Each sibling owns its own conditional
	// database and pattern table until the merge, so the result is
	// identical to a sequential run.
	Workers int
}

/*
Result is the outcome of one mining run: the pattern table, the
number of transactions it was mined from, and the support parameters
after ratio-to-floor conversion. Stats is nil unless accounting was
requested.
*/
type Result struct {
	Patterns         *itemset.Table
	TransactionCount int
	SupportRatio     float64
	SupportFloor     int
	Stats            *fptree.Stats
}

/*
MineFrequentItemsets takes a dataset and a minimum support ratio in
(0, 1] and returns every itemset whose support count reaches
ratio × transactionCount, truncated to an integer. A ratio outside
(0, 1], or one that truncates to a floor of zero, is a configuration
error reported before any tree is built: with a floor of zero every
item would trivially qualify, which is almost certainly not what the
caller wants.
*/
func MineFrequentItemsets(ctx context.Context, ds basket.Dataset, minSupport float64, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if minSupport <= 0 || minSupport > 1 {
		return nil, fmt.Errorf("mining frequent itemsets: minimum support ratio must be in (0, 1], got %v", minSupport)
	}
	transactions, err := ds.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("mining frequent itemsets: reading transactions: %v", err)
	}
	result := &Result{
		Patterns:         itemset.NewTable(),
		TransactionCount: len(transactions),
		SupportRatio:     minSupport,
	}
	if len(transactions) == 0 {
		return result, nil
	}
	floor := int(minSupport * float64(len(transactions)))
	if floor < 1 {
		return nil, fmt.Errorf("mining frequent itemsets: minimum support %v of %d transactions yields a support floor of 0, the floor must be at least 1", minSupport, len(transactions))
	}
	result.SupportFloor = floor
	table, stats, err := Mine(ctx, transactions, floor, opts)
	if err != nil {
		return nil, err
	}
	result.Patterns = table
	result.Stats = stats
	return result, nil
}

/*
Mine runs the FP-growth decomposition over already materialized
transactions with an absolute support floor and returns the pattern
table, plus the accounting record when opts enables it. The floor
must be at least 1.
*/
func Mine(ctx context.Context, transactions []basket.Transaction, floor int, opts *Options) (*itemset.Table, *fptree.Stats, error) {
	if opts == nil {
		opts = &Options{}
	}
	if floor < 1 {
		return nil, nil, fmt.Errorf("mining frequent itemsets: support floor must be at least 1, got %d", floor)
	}
	paths := make([]fptree.Path, len(transactions))
	for i, t := range transactions {
		paths[i] = fptree.Path{Items: t, Count: 1}
	}
	table := itemset.NewTable()
	var stats *fptree.Stats
	if opts.TrackStats {
		stats = &fptree.Stats{}
	}
	err := mine(ctx, paths, floor, nil, table, stats, opts.Workers)
	if err != nil {
		return nil, nil, err
	}
	return table, stats, nil
}

/*
mine builds the tree over one (possibly conditional) database, emits
one pattern per header entry and recurses into the conditional
database of each. Every recursive call strictly shrinks the item
universe, which bounds the recursion depth by the number of distinct
items.
*/
func mine(ctx context.Context, paths []fptree.Path, floor int, prefix []string, table *itemset.Table, stats *fptree.Stats, workers int) error {
	rootLabel := ""
	if len(prefix) > 0 {
		rootLabel = prefix[len(prefix)-1]
	}
	tree, err := fptree.Build(paths, floor, rootLabel)
	if err != nil {
		return err
	}
	if stats != nil {
		stats.Absorb(tree)
	}
	if tree.Empty() {
		return nil
	}
	headers := tree.Headers()
	if workers > 1 && len(prefix) == 0 {
		return mineSiblings(ctx, tree, headers, floor, table, stats, workers)
	}
	for _, h := range headers {
		if err := ctx.Err(); err != nil {
			return err
		}
		pattern := make([]string, 0, len(prefix)+1)
		pattern = append(pattern, prefix...)
		pattern = append(pattern, h.Item)
		table.Add(pattern, h.Count)
		conditional := tree.PrefixPaths(h.Item)
		if len(conditional) == 0 {
			continue
		}
		if err := mine(ctx, conditional, floor, pattern, table, stats, 0); err != nil {
			return err
		}
	}
	return nil
}

/*
mineSiblings distributes the header entries of one tree over a pool
of goroutines. The shared tree is only read; every sibling owns its
conditional database, pattern table and accounting record exclusively
until the final merge, which is a plain union since sibling keys
carry distinct prefix items.
*/
func mineSiblings(ctx context.Context, tree *fptree.Tree, headers []fptree.HeaderEntry, floor int, table *itemset.Table, stats *fptree.Stats, workers int) error {
	type siblingResult struct {
		table *itemset.Table
		stats *fptree.Stats
		err   error
	}
	if workers > len(headers) {
		workers = len(headers)
	}
	entries := make(chan fptree.HeaderEntry)
	results := make(chan siblingResult, len(headers))
	for i := 0; i < workers; i++ {
		go func() {
			for h := range entries {
				local := itemset.NewTable()
				var localStats *fptree.Stats
				if stats != nil {
					localStats = &fptree.Stats{}
				}
				local.Add([]string{h.Item}, h.Count)
				conditional := tree.PrefixPaths(h.Item)
				var err error
				if len(conditional) > 0 {
					err = mine(ctx, conditional, floor, []string{h.Item}, local, localStats, 0)
				}
				results <- siblingResult{local, localStats, err}
			}
		}()
	}
	go func() {
		defer close(entries)
		for _, h := range headers {
			select {
			case <-ctx.Done():
				return
			case entries <- h:
			}
		}
	}()
	var firstErr error
	pending := len(headers)
	for pending > 0 {
		select {
		case <-ctx.Done():
			if firstErr == nil {
				firstErr = ctx.Err()
			}
			pending--
		case r := <-results:
			pending--
			if r.err != nil {
				if firstErr == nil {
					firstErr = r.err
				}
				continue
			}
			table.Merge(r.table)
			if stats != nil && r.stats != nil {
				stats.Merge(*r.stats)
			}
		}
	}
	return firstErr
}
