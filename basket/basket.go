/*
Package basket defines retail transactions and the Dataset interface
through which the miner consumes them, together with the
preprocessing helpers (deduplication, minimum-size filtering,
sampling, item statistics) applied before mining.
*/
package basket

import (
	"context"
	"math/rand"
	"sort"
)

/*
Transaction is the collection of item labels co-occurring in one
event, e.g. one purchase. Order carries no meaning and repeated labels
within one transaction do not increase its support contribution.
*/
type Transaction []string

/*
Dedupe returns the transaction with repeated labels dropped, keeping
the first occurrence of each. The receiver is not modified.
*/
func (t Transaction) Dedupe() Transaction {
	result := make(Transaction, 0, len(t))
	seen := make(map[string]bool, len(t))
	for _, item := range t {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

// Contains reports whether the transaction holds the given item.
func (t Transaction) Contains(item string) bool {
	for _, i := range t {
		if i == item {
			return true
		}
	}
	return false
}

/*
Dataset represents a collection of transactions.

Its Transactions method materializes every transaction it contains.
Its Count method returns the number of transactions. Its ItemCounts
method returns, for every item, the number of transactions containing
it (each transaction counted once regardless of repeated labels).

All methods take a context that backend-based implementations may use
to allow timeouts and cancellations.
*/
type Dataset interface {
	Transactions(context.Context) ([]Transaction, error)
	Count(context.Context) (int, error)
	ItemCounts(context.Context) (map[string]int, error)
}

type memoryDataset struct {
	transactions []Transaction
}

// New takes a slice of transactions and returns a Dataset holding
// them in memory.
func New(transactions []Transaction) Dataset {
	return &memoryDataset{transactions}
}

func (md *memoryDataset) Transactions(ctx context.Context) ([]Transaction, error) {
	return md.transactions, nil
}

func (md *memoryDataset) Count(ctx context.Context) (int, error) {
	return len(md.transactions), nil
}

func (md *memoryDataset) ItemCounts(ctx context.Context) (map[string]int, error) {
	return CountItems(md.transactions), nil
}

/*
CountItems returns, for every item appearing in the given
transactions, the number of transactions containing it.
*/
func CountItems(transactions []Transaction) map[string]int {
	counts := make(map[string]int)
	for _, t := range transactions {
		for _, item := range t.Dedupe() {
			counts[item]++
		}
	}
	return counts
}

/*
FilterMinItems returns the transactions holding at least min distinct
items, preserving their order.
*/
func FilterMinItems(transactions []Transaction, min int) []Transaction {
	result := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if len(t.Dedupe()) >= min {
			result = append(result, t)
		}
	}
	return result
}

/*
Sample takes a slice of transactions, a sample size and a seed and
returns n transactions drawn without replacement. The draw is
deterministic for a given seed. If n is not smaller than the number of
transactions, a copy of the whole slice is returned.
*/
func Sample(transactions []Transaction, n int, seed int64) []Transaction {
	if n >= len(transactions) {
		result := make([]Transaction, len(transactions))
		copy(result, transactions)
		return result
	}
	r := rand.New(rand.NewSource(seed))
	indexes := r.Perm(len(transactions))[:n]
	sort.Ints(indexes)
	result := make([]Transaction, 0, n)
	for _, i := range indexes {
		result = append(result, transactions[i])
	}
	return result
}

/*
ItemStat describes how often one item occurs across a set of
transactions: its absolute frequency and its support as a fraction of
the transaction count.
*/
type ItemStat struct {
	Item      string
	Frequency int
	Support   float64
}

/*
ItemStats returns per-item statistics over the given transactions,
sorted by descending frequency with ties broken by ascending label.
*/
func ItemStats(transactions []Transaction) []ItemStat {
	counts := CountItems(transactions)
	result := make([]ItemStat, 0, len(counts))
	total := float64(len(transactions))
	for item, count := range counts {
		result = append(result, ItemStat{
			Item:      item,
			Frequency: count,
			Support:   float64(count) / total,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Frequency != result[j].Frequency {
			return result[i].Frequency > result[j].Frequency
		}
		return result[i].Item < result[j].Item
	})
	return result
}
