package synthetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"negative transaction count", Config{Transactions: -1, AvgItems: 10, StdDev: 5}},
		{"zero average size", Config{Transactions: 10, AvgItems: 0, StdDev: 5}},
		{"negative deviation", Config{Transactions: 10, AvgItems: 10, StdDev: -1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestGenerate(t *testing.T) {
	cfg := Config{Transactions: 200, AvgItems: 8, StdDev: 4, Seed: 42}
	transactions, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, transactions, 200)

	catalog := make(map[string]bool)
	for _, item := range veryCommonItems {
		catalog[item] = true
	}
	for _, item := range commonItems {
		catalog[item] = true
	}
	for _, item := range uncommonItems {
		catalog[item] = true
	}
	for _, tr := range transactions {
		assert.NotEmpty(t, tr)
		seen := make(map[string]bool)
		for _, item := range tr {
			assert.True(t, catalog[item], "unknown item %q", item)
			assert.False(t, seen[item], "repeated item %q", item)
			seen[item] = true
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transactions = 50
	first, err := Generate(cfg)
	require.NoError(t, err)
	second, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateZeroTransactions(t *testing.T) {
	transactions, err := Generate(Config{Transactions: 0, AvgItems: 10, StdDev: 5})
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestCatalogSize(t *testing.T) {
	assert.Equal(t, len(veryCommonItems)+len(commonItems)+len(uncommonItems), CatalogSize())
}
