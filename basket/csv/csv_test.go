package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basketlab/fpgrowth/basket"
)

func TestReadTransactions(t *testing.T) {
	input := `invoice,item
INV1,bread
INV1,milk
INV2,beer
INV1,eggs
INV3,milk
`
	transactions, err := ReadTransactions(strings.NewReader(input))
	require.NoError(t, err)
	// rows are grouped by invoice even when interleaved, in order of
	// first appearance
	assert.Equal(t, []basket.Transaction{
		{"bread", "milk", "eggs"},
		{"beer"},
		{"milk"},
	}, transactions)
}

func TestReadTransactionsEmptyStream(t *testing.T) {
	transactions, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestReadTransactionsHeaderOnly(t *testing.T) {
	transactions, err := ReadTransactions(strings.NewReader("invoice,item\n"))
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestReadTransactionsRejectsBadHeader(t *testing.T) {
	_, err := ReadTransactions(strings.NewReader("id,product\nINV1,bread\n"))
	assert.Error(t, err)
}

func TestReadTransactionsRejectsEmptyFields(t *testing.T) {
	_, err := ReadTransactions(strings.NewReader("invoice,item\nINV1,\n"))
	assert.Error(t, err)
	_, err = ReadTransactions(strings.NewReader("invoice,item\n,bread\n"))
	assert.Error(t, err)
}

func TestReadTransactionsByRowStops(t *testing.T) {
	input := "invoice,item\nINV1,bread\nINV1,milk\nINV2,beer\n"
	var rows int
	err := ReadTransactionsByRow(strings.NewReader(input), func(i int, invoice, item string) (bool, error) {
		rows++
		return rows < 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
}

func TestWriteTransactions(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTransactions(&buf, []basket.Transaction{
		{"bread", "milk"},
		{"beer"},
	})
	require.NoError(t, err)
	expected := `invoice,item
INV000001,bread
INV000001,milk
INV000002,beer
`
	assert.Equal(t, expected, buf.String())
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	original := []basket.Transaction{
		{"bread", "milk", "eggs"},
		{"beer", "cola"},
		{"milk"},
	}
	for i, tr := range original {
		require.NoError(t, w.Write(string(rune('A'+i)), tr))
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, 3, w.Count())

	parsed, err := ReadTransactions(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}
