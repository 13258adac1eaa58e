package json

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basketlab/fpgrowth/itemset"
)

func TestWritePatterns(t *testing.T) {
	table := itemset.NewTable()
	table.Add([]string{"milk", "bread"}, 3)
	table.Add([]string{"bread"}, 4)

	var buf bytes.Buffer
	err := WritePatterns(context.Background(), table, 5, 3, &buf)
	require.NoError(t, err)

	expected := `{"transactions":5,"supportFloor":3,"patterns":[{"items":["bread"],"support":4},{"items":["bread","milk"],"support":3}]}`
	assert.Equal(t, expected, buf.String())
}

func TestWritePatternsEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	err := WritePatterns(context.Background(), itemset.NewTable(), 0, 0, &buf)
	require.NoError(t, err)
	assert.Equal(t, `{"transactions":0,"supportFloor":0,"patterns":[]}`, buf.String())
}

func TestReadPatterns(t *testing.T) {
	doc := `{"transactions":5,"supportFloor":3,"patterns":[{"items":["bread"],"support":4},{"items":["bread","milk"],"support":3}]}`
	table, transactions, floor, err := ReadPatterns(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 5, transactions)
	assert.Equal(t, 3, floor)
	assert.Equal(t, 2, table.Len())

	support, ok := table.Support([]string{"milk", "bread"})
	require.True(t, ok)
	assert.Equal(t, 3, support)
}

func TestReadPatternsRejectsEmptyItemsets(t *testing.T) {
	doc := `{"transactions":1,"supportFloor":1,"patterns":[{"items":[],"support":1}]}`
	_, _, _, err := ReadPatterns(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestReadPatternsRejectsGarbage(t *testing.T) {
	_, _, _, err := ReadPatterns(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	table := itemset.NewTable()
	table.Add([]string{"beer", "diapers"}, 3)
	table.Add([]string{"beer"}, 3)
	table.Add([]string{"diapers"}, 4)

	var buf bytes.Buffer
	require.NoError(t, WritePatterns(context.Background(), table, 5, 3, &buf))
	parsed, transactions, floor, err := ReadPatterns(&buf)
	require.NoError(t, err)
	assert.Equal(t, 5, transactions)
	assert.Equal(t, 3, floor)
	assert.Equal(t, table.Patterns(), parsed.Patterns())
}

func TestPatternEncodeDecoder(t *testing.T) {
	ped := NewPatternEncodeDecoder()
	p := &itemset.Pattern{Items: []string{"bread", "milk"}, Support: 3}

	data, err := ped.Encode(p)
	require.NoError(t, err)
	decoded, err := ped.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestPatternEncodeDecoderRejectsEmptyItemsets(t *testing.T) {
	ped := NewPatternEncodeDecoder()
	_, err := ped.Decode([]byte(`{"items":[],"support":1}`))
	assert.Error(t, err)
	_, err = ped.Decode([]byte(`garbage`))
	assert.Error(t, err)
}
