package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basketlab/fpgrowth/basket"
)

type discardLogger struct{}

func (discardLogger) Logf(format string, v ...interface{}) {}

func groceryTransactions() []basket.Transaction {
	return []basket.Transaction{
		{"bread", "milk"},
		{"bread", "diapers", "beer", "eggs"},
		{"milk", "diapers", "beer", "cola"},
		{"bread", "milk", "diapers", "beer"},
		{"bread", "milk", "diapers", "cola"},
	}
}

func TestPlanValidate(t *testing.T) {
	testCases := []struct {
		name  string
		plan  Plan
		valid bool
	}{
		{"minimal plan", Plan{Name: "p", SupportRatios: []float64{0.5}}, true},
		{"full plan", Plan{Name: "p", SupportRatios: []float64{0.2, 0.6}, SampleSizes: []int{0, 100}, MinConfidence: 0.7, TrackStats: true, Workers: 4}, true},
		{"no ratios", Plan{Name: "p"}, false},
		{"zero ratio", Plan{Name: "p", SupportRatios: []float64{0}}, false},
		{"ratio above one", Plan{Name: "p", SupportRatios: []float64{1.5}}, false},
		{"negative sample size", Plan{Name: "p", SupportRatios: []float64{0.5}, SampleSizes: []int{-1}}, false},
		{"confidence above one", Plan{Name: "p", SupportRatios: []float64{0.5}, MinConfidence: 1.5}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.plan.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	plan := &Plan{
		Name:          "grocery",
		SupportRatios: []float64{0.6},
		MinConfidence: 0.7,
		TrackStats:    true,
	}
	report, err := Run(context.Background(), groceryTransactions(), plan, discardLogger{})
	require.NoError(t, err)
	require.Len(t, report.Experiments, 1)

	e := report.Experiments[0]
	assert.Empty(t, e.Err)
	assert.Equal(t, 5, e.Transactions)
	assert.Equal(t, 0.6, e.SupportRatio)
	assert.Equal(t, 3, e.SupportFloor)
	assert.Equal(t, 8, e.Patterns)
	assert.Equal(t, map[int]int{1: 4, 2: 4}, e.PatternsBySize)
	// every direction of the four frequent pairs reaches 0.7
	assert.Equal(t, 8, e.Rules)
	require.NotNil(t, e.Stats)
	assert.Greater(t, e.Stats.TreesBuilt, 0)
}

func TestRunSweepsSamplesAndRatios(t *testing.T) {
	plan := &Plan{
		Name:          "sweep",
		SupportRatios: []float64{0.4, 0.6},
		SampleSizes:   []int{0, 4},
		Seed:          42,
	}
	report, err := Run(context.Background(), groceryTransactions(), plan, discardLogger{})
	require.NoError(t, err)
	require.Len(t, report.Experiments, 4)
	assert.Equal(t, 5, report.Experiments[0].Transactions)
	assert.Equal(t, 4, report.Experiments[2].Transactions)
}

func TestRunRecordsExperimentErrors(t *testing.T) {
	// 0.1 of 5 transactions truncates to a support floor of 0
	plan := &Plan{
		Name:          "failing",
		SupportRatios: []float64{0.1, 0.6},
	}
	report, err := Run(context.Background(), groceryTransactions(), plan, discardLogger{})
	require.NoError(t, err)
	require.Len(t, report.Experiments, 2)
	assert.NotEmpty(t, report.Experiments[0].Err)
	assert.Empty(t, report.Experiments[1].Err)
	assert.Equal(t, 8, report.Experiments[1].Patterns)
}

func TestRunRejectsInvalidPlan(t *testing.T) {
	_, err := Run(context.Background(), groceryTransactions(), &Plan{Name: "empty"}, discardLogger{})
	assert.Error(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	plan := &Plan{Name: "p", SupportRatios: []float64{0.5}}
	_, err := Run(ctx, groceryTransactions(), plan, discardLogger{})
	assert.Error(t, err)
}

func TestWriteJSONReport(t *testing.T) {
	plan := &Plan{Name: "grocery", SupportRatios: []float64{0.6}}
	report, err := Run(context.Background(), groceryTransactions(), plan, discardLogger{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSONReport(report, &buf))

	parsed := &Report{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), parsed))
	assert.Equal(t, "grocery", parsed.Plan.Name)
	require.Len(t, parsed.Experiments, 1)
	assert.Equal(t, 8, parsed.Experiments[0].Patterns)
}
