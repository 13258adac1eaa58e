/*
Package benchmark runs batches of mining experiments over a dataset,
sweeping support ratios and sample sizes, and collects per-experiment
measurements into a report.
*/
package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/basketlab/fpgrowth"
	"github.com/basketlab/fpgrowth/basket"
	"github.com/basketlab/fpgrowth/fptree"
)

/*
Plan describes a batch of mining experiments: every combination of
sample size and support ratio is mined once. A sample size of 0 means
the whole dataset.
*/
type Plan struct {
	Name          string    `yaml:"name" json:"name"`
	SupportRatios []float64 `yaml:"supportRatios" json:"supportRatios"`
	SampleSizes   []int     `yaml:"sampleSizes" json:"sampleSizes"`
	MinConfidence float64   `yaml:"minConfidence" json:"minConfidence"`
	TrackStats    bool      `yaml:"trackStats" json:"trackStats"`
	Workers       int       `yaml:"workers" json:"workers"`
	Seed          int64     `yaml:"seed" json:"seed"`
}

/*
Validate returns an error if the plan cannot be run: it must declare at
least one support ratio, every ratio must be greater than 0 and at most
1, sample sizes cannot be negative and the minimum confidence, when
set, must be greater than 0 and at most 1.
*/
func (p *Plan) Validate() error {
	if len(p.SupportRatios) == 0 {
		return fmt.Errorf("plan %q declares no support ratios", p.Name)
	}
	for _, r := range p.SupportRatios {
		if r <= 0.0 || r > 1.0 {
			return fmt.Errorf("plan %q declares invalid support ratio %f: must be in (0, 1]", p.Name, r)
		}
	}
	for _, s := range p.SampleSizes {
		if s < 0 {
			return fmt.Errorf("plan %q declares negative sample size %d", p.Name, s)
		}
	}
	if p.MinConfidence < 0.0 || p.MinConfidence > 1.0 {
		return fmt.Errorf("plan %q declares invalid minimum confidence %f: must be in (0, 1]", p.Name, p.MinConfidence)
	}
	return nil
}

/*
Experiment holds the measurements for one mining run of a plan.
*/
type Experiment struct {
	Transactions   int           `json:"transactions"`
	SupportRatio   float64       `json:"supportRatio"`
	SupportFloor   int           `json:"supportFloor"`
	Patterns       int           `json:"patterns"`
	PatternsBySize map[int]int   `json:"patternsBySize"`
	Rules          int           `json:"rules,omitempty"`
	ElapsedSeconds float64       `json:"elapsedSeconds"`
	Stats          *fptree.Stats `json:"stats,omitempty"`
	Err            string        `json:"error,omitempty"`
}

/*
Report is the outcome of running a plan: the plan itself and one
experiment per sample-size and support-ratio combination, in the order
they were run.
*/
type Report struct {
	Plan        *Plan         `json:"plan"`
	Experiments []*Experiment `json:"experiments"`
}

/*
Logger is the interface the benchmark runner uses to report progress.
*/
type Logger interface {
	Logf(format string, v ...interface{})
}

/*
Run takes a context.Context, a slice of transactions, a plan and a
logger and runs every experiment the plan describes over the
transactions, returning the report with the collected measurements.
Experiments that fail are recorded on the report with their error and
do not abort the run; a cancelled context does.
*/
func Run(ctx context.Context, transactions []basket.Transaction, plan *Plan, l Logger) (*Report, error) {
	err := plan.Validate()
	if err != nil {
		return nil, err
	}
	sizes := plan.SampleSizes
	if len(sizes) == 0 {
		sizes = []int{0}
	}
	report := &Report{Plan: plan}
	for _, size := range sizes {
		sample := transactions
		if size > 0 && size < len(transactions) {
			sample = basket.Sample(transactions, size, plan.Seed)
		}
		for _, ratio := range plan.SupportRatios {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			l.Logf("mining %d transactions at support ratio %f...", len(sample), ratio)
			e := runExperiment(ctx, sample, ratio, plan)
			if e.Err != "" {
				l.Logf("experiment failed: %s", e.Err)
			} else {
				l.Logf("mined %d patterns in %fs", e.Patterns, e.ElapsedSeconds)
			}
			report.Experiments = append(report.Experiments, e)
		}
	}
	return report, nil
}

func runExperiment(ctx context.Context, transactions []basket.Transaction, ratio float64, plan *Plan) *Experiment {
	e := &Experiment{
		Transactions: len(transactions),
		SupportRatio: ratio,
	}
	opts := &fpgrowth.Options{TrackStats: plan.TrackStats, Workers: plan.Workers}
	start := time.Now()
	result, err := fpgrowth.MineFrequentItemsets(ctx, basket.New(transactions), ratio, opts)
	e.ElapsedSeconds = time.Since(start).Seconds()
	if err != nil {
		e.Err = err.Error()
		return e
	}
	e.SupportFloor = result.SupportFloor
	e.Patterns = result.Patterns.Len()
	e.PatternsBySize = result.Patterns.CountBySize()
	e.Stats = result.Stats
	if plan.MinConfidence > 0.0 {
		rules, err := fpgrowth.DeriveRules(result.Patterns, plan.MinConfidence)
		if err != nil {
			e.Err = err.Error()
			return e
		}
		e.Rules = len(rules)
	}
	return e
}

/*
WriteJSONReport takes a report and an io.Writer and serializes the
report as an indented JSON document onto the writer.
*/
func WriteJSONReport(r *Report, w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing benchmark report: %v", err)
	}
	_, err = w.Write(data)
	return err
}
