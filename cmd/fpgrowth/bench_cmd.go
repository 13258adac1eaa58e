package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/basketlab/fpgrowth/benchmark"
	benchyaml "github.com/basketlab/fpgrowth/benchmark/yaml"
)

type benchCmdConfig struct {
	*rootCmdConfig
	input      string
	planInput  string
	output     string
	maxDBConns int
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func benchCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &benchCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a benchmark plan over a transaction database",
		Long:  `Run every mining experiment a YML benchmark plan describes over a transaction database and report the measurements as JSON`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.Logf("Reading benchmark plan from %s...", config.planInput)
			plan, err := benchyaml.ReadPlanFromFile(config.planInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			transactions, err := readInputTransactions(config.Context(), config.input, config.maxDBConns, config.rootCmdConfig)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Running benchmark plan %q over %d transactions...", plan.Name, len(transactions))
			report, err := benchmark.Run(config.Context(), transactions, plan, config)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			err = config.outputReport(report)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the transactions to benchmark against (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.planInput), "plan", "p", "", "path to a YML file describing the benchmark plan to run (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the benchmark report will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (bcc *benchCmdConfig) Validate() error {
	if bcc.planInput == "" {
		return fmt.Errorf("required plan flag was not set")
	}
	return nil
}

func (bcc *benchCmdConfig) outputReport(report *benchmark.Report) error {
	var f *os.File
	var err error
	if bcc.output == "" {
		bcc.Logf("Using STDOUT to dump benchmark report...")
		f = os.Stdout
	} else {
		bcc.Logf("Creating %s to dump benchmark report...", bcc.output)
		f, err = os.Create(bcc.output)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return benchmark.WriteJSONReport(report, f)
}

func (bcc *benchCmdConfig) setContextAndCancelFunc() {
	if bcc.ctx == nil {
		bcc.ctx, bcc.cancelFunc = context.WithCancel(context.Background())
	}
}

func (bcc *benchCmdConfig) Context() context.Context {
	bcc.setContextAndCancelFunc()
	return bcc.ctx
}
