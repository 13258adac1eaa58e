package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"

	"github.com/basketlab/fpgrowth/basket"
	"github.com/basketlab/fpgrowth/basket/csv"
	"github.com/basketlab/fpgrowth/basket/mongobasket"
	"github.com/basketlab/fpgrowth/basket/sqlbasket"
	"github.com/basketlab/fpgrowth/basket/sqlbasket/pgadapter"
	"github.com/basketlab/fpgrowth/basket/sqlbasket/sqlite3adapter"
	"github.com/basketlab/fpgrowth/basket/synthetic"
)

type genCmdConfig struct {
	*rootCmdConfig
	output       string
	transactions int
	avgItems     float64
	stdDev       float64
	seed         uint64
	maxDBConns   int
	ctx          context.Context
	cancelFunc   context.CancelFunc
}

type transactionWriter interface {
	Write(ctx context.Context, invoice string, t basket.Transaction) error
}

func genCmd(rootConfig *rootCmdConfig) *cobra.Command {
	defaults := synthetic.DefaultConfig()
	config := &genCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic transaction database",
		Long:  `Generate a synthetic retail transaction database with normally distributed transaction sizes over a fixed item catalog`,
		Run: func(cmd *cobra.Command, args []string) {
			config.Logf("Generating %d transactions of %f±%f items with seed %d...", config.transactions, config.avgItems, config.stdDev, config.seed)
			transactions, err := synthetic.Generate(synthetic.Config{
				Transactions: config.transactions,
				AvgItems:     config.avgItems,
				StdDev:       config.stdDev,
				Seed:         config.seed,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			err = config.outputTransactions(transactions)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the generated transactions (defaults to STDOUT in CSV)")
	cmd.Flags().IntVarP(&(config.transactions), "transactions", "n", defaults.Transactions, "number of transactions to generate")
	cmd.Flags().Float64Var(&(config.avgItems), "avg-items", defaults.AvgItems, "average number of items per transaction")
	cmd.Flags().Float64Var(&(config.stdDev), "std-dev", defaults.StdDev, "standard deviation of the number of items per transaction")
	cmd.Flags().Uint64Var(&(config.seed), "seed", defaults.Seed, "seed for the generation randomness")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (gcc *genCmdConfig) outputTransactions(transactions []basket.Transaction) error {
	if strings.HasPrefix(gcc.output, "postgresql://") {
		gcc.Logf("Creating PostgreSQL adapter for url %s to dump generated transactions...", gcc.output)
		adapter, err := pgadapter.New(gcc.output, gcc.maxDBConns)
		if err != nil {
			return err
		}
		ds, err := sqlbasket.Create(gcc.Context(), adapter)
		if err != nil {
			return err
		}
		defer ds.Close()
		return writeTransactions(gcc.Context(), ds, transactions)
	}
	if strings.HasPrefix(gcc.output, "mongodb://") {
		gcc.Logf("Connecting to MongoDB at %s to dump generated transactions...", gcc.output)
		session, err := mgo.Dial(gcc.output)
		if err != nil {
			return fmt.Errorf("connecting to MongoDB at %s: %v", gcc.output, err)
		}
		defer session.Close()
		ds, err := mongobasket.Open(gcc.Context(), session)
		if err != nil {
			return err
		}
		return writeTransactions(gcc.Context(), ds, transactions)
	}
	if strings.HasSuffix(gcc.output, ".db") {
		gcc.Logf("Creating SQLite3 adapter for file %s to dump generated transactions...", gcc.output)
		adapter, err := sqlite3adapter.New(gcc.output, gcc.maxDBConns)
		if err != nil {
			return err
		}
		ds, err := sqlbasket.Create(gcc.Context(), adapter)
		if err != nil {
			return err
		}
		defer ds.Close()
		return writeTransactions(gcc.Context(), ds, transactions)
	}
	var f *os.File
	var err error
	if gcc.output == "" {
		gcc.Logf("Using STDOUT to dump generated transactions...")
		f = os.Stdout
	} else {
		gcc.Logf("Creating %s to dump generated transactions...", gcc.output)
		f, err = os.Create(gcc.output)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return csv.WriteTransactions(f, transactions)
}

func writeTransactions(ctx context.Context, w transactionWriter, transactions []basket.Transaction) error {
	for i, t := range transactions {
		err := w.Write(ctx, fmt.Sprintf("INV%06d", i+1), t)
		if err != nil {
			return err
		}
	}
	return nil
}

func (gcc *genCmdConfig) setContextAndCancelFunc() {
	if gcc.ctx == nil {
		gcc.ctx, gcc.cancelFunc = context.WithCancel(context.Background())
	}
}

func (gcc *genCmdConfig) Context() context.Context {
	gcc.setContextAndCancelFunc()
	return gcc.ctx
}
