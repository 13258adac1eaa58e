package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/redis.v5"

	fpgrowth "github.com/basketlab/fpgrowth"
	"github.com/basketlab/fpgrowth/basket"
	ijson "github.com/basketlab/fpgrowth/itemset/json"
	"github.com/basketlab/fpgrowth/itemset/redisstore"
)

type mineCmdConfig struct {
	*rootCmdConfig
	input       string
	output      string
	support     float64
	minItems    int
	sampleSize  int
	seed        int64
	trackStats  bool
	workers     int
	maxDBConns  int
	redisPrefix string
	ctx         context.Context
	cancelFunc  context.CancelFunc
}

func mineCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &mineCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine frequent itemsets from a transaction database",
		Long:  `Mine every itemset whose support ratio reaches the given minimum from a transaction database`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			transactions, err := readInputTransactions(config.Context(), config.input, config.maxDBConns, config.rootCmdConfig)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("%d transactions read", len(transactions))
			if config.minItems > 1 {
				transactions = basket.FilterMinItems(transactions, config.minItems)
				config.Logf("%d transactions left after dropping those with fewer than %d distinct items", len(transactions), config.minItems)
			}
			if config.sampleSize > 0 && config.sampleSize < len(transactions) {
				transactions = basket.Sample(transactions, config.sampleSize, config.seed)
				config.Logf("Sampled %d transactions", len(transactions))
			}
			opts := &fpgrowth.Options{TrackStats: config.trackStats, Workers: config.workers}
			config.Logf("Mining frequent itemsets at minimum support %f...", config.support)
			result, err := fpgrowth.MineFrequentItemsets(config.Context(), basket.New(transactions), config.support, opts)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("%d patterns mined with support floor %d", result.Patterns.Len(), result.SupportFloor)
			if result.Stats != nil {
				config.Logf("Built %d trees, peaking at %d nodes and depth %d, using ~%d bytes", result.Stats.TreesBuilt, result.Stats.MaxNodes, result.Stats.MaxDepth, result.Stats.MemoryBytes)
			}
			err = config.outputPatterns(result)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the transactions to mine (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file, or a redis:// URL, to dump the mined patterns (defaults to STDOUT in JSON)")
	cmd.Flags().Float64VarP(&(config.support), "support", "s", 0.01, "minimum support ratio in (0, 1] an itemset must reach to be reported")
	cmd.Flags().IntVar(&(config.minItems), "min-items", 0, "drop transactions with fewer distinct items than this before mining")
	cmd.Flags().IntVar(&(config.sampleSize), "sample", 0, "mine only a random sample of this many transactions (defaults to 0: mine all)")
	cmd.Flags().Int64Var(&(config.seed), "seed", 1, "seed for the sampling randomness")
	cmd.Flags().BoolVar(&(config.trackStats), "stats", false, "track tree-building resource usage and report it on STDERR")
	cmd.Flags().IntVarP(&(config.workers), "workers", "w", 1, "number of goroutines mining top-level conditional trees")
	cmd.Flags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	cmd.Flags().StringVar(&(config.redisPrefix), "redis-prefix", "fpgrowth", "prefix namespacing the keys used when dumping patterns to redis")
	return cmd
}

func (mcc *mineCmdConfig) Validate() error {
	if mcc.support <= 0.0 || mcc.support > 1.0 {
		return fmt.Errorf("support flag must be in (0, 1], got %f", mcc.support)
	}
	if mcc.minItems < 0 {
		return fmt.Errorf("min-items flag must not be negative, got %d", mcc.minItems)
	}
	if mcc.sampleSize < 0 {
		return fmt.Errorf("sample flag must not be negative, got %d", mcc.sampleSize)
	}
	if mcc.workers < 0 {
		return fmt.Errorf("workers flag must not be negative, got %d", mcc.workers)
	}
	return nil
}

func (mcc *mineCmdConfig) outputPatterns(result *fpgrowth.Result) error {
	if strings.HasPrefix(mcc.output, "redis://") {
		return mcc.storePatternsInRedis(result)
	}
	var f *os.File
	var err error
	if mcc.output == "" {
		mcc.Logf("Using STDOUT to dump mined patterns...")
		f = os.Stdout
	} else {
		mcc.Logf("Creating %s to dump mined patterns...", mcc.output)
		f, err = os.Create(mcc.output)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return ijson.WritePatterns(mcc.Context(), result.Patterns, result.TransactionCount, result.SupportFloor, f)
}

func (mcc *mineCmdConfig) storePatternsInRedis(result *fpgrowth.Result) error {
	mcc.Logf("Connecting to redis at %s to store mined patterns...", mcc.output)
	options, err := redisOptions(mcc.output)
	if err != nil {
		return err
	}
	store := redisstore.New(redis.NewClient(options), mcc.redisPrefix, ijson.NewPatternEncodeDecoder())
	defer store.Close(mcc.Context())
	for _, p := range result.Patterns.Patterns() {
		err = store.Put(mcc.Context(), p)
		if err != nil {
			return err
		}
	}
	return nil
}

/*
redisOptions parses a redis://[:password@]host:port[/db] URL into
client options.
*/
func redisOptions(redisURL string) (*redis.Options, error) {
	u, err := url.Parse(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL %s: %v", redisURL, err)
	}
	options := &redis.Options{Addr: u.Host}
	if u.User != nil {
		options.Password, _ = u.User.Password()
	}
	if len(u.Path) > 1 {
		db, err := strconv.Atoi(u.Path[1:])
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL %s: invalid DB number %s", redisURL, u.Path[1:])
		}
		options.DB = db
	}
	return options, nil
}

func (mcc *mineCmdConfig) setContextAndCancelFunc() {
	if mcc.ctx == nil {
		mcc.ctx, mcc.cancelFunc = context.WithCancel(context.Background())
	}
}

func (mcc *mineCmdConfig) Context() context.Context {
	mcc.setContextAndCancelFunc()
	return mcc.ctx
}

func (mcc *mineCmdConfig) ContextCancelFunc() context.CancelFunc {
	mcc.setContextAndCancelFunc()
	return mcc.cancelFunc
}
