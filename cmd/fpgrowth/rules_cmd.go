package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fpgrowth "github.com/basketlab/fpgrowth"
	"github.com/basketlab/fpgrowth/itemset"
	ijson "github.com/basketlab/fpgrowth/itemset/json"
)

type rulesCmdConfig struct {
	*rootCmdConfig
	input      string
	output     string
	confidence float64
}

func rulesCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &rulesCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Derive association rules from mined patterns",
		Long:  `Derive every association rule reaching the given minimum confidence from a pattern document produced by the mine command`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			table, transactions, floor, err := config.readPatterns()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("%d patterns read, mined from %d transactions with support floor %d", table.Len(), transactions, floor)
			rules, err := fpgrowth.DeriveRules(table, config.confidence)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("%d rules derived at minimum confidence %f", len(rules), config.confidence)
			err = config.outputRules(rules)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", "path to a JSON pattern document produced by the mine command (defaults to STDIN)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the derived rules will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().Float64VarP(&(config.confidence), "confidence", "c", 0.5, "minimum confidence ratio in (0, 1] a rule must reach to be reported")
	return cmd
}

func (rcc *rulesCmdConfig) Validate() error {
	if rcc.confidence <= 0.0 || rcc.confidence > 1.0 {
		return fmt.Errorf("confidence flag must be in (0, 1], got %f", rcc.confidence)
	}
	return nil
}

func (rcc *rulesCmdConfig) readPatterns() (table *itemset.Table, transactions, floor int, err error) {
	var f *os.File
	if rcc.input == "" {
		rcc.Logf("Reading patterns from STDIN...")
		f = os.Stdin
	} else {
		rcc.Logf("Reading patterns from %s...", rcc.input)
		f, err = os.Open(rcc.input)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("reading patterns from %s: %v", rcc.input, err)
		}
		defer f.Close()
	}
	return ijson.ReadPatterns(f)
}

func (rcc *rulesCmdConfig) outputRules(rules []fpgrowth.Rule) error {
	var f *os.File
	var err error
	if rcc.output == "" {
		rcc.Logf("Using STDOUT to dump derived rules...")
		f = os.Stdout
	} else {
		rcc.Logf("Creating %s to dump derived rules...", rcc.output)
		f, err = os.Create(rcc.output)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing rules: %v", err)
	}
	_, err = f.Write(data)
	return err
}
