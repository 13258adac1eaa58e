package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	logger(rcc.verbose).Logf(format, a...)
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fpgrowth",
		Short: "fpgrowth is a tool to mine frequent itemsets from transaction data",
		Long:  `A tool to mine frequent itemsets and association rules from retail transaction databases, generate synthetic transaction data, and benchmark mining runs`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), mineCmd(config), rulesCmd(config), genCmd(config), benchCmd(config))
	return rootCmd
}
