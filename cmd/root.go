package cmd

import (
	"fmt"
	"os"

	"ProgressiveBBS/config"
	"ProgressiveBBS/logger"

	"github.com/spf13/cobra"
)

// cfg 在 PersistentPreRun 中加载，供各子命令使用
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bbs_server",
	Short: "ProgressiveBBS account service.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.InitLogger(logger.DefaultConfig(cfg.LogLevel, cfg.LogFile))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
