// Package cmd implements the price-aggregator command line.
package cmd

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"price-aggregator/config"
	"price-aggregator/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "price-aggregator",
	Short: "Compare prices across Indian e-commerce and quick-commerce sites",
	Long: "Searches Amazon, Flipkart, Swiggy Instamart, Zepto and Blinkit in parallel " +
		"with headless Chrome and returns the cheapest offers.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		l, err := utils.NewLogger(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return eris.Wrap(err, "init logger")
		}
		logger = l
		zap.ReplaceGlobals(logger.Zap())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
