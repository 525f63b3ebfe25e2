package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"price-aggregator/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the price comparison HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := newSearchService(cfg, newChromeLauncher(cfg, logger), logger)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		logger.Info("=== Price aggregator starting ===")
		logger.Info("Config: port %d | top %d | browsers %d | listings/site %d",
			port, cfg.Server.TopK, cfg.Scraper.MaxBrowsers, cfg.Scraper.MaxListings)

		srv := server.New(svc, server.Options{
			Port:            port,
			AllowedOrigins:  cfg.Server.AllowedOrigins,
			ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeoutSecs) * time.Second,
		}, logger)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
