package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"price-aggregator/models"
	"price-aggregator/services"
	"price-aggregator/storage"
)

var (
	searchCategory string
	searchTop      int
	searchOutput   string
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search once and print the cheapest offers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if searchTop > 0 {
			cfg.Server.TopK = searchTop
		}

		svc, err := newSearchService(cfg, newChromeLauncher(cfg, logger), logger)
		if err != nil {
			return err
		}

		term := strings.Join(args, " ")
		ranked, err := svc.Search(ctx, services.Query{SearchTerm: term, Category: searchCategory})
		if err != nil {
			return eris.Wrapf(err, "search %q", term)
		}

		services.PrintSummary(cmd.OutOrStdout(), term, ranked, services.Summarize(ranked))

		if searchOutput != "" {
			if err := export(searchOutput, ranked); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Results saved to %s\n\n", searchOutput)
		}
		return nil
	},
}

func export(path string, ranked []models.RankedListing) error {
	w, err := storage.NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.Write(ranked); err != nil {
		_ = w.Close()
		return eris.Wrapf(err, "export %s", path)
	}
	return w.Close()
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "category to search (see the categories command)")
	searchCmd.Flags().IntVarP(&searchTop, "top", "n", 0, "number of offers to return (default from config)")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "also write results to a .csv, .json or .yaml file")
	_ = searchCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(searchCmd)
}
