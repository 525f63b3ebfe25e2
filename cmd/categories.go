package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"price-aggregator/services"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the search categories and the platforms behind each",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newSearchService(cfg, newChromeLauncher(cfg, logger), logger)
		if err != nil {
			return err
		}
		printCategories(cmd.OutOrStdout(), svc.Catalog())
		return nil
	},
}

func printCategories(w io.Writer, catalog *services.Catalog) {
	platforms := catalog.Platforms()
	for _, name := range catalog.Categories() {
		fmt.Fprintf(w, "%-10s", name)
		for i, p := range platforms[name] {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, " %s", p)
		}
		fmt.Fprintln(w)
	}
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
