package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the master catalog",
}

var catalogLookupCmd = &cobra.Command{
	Use:     "lookup <expansion> <number>...",
	Short:   "Resolve canonical card ids",
	Example: `  pocket-cards catalog lookup A3b 1 80 107`,
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()

		tables, err := loadTables(cfg.Scraper.TablesPath, logg)
		if err != nil {
			return err
		}
		svc := newCatalogService(cfg.Catalog, tables, logg)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Expansion", "Number", "Canonical ID"})

		expansion := args[0]
		for _, arg := range args[1:] {
			number, err := strconv.Atoi(arg)
			if err != nil || number <= 0 {
				return fmt.Errorf("invalid card number %q", arg)
			}
			res, err := svc.Lookup(cmd.Context(), expansion, number)
			if err != nil {
				return err
			}
			id := res.CanonicalID
			if !res.Found {
				id = "(not found)"
			}
			t.AppendRow(table.Row{expansion, number, id})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Download the catalog and report the index size",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()

		tables, err := loadTables(cfg.Scraper.TablesPath, logg)
		if err != nil {
			return err
		}
		stats, err := newCatalogService(cfg.Catalog, tables, logg).Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("keys: %d\nskipped: %d\n", stats.Keys, stats.Skipped)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogLookupCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
	RootCmd.AddCommand(catalogCmd)
}
