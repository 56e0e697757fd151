package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage the cards table",
}

var cardsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the cards table with the card model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()

		store, err := openCardStore(cfg.Database, logg)
		if err != nil {
			return err
		}

		report, err := store.CheckSchema(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		if report.OK {
			fmt.Printf("%s (%s): schema OK\n", report.Table, report.Driver)
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Missing column"})
		for _, col := range report.Missing {
			t.AppendRow(table.Row{col})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return fmt.Errorf("%s is missing %d columns", report.Table, len(report.Missing))
	},
}

func init() {
	cardsSchemaCmd.Flags().Bool("json", false, "print the report as JSON")
	cardsCmd.AddCommand(cardsSchemaCmd)
	RootCmd.AddCommand(cardsCmd)
}
