package cmd

import (
	"fmt"
	"path/filepath"

	"pocket-cards/feature/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Mirror card images into object storage",
	Long: `Reads a card list written by "scrape" and copies every image that is not yet in
the bucket to images/<set>/<set>_<nnn>_<LANG><ext>.`,
	Example: `  pocket-cards images --lang fr
  pocket-cards images --file out/pokemon_cards_en.json --workers 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()

		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			lang, _ := cmd.Flags().GetString("lang")
			if lang == "" {
				lang = cfg.Scraper.Language
			}
			path = filepath.Join(cfg.Scraper.OutputDir, publish.CardsFileName(lang))
		}

		records, err := publish.LoadRecords(path)
		if err != nil {
			return err
		}

		client, err := newStorageClient(cfg.Storage)
		if err != nil {
			return err
		}

		workers, _ := cmd.Flags().GetInt("workers")
		report, err := publish.NewImageMirror(client, cfg.Storage.Bucket, workers, logg).Mirror(cmd.Context(), records)
		if err != nil {
			return err
		}

		for _, e := range report.Errors {
			logg.Warn("Image not mirrored", zap.String("error", e))
		}
		fmt.Printf("uploaded: %d, skipped: %d, failed: %d, without image: %d\n",
			report.Uploaded, report.Skipped, report.Failed, report.NoImage)
		return nil
	},
}

func init() {
	imagesCmd.Flags().String("file", "", "card list to read; defaults to the output file of --lang")
	imagesCmd.Flags().String("lang", "", "language of the card list (en, fr)")
	imagesCmd.Flags().Int("workers", 4, "number of concurrent downloads")
	RootCmd.AddCommand(imagesCmd)
}
