package cmd

import (
	"fmt"

	"pocket-cards/feature/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check the bucket layout",
	Long:  `Checks that the bucket holds the cards/ and images/ folders. With --fix, missing folders are created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := newStorageClient(cfg.Storage)
		if err != nil {
			return err
		}
		publisher := publish.NewPublisher(client, cfg.Storage.Bucket, cfg.Storage.Region, logg)

		missing, err := publisher.CheckStructure(ctx)
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			logg.Info("Bucket structure OK", zap.String("bucket", cfg.Storage.Bucket))
			return nil
		}

		logg.Warn("Missing folders", zap.Strings("folders", missing))
		if fix, _ := cmd.Flags().GetBool("fix"); !fix {
			return fmt.Errorf("bucket %s is missing %d folders", cfg.Storage.Bucket, len(missing))
		}
		return publisher.FixStructure(ctx, missing)
	},
}

func init() {
	storageCmd.Flags().Bool("fix", false, "create the missing folders")
	RootCmd.AddCommand(storageCmd)
}
