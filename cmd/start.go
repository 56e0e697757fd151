package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"pocket-cards/core/loader"
	"pocket-cards/core/logger"
	"pocket-cards/core/middleware/auth"
	"pocket-cards/core/middleware/rayid"

	"pocket-cards/feature/cards"
	"pocket-cards/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the card API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration and Logger
		cfg, logg, err := loadRuntime()
		if err != nil {
			log.Fatal(err)
		}
		defer logg.Sync()

		tables, err := loadTables(cfg.Scraper.TablesPath, logg)
		if err != nil {
			logg.Fatal("Failed to load reconciliation tables", zap.Error(err))
		}

		// 2. Connect to Database (Optional)
		var cardService *cards.Service
		if store, err := openCardStore(cfg.Database, logg); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			cardService = cards.NewService(store, logg)
			logg.Info("Connected to card database", zap.String("driver", cfg.Database.Driver))
		}

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(newCatalogService(cfg.Catalog, tables, logg)))
		mgr.Register(cards.NewFeature(cardService))

		// RayID first so every log line can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		if cfg.Server.IsProtected() {
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		} else {
			logg.Warn("No API key configured, routes are public")
		}

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
