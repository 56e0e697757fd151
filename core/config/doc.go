// Package config provides configuration management for the card scraper.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Scraper: source language, politeness delay, retries and output directory
//   - Catalog: master catalog URL and cache lifetime
//
// Every field carries a `default` tag; environment keys are the upper-cased
// section and field joined by an underscore (SCRAPER_DELAY_MILLIS).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Scraper.Language)
package config
