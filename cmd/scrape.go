package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"pocket-cards/core/reconcile"
	"pocket-cards/feature/catalog"
	"pocket-cards/feature/publish"
	"pocket-cards/feature/sources"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape card pages and reconcile them with the master catalog",
	Long: `Scrapes every selected set from the source of the chosen language, assigns global
ids, resolves canonical ids against the master catalog and writes
pokemon_cards_<lang>.json and pokemon_cards_<lang>_eligible.json.

With no set selected the regular sets are scraped. The promo sets are only
served by the fr source. When the master catalog cannot be downloaded the
scrape goes on with empty canonical ids, unless --require-catalog is set.`,
	Example: `  pocket-cards scrape --lang en --sets A3b
  pocket-cards scrape --lang fr --all --promo --upload --save-db
  pocket-cards scrape --sets A1 --start 200 --limit 20`,
	RunE: runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.StringSlice("sets", nil, "set codes to scrape (e.g. A1,A3b)")
	f.Bool("all", false, "scrape every regular set")
	f.Bool("promo", false, "also scrape the promo sets")
	f.Int("start", 0, "first local number to scrape in each set")
	f.Int("end", 0, "last local number to scrape in each set")
	f.Int("limit", 0, "maximum number of cards per set")
	f.String("lang", "", "source language (en, fr); defaults to SCRAPER_LANGUAGE")
	f.String("tables", "", "reconciliation tables file; defaults to SCRAPER_TABLES_PATH or the embedded tables")
	f.String("out", "", "output directory; defaults to SCRAPER_OUTPUT_DIR")
	f.Bool("upload", false, "upload the outputs to object storage")
	f.Bool("save-db", false, "save the records to the database")
	f.Bool("require-catalog", false, "fail when the master catalog cannot be downloaded")
	RootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	startTime := time.Now()

	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()

	f := cmd.Flags()
	if lang, _ := f.GetString("lang"); lang != "" {
		cfg.Scraper.Language = strings.ToLower(lang)
	}
	if path, _ := f.GetString("tables"); path != "" {
		cfg.Scraper.TablesPath = path
	}
	if out, _ := f.GetString("out"); out != "" {
		cfg.Scraper.OutputDir = out
	}

	tables, err := loadTables(cfg.Scraper.TablesPath, logg)
	if err != nil {
		return err
	}

	src, err := sources.New(cfg.Scraper)
	if err != nil {
		return err
	}

	sets, err := selectSets(cmd, tables, src.Language())
	if err != nil {
		return err
	}

	strict, _ := f.GetBool("require-catalog")
	index, err := loadIndex(ctx, newCatalogService(cfg.Catalog, tables, logg), tables, logg, strict)
	if err != nil {
		return err
	}

	opts := reconcile.RunOptions{}
	opts.Start, _ = f.GetInt("start")
	opts.End, _ = f.GetInt("end")
	opts.Limit, _ = f.GetInt("limit")

	result, runErr := reconcile.NewEngine(tables, index, logg).Run(ctx, src, sets, opts)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		logg.Warn("Run interrupted, writing partial results", zap.Error(runErr))
	}

	paths, err := publish.WriteFiles(cfg.Scraper.OutputDir, src.Language(), result)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logg.Info("Wrote file", zap.String("path", p))
	}

	printRunSummary(result)

	if upload, _ := f.GetBool("upload"); upload {
		client, err := newStorageClient(cfg.Storage)
		if err != nil {
			return err
		}
		publisher := publish.NewPublisher(client, cfg.Storage.Bucket, cfg.Storage.Region, logg)
		if _, err := publisher.Upload(ctx, src.Language(), result); err != nil {
			return err
		}
	}

	if saveDB, _ := f.GetBool("save-db"); saveDB {
		store, err := openCardStore(cfg.Database, logg)
		if err != nil {
			return err
		}
		if _, _, err := store.SaveRun(ctx, result); err != nil {
			return err
		}
	}

	logg.Info("Scrape finished",
		zap.Int("records", len(result.Records())),
		zap.Duration("duration", time.Since(startTime)),
	)
	return runErr
}

// loadIndex returns the catalog index. When the catalog cannot be downloaded
// the run goes on with an empty index and every canonical id is left empty,
// unless strict is set.
func loadIndex(ctx context.Context, svc *catalog.Service, tables *reconcile.Tables, logg *zap.Logger, strict bool) (*reconcile.Index, error) {
	index, err := svc.Index(ctx)
	if err == nil {
		return index, nil
	}
	if strict {
		return nil, err
	}
	logg.Warn("Catalog unavailable, canonical ids will be left empty", zap.Error(err))
	return reconcile.BuildIndex(nil, tables.ExpansionAliases, logg), nil
}

// selectSets resolves --sets, --all and --promo into the sets to scrape for
// the source of lang.
func selectSets(cmd *cobra.Command, tables *reconcile.Tables, lang string) ([]reconcile.SetDefinition, error) {
	f := cmd.Flags()
	codes, _ := f.GetStringSlice("sets")
	all, _ := f.GetBool("all")
	promo, _ := f.GetBool("promo")

	var sets []reconcile.SetDefinition
	switch {
	case len(codes) > 0 && all:
		return nil, fmt.Errorf("--sets and --all are mutually exclusive")
	case len(codes) > 0:
		selected, err := tables.SelectSets(codes)
		if err != nil {
			return nil, err
		}
		sets = selected
	case all || !promo:
		sets = tables.RegularSets()
	}

	if promo {
		for _, p := range tables.PromoSets() {
			if !containsSet(sets, p.Code) {
				sets = append(sets, p)
			}
		}
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no set selected")
	}
	if !sources.SupportsPromo(lang) {
		for _, set := range sets {
			if set.Promo {
				return nil, fmt.Errorf("promo set %s is not available from the %s source", set.Code, lang)
			}
		}
	}
	return sets, nil
}

func containsSet(sets []reconcile.SetDefinition, code string) bool {
	for _, s := range sets {
		if s.Code == code {
			return true
		}
	}
	return false
}

func printRunSummary(result *reconcile.RunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Set", "Records", "Failures", "Unresolved", "Eligible", "Eligible w/o id", "Status"})

	for _, s := range result.Sets {
		status := "ok"
		if s.Abandoned {
			status = fmt.Sprintf("abandoned at %d", s.AbandonedAt)
		}
		t.AppendRow(table.Row{s.Set.Code, len(s.Records), s.Failures, s.Unresolved, len(result.Eligible[s.Set.Code]), s.UnresolvedEligible, status})
	}

	t.AppendFooter(table.Row{"Total", len(result.Records()), "", "", "", "", result.Language})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
