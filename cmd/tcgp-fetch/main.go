package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/YukiMaitani/tcgp-card-data/internal/catalog"
	cfgpkg "github.com/YukiMaitani/tcgp-card-data/internal/config"
	"github.com/YukiMaitani/tcgp-card-data/internal/debugserver"
	errpkg "github.com/YukiMaitani/tcgp-card-data/internal/errors"
	"github.com/YukiMaitani/tcgp-card-data/internal/fetcher"
	"github.com/YukiMaitani/tcgp-card-data/internal/pool"
	"github.com/YukiMaitani/tcgp-card-data/internal/report"
	"github.com/YukiMaitani/tcgp-card-data/internal/retry"
	"github.com/YukiMaitani/tcgp-card-data/internal/storage"
	"github.com/YukiMaitani/tcgp-card-data/internal/validation"
)

var (
	flagForce       bool
	flagConcurrency int
	flagLocales     string
	flagSets        []string

	rootCmd = &cobra.Command{
		Use:   "tcgp-fetch",
		Short: "Fetch localized TCG card images into a local data directory",
		Long: `tcgp-fetch downloads the card images described by a remote catalog
manifest into a local data directory, one file per card and locale.

Reruns are cheap: files that are already present are skipped unless
--force is given. A card image that does not exist in a requested
locale is counted separately from real failures, since partial
localizations are common.`,
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "re-download files that already exist")
	rootCmd.Flags().IntVarP(&flagConcurrency, "concurrency", "c", 0, "number of parallel downloads (overrides TCGP_CONCURRENCY)")
	rootCmd.Flags().StringVarP(&flagLocales, "locales", "l", "", "comma-separated locales to fetch (overrides TCGP_LOCALES)")
	rootCmd.Flags().StringSliceVarP(&flagSets, "sets", "s", nil, "set codes to fetch (default: all sets)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := cfgpkg.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = flagConcurrency
	}
	if cmd.Flags().Changed("locales") {
		cfg.Locales = flagLocales
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	cfgpkg.SetupLogger(cfg)

	if err := validation.ValidateEndpoints(cfg.CatalogURL, cfg.BaseURL); err != nil {
		return err
	}

	logger := slog.Default().With("run_id", uuid.New().String())
	logger.Info("configuration loaded", "data_dir", cfg.DataDir, "concurrency", cfg.Concurrency)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		dbg := debugserver.New(cfg.MetricsAddr, logger)
		dbg.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := dbg.Shutdown(shutdownCtx); err != nil {
				logger.Error("debug server shutdown failed", "error", err)
			}
		}()
	}

	manifest, err := loadManifest(ctx, cfg, logger)
	if err != nil {
		return err
	}

	locales := splitList(cfg.Locales)
	tasks, err := catalog.BuildTasks(manifest, cfg.BaseURL, locales, flagSets)
	if err != nil {
		return err
	}
	logger.Info("task list built", "tasks", len(tasks), "locales", len(locales))

	store := storage.NewFileStorage(cfg.DataDir)
	runner := retry.NewRunner(
		fetcher.NewHTTPFetcher(cfg.HTTPTimeout, logger),
		store,
		retry.Options{
			RetryCount:   cfg.RetryCount,
			RetryDelay:   cfg.RetryDelay,
			RequestDelay: cfg.RequestDelay,
			Force:        flagForce,
		},
		logger,
	)

	reporter := report.NewReporter(os.Stdout, len(tasks))
	workers := pool.NewPool(runner, cfg.Concurrency, reporter.Update, logger)

	start := time.Now()
	summary := workers.Run(ctx, tasks)

	bytesOnDisk, err := store.TotalSize()
	if err != nil {
		logger.Warn("failed to measure data directory", "error", err)
	}
	reporter.Summarize(summary, bytesOnDisk, time.Since(start))

	// Missing localizations and even exhausted retries are warnings, not a
	// failed run; the operator reads them off the summary.
	if summary.Failed > 0 {
		logger.Warn("run finished with failures", "failed", summary.Failed)
	} else {
		logger.Info("run finished", "downloaded", summary.Downloaded, "skipped", summary.Skipped)
	}

	return nil
}

func loadManifest(ctx context.Context, cfg *cfgpkg.Config, logger *slog.Logger) (*catalog.Manifest, error) {
	client := catalog.NewClient(cfg.CatalogURL, cfg.HTTPTimeout, logger)
	cache := catalog.NewCache(cfg.CacheFile)

	manifest, err := client.FetchManifest(ctx)
	if err == nil {
		if storeErr := cache.Store(manifest); storeErr != nil {
			logger.Warn("failed to store catalog cache", "error", storeErr)
		}
		return manifest, nil
	}

	if !errors.Is(err, errpkg.ErrCatalogUnavailable) {
		return nil, err
	}

	logger.Warn("catalog unavailable, falling back to cache", "error", err)

	cached, fetchedAt, cacheErr := cache.Load()
	if cacheErr != nil {
		return nil, fmt.Errorf("catalog fetch failed and no usable cache: %w", err)
	}

	logger.Info("using cached catalog manifest", "fetched_at", fetchedAt)
	return cached, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
