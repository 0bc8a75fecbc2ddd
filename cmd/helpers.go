package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ziadkadry99/codex/internal/assets"
	"github.com/ziadkadry99/codex/internal/config"
	"github.com/ziadkadry99/codex/internal/db"
	"github.com/ziadkadry99/codex/internal/history"
	"github.com/ziadkadry99/codex/internal/logging"
	"github.com/ziadkadry99/codex/internal/progress"
	"github.com/ziadkadry99/codex/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `codex init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if err := assets.ValidatePatterns(cfg.Assets); err != nil {
		return nil, err
	}
	if err := assets.ValidatePatterns(cfg.Exclude); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the config and installs it as
// the slog default. -v forces debug level.
func newLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger, closeFn, err := logging.New(logging.Options{Level: level, LogFile: cfg.LogFile})
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// newGenerator maps the config onto site generator options.
func newGenerator(cfg *config.Config, logger *slog.Logger, reporter progress.Reporter) *site.SiteGenerator {
	return site.NewSiteGenerator(site.Options{
		Manifest:      cfg.Manifest,
		OutputDir:     cfg.OutputDir,
		Title:         cfg.Title,
		BaseURL:       cfg.BaseURL,
		MarkdownNotes: cfg.MarkdownNotes,
		Assets:        cfg.Assets,
		Exclude:       cfg.Exclude,
		Thumbnails:    cfg.Thumbnails.Enabled,
		ThumbWidth:    cfg.Thumbnails.Width,
		Logger:        logger,
		Reporter:      reporter,
	})
}

// openLedger opens the build ledger. The ledger is optional: an empty
// ledger_path disables it and an open failure is logged, not fatal.
func openLedger(cfg *config.Config, logger *slog.Logger) (*db.DB, *history.Store) {
	if cfg.LedgerPath == "" {
		return nil, nil
	}
	database, err := db.Open(cfg.LedgerPath)
	if err != nil {
		logger.Warn("build ledger unavailable", "path", cfg.LedgerPath, "err", err)
		return nil, nil
	}
	return database, history.NewStore(database)
}

// recordBuild writes the outcome of a build to the ledger, if there is one.
func recordBuild(ctx context.Context, store *history.Store, logger *slog.Logger, cfg *config.Config, trigger history.Trigger, res site.Result, buildErr error) {
	if store == nil {
		return
	}
	out, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		out = cfg.OutputDir
	}
	b := history.Build{
		StartedAt:      res.StartedAt,
		Duration:       res.Duration,
		Manifest:       cfg.Manifest,
		ManifestDigest: res.Digest,
		OutputDir:      out,
		Pages:          res.Pages,
		Plates:         res.Plates,
		Thumbnails:     res.Thumbnails,
		Assets:         res.Assets,
		Trigger:        trigger,
		Status:         history.StatusOK,
	}
	if buildErr != nil {
		b.Status = history.StatusFailed
		b.Error = buildErr.Error()
	}
	if _, err := store.Record(ctx, b); err != nil {
		logger.Warn("recording build failed", "err", err)
	}
}
