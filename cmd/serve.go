package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codex/internal/history"
	"github.com/ziadkadry99/codex/internal/manifest"
	"github.com/ziadkadry99/codex/internal/progress"
	"github.com/ziadkadry99/codex/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the codex and serve it with live reload",
	Long: `Builds the site, serves it on a local port and, unless --watch=false,
rebuilds whenever the manifest or config file changes. Open pages reload
after every successful rebuild; a failed rebuild keeps the last good
output online.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port for the dev server (defaults to serve.port)")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is up")
	serveCmd.Flags().Bool("watch", true, "rebuild on manifest and config changes")
	serveCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("port"); v > 0 {
		cfg.Serve.Port = v
	}
	if cmd.Flags().Changed("watch") {
		cfg.Serve.Watch, _ = cmd.Flags().GetBool("watch")
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	database, ledger := openLedger(cfg, logger)
	if database != nil {
		defer database.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := newGenerator(cfg, logger, progress.Nop{})
	res, err := gen.Generate(ctx)
	recordBuild(ctx, ledger, logger, cfg, history.TriggerServe, res, err)
	if err != nil {
		if _, statErr := os.Stat(cfg.OutputDir); statErr != nil {
			return fmt.Errorf("building codex: %w", err)
		}
		logger.Warn("initial build failed, serving previous output", "err", err)
		if ledger != nil {
			if last, lastErr := ledger.LastSuccessful(ctx); lastErr == nil {
				logger.Info("previous output", "build", last.ID, "started_at", last.StartedAt)
			}
		}
	}

	srv := server.New(server.Config{
		Port:       cfg.Serve.Port,
		Dir:        cfg.OutputDir,
		AllowAll:   cfg.Serve.AllowAllOrigins,
		LiveReload: cfg.Serve.Watch,
	}, logger, ledger)

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if cfg.Serve.Watch {
		files := []string{cfgFile}
		if !manifest.IsRemote(cfg.Manifest) {
			files = append(files, cfg.Manifest)
		}
		rb := &watchRebuilder{outputDir: cfg.OutputDir, logger: logger, ledger: ledger}
		go func() {
			if err := srv.Watch(ctx, files, rb.rebuild); err != nil {
				logger.Error("file watcher stopped", "err", err)
			}
		}()
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.Serve.Port)
	fmt.Fprintf(os.Stderr, "codex %s serving %s at %s (press Ctrl+C to stop)\n", Version, cfg.OutputDir, url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go func() {
			time.Sleep(300 * time.Millisecond)
			server.OpenBrowser(url)
		}()
	}
	return srv.Start()
}

// watchRebuilder rebuilds the site after a watched file changes. The config
// is read again on every rebuild; the output directory stays the one being
// served.
type watchRebuilder struct {
	outputDir string
	logger    *slog.Logger
	ledger    *history.Store
}

func (w *watchRebuilder) rebuild(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.OutputDir = w.outputDir
	res, err := newGenerator(cfg, w.logger, progress.Nop{}).Generate(ctx)
	recordBuild(ctx, w.ledger, w.logger, cfg, history.TriggerWatch, res, err)
	return err
}
