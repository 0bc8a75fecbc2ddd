package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codex/internal/history"
	"github.com/ziadkadry99/codex/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the codex manifest into a static site",
	Long: `Renders every section of the manifest, one page per route, plus the landing
page, a fallback page per gallery plate, thumbnails, the search index and
(when base_url is set) a sitemap. The previous output is only replaced
once the whole build succeeds.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().String("manifest", "", "override manifest path or URL")
	buildCmd.Flags().Bool("no-thumbnails", false, "skip thumbnail generation")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("manifest"); v != "" {
		cfg.Manifest = v
	}
	if v, _ := cmd.Flags().GetBool("no-thumbnails"); v {
		cfg.Thumbnails.Enabled = false
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

	ctx := cmd.Context()
	res, err := newGenerator(cfg, logger, progress.NewReporter()).Generate(ctx)
	recordBuild(ctx, ledger, logger, cfg, history.TriggerBuild, res, err)
	if err != nil {
		return fmt.Errorf("building codex: %w", err)
	}

	fmt.Printf("Codex built: %s (%d pages, %d plates, %d thumbnails, %d assets)\n",
		cfg.OutputDir, res.Pages, res.Plates, res.Thumbnails, res.Assets)
	return nil
}
