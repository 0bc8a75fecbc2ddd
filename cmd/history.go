package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codex/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent builds from the build ledger",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of builds to show")
	historyCmd.Flags().String("status", "", "only show builds with this status (ok, failed)")
	historyCmd.Flags().Bool("json", false, "print builds as JSON")
	historyCmd.Flags().Duration("prune", 0, "delete builds older than this duration before listing, e.g. 720h")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	database, ledger := openLedger(cfg, logger)
	if ledger == nil {
		return fmt.Errorf("build ledger unavailable at %q", cfg.LedgerPath)
	}
	defer database.Close()

	ctx := cmd.Context()
	if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
		n, err := ledger.DeleteBefore(ctx, time.Now().Add(-prune))
		if err != nil {
			return fmt.Errorf("pruning builds: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Pruned %d builds\n", n)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")
	builds, err := ledger.List(ctx, history.Filter{Status: history.Status(status), Limit: limit})
	if err != nil {
		return fmt.Errorf("listing builds: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(builds)
	}

	if len(builds) == 0 {
		fmt.Println("No builds recorded yet. Run `codex build` first.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tTRIGGER\tSTATUS\tPAGES\tPLATES\tDURATION\tID")
	for _, b := range builds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			b.StartedAt.Local().Format("2006-01-02 15:04:05"),
			b.Trigger, b.Status, b.Pages, b.Plates,
			b.Duration.Round(time.Millisecond), b.ID)
		if b.Error != "" {
			fmt.Fprintf(w, "\t\terror: %s\t\t\t\t\n", b.Error)
		}
	}
	return w.Flush()
}
