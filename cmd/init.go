package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/codex/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize codex configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure codex for your project and generates a .codex.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("Run `codex build` to render %s into %s\n", cfg.Manifest, cfg.OutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
