package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "Render a chapter codex from a JSON manifest",
	Long: `Codex turns a codex.json manifest describing companies, armory, heroes,
campaigns, allies, enemies, relics and a gallery of plates into a static
HTML site, and serves it locally with live reload while you edit.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".codex.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

