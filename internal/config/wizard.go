package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// manifestCandidates are the locations checked for an existing manifest,
// in order of preference.
var manifestCandidates = []string{
	"codex.json",
	"data/codex.json",
	"public/codex.json",
	"static/codex.json",
}

// detectManifest returns the first manifest candidate that exists in the
// current directory, or "codex.json".
func detectManifest() string {
	for _, candidate := range manifestCandidates {
		if _, err := os.Stat(filepath.FromSlash(candidate)); err == nil {
			return candidate
		}
	}
	return "codex.json"
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to codex! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	manifestPath := detectManifest()
	if _, err := os.Stat(manifestPath); err == nil {
		fmt.Printf("Found manifest: %s\n\n", manifestPath)
	}

	// 1. Manifest location.
	manifestPrompt := promptui.Prompt{
		Label:   "Manifest path or URL",
		Default: manifestPath,
	}
	manifest, err := manifestPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	cfg.Manifest = strings.TrimSpace(manifest)

	// 2. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the rendered site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = strings.TrimSpace(outputDir)

	// 3. Site title (blank keeps the manifest's own title).
	titlePrompt := promptui.Prompt{
		Label:   "Site title (leave blank to use the manifest title)",
		Default: "",
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = strings.TrimSpace(title)

	// 4. Base URL for the sitemap.
	basePrompt := promptui.Prompt{
		Label:   "Public base URL (leave blank to skip sitemap.xml)",
		Default: "",
		Validate: func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
				return nil
			}
			return fmt.Errorf("must start with http:// or https://")
		},
	}
	baseURL, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.BaseURL = strings.TrimSpace(baseURL)

	// 5. Notes format.
	notesPrompt := promptui.Select{
		Label: "Notes format",
		Items: []string{
			"plain    — notes are shown as escaped text",
			"markdown — notes are rendered as Markdown",
		},
	}
	notesIdx, _, err := notesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("notes format: %w", err)
	}
	cfg.MarkdownNotes = notesIdx == 1

	// 6. Extra asset patterns.
	assetsPrompt := promptui.Prompt{
		Label:   "Extra asset patterns (comma-separated globs, leave blank for defaults)",
		Default: "",
	}
	assetsStr, err := assetsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("asset patterns: %w", err)
	}
	if assetsStr != "" {
		cfg.Assets = append(cfg.Assets, splitAndTrim(assetsStr)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
