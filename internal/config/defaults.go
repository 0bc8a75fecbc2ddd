package config

import "slices"

// DefaultAssets are glob patterns copied verbatim into the output directory.
var DefaultAssets = []string{
	"images/**",
	"img/**",
	"*.css",
	"favicon.ico",
}

// DefaultExcludes are glob patterns never copied, even when an asset pattern matches.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"*.psd",
	"*.md",
	".codex.yml",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Manifest:      "codex.json",
		OutputDir:     "site",
		Title:         "",
		MarkdownNotes: false,
		Assets:        slices.Clone(DefaultAssets),
		Exclude:       slices.Clone(DefaultExcludes),
		Thumbnails: ThumbnailConfig{
			Enabled: true,
			Width:   480,
		},
		LedgerPath: ".codex/builds.db",
		LogLevel:   "info",
		Serve: ServeConfig{
			Port:  8080,
			Watch: true,
		},
	}
}
