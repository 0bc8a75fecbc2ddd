package config

// Config is the top-level codex configuration, corresponding to .codex.yml.
type Config struct {
	Manifest      string          `yaml:"manifest" koanf:"manifest"`
	OutputDir     string          `yaml:"output_dir" koanf:"output_dir"`
	Title         string          `yaml:"title" koanf:"title"`
	BaseURL       string          `yaml:"base_url" koanf:"base_url"`
	MarkdownNotes bool            `yaml:"markdown_notes" koanf:"markdown_notes"`
	Assets        []string        `yaml:"assets" koanf:"assets"`
	Exclude       []string        `yaml:"exclude" koanf:"exclude"`
	Thumbnails    ThumbnailConfig `yaml:"thumbnails" koanf:"thumbnails"`
	LedgerPath    string          `yaml:"ledger_path" koanf:"ledger_path"`
	LogLevel      string          `yaml:"log_level" koanf:"log_level"`
	LogFile       string          `yaml:"log_file" koanf:"log_file"`
	Serve         ServeConfig     `yaml:"serve" koanf:"serve"`
}

// ThumbnailConfig controls gallery thumbnail generation.
type ThumbnailConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
	Width   int  `yaml:"width" koanf:"width"`
}

// ServeConfig holds dev server settings.
type ServeConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	Watch           bool `yaml:"watch" koanf:"watch"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
