package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ziadkadry99/codex/internal/manifest"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base  string
		parts []string
		want  string
	}{
		{"https://x.io", nil, "https://x.io/"},
		{"https://x.io/", []string{"index.html"}, "https://x.io/index.html"},
		{"https://x.io/codex//", []string{"/plates/", "1.html"}, "https://x.io/codex/plates/1.html"},
		{"https://x.io", []string{"", "/"}, "https://x.io/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.parts...); got != tt.want {
			t.Errorf("BuildURL(%q, %q) = %q, want %q", tt.base, tt.parts, got, tt.want)
		}
	}
}

func TestBuildSearchIndex(t *testing.T) {
	m, err := manifest.Parse([]byte(`{
		"companies": [{"name": "First", "notes": "Veterans", "elements": [{"label": "Captain", "value": "Arn"}]}],
		"armory": {"artillery": "Whirlwind", "relics": [{"name": "Blade", "bearer": "Arn"}]},
		"campaigns": [{"name": "Siege", "tag": "M41"}],
		"allies": [{"name": ""}, {"name": "Guard"}],
		"enemies": [{"name": "Orks", "models": 40}],
		"gallery": ["img/a.png"]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	entries := BuildSearchIndex(m)
	byTitle := make(map[string]SearchEntry)
	for _, e := range entries {
		byTitle[e.Title] = e
	}
	if len(entries) != 7 {
		t.Fatalf("got %d entries, want 7: %+v", len(entries), entries)
	}

	checks := []struct {
		title, path, summary string
	}{
		{"First", "companies.html", ""},
		{"Artillery", "armory.html", ""},
		{"Blade", "relics.html", "Arn"},
		{"Siege", "campaigns.html", "M41"},
		{"Guard", "allies.html", ""},
		{"Orks", "enemies.html", "40"},
		{"a.png", "plates/0.html", ""},
	}
	for _, c := range checks {
		e, ok := byTitle[c.title]
		if !ok {
			t.Errorf("missing entry %q", c.title)
			continue
		}
		if e.Path != c.path || e.Summary != c.summary {
			t.Errorf("entry %q = {%s %q}, want {%s %q}", c.title, e.Path, e.Summary, c.path, c.summary)
		}
	}
	if got := byTitle["First"].Content; got != "Veterans Captain: Arn" {
		t.Errorf("company content = %q", got)
	}
	if BuildSearchIndex(nil) != nil {
		t.Error("nil manifest should produce no entries")
	}
}

func TestWriteSearchIndexEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search-index.json")
	if err := WriteSearchIndex(nil, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []SearchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty index = %q, want []", data)
	}
}

func TestSearchContentKeepsRunesWhole(t *testing.T) {
	notes := strings.Repeat("a", maxSearchContent-1) + "é and more"
	m := &manifest.Manifest{Heroes: []manifest.Entry{{Name: "Arn", Notes: manifest.Text(notes)}}}

	entries := BuildSearchIndex(m)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	content := entries[0].Content
	if !utf8.ValidString(content) {
		t.Fatalf("content is not valid UTF-8: %q", content[len(content)-4:])
	}
	if want := strings.Repeat("a", maxSearchContent-1); content != want {
		t.Errorf("content has %d bytes, want the %d before the split rune", len(content), len(want))
	}

	for _, tt := range []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"héllo", 2, "h"},
		{"héllo", 3, "hé"},
		{"日本", 4, "日"},
	} {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
