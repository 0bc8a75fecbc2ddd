package site

import (
	"encoding/json"
	"os"
	"unicode/utf8"

	"github.com/ziadkadry99/codex/internal/manifest"
	"github.com/ziadkadry99/codex/internal/render"
)

// maxSearchContent caps the text stored per entry.
const maxSearchContent = 2000

// SearchEntry represents a single searchable record of the codex.
type SearchEntry struct {
	Path    string `json:"path"`
	Section string `json:"section"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex flattens the manifest into one entry per record, each
// pointing at the page that renders it.
func BuildSearchIndex(m *manifest.Manifest) []SearchEntry {
	if m == nil {
		return nil
	}
	var entries []SearchEntry
	add := func(route render.Route, title, summary, content string) {
		if title == "" {
			return
		}
		content = truncate(content, maxSearchContent)
		entries = append(entries, SearchEntry{
			Path:    route.File(),
			Section: route.SectionTitle(),
			Title:   title,
			Summary: summary,
			Content: content,
		})
	}

	for _, c := range m.Companies {
		content := c.Notes.String()
		for _, e := range c.Elements {
			content += " " + e.Label.String() + ": " + e.Value.String()
		}
		add(render.RouteCompanies, c.Name.String(), "", content)
	}

	armory := []struct {
		title string
		list  manifest.AssetList
	}{
		{"Transports", m.Armory.Transports},
		{"Artillery", m.Armory.Artillery},
		{"Dreadnoughts", m.Armory.Dreadnoughts},
	}
	for _, a := range armory {
		if s := a.list.String(); s != "" {
			add(render.RouteArmory, a.title, "", s)
		}
	}
	for _, r := range m.Armory.Relics {
		add(render.RouteRelics, r.Name.String(), r.Bearer.String(), r.Notes.String())
	}

	cards := func(route render.Route, list []manifest.Entry, summary func(manifest.Entry) manifest.Text) {
		for _, e := range list {
			s := ""
			if summary != nil {
				s = summary(e).String()
			}
			add(route, e.Name.String(), s, e.Notes.String())
		}
	}
	cards(render.RouteHeroes, m.Heroes, func(e manifest.Entry) manifest.Text { return e.Tag })
	cards(render.RouteCampaigns, m.Campaigns, func(e manifest.Entry) manifest.Text { return e.Tag })
	cards(render.RouteAllies, m.Allies, nil)
	cards(render.RouteEnemies, m.Enemies, func(e manifest.Entry) manifest.Text { return e.Models })

	for i, p := range m.Plates() {
		if p.Title == "" {
			continue
		}
		entries = append(entries, SearchEntry{
			Path:    render.PlateFile(i),
			Section: render.RouteGallery.SectionTitle(),
			Title:   p.Title,
			Summary: p.Caption,
			Content: p.Caption,
		})
	}
	return entries
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	if entries == nil {
		entries = []SearchEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
