// Package render turns manifest sections into the markup of the page
// container, one branch per route.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"

	"github.com/yuin/goldmark"

	"github.com/ziadkadry99/codex/internal/document"
	"github.com/ziadkadry99/codex/internal/lightbox"
	"github.com/ziadkadry99/codex/internal/manifest"
)

// LightboxScript is the script file the gallery page references.
const LightboxScript = "lightbox.js"

// Options controls optional rendering behaviour.
type Options struct {
	// MarkdownNotes renders card notes as Markdown instead of plain text.
	MarkdownNotes bool
	// PlateHref returns the link of gallery card i. Defaults to "#".
	PlateHref func(i int) string
	// Thumb overrides a plate's thumbnail, e.g. with a generated one.
	Thumb func(p manifest.Plate) string
}

// Renderer renders route branches. It is safe to reuse across documents.
type Renderer struct {
	opts Options
	md   goldmark.Markdown
	tmpl *template.Template
}

// New parses the branch templates.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{opts: opts}
	if opts.MarkdownNotes {
		r.md = newMarkdown()
	}
	tmpl, err := template.New("render").Funcs(template.FuncMap{
		"notes": r.notes,
	}).Parse(branchTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing branch templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// notes renders a card's notes paragraph.
func (r *Renderer) notes(t manifest.Text) (template.HTML, error) {
	if r.md == nil || t == "" {
		return template.HTML("<p>" + template.HTMLEscapeString(t.String()) + "</p>"), nil
	}
	body, err := markdownHTML(r.md, t.String())
	if err != nil {
		return "", err
	}
	return `<div class="notes">` + body + `</div>`, nil
}

// RenderPath infers the route from a page path and renders it.
func (r *Renderer) RenderPath(path string, m *manifest.Manifest, doc *document.Document) (bool, error) {
	route, ok := RouteFromPath(path)
	if !ok {
		return false, nil
	}
	return r.Render(route, m, doc)
}

// Render replaces the document's container with the route's branch. It
// reports false and leaves the document untouched for unknown routes.
func (r *Renderer) Render(route Route, m *manifest.Manifest, doc *document.Document) (bool, error) {
	if doc == nil {
		return false, errors.New("render: nil document")
	}
	if m == nil {
		m = &manifest.Manifest{}
	}

	var (
		name string
		data any
	)
	switch route {
	case RouteCompanies:
		name, data = "companies", companiesData{Title: route.SectionTitle(), Companies: m.Companies}
	case RouteArmory:
		name, data = "armory", armoryData(route, m)
	case RouteHeroes:
		name, data = "cards", cardsData(route, m.Heroes, tagMeta, true, false)
	case RouteCampaigns:
		name, data = "cards", cardsData(route, m.Campaigns, tagMeta, true, true)
	case RouteAllies:
		name, data = "cards", cardsData(route, m.Allies, nil, false, false)
	case RouteEnemies:
		name, data = "cards", cardsData(route, m.Enemies, modelsMeta, true, false)
	case RouteRelics:
		name, data = "relics", relicsData{Title: route.SectionTitle(), Relics: m.Armory.Relics}
	case RouteGallery:
		name, data = "gallery", r.galleryData(route, m, doc)
	default:
		return false, nil
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return false, fmt.Errorf("rendering %s: %w", route, err)
	}
	doc.SetContainer(template.HTML(buf.String()))
	return true, nil
}

type companiesData struct {
	Title     string
	Companies []manifest.Company
}

type armoryCard struct {
	Title string
	Body  string
	Meta  string
}

type armoryView struct {
	Title  string
	Cards  []armoryCard
	Relics []manifest.Relic
}

func armoryData(route Route, m *manifest.Manifest) armoryView {
	return armoryView{
		Title: route.SectionTitle(),
		Cards: []armoryCard{
			{Title: "Transports", Body: m.Armory.Transports.String(), Meta: "Ready/Queued"},
			{Title: "Artillery", Body: m.Armory.Artillery.String(), Meta: "Deployed"},
			{Title: "Dreadnoughts", Body: m.Armory.Dreadnoughts.String(), Meta: "Armory"},
		},
		Relics: m.Armory.Relics,
	}
}

type cardItem struct {
	Name  manifest.Text
	Notes manifest.Text
	Meta  manifest.Text
}

type cardsView struct {
	Title    string
	Wide     bool
	ShowMeta bool
	Items    []cardItem
}

func tagMeta(e manifest.Entry) manifest.Text { return e.Tag }
func modelsMeta(e manifest.Entry) manifest.Text { return e.Models }

func cardsData(route Route, entries []manifest.Entry, meta func(manifest.Entry) manifest.Text, showMeta, wide bool) cardsView {
	v := cardsView{
		Title:    route.SectionTitle(),
		Wide:     wide,
		ShowMeta: showMeta,
		Items:    make([]cardItem, len(entries)),
	}
	for i, e := range entries {
		item := cardItem{Name: e.Name, Notes: e.Notes}
		if meta != nil {
			item.Meta = meta(e)
		}
		v.Items[i] = item
	}
	return v
}

type relicsData struct {
	Title  string
	Relics []manifest.Relic
}

type galleryCard struct {
	Index   int
	Href    string
	Thumb   string
	Title   string
	Caption string
}

type galleryView struct {
	Title  string
	Cards  []galleryCard
	Plates []manifest.Plate
}

func (r *Renderer) galleryData(route Route, m *manifest.Manifest, doc *document.Document) galleryView {
	plates := m.Plates()
	if r.opts.Thumb != nil {
		for i := range plates {
			plates[i].Thumb = r.opts.Thumb(plates[i])
		}
	}

	v := galleryView{
		Title:  route.SectionTitle(),
		Cards:  make([]galleryCard, len(plates)),
		Plates: plates,
	}
	for i, p := range plates {
		href := "#"
		if r.opts.PlateHref != nil {
			href = r.opts.PlateHref(i)
		}
		v.Cards[i] = galleryCard{
			Index:   i,
			Href:    href,
			Thumb:   p.Thumb,
			Title:   p.Title,
			Caption: p.Caption,
		}
	}

	lb := lightbox.New(plates, lightbox.WithDocument(doc))
	lb.Mount()
	doc.AddScript(LightboxScript)
	return v
}

// PlateFile is the path, relative to the site root, of plate i's page.
func PlateFile(i int) string {
	return "plates/" + strconv.Itoa(i) + ".html"
}
