// Package site builds the static codex: one HTML document per route plus
// the landing page, plate fallback pages, the search index, the sitemap,
// thumbnails and copied assets.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ziadkadry99/codex/internal/assets"
	"github.com/ziadkadry99/codex/internal/document"
	"github.com/ziadkadry99/codex/internal/lightbox"
	"github.com/ziadkadry99/codex/internal/manifest"
	"github.com/ziadkadry99/codex/internal/progress"
	"github.com/ziadkadry99/codex/internal/render"
	"github.com/ziadkadry99/codex/internal/thumbs"
)

// DefaultTitle is used when neither the options nor the manifest name the site.
const DefaultTitle = "Codex"

// Options configures a SiteGenerator.
type Options struct {
	Manifest  string // Path or http(s) URL of codex.json.
	OutputDir string
	// RootDir is where asset patterns and local plate images are resolved.
	// Defaults to the manifest's directory, or "." for remote manifests.
	RootDir       string
	Title         string // Overrides the manifest title.
	BaseURL       string // Enables sitemap.xml when set.
	MarkdownNotes bool
	Assets        []string
	Exclude       []string
	Thumbnails    bool
	ThumbWidth    int
	Logger        *slog.Logger
	Reporter      progress.Reporter
}

// Result summarises a successful build.
type Result struct {
	StartedAt  time.Time
	Duration   time.Duration
	Digest     string
	Pages      int
	Plates     int
	Thumbnails int
	Assets     int
}

// SiteGenerator converts a codex manifest into a static HTML site.
type SiteGenerator struct {
	opts Options
}

// NewSiteGenerator creates a SiteGenerator, filling in defaults.
func NewSiteGenerator(opts Options) *SiteGenerator {
	if opts.RootDir == "" {
		opts.RootDir = "."
		if !manifest.IsRemote(opts.Manifest) {
			opts.RootDir = filepath.Dir(opts.Manifest)
		}
	}
	if opts.ThumbWidth <= 0 {
		opts.ThumbWidth = 480
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	return &SiteGenerator{opts: opts}
}

// Generate builds the whole site into a staging directory and swaps it into
// place. On any error the previous output is left untouched.
func (g *SiteGenerator) Generate(ctx context.Context) (Result, error) {
	res := Result{StartedAt: time.Now()}

	raw, err := manifest.ReadSource(ctx, g.opts.Manifest)
	if err != nil {
		return res, err
	}
	m, err := manifest.Parse(raw)
	if err != nil {
		return res, fmt.Errorf("manifest %s: %w", g.opts.Manifest, err)
	}
	res.Digest = manifest.Digest(raw)

	out, err := filepath.Abs(g.opts.OutputDir)
	if err != nil {
		return res, fmt.Errorf("resolving output dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return res, err
	}
	staging, err := os.MkdirTemp(filepath.Dir(out), ".codex-build-*")
	if err != nil {
		return res, fmt.Errorf("creating staging dir: %w", err)
	}
	published := false
	defer func() {
		if !published {
			os.RemoveAll(staging)
		}
	}()
	if err := os.Chmod(staging, 0o755); err != nil {
		return res, err
	}

	b, err := g.newBuild(m, staging, out)
	if err != nil {
		return res, err
	}
	if err := b.run(ctx, &res); err != nil {
		return res, err
	}

	if err := publish(staging, out); err != nil {
		return res, fmt.Errorf("publishing %s: %w", out, err)
	}
	published = true
	res.Duration = time.Since(res.StartedAt)

	g.opts.Logger.Info("site built",
		"output", out,
		"pages", res.Pages,
		"plates", res.Plates,
		"thumbnails", res.Thumbnails,
		"assets", res.Assets,
		"duration", res.Duration.Round(time.Millisecond),
	)
	return res, nil
}

// navItem is one entry of the masthead navigation.
type navItem struct {
	Href   string
	Label  string
	Active bool
}

// pageData holds the data passed to the layout for each page.
type pageData struct {
	Title        string
	SiteTitle    string
	BasePath     string
	Source       string
	Nav          []navItem
	Styles       []document.Style
	Content      template.HTML
	Body         []template.HTML
	Scripts      []string
	ScrollLocked bool
}

type indexSection struct {
	Href  string
	Label string
	Title string
	Count int
}

type plateView struct {
	Title   string
	Prev    string
	Next    string
	Gallery string
	Number  int
	Total   int
}

// build is the state of one Generate call.
type build struct {
	opts      Options
	log       *slog.Logger
	m         *manifest.Manifest
	dir       string
	out       string
	siteTitle string
	source    string

	layout *template.Template
	index  *template.Template
	plate  *template.Template

	pages []string
	done  int
}

func (g *SiteGenerator) newBuild(m *manifest.Manifest, dir, out string) (*build, error) {
	layout, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	index, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	plate, err := template.New("plate").Parse(plateTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing plate template: %w", err)
	}

	title := g.opts.Title
	if title == "" {
		title = m.Title
	}
	if title == "" {
		title = DefaultTitle
	}

	return &build{
		opts:      g.opts,
		log:       g.opts.Logger,
		m:         m,
		dir:       dir,
		out:       out,
		siteTitle: title,
		source:    path.Base(filepath.ToSlash(g.opts.Manifest)),
		layout:    layout,
		index:     index,
		plate:     plate,
	}, nil
}

func (b *build) run(ctx context.Context, res *Result) error {
	static := map[string]string{
		"style.css":           cssContent,
		"script.js":           jsContent,
		render.LightboxScript: lightbox.Script,
	}
	for name, content := range static {
		if err := os.WriteFile(filepath.Join(b.dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	generated := b.thumbnails()
	res.Thumbnails = len(generated)

	renderer, err := render.New(render.Options{
		MarkdownNotes: b.opts.MarkdownNotes,
		PlateHref:     render.PlateFile,
		Thumb: func(p manifest.Plate) string {
			if t, ok := generated[p.Src]; ok && p.Thumb == p.Src {
				return t
			}
			return p.Thumb
		},
	})
	if err != nil {
		return err
	}

	plates := b.m.Plates()
	routes := render.Routes()
	reporter := b.opts.Reporter
	reporter.Start(1 + len(routes) + len(plates))
	defer reporter.Finish()

	if err := b.writeIndex(); err != nil {
		return err
	}

	for _, route := range routes {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := document.New(route.File())
		doc.Title = route.SectionTitle()
		if _, err := renderer.Render(route, b.m, doc); err != nil {
			return err
		}
		if err := b.writePage(doc, route); err != nil {
			return err
		}
	}

	for i := range plates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.writePlate(plates, i); err != nil {
			return err
		}
	}
	res.Plates = len(plates)
	res.Pages = len(b.pages)

	if err := WriteSearchIndex(BuildSearchIndex(b.m), filepath.Join(b.dir, "search-index.json")); err != nil {
		return fmt.Errorf("writing search index: %w", err)
	}
	if b.opts.BaseURL != "" {
		if err := WriteSitemap(b.opts.BaseURL, b.pages, res.StartedAt, filepath.Join(b.dir, "sitemap.xml")); err != nil {
			return fmt.Errorf("writing sitemap: %w", err)
		}
	}

	// Assets are copied last so a project style.css replaces the theme.
	files, err := assets.Collect(assets.Config{
		RootDir:   b.opts.RootDir,
		Include:   b.opts.Assets,
		Exclude:   b.opts.Exclude,
		SkipPaths: []string{b.out, b.dir},
	})
	if err != nil {
		return err
	}
	files, err = b.galleryFiles(files)
	if err != nil {
		return err
	}
	if err := assets.Copy(files, b.dir); err != nil {
		return err
	}
	res.Assets = len(files)
	return nil
}

// thumbnails generates a thumbnail for every local plate without an
// explicit thumb. Failures are logged and the plate keeps its source.
func (b *build) thumbnails() map[string]string {
	generated := make(map[string]string)
	if !b.opts.Thumbnails {
		return generated
	}
	for _, p := range b.m.Plates() {
		if p.Thumb != p.Src || !thumbs.IsLocal(p.Src) {
			continue
		}
		if _, ok := generated[p.Src]; ok {
			continue
		}
		src := filepath.Join(b.opts.RootDir, filepath.FromSlash(p.Src))
		if _, err := os.Stat(src); err != nil {
			b.log.Debug("thumbnail source missing", "src", p.Src)
			continue
		}
		rel := thumbs.Path(p.Src)
		if _, err := thumbs.File(src, filepath.Join(b.dir, filepath.FromSlash(rel)), b.opts.ThumbWidth); err != nil {
			b.log.Warn("thumbnail skipped", "src", p.Src, "err", err)
			continue
		}
		generated[p.Src] = rel
	}
	return generated
}

// galleryFiles adds the local plate images and explicit thumbnails that the
// asset patterns did not already pick up. Missing images are logged and
// skipped; an image whose path is a generated page fails the build.
func (b *build) galleryFiles(files []assets.File) ([]assets.File, error) {
	have := make(map[string]bool, len(files))
	for _, f := range files {
		have[f.RelPath] = true
	}
	generated := make(map[string]bool, len(b.pages))
	for _, p := range b.pages {
		generated[p] = true
	}

	for _, p := range b.m.Plates() {
		for _, src := range []string{p.Src, p.Thumb} {
			if !thumbs.IsLocal(src) {
				continue
			}
			f, err := assets.Lookup(b.opts.RootDir, src)
			if errors.Is(err, assets.ErrOutsideRoot) {
				b.log.Warn("gallery image outside project root, not copied", "src", src)
				continue
			}
			if err != nil {
				b.log.Warn("gallery image missing", "src", src, "err", err)
				continue
			}
			if generated[f.RelPath] {
				return nil, fmt.Errorf("gallery image %s collides with generated page %s", src, f.RelPath)
			}
			if have[f.RelPath] {
				continue
			}
			have[f.RelPath] = true
			files = append(files, f)
		}
	}
	return files, nil
}

func (b *build) nav(active render.Route) []navItem {
	routes := render.Routes()
	items := make([]navItem, len(routes))
	for i, r := range routes {
		items[i] = navItem{Href: r.File(), Label: r.Label(), Active: r == active}
	}
	return items
}

func (b *build) writeIndex() error {
	counts := map[render.Route]int{
		render.RouteCompanies: len(b.m.Companies),
		render.RouteArmory:    assetCount(b.m.Armory.Transports) + assetCount(b.m.Armory.Artillery) + assetCount(b.m.Armory.Dreadnoughts),
		render.RouteHeroes:    len(b.m.Heroes),
		render.RouteCampaigns: len(b.m.Campaigns),
		render.RouteAllies:    len(b.m.Allies),
		render.RouteEnemies:   len(b.m.Enemies),
		render.RouteRelics:    len(b.m.Armory.Relics),
		render.RouteGallery:   len(b.m.Gallery),
	}
	var sections []indexSection
	for _, r := range render.Routes() {
		sections = append(sections, indexSection{
			Href:  r.File(),
			Label: r.Label(),
			Title: r.SectionTitle(),
			Count: counts[r],
		})
	}

	var buf bytes.Buffer
	if err := b.index.Execute(&buf, struct {
		SiteTitle string
		Sections  []indexSection
	}{b.siteTitle, sections}); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}

	doc := document.New("index.html")
	doc.SetContainer(template.HTML(buf.String()))
	return b.writePage(doc, "")
}

func assetCount(a manifest.AssetList) int {
	if a.IsList {
		return len(a.Items)
	}
	if a.Text != "" {
		return 1
	}
	return 0
}

// plateNavStyles lifts the fallback navigation above the open overlay.
const plateNavStyles = `.plate-nav{position:fixed; left:0; right:0; bottom:16px; z-index:1001; justify-content:center}
.plate-nav a{padding:8px 14px; border-radius:999px; background:rgba(0,0,0,.6)}`

// writePlate renders plate i's fallback page with the lightbox open at i.
func (b *build) writePlate(plates []manifest.Plate, i int) error {
	doc := document.New(render.PlateFile(i))
	doc.BasePath = "../"
	doc.InjectStyle("plate-nav", plateNavStyles)

	lb := lightbox.New(relocate(plates, doc.BasePath), lightbox.WithDocument(doc))
	lb.Open(i)
	prev, next := neighbours(lb)
	p, _ := lb.Current()
	doc.Title = p.Title

	var buf bytes.Buffer
	if err := b.plate.Execute(&buf, plateView{
		Title:   p.Title,
		Prev:    strconv.Itoa(prev) + ".html",
		Next:    strconv.Itoa(next) + ".html",
		Gallery: doc.BasePath + render.RouteGallery.File(),
		Number:  lb.Index() + 1,
		Total:   lb.Len(),
	}); err != nil {
		return fmt.Errorf("rendering plate %d: %w", i, err)
	}
	doc.SetContainer(template.HTML(buf.String()))
	return b.writePage(doc, render.RouteGallery)
}

// neighbours returns the indexes Prev and Next would move to, leaving the
// cursor where it was.
func neighbours(lb *lightbox.Lightbox) (prev, next int) {
	at := lb.Index()
	lb.Prev()
	prev = lb.Index()
	lb.Show(at)
	lb.Next()
	next = lb.Index()
	lb.Show(at)
	return prev, next
}

// relocate prefixes local plate sources for pages below the site root.
func relocate(plates []manifest.Plate, base string) []manifest.Plate {
	out := make([]manifest.Plate, len(plates))
	for i, p := range plates {
		if thumbs.IsLocal(p.Src) {
			p.Src = base + p.Src
		}
		if thumbs.IsLocal(p.Thumb) {
			p.Thumb = base + p.Thumb
		}
		out[i] = p
	}
	return out
}

// writePage wraps the document's container in the layout and writes it.
func (b *build) writePage(doc *document.Document, active render.Route) error {
	content, _ := doc.Container()
	body, err := doc.RenderBody()
	if err != nil {
		return fmt.Errorf("rendering %s: %w", doc.Path, err)
	}

	data := pageData{
		Title:        doc.Title,
		SiteTitle:    b.siteTitle,
		BasePath:     doc.BasePath,
		Source:       b.source,
		Nav:          b.nav(active),
		Styles:       doc.Styles(),
		Content:      content,
		Body:         body,
		Scripts:      doc.Scripts(),
		ScrollLocked: doc.ScrollLocked(),
	}

	var buf bytes.Buffer
	if err := b.layout.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", doc.Path, err)
	}

	outPath := filepath.Join(b.dir, filepath.FromSlash(doc.Path))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", doc.Path, err)
	}

	b.pages = append(b.pages, doc.Path)
	b.done++
	b.opts.Reporter.Update(b.done, doc.Path)
	b.log.Debug("page written", "path", doc.Path)
	return nil
}

// publish swaps the staging directory into place of out.
func publish(staging, out string) error {
	old := ""
	if _, err := os.Stat(out); err == nil {
		old = fmt.Sprintf("%s.old-%d", out, time.Now().UnixNano())
		if err := os.Rename(out, old); err != nil {
			return err
		}
	}
	if err := os.Rename(staging, out); err != nil {
		if old != "" {
			os.Rename(old, out)
		}
		return err
	}
	if old != "" {
		return os.RemoveAll(old)
	}
	return nil
}
