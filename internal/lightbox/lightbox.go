// Package lightbox is the gallery viewer: a cursor over the plates that is
// either closed or open at an index.
package lightbox

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/codex/internal/document"
	"github.com/ziadkadry99/codex/internal/manifest"
)

const (
	// OverlayID is the id of the overlay element appended to the body.
	OverlayID = "lb"
	// StyleID is the id of the lightbox stylesheet in the head.
	StyleID = "lb-styles"
)

// Key names handled while the overlay is visible.
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// ScrollLocker is the page root whose scrolling is locked while open.
type ScrollLocker interface {
	SetScrollLock(locked bool)
}

// Lightbox is the viewer state. The zero value is not usable; call New.
type Lightbox struct {
	items []manifest.Plate
	idx   int
	open  bool
	width int

	doc  *document.Document
	root ScrollLocker
}

// Option configures a Lightbox.
type Option func(*Lightbox)

// WithDocument mounts the overlay and stylesheet into doc and uses its root
// for scroll locking. A nil doc is ignored.
func WithDocument(doc *document.Document) Option {
	return func(l *Lightbox) {
		if doc == nil {
			return
		}
		l.doc = doc
		l.root = doc
	}
}

// WithScrollLocker sets the element whose scrolling is locked while open.
func WithScrollLocker(root ScrollLocker) Option {
	return func(l *Lightbox) {
		l.root = root
	}
}

// New returns a closed lightbox over items.
func New(items []manifest.Plate, opts ...Option) *Lightbox {
	l := &Lightbox{items: items}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wrap maps any integer onto [0, length). length must be positive.
func Wrap(n, length int) int {
	return ((n % length) + length) % length
}

// Mount injects the stylesheet and overlay into the document. Both are
// inserted at most once however often Mount is called.
func (l *Lightbox) Mount() {
	if l.doc == nil {
		return
	}
	l.doc.InjectStyle(StyleID, Styles)
	l.doc.AppendBody(OverlayID, l)
}

// Open shows the overlay at plate n. It is a no-op without plates.
func (l *Lightbox) Open(n int) {
	if len(l.items) == 0 {
		return
	}
	l.Mount()
	l.Show(n)
	l.open = true
	if l.root != nil {
		l.root.SetScrollLock(true)
	}
}

// Show moves the cursor to plate n, wrapping in both directions.
func (l *Lightbox) Show(n int) {
	if len(l.items) == 0 {
		return
	}
	l.idx = Wrap(n, len(l.items))
	// The width belongs to the previous image until the new one loads.
	l.width = 0
}

// Next advances to the following plate.
func (l *Lightbox) Next() { l.Show(l.idx + 1) }

// Prev steps back to the preceding plate.
func (l *Lightbox) Prev() { l.Show(l.idx - 1) }

// Close hides the overlay and unlocks page scrolling.
func (l *Lightbox) Close() {
	l.open = false
	if l.root != nil {
		l.root.SetScrollLock(false)
	}
}

// HandleKey applies a keyboard event. Keys are ignored while closed. It
// reports whether the key changed state.
func (l *Lightbox) HandleKey(key string) bool {
	if !l.open {
		return false
	}
	switch key {
	case KeyEscape:
		l.Close()
	case KeyArrowLeft:
		l.Prev()
	case KeyArrowRight:
		l.Next()
	default:
		return false
	}
	return true
}

// TargetKind identifies a clickable element.
type TargetKind int

const (
	TargetCloseButton TargetKind = iota
	TargetBackdrop
	TargetPrevButton
	TargetNextButton
	TargetCard
)

// Target is a click target; Index is only meaningful for cards.
type Target struct {
	Kind  TargetKind
	Index int
}

// Card returns the click target of gallery card i.
func Card(i int) Target { return Target{Kind: TargetCard, Index: i} }

// Click applies a click on target. It reports whether the click was handled.
func (l *Lightbox) Click(t Target) bool {
	switch t.Kind {
	case TargetCloseButton, TargetBackdrop:
		l.Close()
	case TargetPrevButton:
		l.Prev()
	case TargetNextButton:
		l.Next()
	case TargetCard:
		l.Open(t.Index)
	default:
		return false
	}
	return true
}

// SetNaturalWidth records the loaded image's intrinsic width. Display only.
func (l *Lightbox) SetNaturalWidth(w int) {
	if w < 0 {
		w = 0
	}
	l.width = w
}

// NaturalWidth returns the last recorded image width.
func (l *Lightbox) NaturalWidth() int { return l.width }

// Index returns the cursor position.
func (l *Lightbox) Index() int { return l.idx }

// Len returns the number of plates.
func (l *Lightbox) Len() int { return len(l.items) }

// IsOpen reports whether the overlay is visible.
func (l *Lightbox) IsOpen() bool { return l.open }

// ScrollLocked reports whether the page is scroll locked by this lightbox.
func (l *Lightbox) ScrollLocked() bool { return l.open }

// Current returns the plate under the cursor.
func (l *Lightbox) Current() (manifest.Plate, bool) {
	if len(l.items) == 0 {
		return manifest.Plate{}, false
	}
	return l.items[l.idx], true
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape escapes the five HTML-significant characters.
func Escape(s string) string { return escaper.Replace(s) }

// Caption returns the caption markup of the current plate: the title in
// <strong>, followed by the caption when there is one.
func (l *Lightbox) Caption() template.HTML {
	p, ok := l.Current()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString("<strong>")
	b.WriteString(Escape(p.Title))
	b.WriteString("</strong>")
	if p.Caption != "" {
		b.WriteString(" — ")
		b.WriteString(Escape(p.Caption))
	}
	return template.HTML(b.String())
}

type overlayData struct {
	Open    bool
	Width   int
	Src     string
	Caption template.HTML
}

var overlayTmpl = template.Must(template.New("overlay").Parse(overlayTemplate))

// HTML renders the overlay element for the current state.
func (l *Lightbox) HTML() (template.HTML, error) {
	data := overlayData{Open: l.open, Width: l.width}
	if l.open {
		if p, ok := l.Current(); ok {
			data.Src = p.Src
			data.Caption = l.Caption()
		}
	}
	var buf bytes.Buffer
	if err := overlayTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering lightbox overlay: %w", err)
	}
	return template.HTML(buf.String()), nil
}
