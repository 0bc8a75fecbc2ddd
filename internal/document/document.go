// Package document models a single rendered page view: the head's
// stylesheets, the #app container, elements appended to the body and the
// root element's scroll lock. A Document lives for one page render.
package document

import (
	"fmt"
	"html/template"
)

// Node is an element appended to the body. It renders at layout time so it
// reflects the latest state of whatever owns it.
type Node interface {
	HTML() (template.HTML, error)
}

// Style is one <style> block in the head.
type Style struct {
	ID  string
	CSS template.CSS
}

type bodyNode struct {
	id   string
	node Node
}

// Document holds the mutable state of one page view.
type Document struct {
	Path  string
	Title string
	// BasePath prefixes relative asset references, e.g. "../" for pages
	// one directory below the site root.
	BasePath string

	styles    []Style
	styleIDs  map[string]bool
	container template.HTML
	filled    bool
	body      []bodyNode
	bodyIDs   map[string]bool
	scripts   []string
	scroll    bool
}

// New returns an empty document for the given page path.
func New(path string) *Document {
	return &Document{
		Path:     path,
		styleIDs: make(map[string]bool),
		bodyIDs:  make(map[string]bool),
	}
}

// InjectStyle adds a stylesheet unless one with the same id is already
// present. It reports whether the style was added.
func (d *Document) InjectStyle(id, css string) bool {
	if d.styleIDs[id] {
		return false
	}
	d.styleIDs[id] = true
	d.styles = append(d.styles, Style{ID: id, CSS: template.CSS(css)})
	return true
}

// HasStyle reports whether a stylesheet with id was injected.
func (d *Document) HasStyle(id string) bool { return d.styleIDs[id] }

// Styles returns the injected stylesheets in insertion order.
func (d *Document) Styles() []Style {
	out := make([]Style, len(d.styles))
	copy(out, d.styles)
	return out
}

// SetContainer replaces the #app container's contents.
func (d *Document) SetContainer(html template.HTML) {
	d.container = html
	d.filled = true
}

// Container returns the #app contents and whether anything was rendered.
func (d *Document) Container() (template.HTML, bool) {
	return d.container, d.filled
}

// AppendBody appends a node to the body unless a node with the same id is
// already present. It reports whether the node was added.
func (d *Document) AppendBody(id string, n Node) bool {
	if d.bodyIDs[id] {
		return false
	}
	d.bodyIDs[id] = true
	d.body = append(d.body, bodyNode{id: id, node: n})
	return true
}

// BodyLen returns the number of appended body nodes.
func (d *Document) BodyLen() int { return len(d.body) }

// RenderBody renders every appended node in order.
func (d *Document) RenderBody() ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(d.body))
	for _, b := range d.body {
		h, err := b.node.HTML()
		if err != nil {
			return nil, fmt.Errorf("rendering body node %s: %w", b.id, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// AddScript references a script (relative to the site root) unless it is
// already referenced. It reports whether the script was added.
func (d *Document) AddScript(src string) bool {
	for _, s := range d.scripts {
		if s == src {
			return false
		}
	}
	d.scripts = append(d.scripts, src)
	return true
}

// Scripts returns the referenced scripts prefixed with BasePath.
func (d *Document) Scripts() []string {
	out := make([]string, len(d.scripts))
	for i, s := range d.scripts {
		out[i] = d.BasePath + s
	}
	return out
}

// SetScrollLock toggles overflow:hidden on the root element.
func (d *Document) SetScrollLock(locked bool) { d.scroll = locked }

// ScrollLocked reports whether the root element's scrolling is locked.
func (d *Document) ScrollLocked() bool { return d.scroll }
