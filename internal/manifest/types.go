package manifest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Manifest is the codex.json document. Every section is optional; missing
// sections decode to their zero value and render as empty lists.
type Manifest struct {
	Title     string        `json:"title,omitempty"`
	Companies []Company     `json:"companies,omitempty"`
	Armory    Armory        `json:"armory"`
	Heroes    []Entry       `json:"heroes,omitempty"`
	Campaigns []Entry       `json:"campaigns,omitempty"`
	Allies    []Entry       `json:"allies,omitempty"`
	Enemies   []Entry       `json:"enemies,omitempty"`
	Gallery   []GalleryItem `json:"gallery,omitempty"`
}

// Company is one entry of the order of battle.
type Company struct {
	Name     Text      `json:"name"`
	Notes    Text      `json:"notes,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

// Element is a label/value row in a company table.
type Element struct {
	Label Text `json:"label"`
	Value Text `json:"value"`
}

// Armory groups the chapter's engines and relics.
type Armory struct {
	Transports   AssetList `json:"transports"`
	Artillery    AssetList `json:"artillery"`
	Dreadnoughts AssetList `json:"dreadnoughts"`
	Relics       []Relic   `json:"relics,omitempty"`
}

// Relic is a named piece of wargear and who carries it.
type Relic struct {
	Name   Text `json:"name"`
	Bearer Text `json:"bearer"`
	Notes  Text `json:"notes,omitempty"`
}

// Entry is the shared shape of heroes, campaigns, allies and enemies.
// Tag is shown for heroes and campaigns, Models for enemies.
type Entry struct {
	Name   Text `json:"name"`
	Notes  Text `json:"notes,omitempty"`
	Tag    Text `json:"tag,omitempty"`
	Models Text `json:"models,omitempty"`
}

// Text is a display string that also accepts JSON numbers and booleans,
// since hand-authored manifests are loose about quoting. null decodes to "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*t = Text(strconv.FormatBool(b))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

// String returns the text as a plain string.
func (t Text) String() string { return string(t) }

// AssetList is an armory section. Manifests use either an array of names
// or a single free-text string.
type AssetList struct {
	Items  []string
	Text   string
	IsList bool
}

func (a *AssetList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = AssetList{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		var items []Text
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		a.IsList = true
		a.Items = make([]string, len(items))
		for i, it := range items {
			a.Items[i] = it.String()
		}
		return nil
	}
	var t Text
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	a.Text = t.String()
	return nil
}

func (a AssetList) MarshalJSON() ([]byte, error) {
	if a.IsList {
		return json.Marshal(a.Items)
	}
	if a.Text == "" {
		return []byte("[]"), nil
	}
	return json.Marshal(a.Text)
}

// String renders the list the way the armory cards display it.
func (a AssetList) String() string {
	if a.IsList {
		return strings.Join(a.Items, "; ")
	}
	return a.Text
}

// GalleryItem is one gallery entry: either a bare image path or an object.
type GalleryItem struct {
	Src     string `json:"src"`
	Thumb   string `json:"thumb,omitempty"`
	Title   string `json:"title,omitempty"`
	Caption string `json:"caption,omitempty"`
	// Bare is set when the item was written as a plain string.
	Bare bool `json:"-"`
}

func (g *GalleryItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*g = GalleryItem{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		g.Src = s
		g.Bare = true
		return nil
	}
	var obj struct {
		Src     Text `json:"src"`
		Thumb   Text `json:"thumb"`
		Title   Text `json:"title"`
		Caption Text `json:"caption"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	g.Src = obj.Src.String()
	g.Thumb = obj.Thumb.String()
	g.Title = obj.Title.String()
	g.Caption = obj.Caption.String()
	return nil
}

func (g GalleryItem) MarshalJSON() ([]byte, error) {
	if g.Bare {
		return json.Marshal(g.Src)
	}
	type plain GalleryItem
	return json.Marshal(plain(g))
}

// Plate is a gallery item with every display field resolved.
type Plate struct {
	Src     string `json:"src"`
	Thumb   string `json:"thumb"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
}

// Plate resolves defaults: the thumbnail falls back to the source and the
// title to the source's file name.
func (g GalleryItem) Plate() Plate {
	if g.Bare {
		return Plate{Src: g.Src, Thumb: g.Src, Title: baseName(g.Src)}
	}
	p := Plate{
		Src:     g.Src,
		Thumb:   g.Thumb,
		Title:   g.Title,
		Caption: g.Caption,
	}
	if p.Thumb == "" {
		p.Thumb = p.Src
	}
	if p.Title == "" && p.Src != "" {
		p.Title = baseName(p.Src)
	}
	return p
}

// Plates returns the normalised gallery.
func (m *Manifest) Plates() []Plate {
	if m == nil {
		return nil
	}
	plates := make([]Plate, len(m.Gallery))
	for i, g := range m.Gallery {
		plates[i] = g.Plate()
	}
	return plates
}

// baseName returns the last "/"-separated segment of a source path or URL.
func baseName(src string) string {
	if i := strings.LastIndex(src, "/"); i >= 0 {
		return src[i+1:]
	}
	return src
}
