package document

import (
	"errors"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticNode string

func (s staticNode) HTML() (template.HTML, error) { return template.HTML(s), nil }

type failingNode struct{}

func (failingNode) HTML() (template.HTML, error) { return "", errors.New("boom") }

func TestInjectStyleOnce(t *testing.T) {
	d := New("gallery.html")

	assert.True(t, d.InjectStyle("lb-styles", "#lb{}"))
	assert.False(t, d.InjectStyle("lb-styles", "#lb{color:red}"))
	assert.True(t, d.InjectStyle("other", "p{}"))

	styles := d.Styles()
	require.Len(t, styles, 2)
	assert.Equal(t, "lb-styles", styles[0].ID)
	assert.Equal(t, template.CSS("#lb{}"), styles[0].CSS)
	assert.True(t, d.HasStyle("lb-styles"))
}

func TestContainer(t *testing.T) {
	d := New("index.html")

	_, filled := d.Container()
	assert.False(t, filled)

	d.SetContainer("<p>one</p>")
	d.SetContainer("<p>two</p>")
	html, filled := d.Container()
	assert.True(t, filled)
	assert.Equal(t, template.HTML("<p>two</p>"), html)
}

func TestAppendBody(t *testing.T) {
	d := New("gallery.html")

	assert.True(t, d.AppendBody("lb", staticNode(`<div id="lb"></div>`)))
	assert.False(t, d.AppendBody("lb", staticNode(`<div id="lb2"></div>`)))
	assert.Equal(t, 1, d.BodyLen())

	body, err := d.RenderBody()
	require.NoError(t, err)
	assert.Equal(t, []template.HTML{`<div id="lb"></div>`}, body)

	d.AppendBody("bad", failingNode{})
	_, err = d.RenderBody()
	assert.ErrorContains(t, err, "bad")
}

func TestScrollLock(t *testing.T) {
	d := New("gallery.html")
	assert.False(t, d.ScrollLocked())
	d.SetScrollLock(true)
	assert.True(t, d.ScrollLocked())
	d.SetScrollLock(false)
	assert.False(t, d.ScrollLocked())
}

func TestAddScript(t *testing.T) {
	d := New("plates/1.html")
	d.BasePath = "../"

	assert.True(t, d.AddScript("lightbox.js"))
	assert.False(t, d.AddScript("lightbox.js"))
	assert.Equal(t, []string{"../lightbox.js"}, d.Scripts())
}
