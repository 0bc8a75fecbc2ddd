package thumbs

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMakeScalesDown(t *testing.T) {
	var out bytes.Buffer
	info, err := Make(bytes.NewReader(pngBytes(t, 200, 100)), &out, 50)
	require.NoError(t, err)

	assert.Equal(t, 50, info.Width)
	assert.Equal(t, 25, info.Height)
	assert.Equal(t, out.Len(), info.Size)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 25, cfg.Height)
}

func TestMakeKeepsSmallImages(t *testing.T) {
	var out bytes.Buffer
	info, err := Make(bytes.NewReader(pngBytes(t, 30, 20)), &out, 50)
	require.NoError(t, err)
	assert.Equal(t, 30, info.Width)
	assert.Equal(t, 20, info.Height)
}

func TestMakeErrors(t *testing.T) {
	_, err := Make(strings.NewReader("not an image"), &bytes.Buffer{}, 50)
	assert.ErrorContains(t, err, "decode image")

	_, err = Make(bytes.NewReader(pngBytes(t, 10, 10)), &bytes.Buffer{}, 0)
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plate.png")
	require.NoError(t, os.WriteFile(src, pngBytes(t, 120, 60), 0o644))

	dst := filepath.Join(dir, "out", Path("img/plate.png"))
	info, err := File(src, dst, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, info.Width)
	assert.FileExists(t, dst)

	_, err = File(filepath.Join(dir, "missing.png"), filepath.Join(dir, "x.jpg"), 60)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	badDst := filepath.Join(dir, "bad.jpg")
	_, err = File(bad, badDst, 60)
	assert.Error(t, err)
	assert.NoFileExists(t, badDst)
}

func TestIsLocal(t *testing.T) {
	tests := map[string]bool{
		"img/a.jpg":                  true,
		"a.png":                      true,
		"../art/a.png":               true,
		"https://example.com/a.png":  false,
		"http://example.com/a.png":   false,
		"//cdn.example.com/a.png":    false,
		"data:image/png;base64,AAAA": false,
		"/abs/a.png":                 false,
		"":                           false,
	}
	for src, want := range tests {
		assert.Equal(t, want, IsLocal(src), src)
	}
}

func TestPath(t *testing.T) {
	p := Path("img/Battle Plate 01.png")
	assert.True(t, strings.HasPrefix(p, "thumbs/battle-plate-01-"), p)
	assert.True(t, strings.HasSuffix(p, ".jpg"), p)
	assert.Equal(t, p, Path("img/Battle Plate 01.png"))
	assert.NotEqual(t, Path("a/x.png"), Path("b/x.png"))
	assert.True(t, strings.HasPrefix(Path("img/___.png"), "thumbs/plate-"))
}
