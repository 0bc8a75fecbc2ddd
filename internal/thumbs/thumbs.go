// Package thumbs generates gallery thumbnails for local plate images.
package thumbs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// Dir is the output subdirectory thumbnails are written to.
	Dir         = "thumbs"
	jpegQuality = 80
)

// Info describes a written thumbnail.
type Info struct {
	Width  int
	Height int
	Size   int
}

// Make decodes an image from src, scales it down to at most width pixels
// wide and writes it to dst as JPEG. Narrower images keep their size.
func Make(src io.Reader, dst io.Writer, width int) (Info, error) {
	if width <= 0 {
		return Info{}, fmt.Errorf("thumbnail width must be positive, got %d", width)
	}
	img, _, err := image.Decode(src)
	if err != nil {
		return Info{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > width {
		newH := h * width / w
		if newH < 1 {
			newH = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, width, newH))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
		w, h = width, newH
	}

	cw := &countingWriter{w: dst}
	if err := jpeg.Encode(cw, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Info{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Info{Width: w, Height: h, Size: cw.n}, nil
}

// File makes a thumbnail of the image at srcPath and writes it to dstPath.
func File(srcPath, dstPath string, width int) (Info, error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return Info{}, err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return Info{}, fmt.Errorf("create thumbs dir: %w", err)
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return Info{}, err
	}
	info, err := Make(in, out, width)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dstPath)
		return Info{}, fmt.Errorf("thumbnail %s: %w", srcPath, err)
	}
	return info, nil
}

// IsLocal reports whether a plate source refers to a file next to the
// manifest rather than a remote or inline image.
func IsLocal(src string) bool {
	if src == "" || strings.HasPrefix(src, "//") || strings.HasPrefix(src, "/") {
		return false
	}
	if i := strings.Index(src, ":"); i >= 0 && !strings.ContainsAny(src[:i], "/.") {
		// scheme: http, https, data, ...
		return false
	}
	return true
}

// Path is the site-relative path of src's thumbnail. The name keeps the
// image's stem for readability and a short hash of src for uniqueness.
func Path(src string) string {
	sum := sha256.Sum256([]byte(src))
	stem := strings.TrimSuffix(path.Base(src), path.Ext(src))
	return Dir + "/" + slug(stem) + "-" + hex.EncodeToString(sum[:4]) + ".jpg"
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "plate"
	}
	return out
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
