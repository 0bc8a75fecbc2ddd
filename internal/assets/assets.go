// Package assets collects the static files copied next to the rendered
// pages: images, extra stylesheets, favicons.
package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// File is one asset found under the project root.
type File struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the root.
	Size    int64
}

// Config controls Collect.
type Config struct {
	RootDir string   // Project root the patterns are relative to.
	Include []string // Glob patterns of files to copy.
	Exclude []string // Glob patterns never copied.
	// SkipPaths are directories never descended into, typically the output
	// directory when it lives inside the root.
	SkipPaths []string
}

// Collect walks cfg.RootDir and returns every file matching an include and
// no exclude pattern, in lexical order.
func Collect(cfg Config) ([]File, error) {
	if err := ValidatePatterns(cfg.Include); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(cfg.Exclude); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("assets: resolve root: %w", err)
	}

	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = true
		}
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && (shouldSkipDir(d.Name()) || skip[path]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !MatchesInclude(relPath, cfg.Include) || MatchesExclude(relPath, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, File{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: traversal: %w", err)
	}
	return files, nil
}

// ErrOutsideRoot is returned by Lookup for paths that leave the root.
var ErrOutsideRoot = errors.New("assets: path outside root")

// Lookup resolves a single slash-separated path relative to root, e.g. a
// gallery image named by the manifest. The path must stay under root.
func Lookup(root, rel string) (File, error) {
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return File{}, ErrOutsideRoot
	}
	abs, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(clean)))
	if err != nil {
		return File{}, fmt.Errorf("assets: resolve %s: %w", rel, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return File{}, err
	}
	if !info.Mode().IsRegular() {
		return File{}, fmt.Errorf("assets: %s is not a regular file", rel)
	}
	return File{Path: abs, RelPath: clean, Size: info.Size()}, nil
}

// Copy copies files into dstDir, keeping their relative paths.
func Copy(files []File, dstDir string) error {
	for _, f := range files {
		dst := filepath.Join(dstDir, filepath.FromSlash(f.RelPath))
		if err := copyFile(f.Path, dst); err != nil {
			return fmt.Errorf("copying asset %s: %w", f.RelPath, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
