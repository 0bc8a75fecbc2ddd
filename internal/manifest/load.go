package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxManifestSize bounds how much of a remote manifest is read.
const maxManifestSize = 16 << 20

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses the manifest at source, which is either a file
// path or an http(s) URL.
func Load(ctx context.Context, source string) (*Manifest, error) {
	data, err := ReadSource(ctx, source)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ReadSource returns the raw manifest bytes. Remote manifests are always
// fetched fresh.
func ReadSource(ctx context.Context, source string) ([]byte, error) {
	if IsRemote(source) {
		return fetch(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", source, err)
	}
	return data, nil
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building manifest request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("manifest %s not found: HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
	if err != nil {
		return nil, fmt.Errorf("reading manifest body: %w", err)
	}
	return data, nil
}

// Digest returns the SHA-256 hex digest of a raw manifest.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
