package site

import (
	"encoding/xml"
	"os"
	"strings"
	"time"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// BuildURL joins a base URL and site-relative path segments.
func BuildURL(base string, parts ...string) string {
	u := strings.TrimRight(base, "/") + "/"
	var segs []string
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			segs = append(segs, p)
		}
	}
	return u + strings.Join(segs, "/")
}

// WriteSitemap writes sitemap.xml listing pages under baseURL.
func WriteSitemap(baseURL string, pages []string, lastMod time.Time, outputPath string) error {
	mod := lastMod.UTC().Format("2006-01-02")
	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range pages {
		loc := BuildURL(baseURL, p)
		if p == "index.html" {
			loc = BuildURL(baseURL)
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: loc, LastMod: mod})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, append([]byte(xml.Header), data...), 0o644)
}
