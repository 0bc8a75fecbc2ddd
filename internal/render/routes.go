package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Route identifies one page of the codex.
type Route string

const (
	RouteCompanies Route = "companies"
	RouteArmory    Route = "armory"
	RouteHeroes    Route = "heroes"
	RouteCampaigns Route = "campaigns"
	RouteAllies    Route = "allies"
	RouteEnemies   Route = "enemies"
	RouteRelics    Route = "relics"
	RouteGallery   Route = "gallery"
)

// routes is in dispatch order: when a page name contains more than one
// keyword, the earliest route wins.
var routes = []Route{
	RouteCompanies,
	RouteArmory,
	RouteHeroes,
	RouteCampaigns,
	RouteAllies,
	RouteEnemies,
	RouteRelics,
	RouteGallery,
}

var sectionTitles = map[Route]string{
	RouteCompanies: "Companies · Order of Battle",
	RouteArmory:    "Armory · Engines & Assets",
	RouteHeroes:    "Heroes of the Chapter",
	RouteCampaigns: "Campaign Dossiers",
	RouteAllies:    "Allies of the XIII",
	RouteEnemies:   "Enemies of the XIII",
	RouteRelics:    "Appendix: Relics",
	RouteGallery:   "Illuminations",
}

var titleCaser = cases.Title(language.English)

// Routes returns every route in dispatch order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// ParseRoute resolves an exact route key.
func ParseRoute(key string) (Route, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, r := range routes {
		if string(r) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown route %q", key)
}

// RouteFromPath infers the route from a page path the way a browser page
// would: the last path segment, lowercased, matched by substring in
// dispatch order. An empty segment is treated as index.html.
func RouteFromPath(p string) (Route, bool) {
	seg := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		seg = p[i+1:]
	}
	if seg == "" {
		seg = "index.html"
	}
	seg = strings.ToLower(seg)
	for _, r := range routes {
		if strings.Contains(seg, string(r)) {
			return r, true
		}
	}
	return "", false
}

// File is the output file name of the route's page.
func (r Route) File() string { return string(r) + ".html" }

// Label is the navigation label, e.g. "Campaigns".
func (r Route) Label() string { return titleCaser.String(string(r)) }

// SectionTitle is the heading rendered at the top of the page.
func (r Route) SectionTitle() string { return sectionTitles[r] }
