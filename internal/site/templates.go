package site

// pageTemplate is the layout wrapped around every rendered container.
const pageTemplate = `<!DOCTYPE html>
<html lang="en"{{if .ScrollLocked}} style="overflow:hidden"{{end}}>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Title}}{{.Title}} — {{end}}{{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
{{- range .Styles}}
  <style id="{{.ID}}">{{.CSS}}</style>
{{- end}}
</head>
<body>
  <header class="masthead">
    <a class="brand" href="{{.BasePath}}index.html">{{.SiteTitle}}</a>
    <nav class="nav">
{{- range .Nav}}
      <a href="{{$.BasePath}}{{.Href}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Label}}</a>
{{- end}}
    </nav>
    <div class="search">
      <input type="search" id="search-input" placeholder="Search the codex..." autocomplete="off" data-base="{{.BasePath}}">
      <ul class="search-results" id="search-results"></ul>
    </div>
  </header>
  <main id="app" class="container">{{.Content}}</main>
  <footer class="colophon">Rendered from <code>{{.Source}}</code></footer>
{{- range .Body}}
  {{.}}
{{- end}}
  <script src="{{.BasePath}}script.js"></script>
{{- range .Scripts}}
  <script src="{{.}}"></script>
{{- end}}
</body>
</html>`

// indexTemplate is the container of the landing page.
const indexTemplate = `<div class="section-title"><h4>{{.SiteTitle}}</h4></div>
<div class="grid">
{{range .Sections}}<a class="card" href="{{.Href}}"><h3>{{.Label}}</h3><p>{{.Title}}</p><span class="meta">{{.Count}} {{if eq .Count 1}}entry{{else}}entries{{end}}</span></a>
{{end}}</div>`

// plateTemplate is the container of a plate's fallback page. The overlay
// itself is appended to the body in its open state.
const plateTemplate = `<div class="section-title"><h4>{{.Title}}</h4></div>
<nav class="plate-nav">
  <a href="{{.Prev}}" rel="prev">‹ Previous plate</a>
  <a href="{{.Gallery}}">Back to gallery</a>
  <a href="{{.Next}}" rel="next">Next plate ›</a>
</nav>
<p class="meta">Plate {{.Number}} of {{.Total}}</p>`

// cssContent is the site theme.
const cssContent = `:root {
  --bg: #0d1117;
  --panel: #161c26;
  --panel-2: #1d2533;
  --ink: #e6eef9;
  --muted: #93a1b8;
  --accent: #c9a227;
  --accent-2: #7a1f1f;
  --border: #2a3446;
  --radius: 14px;
  --font: system-ui, "Segoe UI", Roboto, sans-serif;
  --mono: ui-monospace, SFMono-Regular, Menlo, monospace;
}

* { box-sizing: border-box; }

html, body {
  margin: 0;
  background: var(--bg);
  color: var(--ink);
  font: 16px/1.55 var(--font);
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }
code { font-family: var(--mono); font-size: .9em; }

.masthead {
  position: sticky;
  top: 0;
  z-index: 10;
  display: flex;
  flex-wrap: wrap;
  align-items: center;
  gap: 16px;
  padding: 12px 24px;
  background: linear-gradient(180deg, var(--panel-2), var(--panel));
  border-bottom: 1px solid var(--border);
}

.brand {
  font-weight: 700;
  letter-spacing: .08em;
  text-transform: uppercase;
  color: var(--ink);
}

.nav { display: flex; flex-wrap: wrap; gap: 4px; flex: 1; }
.nav a {
  padding: 6px 10px;
  border-radius: 999px;
  color: var(--muted);
}
.nav a:hover { color: var(--ink); background: rgba(255,255,255,.06); text-decoration: none; }
.nav a.active { color: var(--bg); background: var(--accent); }

.search { position: relative; }
.search input {
  width: 220px;
  padding: 7px 12px;
  border-radius: 999px;
  border: 1px solid var(--border);
  background: var(--bg);
  color: var(--ink);
}
.search-results {
  position: absolute;
  right: 0;
  top: 110%;
  width: 340px;
  max-height: 60vh;
  overflow: auto;
  margin: 0;
  padding: 0;
  list-style: none;
  background: var(--panel);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  display: none;
}
.search-results.open { display: block; }
.search-results li a { display: block; padding: 8px 12px; color: var(--ink); }
.search-results li a:hover { background: var(--panel-2); text-decoration: none; }
.search-results small { display: block; color: var(--muted); }

.container { max-width: 1180px; margin: 0 auto; padding: 24px; }

.section-title {
  margin: 8px 0 20px;
  border-bottom: 2px solid var(--accent-2);
}
.section-title h4 {
  margin: 0 0 8px;
  font-size: 1.1rem;
  letter-spacing: .12em;
  text-transform: uppercase;
  color: var(--accent);
}

.grid {
  display: grid;
  grid-template-columns: repeat(12, 1fr);
  gap: 16px;
}
.grid > .card { grid-column: span 4; }

.card {
  display: block;
  margin-bottom: 16px;
  padding: 16px 18px;
  background: var(--panel);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  color: var(--ink);
}
.grid > .card { margin-bottom: 0; }
a.card:hover { border-color: var(--accent); text-decoration: none; }
.card h3 { margin: 0 0 8px; font-size: 1.05rem; }
.card p { margin: 0 0 8px; color: var(--muted); }
.card .notes p { margin: 0 0 8px; }
.card ul { margin: 0; padding-left: 18px; }

.meta {
  display: inline-block;
  padding: 2px 10px;
  border-radius: 999px;
  font-size: .8rem;
  color: var(--accent);
  border: 1px solid var(--accent);
}

.plate-thumb {
  width: 100%;
  aspect-ratio: 4 / 3;
  object-fit: cover;
  border-radius: 10px;
  margin-bottom: 10px;
}

table { width: 100%; border-collapse: collapse; margin-top: 8px; }
th, td { padding: 8px 10px; border-bottom: 1px solid var(--border); text-align: left; vertical-align: top; }
th { color: var(--muted); font-weight: 600; }

.plate-nav { display: flex; gap: 16px; justify-content: space-between; }

.colophon {
  max-width: 1180px;
  margin: 0 auto;
  padding: 24px;
  color: var(--muted);
  font-size: .85rem;
}

@media (max-width: 900px) {
  .grid > .card { grid-column: span 6; }
}

@media (max-width: 600px) {
  .grid > .card { grid-column: span 12; }
  .search input { width: 100%; }
  .search-results { width: 100%; }
}
`

// jsContent drives the search box from search-index.json.
const jsContent = `(function () {
  var input = document.getElementById('search-input');
  var list = document.getElementById('search-results');
  if (!input || !list) return;

  var base = input.getAttribute('data-base') || '';
  var entries = null;

  function load() {
    if (entries) return Promise.resolve(entries);
    return fetch(base + 'search-index.json', { cache: 'no-store' })
      .then(function (res) { return res.ok ? res.json() : []; })
      .then(function (data) { entries = data || []; return entries; })
      .catch(function () { entries = []; return entries; });
  }

  function render(results) {
    list.innerHTML = '';
    results.slice(0, 12).forEach(function (e) {
      var li = document.createElement('li');
      var a = document.createElement('a');
      a.href = base + e.path;
      a.textContent = e.title;
      var small = document.createElement('small');
      small.textContent = e.section + (e.summary ? ' · ' + e.summary : '');
      a.appendChild(small);
      li.appendChild(a);
      list.appendChild(li);
    });
    list.classList.toggle('open', results.length > 0);
  }

  input.addEventListener('input', function () {
    var q = input.value.trim().toLowerCase();
    if (!q) { render([]); return; }
    load().then(function (all) {
      render(all.filter(function (e) {
        return (e.title + ' ' + e.summary + ' ' + e.content).toLowerCase().indexOf(q) !== -1;
      }));
    });
  });

  document.addEventListener('keydown', function (e) {
    if (e.key === 'Escape') render([]);
  });
})();
`
