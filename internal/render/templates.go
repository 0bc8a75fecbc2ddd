package render

// branchTemplates holds one named template per route. Every manifest string
// goes through html/template's contextual escaping.
const branchTemplates = `
{{define "title"}}<div class="section-title"><h4>{{.}}</h4></div>{{end}}

{{define "companies"}}{{template "title" .Title}}
{{range .Companies}}<div class="card" style="grid-column: span 12"><h3>{{.Name}}</h3>{{notes .Notes}}<table><tr><th>Element</th><th>Details</th></tr>{{range .Elements}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}</table></div>
{{end}}{{end}}

{{define "armory"}}{{template "title" .Title}}
<div class="grid">
{{range .Cards}}<div class="card"><h3>{{.Title}}</h3><p>{{.Body}}</p>{{if .Meta}}<span class="meta">{{.Meta}}</span>{{end}}</div>
{{end}}<div class="card" style="grid-column: span 12"><h3>Relics &amp; Wargear</h3><ul>{{range .Relics}}<li><strong>{{.Name}}</strong> — {{.Bearer}} — {{.Notes}}</li>{{end}}</ul></div>
</div>{{end}}

{{define "cards"}}{{template "title" .Title}}
<div class="grid">
{{range .Items}}<div class="card"{{if $.Wide}} style="grid-column: span 12"{{end}}><h3>{{.Name}}</h3>{{notes .Notes}}{{if $.ShowMeta}}<span class="meta">{{.Meta}}</span>{{end}}</div>
{{end}}</div>{{end}}

{{define "relics"}}{{template "title" .Title}}
<table><tr><th>Name</th><th>Bearer</th><th>Notes</th></tr>{{range .Relics}}<tr><td>{{.Name}}</td><td>{{.Bearer}}</td><td>{{.Notes}}</td></tr>{{end}}</table>{{end}}

{{define "gallery"}}{{template "title" .Title}}
<div class="grid">
{{if .Cards}}{{range .Cards}}<a class="card plate" href="{{.Href}}" data-index="{{.Index}}">{{if .Thumb}}<img class="plate-thumb" src="{{.Thumb}}" alt="{{.Title}}" loading="lazy">{{end}}<h3>{{.Title}}</h3><p>{{.Caption}}</p><span class="meta">Open plate</span></a>
{{end}}{{else}}<div class="card"><h3>No plates yet</h3><p>Add image paths to the "gallery" array in <code>codex.json</code>. You can use strings or objects like {src, title, caption}.</p></div>
{{end}}</div>
<script type="application/json" id="lb-data">{{.Plates}}</script>{{end}}
`
