package report

import (
	"html/template"
	"io"
	"strings"

	"github.com/threatdeck/threatdeck/config"
	"github.com/threatdeck/threatdeck/internal/dashboard"
)

type htmlData struct {
	Generated  string
	Categories []string
	Dash       *dashboard.Dashboard
}

// RenderHTML writes the whole dashboard document. Every feed-sourced
// field goes through the template engine, so untrusted catalog and
// news text cannot break out of its element.
func RenderHTML(w io.Writer, conf *config.Conf, d *dashboard.Dashboard) error {
	categories := make([]string, 0, len(conf.Vendors)+1)
	for _, v := range conf.Vendors {
		categories = append(categories, v.Name)
	}
	categories = append(categories, conf.CatchAll)

	data := htmlData{
		Generated:  d.GeneratedAt.Format("2006-01-02 15:04 UTC"),
		Categories: categories,
		Dash:       d,
	}

	return dashboardTemplate.Execute(w, data)
}

var dashboardTemplate = template.Must(template.New("dashboard").
	Funcs(template.FuncMap{
		"vclass": func(category string) string {
			fields := strings.Fields(category)
			if len(fields) == 0 {
				return "Other"
			}
			return fields[0]
		},
	}).
	Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Threatdeck</title>
<style>
:root { --bg: #f8f9fa; --sidebar: #1e293b; --card: #ffffff; --text: #334155; --highlight: #2563eb; --critical: #ef4444; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; margin: 0; padding: 0; background: var(--bg); color: var(--text); display: flex; min-height: 100vh; }
.sidebar { width: 280px; background: var(--sidebar); color: white; padding: 2rem; position: fixed; height: 100%; overflow-y: auto; }
.sidebar h1 { font-size: 1.2rem; text-transform: uppercase; letter-spacing: 1px; margin-bottom: 2rem; border-bottom: 1px solid #334155; padding-bottom: 1rem; }
.filter-btn { display: block; width: 100%; padding: 12px; margin-bottom: 8px; background: #334155; border: none; color: white; text-align: left; cursor: pointer; border-radius: 6px; transition: 0.2s; }
.filter-btn:hover, .filter-btn.active { background: var(--highlight); }
.side-label { color: #94a3b8; font-size: 0.8rem; margin-bottom: 10px; }
.eol-section { margin-top: 3rem; }
.eol-item { font-size: 0.85rem; padding: 8px 0; border-bottom: 1px solid #334155; }
.eol-date { display: block; font-size: 0.75rem; opacity: 0.7; margin-top: 2px; }
.st-warning { color: #f59e0b; } .st-expired { text-decoration: line-through; opacity: 0.5; } .st-ok { color: #10b981; }
.main { margin-left: 280px; padding: 2rem 3rem; width: 100%; }
.header { margin-bottom: 2rem; display: flex; justify-content: space-between; align-items: center; }
.last-updated { font-size: 0.9rem; color: #64748b; }
.grid { display: grid; gap: 1.5rem; }
.card { background: var(--card); padding: 1.5rem; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); border-left: 4px solid var(--highlight); }
.card.vendor-Microsoft { border-left-color: #0078d4; }
.card.vendor-Cisco { border-left-color: #1ba0d7; }
.card.vendor-Citrix { border-left-color: #d13438; }
.card.vendor-Palo { border-left-color: #f97316; }
.card-header { display: flex; justify-content: space-between; margin-bottom: 1rem; }
.tag { background: #f1f5f9; padding: 4px 8px; border-radius: 4px; font-size: 0.75rem; font-weight: 600; text-transform: uppercase; letter-spacing: 0.5px; }
.cve-link { color: var(--highlight); text-decoration: none; font-weight: 700; font-size: 1.1rem; }
.cve-link:hover { text-decoration: underline; }
.desc { font-size: 0.95rem; line-height: 1.6; margin-bottom: 1rem; color: #475569; }
.action { background: #eff6ff; padding: 12px; border-radius: 6px; font-size: 0.9rem; border: 1px solid #dbeafe; }
.hunt { display: block; margin-top: 10px; background: #0f172a; color: #e2e8f0; padding: 10px; border-radius: 6px; font-size: 0.8rem; overflow-x: auto; }
.section { margin-top: 3rem; }
.news-item, .status-item { background: var(--card); padding: 1rem 1.5rem; border-radius: 8px; margin-bottom: 0.75rem; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.status-item.sev-critical { border-left: 4px solid var(--critical); }
.status-item.sev-warning { border-left: 4px solid #f59e0b; }
.meta { font-size: 0.8rem; color: #64748b; }
.diagnostics { margin-top: 3rem; font-size: 0.8rem; color: #94a3b8; }
.diagnostics .failed { color: var(--critical); }
@media (max-width: 900px) { body { display: block; } .sidebar { position: relative; width: auto; height: auto; } .main { margin: 0; padding: 1rem; } }
</style>
<script>
function filterVendor(vendor) {
    const cards = document.querySelectorAll('.card');
    const buttons = document.querySelectorAll('.filter-btn');
    buttons.forEach(b => b.classList.remove('active'));
    document.getElementById('btn-' + vendor).classList.add('active');
    cards.forEach(card => {
        if (vendor === 'All' || card.dataset.vendor === vendor) {
            card.style.display = 'block';
        } else {
            card.style.display = 'none';
        }
    });
}
</script>
</head>
<body>
<div class="sidebar">
    <h1>Threatdeck</h1>

    <p class="side-label">VULNERABILITY FILTER</p>
    <button id="btn-All" class="filter-btn active" onclick="filterVendor('All')">All Vendors</button>
{{- range .Categories}}
    <button id="btn-{{.}}" class="filter-btn" onclick="filterVendor('{{.}}')">{{.}}</button>
{{- end}}

    <div class="eol-section">
        <p class="side-label">LIFECYCLE</p>
{{- range .Dash.Lifecycle}}
        <div class="eol-item st-{{.Status}}"><strong>{{.Product}}</strong><span class="eol-date">{{.EOL}}</span></div>
{{- end}}
    </div>
</div>

<div class="main">
    <div class="header">
        <h2>Active Exploitations (CISA KEV)</h2>
        <div class="last-updated">Updated: {{.Generated}}</div>
    </div>

    <div class="grid">
{{- range .Dash.Vulns}}
        <div class="card vendor-{{vclass .Category}}" data-vendor="{{.Category}}">
            <div class="card-header">
                <span class="tag">{{.Category}}</span>
                <span class="tag">{{.DateAdded}}</span>
            </div>
            <a href="{{.Link}}" target="_blank" class="cve-link">{{.Name}} ({{.CVEID}})</a>
            <p class="desc">{{.Description}}</p>
            <div class="action"><strong>REQUIRED ACTION:</strong> {{.RequiredAction}}</div>
{{- if .HuntingQuery}}
            <code class="hunt">{{.HuntingQuery}}</code>
{{- end}}
        </div>
{{- end}}
    </div>

{{- if .Dash.News}}
    <div class="section">
        <h2>Security News</h2>
{{- range .Dash.News}}
        <div class="news-item">
            <a href="{{.Link}}" target="_blank">{{.Title}}</a>
            <div class="meta">{{.Source}} | {{.Published}}</div>
        </div>
{{- end}}
    </div>
{{- end}}

{{- if .Dash.Status}}
    <div class="section">
        <h2>Service Health</h2>
{{- range .Dash.Status}}
        <div class="status-item sev-{{.Severity}}">
            <span class="tag">{{.Type}}</span>
            <a href="{{.Link}}" target="_blank">{{.Title}}</a>
            <p class="desc">{{.Description}}</p>
            <div class="meta">{{.Date}}</div>
        </div>
{{- end}}
    </div>
{{- end}}

    <div class="diagnostics">
{{- range .Dash.Sources}}
        <div>{{.Source}}: {{.Records}} record(s){{if .Err}} <span class="failed">{{.Err}}</span>{{end}}</div>
{{- end}}
    </div>
</div>
</body>
</html>
`))
