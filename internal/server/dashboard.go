package server

import (
	"html/template"
	"log"
	"net/http"

	"github.com/b0ase/path402/apps/assetroom/internal/view"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
{{if .Refresh}}<meta http-equiv="refresh" content="1">{{end}}
<title>{{.Title}}</title>
<style>
  *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
  :root {
    --bg: #0c0a09; --surface: #1c1917; --surface-hover: #292524;
    --border: rgba(249,115,22,0.12); --border-strong: rgba(249,115,22,0.25);
    --text: #fafaf9; --text-dim: #a8a29e; --text-muted: #57534e;
    --orange: #f97316; --orange-light: #fb923c;
    --orange-dim: rgba(249,115,22,0.15); --orange-dimmer: rgba(249,115,22,0.06);
    --green: #22c55e; --red: #ef4444;
  }
  body {
    font-family: -apple-system, 'SF Pro Display', 'Segoe UI', system-ui, sans-serif;
    background: var(--bg); color: var(--text);
    min-height: 100vh; padding: 40px 24px;
  }
  .container { max-width: 1040px; margin: 0 auto; }

  /* Header */
  .header {
    display: flex; align-items: flex-end; gap: 16px; flex-wrap: wrap;
    margin-bottom: 32px; padding-bottom: 24px;
    border-bottom: 1px solid var(--border);
  }
  .kicker {
    font-size: 11px; font-weight: 600; letter-spacing: 1.5px; text-transform: uppercase;
    color: var(--orange); margin-bottom: 6px;
  }
  .header h1 {
    font-size: 28px; font-weight: 800; letter-spacing: -0.5px;
    background: linear-gradient(135deg, var(--orange-light) 0%, var(--orange) 100%);
    -webkit-background-clip: text; -webkit-text-fill-color: transparent;
  }
  .subtitle { font-size: 13px; color: var(--text-dim); margin-top: 6px; max-width: 520px; }
  .header .spacer { flex: 1; }
  .controls { display: flex; gap: 10px; }
  .controls form { display: inline; }
  .btn {
    font: inherit; font-size: 13px; font-weight: 700; cursor: pointer;
    padding: 10px 18px; border-radius: 14px;
    border: 1px solid var(--border-strong);
    background: var(--surface); color: var(--text);
  }
  .btn.primary { background: linear-gradient(135deg, var(--orange) 0%, #ea580c 100%); color: #000; border: none; }
  .btn.active { background: var(--orange-dim); color: var(--orange); }
  .btn:disabled { opacity: 0.4; cursor: not-allowed; }

  /* Banners */
  .banner {
    border-radius: 16px; padding: 14px 18px; margin-bottom: 16px;
    font-size: 13px; border: 1px solid var(--border);
    background: var(--orange-dimmer);
  }
  .banner .addr { font-family: 'SF Mono', 'Menlo', monospace; color: var(--orange); word-break: break-all; }
  .banner.error { background: rgba(239,68,68,0.08); border-color: rgba(239,68,68,0.25); color: var(--red); }

  /* Stats */
  .stats-grid {
    display: grid; grid-template-columns: repeat(3, 1fr);
    gap: 16px; margin-bottom: 24px;
  }
  .stat-card {
    background: var(--surface); border: 1px solid var(--border);
    border-radius: 20px; padding: 24px;
  }
  .stat-label {
    font-size: 11px; font-weight: 600; letter-spacing: 1.5px; text-transform: uppercase;
    color: var(--text-muted); margin-bottom: 12px;
  }
  .stat-value {
    font-size: 32px; font-weight: 800; color: var(--text);
    font-variant-numeric: tabular-nums; letter-spacing: -1px; line-height: 1;
  }
  .stat-card.muted .stat-value { color: var(--text-muted); }

  /* Asset grid */
  .asset-grid {
    display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr));
    gap: 16px;
  }
  .asset-card {
    background: var(--surface); border: 1px solid var(--border);
    border-radius: 20px; overflow: hidden; position: relative;
  }
  .asset-card.owned { border-color: var(--border-strong); }
  .asset-card img { width: 100%; aspect-ratio: 4 / 3; object-fit: cover; display: block; background: var(--surface-hover); }
  .asset-body { padding: 16px; }
  .asset-body h3 { font-size: 15px; font-weight: 700; margin-bottom: 6px; }
  .asset-body p { font-size: 12px; color: var(--text-dim); line-height: 1.5; }
  .asset-owner {
    font-size: 11px; color: var(--text-muted); margin-top: 10px;
    font-family: 'SF Mono', 'Menlo', monospace; word-break: break-all;
  }
  .badge {
    position: absolute; top: 12px; right: 12px;
    font-size: 10px; font-weight: 700; padding: 4px 10px; border-radius: 20px;
    background: var(--orange); color: #000; letter-spacing: 0.5px;
  }
  .skeleton { height: 280px; background: linear-gradient(90deg, var(--surface) 0%, var(--surface-hover) 50%, var(--surface) 100%); background-size: 200% 100%; animation: shimmer 1.4s infinite; }
  @keyframes shimmer { 0% { background-position: 200% 0; } 100% { background-position: -200% 0; } }
  .empty { text-align: center; padding: 48px 0; color: var(--text-muted); font-size: 14px; }

  @media (max-width: 640px) {
    .stats-grid { grid-template-columns: 1fr; }
    body { padding: 24px 16px; }
  }
</style>
</head>
<body>
<div class="container">

  <div class="header">
    <div>
      <div class="kicker">{{.Kicker}}</div>
      <h1>{{.Title}}</h1>
      <div class="subtitle">{{.Subtitle}}</div>
    </div>
    <div class="spacer"></div>
    <div class="controls">
      <form method="post" action="/session/filter">
        <button class="btn{{if .Filter.Active}} active{{end}}" type="submit"{{if .Filter.Disabled}} disabled{{end}}>{{.Filter.Label}}</button>
      </form>
      <form method="post" action="/session/connection">
        <button class="btn primary" type="submit"{{if .Connect.Disabled}} disabled{{end}}>{{.Connect.Label}}</button>
      </form>
    </div>
  </div>

  {{with .Banner}}
  <div class="banner">Connected as <span class="addr">{{.Address}}</span> &middot; you own {{.OwnedCount}}</div>
  {{end}}
  {{with .ConnectError}}
  <div class="banner error">{{.}}</div>
  {{end}}

  {{if .Error}}
  <div class="banner error">{{.Error}}</div>
  {{else}}
    {{if .Widgets}}
    <div class="stats-grid">
      {{range .Widgets}}
      <div class="stat-card{{if .Muted}} muted{{end}}">
        <div class="stat-label">{{.Label}}</div>
        <div class="stat-value">{{.Value}}</div>
      </div>
      {{end}}
    </div>
    {{end}}

    <div class="asset-grid">
      {{range .Skeletons}}<div class="asset-card skeleton"></div>{{end}}
      {{range .Cards}}
      <div class="asset-card{{if .Owned}} owned{{end}}" data-asset-id="{{.ID}}">
        {{if .Owned}}<span class="badge">Owned</span>{{end}}
        <img src="{{.Image}}" alt="{{.Name}}" loading="lazy">
        <div class="asset-body">
          <h3>{{.Name}}</h3>
          <p>{{.Description}}</p>
          <div class="asset-owner">{{.Owner}}</div>
        </div>
      </div>
      {{end}}
    </div>

    {{if .Empty}}<div class="empty">{{.EmptyMessage}}</div>{{end}}
  {{end}}

</div>
</body>
</html>`

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d := view.Build(s.session(w, r).Snapshot())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := dashboardTmpl.Execute(w, d); err != nil {
		log.Printf("[api] Dashboard render failed: %v", err)
	}
}
