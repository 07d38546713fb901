package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/ayaled/internal/logic"
	"github.com/sweeney/ayaled/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"css": func(c logic.Color) template.CSS {
		return template.CSS(fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B))
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>ayaled</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.swatch { display: inline-block; width: 1em; height: 1em; border: 1px solid #888; vertical-align: middle; margin-right: 6px; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>ayaled</h1>

<h2>Device</h2>
<table>
<tr><th>Vendor</th><td>{{.Device.Vendor}}</td></tr>
<tr><th>Board</th><td>{{.Device.Board}}</td></tr>
<tr><th>Product</th><td>{{.Device.Product}}</td></tr>
<tr><th>Variant</th><td>{{.Device.Variant}}</td></tr>
<tr><th>Access</th><td>{{.Device.Access}}</td></tr>
</table>

<h2>LED</h2>
<table>
<tr><th>Battery</th><td>{{.Reading.Capacity}}% {{.Reading.Status}}</td></tr>
<tr><th>Theme color</th><td><span class="swatch" style="background: {{css .Target}}"></span>{{.Target}}</td></tr>
<tr><th>Brightness</th><td>{{printf "%.2f" .Scale}}</td></tr>
<tr><th>Written</th><td><span class="swatch" style="background: {{css .Color}}"></span>{{.Color}}</td></tr>
<tr><th>Writes</th><td>{{.Writes}} ({{.Resumes}} after resume)</td></tr>
</table>

<h2>Theme</h2>
<table>
<tr><th>charging</th><td><span class="swatch" style="background: {{css .Theme.Charging}}"></span>{{.Theme.Charging}}</td></tr>
<tr><th>low_bat</th><td><span class="swatch" style="background: {{css .Theme.LowBattery}}"></span>{{.Theme.LowBattery}}</td></tr>
<tr><th>full</th><td><span class="swatch" style="background: {{css .Theme.Full}}"></span>{{.Theme.Full}}</td></tr>
<tr><th>normal</th><td><span class="swatch" style="background: {{css .Theme.Normal}}"></span>{{.Theme.Normal}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
{{if .Config.LineAddr}}<tr><th>Line config</th><td>{{.Config.LineAddr}}</td></tr>{{end}}
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{.Config.Broker}} ({{if .MQTTConnected}}connected{{else}}disconnected{{end}})</td></tr>{{end}}
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot, th logic.Theme) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
		Theme  logic.Theme
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Theme:    th,
	}
	indexTmpl.Execute(w, data)
}
