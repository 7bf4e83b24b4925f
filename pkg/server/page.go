package server

import (
	"bytes"
	"html/template"
	"io"

	"github.com/vanderheijden86/vitae/pkg/viz"
)

// livePage wraps the rendered SVG with a reload script: the page opens a
// websocket to /ws and refreshes itself on any message. Everything else
// matches the static HTML export, so the served page and the exported
// one look the same.
const livePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: #f9fafb; font-family: sans-serif; }
  header { padding: 12px 20px; border-bottom: 1px solid #e5e7eb; display: flex; align-items: center; gap: 10px; }
  header h1 { margin: 0; font-size: 18px; }
  #live-dot { width: 8px; height: 8px; border-radius: 50%; background: #9ca3af; }
  #live-dot.connected { background: #10b981; }
  main { display: flex; justify-content: center; padding: 20px; }
  main svg { max-width: 100%; height: auto; box-shadow: 0 1px 4px rgba(0,0,0,.1); }
</style>
</head>
<body>
<header><h1>{{.Title}}</h1><span id="live-dot" title="live reload"></span></header>
<main>
{{.SVG}}
</main>
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var sock = new WebSocket(proto + location.host + "/ws");
  sock.onopen = function () {
    document.getElementById("live-dot").classList.add("connected");
  };
  sock.onmessage = function () {
    location.reload();
  };
})();
</script>
</body>
</html>
`

var liveTmpl = template.Must(template.New("live").Parse(livePage))

func writePage(w io.Writer, title string, v *viz.Visualizer) error {
	var svgBuf bytes.Buffer
	width, height := v.Viewport()
	if err := v.Scene().WriteSVG(&svgBuf, int(width), int(height)); err != nil {
		return err
	}
	return liveTmpl.Execute(w, struct {
		Title string
		SVG   template.HTML
	}{
		Title: title,
		SVG:   template.HTML(svgBuf.String()),
	})
}
