package export

import (
	"bytes"
	"html/template"
	"os"

	json "github.com/goccy/go-json"
)

// htmlPage is a self-contained page: the settled SVG inlined in the body
// and the graph document embedded as JSON for anything that wants the
// raw data. No external assets, so the file works from file:// as-is.
const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: #f9fafb; font-family: sans-serif; }
  header { padding: 12px 20px; border-bottom: 1px solid #e5e7eb; }
  header h1 { margin: 0; font-size: 18px; }
  main { display: flex; justify-content: center; padding: 20px; }
  main svg { max-width: 100%; height: auto; box-shadow: 0 1px 4px rgba(0,0,0,.1); }
</style>
</head>
<body>
<header><h1>{{.Title}}</h1></header>
<main>
{{.SVG}}
</main>
<script id="graph-data" type="application/json">
{{.Graph}}
</script>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("page").Parse(htmlPage))

func (e *Exporter) writeHTML(path string) error {
	var svgBuf bytes.Buffer
	if err := e.v.Scene().WriteSVG(&svgBuf, e.opts.Width, e.opts.Height); err != nil {
		return err
	}
	graph, err := json.Marshal(e.graphDocument())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return htmlTmpl.Execute(f, struct {
		Title string
		SVG   template.HTML
		Graph template.JS
	}{
		Title: e.opts.Title,
		SVG:   template.HTML(svgBuf.String()),
		Graph: template.JS(graph),
	})
}
