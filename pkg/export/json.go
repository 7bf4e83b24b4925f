package export

import (
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/vitae/pkg/viz"
)

// Document is the JSON export shape: the settled geometry alongside the
// authored data, enough to re-render the graph without re-simulating.
// The live server reuses it for its /graph.json endpoint.
type Document struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Title       string     `json:"title,omitempty"`
	Viewport    Viewport   `json:"viewport"`
	Nodes       []NodeData `json:"nodes"`
	Links       []LinkData `json:"links"`
}

// Viewport is the layout viewport in pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NodeData is one node's authored attributes plus its settled geometry.
type NodeData struct {
	ID          string  `json:"id"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	RelSize     float64 `json:"rel_size"`
	RelDistance float64 `json:"rel_distance"`
	Depth       int     `json:"depth"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
}

// LinkData is one parent→child edge by node ID.
type LinkData struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// BuildDocument captures the visualizer's current graph and geometry.
func BuildDocument(title string, width, height int, v *viz.Visualizer) Document {
	nodes := v.Nodes()
	links := v.Links()
	doc := Document{
		GeneratedAt: time.Now().UTC(),
		Title:       title,
		Viewport:    Viewport{Width: width, Height: height},
		Nodes:       make([]NodeData, 0, len(nodes)),
		Links:       make([]LinkData, 0, len(links)),
	}
	unit := v.Config().CircleRadiusUnit
	for _, n := range nodes {
		doc.Nodes = append(doc.Nodes, NodeData{
			ID:          n.ID,
			Image:       n.Image,
			Description: n.Description,
			RelSize:     n.RelSize,
			RelDistance: n.RelDistance,
			Depth:       n.Depth,
			X:           n.Pos.X,
			Y:           n.Pos.Y,
			Radius:      n.Radius(unit),
		})
	}
	for _, l := range links {
		doc.Links = append(doc.Links, LinkData{Source: l.Source.ID, Target: l.Target.ID})
	}
	return doc
}

func (e *Exporter) graphDocument() Document {
	return BuildDocument(e.opts.Title, e.opts.Width, e.opts.Height, e.v)
}

func (e *Exporter) writeJSON(path string) error {
	data, err := json.MarshalIndent(e.graphDocument(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
