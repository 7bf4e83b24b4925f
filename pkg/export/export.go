// Package export renders a settled layout to static artifacts: SVG and
// PNG snapshots, JSON and SQLite data dumps, and a self-contained HTML
// page. The simulation runs to convergence once; the requested formats
// are then written in parallel.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/vitae/pkg/debug"
	"github.com/vanderheijden86/vitae/pkg/loader"
	"github.com/vanderheijden86/vitae/pkg/model"
	"github.com/vanderheijden86/vitae/pkg/viz"
)

// Format identifies one export artifact.
type Format string

const (
	FormatSVG    Format = "svg"
	FormatPNG    Format = "png"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
	FormatHTML   Format = "html"
)

// AllFormats lists every supported format in output order.
var AllFormats = []Format{FormatSVG, FormatPNG, FormatJSON, FormatSQLite, FormatHTML}

// ErrUnknownFormat is returned for a format string outside AllFormats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range AllFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// DefaultSettleTicks bounds the settle loop; the simulation converges in
// roughly 300 ticks, the bound only guards degenerate inputs.
const DefaultSettleTicks = 2000

// Options configures an export run.
type Options struct {
	CVPath  string
	OutDir  string
	Title   string
	Width   int
	Height  int
	Formats []Format

	MaxTicks int
}

// DefaultOptions returns the options the CLI starts from.
func DefaultOptions(cvPath string) Options {
	return Options{
		CVPath:   cvPath,
		OutDir:   "./vitae-out",
		Title:    "Curriculum Vitae",
		Width:    1600,
		Height:   1000,
		Formats:  []Format{FormatSVG, FormatHTML},
		MaxTicks: DefaultSettleTicks,
	}
}

// Exporter runs the layout to convergence and writes the artifacts.
type Exporter struct {
	opts  Options
	v     *viz.Visualizer
	nodes []*model.Node
	links []*model.Link
}

// NewExporter validates the options.
func NewExporter(opts Options) (*Exporter, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("viewport %dx%d: width and height must be positive", opts.Width, opts.Height)
	}
	if len(opts.Formats) == 0 {
		return nil, errors.New("no export formats selected")
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultSettleTicks
	}
	return &Exporter{opts: opts}, nil
}

// Run loads the CV, settles the layout, and writes every requested
// format. Formats are independent, so they are written concurrently.
func (e *Exporter) Run() error {
	root, err := loader.LoadFile(e.opts.CVPath)
	if err != nil {
		return err
	}
	nodes, links, err := loader.Flatten(root)
	if err != nil {
		return err
	}
	e.nodes, e.links = nodes, links

	e.v = viz.New(float64(e.opts.Width), float64(e.opts.Height))
	for _, n := range nodes {
		if err := e.v.AddNode(n); err != nil {
			return err
		}
	}
	for _, l := range links {
		if err := e.v.AddLink(l); err != nil {
			return err
		}
	}

	start := time.Now()
	ticks := e.v.Settle(e.opts.MaxTicks)
	debug.Log("export: settled in %d ticks", ticks)
	debug.LogTiming("export: settle", time.Since(start))

	if err := os.MkdirAll(e.opts.OutDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var g errgroup.Group
	for _, f := range e.opts.Formats {
		f := f
		g.Go(func() error {
			if err := e.writeFormat(f); err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Path returns the output path for a format.
func (e *Exporter) Path(f Format) string {
	name := map[Format]string{
		FormatSVG:    "cv.svg",
		FormatPNG:    "cv.png",
		FormatJSON:   "cv.json",
		FormatSQLite: "cv.sqlite3",
		FormatHTML:   "index.html",
	}[f]
	return filepath.Join(e.opts.OutDir, name)
}

func (e *Exporter) writeFormat(f Format) error {
	switch f {
	case FormatSVG:
		return e.writeSVG(e.Path(f))
	case FormatPNG:
		return e.v.Scene().SavePNG(e.Path(f), e.opts.Width, e.opts.Height)
	case FormatJSON:
		return e.writeJSON(e.Path(f))
	case FormatSQLite:
		return e.writeSQLite(e.Path(f))
	case FormatHTML:
		return e.writeHTML(e.Path(f))
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

func (e *Exporter) writeSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return e.v.Scene().WriteSVG(f, e.opts.Width, e.opts.Height)
}
