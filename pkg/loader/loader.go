// Package loader reads the YAML CV tree and flattens it into the node and
// link collections the visualizer consumes. The visualizer itself is
// agnostic to authoring: it only ever sees AddNode/AddLink calls.
//
// CV format:
//
//	id: jane
//	image: https://example.com/jane.png
//	description: |
//	  # Jane Doe
//	  Engineer.
//	children:
//	  - id: work
//	    rel_size: 0.65
//	    rel_distance: 0.6
//	    children: [...]
//
// rel_size and rel_distance may be omitted; the root defaults to 1 and
// deeper entries to 0.65 / 0.6, the proportions a rendered CV reads well
// with.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/vitae/pkg/model"
)

// Common errors.
var (
	ErrEmptyDocument = errors.New("cv document has no root entry")
	ErrDuplicateID   = errors.New("duplicate entry id")
)

// Default scale factors for entries below the root.
const (
	defaultChildRelSize     = 0.65
	defaultChildRelDistance = 0.6
)

// Entry is one node of the authored CV tree.
type Entry struct {
	ID          string   `yaml:"id"`
	Image       string   `yaml:"image"`
	Description string   `yaml:"description"`
	RelSize     float64  `yaml:"rel_size"`
	RelDistance float64  `yaml:"rel_distance"`
	Children    []*Entry `yaml:"children"`
}

// Parse reads a YAML CV tree from r.
func Parse(r io.Reader) (*Entry, error) {
	var root Entry
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("parsing cv: %w", err)
	}
	if root.ID == "" {
		return nil, ErrEmptyDocument
	}
	return &root, nil
}

// LoadFile reads a YAML CV tree from path.
func LoadFile(path string) (*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cv file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Flatten walks the tree depth-first and produces the node and link
// collections in append order: each entry before its children, each link
// right after its target node. IDs must be unique across the whole tree.
func Flatten(root *Entry) ([]*model.Node, []*model.Link, error) {
	if root == nil || root.ID == "" {
		return nil, nil, ErrEmptyDocument
	}

	var (
		nodes []*model.Node
		links []*model.Link
		seen  = make(map[string]*model.Node)
	)

	var walk func(e *Entry, parent *model.Node, depth int) error
	walk = func(e *Entry, parent *model.Node, depth int) error {
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("entry %q: %w", e.ID, ErrDuplicateID)
		}

		n := model.NewNode(e.ID)
		n.Image = e.Image
		n.Description = e.Description
		n.Depth = depth
		n.RelSize, n.RelDistance = scaleDefaults(depth)
		if e.RelSize != 0 {
			n.RelSize = e.RelSize
		}
		if e.RelDistance != 0 {
			n.RelDistance = e.RelDistance
		}
		if err := n.Validate(); err != nil {
			return err
		}

		seen[e.ID] = n
		nodes = append(nodes, n)
		if parent != nil {
			l := &model.Link{Source: parent, Target: n}
			if err := l.Validate(); err != nil {
				return err
			}
			links = append(links, l)
		}

		for _, c := range e.Children {
			if err := walk(c, n, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root, nil, 0); err != nil {
		return nil, nil, err
	}
	return nodes, links, nil
}

func scaleDefaults(depth int) (relSize, relDistance float64) {
	if depth == 0 {
		return 1, 1
	}
	return defaultChildRelSize, defaultChildRelDistance
}
