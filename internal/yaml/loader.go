// Package yaml provides the YAML implementation of config.Loader. A file may
// hold several mazes as separate YAML documents.
package yaml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/cargogo/internal/config"
	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/fsutil"
	"github.com/specialistvlad/cargogo/internal/world"
	"gopkg.in/yaml.v3"
)

// document is one maze as written in YAML.
type document struct {
	Name    string `yaml:"name"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Start   []int  `yaml:"start"`
	Heading string `yaml:"heading"`
	Goal    []int  `yaml:"goal"`
	Fills   []fill `yaml:"fills"`
}

type fill struct {
	Type string  `yaml:"type"`
	Pos  []int   `yaml:"pos"`
	Rect [][]int `yaml:"rect"`
}

// Loader reads mazes from .yaml and .yml files.
type Loader struct{}

// NewLoader creates a new YAML maze loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{}
	for _, p := range paths {
		files, err := fsutil.FindFilesByExtension(p, l.Extensions()...)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if err := l.loadFile(file, model); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("YAML loading complete.", "levels", len(model.Levels))
	return model, nil
}

func (l *Loader) loadFile(path string, model *config.Model) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	for i := 0; ; i++ {
		var doc document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to decode YAML file %s (document %d): %w", path, i+1, err)
		}

		maze, err := doc.maze()
		if err != nil {
			return fmt.Errorf("in %s, maze %q: %w", path, doc.Name, err)
		}
		if err := model.Add(&config.Level{Name: doc.Name, Source: path, Maze: maze}); err != nil {
			return err
		}
	}
}

func (d *document) maze() (*world.Maze, error) {
	if d.Name == "" {
		return nil, errors.New("name is required")
	}

	m := &world.Maze{
		Name:    d.Name,
		Width:   d.Width,
		Height:  d.Height,
		Heading: world.Right,
	}

	if d.Heading != "" {
		h, err := world.ParseDirection(d.Heading)
		if err != nil {
			return nil, err
		}
		m.Heading = h
	}

	var err error
	if m.Start, err = config.Position("start", d.Start); err != nil {
		return nil, err
	}
	if m.Goal, err = config.Position("goal", d.Goal); err != nil {
		return nil, err
	}

	for i, f := range d.Fills {
		fl, err := config.Fill(f.Type, f.Pos, f.Rect)
		if err != nil {
			return nil, fmt.Errorf("fill #%d: %w", i, err)
		}
		m.Fills = append(m.Fills, fl)
	}
	return m, nil
}
