package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/cargogo/internal/config"
	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/fsutil"
	"github.com/specialistvlad/cargogo/internal/world"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL maze loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses every .hcl file found under paths and translates each maze
// block into a level.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, l.Extensions()...)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Mazes {
			maze, err := translateMaze(block)
			if err != nil {
				return nil, fmt.Errorf("in %s, maze %q: %w", file, block.Name, err)
			}
			if err := model.Add(&config.Level{Name: block.Name, Source: file, Maze: maze}); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("HCL loading complete.", "levels", len(model.Levels))
	return model, nil
}

// translateMaze converts a decoded maze block into a world.Maze.
func translateMaze(b *mazeBlock) (*world.Maze, error) {
	m := &world.Maze{
		Name:    b.Name,
		Width:   b.Width,
		Height:  b.Height,
		Heading: world.Right,
	}

	if b.Heading != "" {
		h, err := world.ParseDirection(b.Heading)
		if err != nil {
			return nil, err
		}
		m.Heading = h
	}

	xy, err := decodePair(b.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if m.Start, err = config.Position("start", xy); err != nil {
		return nil, err
	}

	xy, err = decodePair(b.Goal)
	if err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	if m.Goal, err = config.Position("goal", xy); err != nil {
		return nil, err
	}

	m.Fills, err = translateFills(b.Remain)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// translateFills reads wall and credit blocks in source order.
func translateFills(body hcl.Body) ([]world.Fill, error) {
	if body == nil {
		return nil, nil
	}
	content, diags := body.Content(fillSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	fills := make([]world.Fill, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		var fb fillBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &fb); diags.HasErrors() {
			return nil, diags
		}

		var pos []int
		var rect [][]int
		if absent, err := isAbsent(fb.Pos); err != nil {
			return nil, err
		} else if !absent {
			if pos, err = decodePair(fb.Pos); err != nil {
				return nil, fmt.Errorf("%s pos at %s: %w", block.Type, block.DefRange, err)
			}
		}
		if absent, err := isAbsent(fb.Rect); err != nil {
			return nil, err
		} else if !absent {
			if rect, err = decodeRect(fb.Rect); err != nil {
				return nil, fmt.Errorf("%s rect at %s: %w", block.Type, block.DefRange, err)
			}
		}

		fill, err := config.Fill(block.Type, pos, rect)
		if err != nil {
			return nil, fmt.Errorf("%s block at %s: %w", block.Type, block.DefRange, err)
		}
		fills = append(fills, fill)
	}
	return fills, nil
}
