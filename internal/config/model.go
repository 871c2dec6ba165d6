package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/cargogo/internal/world"
)

// ErrLevelNotFound is returned by Model.Level for an unknown name.
var ErrLevelNotFound = errors.New("level not found")

// Level is one playable maze and where it was defined.
type Level struct {
	Name   string
	Source string
	Maze   *world.Maze
}

// Model is the unified representation of every loaded level.
type Model struct {
	Levels []*Level
}

// Add appends a level after validating its maze. Level names are unique.
func (m *Model) Add(l *Level) error {
	if l.Maze == nil {
		return fmt.Errorf("level %q in %s has no maze", l.Name, l.Source)
	}
	if err := l.Maze.Validate(); err != nil {
		return fmt.Errorf("invalid maze %q in %s: %w", l.Name, l.Source, err)
	}
	if prev := m.find(l.Name); prev != nil {
		return fmt.Errorf("duplicate level %q in %s, first defined in %s", l.Name, l.Source, prev.Source)
	}
	m.Levels = append(m.Levels, l)
	return nil
}

func (m *Model) find(name string) *Level {
	for _, l := range m.Levels {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Level returns the level with the given name, or the first level when name
// is empty.
func (m *Model) Level(name string) (*Level, error) {
	if len(m.Levels) == 0 {
		return nil, errors.New("no levels loaded")
	}
	if name == "" {
		return m.Levels[0], nil
	}
	if l := m.find(name); l != nil {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrLevelNotFound, name, strings.Join(m.Names(), ", "))
}

// Names lists the level names in model order.
func (m *Model) Names() []string {
	names := make([]string, len(m.Levels))
	for i, l := range m.Levels {
		names[i] = l.Name
	}
	return names
}

// Merge combines models into one ordered by source path, keeping the
// definition order within a file.
func Merge(models ...*Model) (*Model, error) {
	var all []*Level
	for _, m := range models {
		if m != nil {
			all = append(all, m.Levels...)
		}
	}
	slices.SortStableFunc(all, func(a, b *Level) int {
		return strings.Compare(a.Source, b.Source)
	})

	merged := &Model{}
	for _, l := range all {
		if err := merged.Add(l); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
