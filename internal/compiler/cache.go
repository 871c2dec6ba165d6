package compiler

import (
	"errors"
	"slices"

	"github.com/specialistvlad/cargogo/internal/signal"
)

// Cache remembers the last successfully parsed program. Re-parsing text that
// normalizes to the same lines returns the very same Program, which lets
// observers compare by identity and skip redundant work.
type Cache struct {
	bus     *signal.Bus
	lines   []string
	program Program
	valid   bool
}

// NewCache returns an empty cache publishing on bus. bus may be nil.
func NewCache(bus *signal.Bus) *Cache {
	return &Cache{bus: bus}
}

// Parse compiles text, reusing the previous result when the normalized lines
// are unchanged. It publishes program-parsed for fresh parses, program-empty
// whenever the resulting program is empty and parse-error on failure.
func (c *Cache) Parse(text string) (Program, error) {
	lines := splitProgram(text)
	normalized := make([]string, len(lines))
	for i, l := range lines {
		normalized[i] = normalizeLine(l)
	}

	if c.valid && slices.Equal(normalized, c.lines) {
		if len(c.program) == 0 {
			c.bus.Publish(signal.Signal{Name: signal.ProgramEmpty})
		}
		return c.program, nil
	}

	program, err := parseLines(lines)
	if err != nil {
		c.Invalidate()
		sig := signal.Signal{Name: signal.ParseError, Err: err}
		var perr *ParseError
		if errors.As(err, &perr) {
			sig.Line = perr.Line
			sig.Text = perr.Text
		}
		c.bus.Publish(sig)
		return nil, err
	}

	c.lines = normalized
	c.program = program
	c.valid = true

	c.bus.Publish(signal.Signal{Name: signal.ProgramParsed, Count: Count(program)})
	if len(program) == 0 {
		c.bus.Publish(signal.Signal{Name: signal.ProgramEmpty})
	}
	return program, nil
}

// Program returns the last successfully parsed program, if any.
func (c *Cache) Program() (Program, bool) {
	return c.program, c.valid
}

// Invalidate forgets the cached program so the next Parse starts fresh.
func (c *Cache) Invalidate() {
	c.lines = nil
	c.program = nil
	c.valid = false
}
