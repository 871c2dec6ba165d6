package compiler

// parser walks the normalized lines of one program.
type parser struct {
	lines []string
	pos   int
}

// Parse compiles program text into a command tree. Blank text gives an empty
// program and no error. Parsing is deterministic: the same text always gives
// structurally equal trees with the same line numbers.
func Parse(text string) (Program, error) {
	return parseLines(splitProgram(text))
}

func parseLines(lines []string) (Program, error) {
	p := &parser{lines: lines}

	program := Program{}
	// A stray END at the top level only closes the implicit outer block, so
	// keep going until every line is consumed.
	for !p.done() {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		program = append(program, block...)
	}
	return program, nil
}

func (p *parser) done() bool {
	return p.pos >= len(p.lines)
}

func (p *parser) next() (Command, error) {
	raw := p.lines[p.pos]
	p.pos++
	return parseLine(raw, p.pos)
}

// parseBlock consumes lines up to and including the next END at this depth,
// or to the end of input. Block openers recurse for their children.
func (p *parser) parseBlock() ([]Command, error) {
	block := []Command{}
	for !p.done() {
		cmd, err := p.next()
		if err != nil {
			return nil, err
		}

		switch c := cmd.(type) {
		case *blockEnd:
			return block, nil
		case *Block:
			children, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			c.Children = children
		}
		block = append(block, cmd)
	}
	return block, nil
}
