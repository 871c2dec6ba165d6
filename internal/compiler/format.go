package compiler

import "strings"

const indentUnit = "  "

// Format renders a program back to normalized, indented text lines. Every
// block is closed with END, so formatting and re-parsing gives an equal tree.
func Format(program Program) []string {
	var out []string
	formatInto(&out, program, 0)
	return out
}

func formatInto(out *[]string, cmds []Command, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	for _, cmd := range cmds {
		*out = append(*out, indent+cmd.meta().Text)
		if b, ok := cmd.(*Block); ok {
			formatInto(out, b.Children, depth+1)
			*out = append(*out, indent+"END")
		}
	}
}

// Count weighs a program for scoring: simple instructions count one, one-line
// conditionals count two (the check and the action), blocks count one plus
// their children.
func Count(program Program) int {
	return count(program)
}

func count(cmds []Command) int {
	n := 0
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case *Simple:
			n++
		case *Conditional:
			n += 2
		case *Block:
			n += 1 + count(c.Children)
		}
	}
	return n
}
