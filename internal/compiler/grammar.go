package compiler

import (
	"regexp"
	"strings"
)

func join[T ~string](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = regexp.QuoteMeta(string(it))
	}
	return strings.Join(parts, "|")
}

// The four line grammars, tried in this order against a normalized line.
var (
	simpleRe = regexp.MustCompile(`^(` + join(instructions) + `)$`)

	conditionalRe = regexp.MustCompile(
		`^(` + join(controls) + `) (` + join(conditions) + `): (` + join(instructions) + `)$`,
	)

	blockRe = regexp.MustCompile(`^(` + join(controls) + `) (` + join(conditions) + `):$`)

	endRe = regexp.MustCompile(`^END$`)
)

// normalizeLine trims surrounding whitespace and upper-cases.
func normalizeLine(line string) string {
	return strings.ToUpper(strings.TrimSpace(line))
}

// splitProgram trims the whole text and splits it on any line break. A blank
// program yields no lines.
func splitProgram(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	trimmed = strings.ReplaceAll(trimmed, "\r\n", "\n")
	trimmed = strings.ReplaceAll(trimmed, "\r", "\n")
	return strings.Split(trimmed, "\n")
}

// parseLine turns one raw line into a command. Block openers come back with
// no children; the caller fills them in.
func parseLine(raw string, line int) (Command, error) {
	text := normalizeLine(raw)
	meta := Meta{Line: line, Text: text}

	if m := simpleRe.FindStringSubmatch(text); m != nil {
		return &Simple{Meta: meta, Instruction: Instruction(m[1])}, nil
	}
	if m := conditionalRe.FindStringSubmatch(text); m != nil {
		return &Conditional{
			Meta:        meta,
			Control:     Control(m[1]),
			Condition:   Condition(m[2]),
			Instruction: Instruction(m[3]),
		}, nil
	}
	if m := blockRe.FindStringSubmatch(text); m != nil {
		return &Block{
			Meta:      meta,
			Control:   Control(m[1]),
			Condition: Condition(m[2]),
		}, nil
	}
	if endRe.MatchString(text) {
		return &blockEnd{Meta: meta}, nil
	}

	return nil, &ParseError{
		Message:    "failed to parse instruction",
		Line:       line,
		Text:       raw,
		Suggestion: suggest(text),
	}
}

// validLines lists every well-formed line, used for suggestions.
var validLines = func() []string {
	var out []string
	for _, in := range instructions {
		out = append(out, string(in))
	}
	out = append(out, "END")
	for _, c := range controls {
		for _, cond := range conditions {
			out = append(out, string(c)+" "+string(cond)+":")
		}
	}
	for _, c := range controls {
		for _, cond := range conditions {
			for _, in := range instructions {
				out = append(out, string(c)+" "+string(cond)+": "+string(in))
			}
		}
	}
	return out
}()
