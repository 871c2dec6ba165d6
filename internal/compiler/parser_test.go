package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected Program
	}{
		{
			name:     "empty text",
			text:     "",
			expected: Program{},
		},
		{
			name:     "whitespace only",
			text:     "  \n\t \r\n ",
			expected: Program{},
		},
		{
			name: "single simple instruction",
			text: "DRIVE",
			expected: Program{
				&Simple{Meta: Meta{Line: 1, Text: "DRIVE"}, Instruction: Drive},
			},
		},
		{
			name: "case and surrounding whitespace are ignored",
			text: "\n\n   turn left  \n\tPick Up Credit",
			expected: Program{
				&Simple{Meta: Meta{Line: 1, Text: "TURN LEFT"}, Instruction: TurnLeft},
				&Simple{Meta: Meta{Line: 2, Text: "PICK UP CREDIT"}, Instruction: PickUpCredit},
			},
		},
		{
			name: "one-line conditional",
			text: "IF WALL AHEAD: TURN LEFT",
			expected: Program{
				&Conditional{
					Meta:        Meta{Line: 1, Text: "IF WALL AHEAD: TURN LEFT"},
					Control:     If,
					Condition:   WallAhead,
					Instruction: TurnLeft,
				},
			},
		},
		{
			name: "loop block",
			text: "WHILE WALL AHEAD:\nTURN LEFT\nEND",
			expected: Program{
				&Block{
					Meta:      Meta{Line: 1, Text: "WHILE WALL AHEAD:"},
					Control:   While,
					Condition: WallAhead,
					Children: []Command{
						&Simple{Meta: Meta{Line: 2, Text: "TURN LEFT"}, Instruction: TurnLeft},
					},
				},
			},
		},
		{
			name: "nested blocks with trailing command",
			text: strings.Join([]string{
				"UNTIL ON FINISH:",
				"  IF WALL AHEAD:",
				"    TURN RIGHT",
				"  END",
				"  DRIVE",
				"  UNLESS ON CREDIT: STOP",
				"END",
				"PICK UP CREDIT",
			}, "\n"),
			expected: Program{
				&Block{
					Meta:      Meta{Line: 1, Text: "UNTIL ON FINISH:"},
					Control:   Until,
					Condition: OnFinish,
					Children: []Command{
						&Block{
							Meta:      Meta{Line: 2, Text: "IF WALL AHEAD:"},
							Control:   If,
							Condition: WallAhead,
							Children: []Command{
								&Simple{Meta: Meta{Line: 3, Text: "TURN RIGHT"}, Instruction: TurnRight},
							},
						},
						&Simple{Meta: Meta{Line: 5, Text: "DRIVE"}, Instruction: Drive},
						&Conditional{
							Meta:        Meta{Line: 6, Text: "UNLESS ON CREDIT: STOP"},
							Control:     Unless,
							Condition:   OnCredit,
							Instruction: Stop,
						},
					},
				},
				&Simple{Meta: Meta{Line: 8, Text: "PICK UP CREDIT"}, Instruction: PickUpCredit},
			},
		},
		{
			name: "missing END closes at end of input",
			text: "WHILE ON CREDIT:\nPICK UP CREDIT\nIF ON FINISH:\nSTOP",
			expected: Program{
				&Block{
					Meta:      Meta{Line: 1, Text: "WHILE ON CREDIT:"},
					Control:   While,
					Condition: OnCredit,
					Children: []Command{
						&Simple{Meta: Meta{Line: 2, Text: "PICK UP CREDIT"}, Instruction: PickUpCredit},
						&Block{
							Meta:      Meta{Line: 3, Text: "IF ON FINISH:"},
							Control:   If,
							Condition: OnFinish,
							Children: []Command{
								&Simple{Meta: Meta{Line: 4, Text: "STOP"}, Instruction: Stop},
							},
						},
					},
				},
			},
		},
		{
			name: "block opener on the last line",
			text: "DRIVE\nIF WALL AHEAD:",
			expected: Program{
				&Simple{Meta: Meta{Line: 1, Text: "DRIVE"}, Instruction: Drive},
				&Block{
					Meta:      Meta{Line: 2, Text: "IF WALL AHEAD:"},
					Control:   If,
					Condition: WallAhead,
					Children:  []Command{},
				},
			},
		},
		{
			name: "stray END at top level is skipped",
			text: "DRIVE\nEND\nTURN LEFT",
			expected: Program{
				&Simple{Meta: Meta{Line: 1, Text: "DRIVE"}, Instruction: Drive},
				&Simple{Meta: Meta{Line: 3, Text: "TURN LEFT"}, Instruction: TurnLeft},
			},
		},
		{
			name: "windows line endings",
			text: "DRIVE\r\nTURN RIGHT\r\n",
			expected: Program{
				&Simple{Meta: Meta{Line: 1, Text: "DRIVE"}, Instruction: Drive},
				&Simple{Meta: Meta{Line: 2, Text: "TURN RIGHT"}, Instruction: TurnRight},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.text)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		text       string
		wantLine   int
		wantText   string
		suggestion string
	}{
		{name: "unknown words", text: "FOO BAR", wantLine: 1, wantText: "FOO BAR"},
		{name: "original casing is kept", text: "DRIVE\n  go Faster", wantLine: 2, wantText: "  go Faster"},
		{name: "error inside a block", text: "WHILE ON CREDIT:\nDRIVE\nJUMP\nEND", wantLine: 3, wantText: "JUMP"},
		{name: "blank line inside a program", text: "DRIVE\n\nDRIVE", wantLine: 2, wantText: ""},
		{name: "missing colon space", text: "IF WALL AHEAD:TURN LEFT", wantLine: 1, wantText: "IF WALL AHEAD:TURN LEFT"},
		{name: "unknown condition", text: "IF ON FIRE:", wantLine: 1, wantText: "IF ON FIRE:"},
		{name: "truncated keyword", text: "driv", wantLine: 1, wantText: "driv", suggestion: "DRIVE"},
		{name: "typo in keyword", text: "TURN LFT", wantLine: 1, wantText: "TURN LFT", suggestion: "TURN LEFT"},
		{name: "extra letter", text: "DRIVEE", wantLine: 1, wantText: "DRIVEE", suggestion: "DRIVE"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program, err := Parse(tc.text)
			require.Error(t, err)
			assert.Nil(t, program, "no partial tree may be returned")

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected a *ParseError, got %T", err)
			assert.Equal(t, tc.wantLine, perr.Line)
			assert.Equal(t, tc.wantText, perr.Text)
			if tc.suggestion != "" {
				assert.Equal(t, tc.suggestion, perr.Suggestion)
				assert.Contains(t, err.Error(), "did you mean")
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	programs := []string{
		"DRIVE",
		"IF WALL AHEAD: TURN LEFT",
		"UNTIL ON FINISH:\nWHILE WALL AHEAD:\nTURN LEFT\nEND\nDRIVE\nEND",
		"IF ON CREDIT:\nPICK UP CREDIT",
	}

	for _, text := range programs {
		first, err := Parse(text)
		require.NoError(t, err)
		second, err := Parse(text)
		require.NoError(t, err)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("parsing %q twice differs (-first +second):\n%s", text, diff)
		}
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	text := "until on finish:\n  if wall ahead:\n    turn right\n  end\n  drive\nend\nIF ON CREDIT: PICK UP CREDIT"

	program, err := Parse(text)
	require.NoError(t, err)

	lines := Format(program)
	assert.Equal(t, []string{
		"UNTIL ON FINISH:",
		"  IF WALL AHEAD:",
		"    TURN RIGHT",
		"  END",
		"  DRIVE",
		"END",
		"IF ON CREDIT: PICK UP CREDIT",
	}, lines)

	reparsed, err := Parse(strings.Join(lines, "\n"))
	require.NoError(t, err)
	if diff := cmp.Diff(program, reparsed); diff != "" {
		t.Errorf("formatted program does not reparse to the same tree (-want +got):\n%s", diff)
	}
}

func TestFormat_EmptyBlockKeepsEnd(t *testing.T) {
	program, err := Parse("IF WALL AHEAD:\nEND\nDRIVE")
	require.NoError(t, err)

	assert.Equal(t, []string{"IF WALL AHEAD:", "END", "DRIVE"}, Format(program))
}

func TestCount(t *testing.T) {
	program, err := Parse("DRIVE\nIF WALL AHEAD: TURN LEFT\nWHILE ON CREDIT:\nPICK UP CREDIT\nUNLESS ON FINISH: DRIVE\nEND")
	require.NoError(t, err)

	// 1 (DRIVE) + 2 (conditional) + 1 (block) + 1 (PICK UP CREDIT) + 2 (conditional)
	assert.Equal(t, 7, Count(program))
	assert.Equal(t, 0, Count(Program{}))
}

func TestControl(t *testing.T) {
	assert.True(t, While.IsLoop())
	assert.True(t, Until.IsLoop())
	assert.False(t, If.IsLoop())
	assert.False(t, Unless.IsLoop())

	assert.True(t, Unless.Inverts())
	assert.True(t, Until.Inverts())
	assert.False(t, If.Inverts())
	assert.False(t, While.Inverts())
}

func TestMetaOf(t *testing.T) {
	program, err := Parse("DRIVE\nWHILE WALL AHEAD:\nTURN LEFT\nEND")
	require.NoError(t, err)

	assert.Equal(t, Meta{Line: 1, Text: "DRIVE"}, MetaOf(program[0]))
	assert.Equal(t, Meta{Line: 2, Text: "WHILE WALL AHEAD:"}, MetaOf(program[1]))
}
