// Package compiler turns program text into a command tree.
//
// A program is one instruction per line, case-insensitive:
//
//	DRIVE | TURN LEFT | TURN RIGHT | PICK UP CREDIT | STOP
//	(IF|UNLESS|WHILE|UNTIL) (ON CREDIT|ON FINISH|WALL AHEAD): <instruction>
//	(IF|UNLESS|WHILE|UNTIL) (ON CREDIT|ON FINISH|WALL AHEAD):
//	END
//
// A line ending in a colon opens a block that runs to the matching END.
// Running out of input closes every open block.
package compiler
