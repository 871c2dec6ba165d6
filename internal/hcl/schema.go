package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a maze file.
type fileRoot struct {
	Mazes  []*mazeBlock `hcl:"maze,block"`
	Remain hcl.Body     `hcl:",remain"`
}

// mazeBlock is a single `maze "name" { ... }` block. Fill blocks are read
// from Remain so their source order survives across block types.
type mazeBlock struct {
	Name    string         `hcl:"name,label"`
	Width   int            `hcl:"width"`
	Height  int            `hcl:"height"`
	Start   hcl.Expression `hcl:"start"`
	Heading string         `hcl:"heading,optional"`
	Goal    hcl.Expression `hcl:"goal"`
	Remain  hcl.Body       `hcl:",remain"`
}

// fillBlock is the body of a `wall` or `credit` block.
type fillBlock struct {
	Pos  hcl.Expression `hcl:"pos,optional"`
	Rect hcl.Expression `hcl:"rect,optional"`
}

var fillSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "wall"},
		{Type: "credit"},
	},
}
