// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package world holds the mutable maze the car drives through.
//
// # Core Concepts
//
//   - Maze: the immutable description a level is built from (dimensions,
//     start, heading, goal and a list of wall/credit fills).
//
//   - Grid: the fixed-size matrix of Cells built from a Maze. Cells are
//     created once and then only have their flags toggled; Reset rebuilds the
//     flags in place so that pointers held elsewhere stay valid.
//
//   - Car: the single agent on a Grid. It owns no cells, it only points at
//     the one it occupies and keeps that cell's occupied/facing flags in sync.
//
// The package is a leaf: it knows nothing about programs, queues or signals.
// Car actions report what happened through return values and callers decide
// which signals to emit.
package world
