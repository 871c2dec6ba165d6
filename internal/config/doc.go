// Package config defines the format-agnostic model of the playable levels
// and the Loader interface that format-specific packages implement.
//
// A Level carries a validated world.Maze together with the file it came
// from. Concrete loaders for HCL and YAML live in their own packages; the
// app merges whatever they return into a single Model.
package config
