// Package session wires one playable game together: a world built from a
// maze, the signal bus, the scheduler queue, the interpreter and the compiler
// cache. It is the surface the CLI, the status server and the relay talk to.
package session
