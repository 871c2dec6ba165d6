// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the play lifecycle: load the levels,
// compile the program, run it against the chosen maze and report the
// outcome. It is decoupled from any specific entrypoint like a CLI.
package app
