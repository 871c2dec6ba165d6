// Package interpreter executes compiled programs against a world, one queue
// action at a time.
//
// Every command becomes its own Action. When a block's guard holds, its
// children are pushed to the front of the queue, followed by the block itself
// if it is a loop, so that the guard is checked again once the body has run.
// That keeps execution in depth-first source order while the Go call stack
// stays flat, however long a loop runs.
package interpreter
