// Package game implements the rules of a falling-block puzzle: a fixed-size grid of landed
// cells, a single falling piece, and the commands that move, rotate and drop it.
//
// The core is a value-oriented state machine. A Session is never mutated in place; every
// command produces a new Session, so any snapshot handed to a renderer stays consistent.
// Illegal moves are silently rejected, and the only terminal condition is GameOver, reached
// when a freshly spawned piece does not fit at the spawn position.
//
// Adapters drive a Session through a Scheduler. Systems registered on the scheduler push
// commands into a per-frame buffer, and the buffer is applied in arrival order against the
// scheduler's current session once every system has run.
package game

//go:generate go tool stringer -type=Kind,Command,State -trimprefix=Kind -output=enum_string.go
