package terminal

import "io"

// Backend abstracts platform-specific terminal operations.
// The ANSI terminal renders into a Backend; tests substitute an in-memory one.
type Backend interface {
	// Writer receives raw output bytes
	io.Writer

	// Init prepares the tty for drawing (echo off, line buffering off)
	Init() error

	// Fini restores the tty state saved by Init
	Fini()

	// Size returns the current terminal dimensions
	Size() (width, height int, err error)
}
