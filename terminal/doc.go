// Package terminal is the output collaborator the renderer draws through.
//
// Two implementations of Terminal are provided:
//   - New: direct ANSI sequences over a platform Backend, buffered, with
//     redundant cursor moves and SGR changes coalesced away
//   - NewTcell: a tcell.Screen, which owns the keyboard in raw mode and
//     therefore also implements InterruptWatcher
//
// Colors are named ANSI colors or RGB triples. RGB is emitted as 24-bit when the
// terminal supports it and mapped to the nearest xterm-256 index otherwise.
//
// Failures writing to or querying the terminal are reported as *TerminalIOError;
// a zero-sized terminal is reported as *DegenerateSizeError by CheckSize.
package terminal
