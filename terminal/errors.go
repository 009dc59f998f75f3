package terminal

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInterrupted is returned by InterruptWatcher when the user asks to quit
var ErrInterrupted = errors.New("interrupted")

// TerminalIOError reports a failed write to, or query of, the terminal.
// There is no recovery for a broken output stream; callers propagate it.
type TerminalIOError struct {
	Op  string
	Err error
}

func (e *TerminalIOError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalIOError) Unwrap() error {
	return e.Err
}

// DegenerateSizeError reports a terminal with zero rows or columns,
// typically seen transiently while a resize is in flight
type DegenerateSizeError struct {
	Width  int
	Height int
}

func (e *DegenerateSizeError) Error() string {
	return fmt.Sprintf("degenerate terminal size %dx%d", e.Width, e.Height)
}

// ioError wraps err with stack context as a TerminalIOError; nil stays nil
func ioError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TerminalIOError{Op: op, Err: errors.WithStack(err)}
}

// IsDegenerate reports whether err is a DegenerateSizeError
func IsDegenerate(err error) bool {
	var de *DegenerateSizeError
	return errors.As(err, &de)
}

// IsIO reports whether err is a TerminalIOError
func IsIO(err error) bool {
	var ie *TerminalIOError
	return errors.As(err, &ie)
}

// CheckSize returns a DegenerateSizeError when either dimension is not positive
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &DegenerateSizeError{Width: width, Height: height}
	}
	return nil
}
