package terminal

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Terminal is the low-level output surface the renderer draws through.
// Coordinates are 0-indexed; writes are queued until Flush.
type Terminal interface {
	// Init enters drawing mode: hides cursor, disables autowrap and echo, clears screen
	Init() error

	// Fini parks the cursor on the bottom row and restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int, err error)

	// MoveCursor positions cursor (0-indexed)
	MoveCursor(x, y int)

	// SetForeground sets the color of subsequently written glyphs
	SetForeground(c Color)

	// SetBackground sets the cell color behind subsequently written glyphs
	SetBackground(c Color)

	// SetColors sets both colors at once
	SetColors(fg, bg Color)

	// WriteText writes s at the cursor, advancing it by the display width of s
	WriteText(s string)

	// ResetColors returns both colors to the terminal default
	ResetColors()

	// Clear erases the screen with the current background
	Clear()

	// Flush drains queued output to the terminal
	Flush() error
}

// InterruptWatcher is implemented by backends that own the keyboard (raw mode)
// and therefore have to translate quit keys into cancellation themselves
type InterruptWatcher interface {
	// WaitInterrupt blocks until a quit key (ErrInterrupted), terminal shutdown or ctx end (nil)
	WaitInterrupt(ctx context.Context) error
}

// ansiTerminal implements Terminal with direct ANSI sequences over a Backend
type ansiTerminal struct {
	backend Backend
	output  *outputBuffer

	// Size seen by the last Init or Size call, used to clamp cursor moves
	width, height int

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates an ANSI terminal on stdout
func New(colorMode ColorMode) Terminal {
	return NewWithBackend(newBackend(), colorMode)
}

// NewWithBackend creates an ANSI terminal over an arbitrary backend
func NewWithBackend(b Backend, colorMode ColorMode) Terminal {
	return &ansiTerminal{
		backend: b,
		output:  newOutputBuffer(b, colorMode),
	}
}

// Init prepares the tty and clears the screen
func (t *ansiTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return ioError("init", err)
	}
	if w, h, err := t.backend.Size(); err == nil {
		t.width, t.height = w, h
	}

	w := t.output.writer
	w.WriteString(ansi.HideCursor)
	// Prevents terminal scroll/wrap on bottom-right corner write
	w.WriteString(ansi.ResetModeAutoWrap)
	w.WriteString(ansi.ResetStyle)
	w.WriteString(ansi.EraseEntireScreen)
	t.output.invalidate()

	t.initialized = true
	return ioError("init", w.Flush())
}

// Fini parks the cursor below the drawn grid and restores terminal state
func (t *ansiTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w := t.output.writer
	if _, h, err := t.backend.Size(); err == nil && h > 0 {
		w.WriteString(ansi.CursorPosition(1, h))
	}
	w.WriteString(ansi.ResetStyle)
	w.WriteString(ansi.SetModeAutoWrap)
	w.WriteString(ansi.ShowCursor)
	w.WriteString("\r\n")
	w.Flush()

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *ansiTerminal) Size() (int, int, error) {
	w, h, err := t.backend.Size()
	if err != nil {
		return 0, 0, ioError("size", err)
	}
	t.width, t.height = w, h
	return w, h, nil
}

// MoveCursor positions cursor (0-indexed), clamped to the visible grid
func (t *ansiTerminal) MoveCursor(x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if t.width > 0 && t.height > 0 {
		x = min(x, t.width-1)
		y = min(y, t.height-1)
	}
	t.output.moveCursor(x, y)
}

func (t *ansiTerminal) SetForeground(c Color) {
	t.output.setStyle(c, t.output.pendingBg)
}

func (t *ansiTerminal) SetBackground(c Color) {
	t.output.setStyle(t.output.pendingFg, c)
}

func (t *ansiTerminal) SetColors(fg, bg Color) {
	t.output.setStyle(fg, bg)
}

func (t *ansiTerminal) WriteText(s string) {
	t.output.writeText(s)
}

func (t *ansiTerminal) ResetColors() {
	t.output.reset()
}

// Clear erases the screen with the pending background color
func (t *ansiTerminal) Clear() {
	t.output.clear()
}

// Flush drains the output buffer to the backend
func (t *ansiTerminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ioError("flush", t.output.flush())
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	io.WriteString(w, ansi.ResetStyle)
	io.WriteString(w, ansi.SetModeAutoWrap)
	io.WriteString(w, ansi.ShowCursor)
	io.WriteString(w, "\r\n")

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
