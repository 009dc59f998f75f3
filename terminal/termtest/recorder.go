// Package termtest provides an in-memory terminal.Terminal for tests.
package termtest

import (
	"sync"

	"github.com/lixenwraith/rain/terminal"
)

// Write is one WriteText call with the cursor and colors in effect
type Write struct {
	X, Y int
	Text string
	Fg   terminal.Color
	Bg   terminal.Color
}

type pos struct{ x, y int }

// Recorder records queued writes and groups them per Flush.
// Screen state is tracked per cell so tests can inspect what is visible.
type Recorder struct {
	mu sync.Mutex

	width, height int

	// SizeErr and FlushErr are returned by Size and Flush when set
	SizeErr  error
	FlushErr error

	pending []Write
	flushes [][]Write
	screen  map[pos]Write

	x, y   int
	fg, bg terminal.Color

	cursorX, cursorY int
	clears           int
	inited, finied   bool
}

var _ terminal.Terminal = (*Recorder)(nil)

// New creates a recorder reporting the given size
func New(width, height int) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		screen: make(map[pos]Write),
	}
}

// SetSize changes the reported size, simulating a resize
func (r *Recorder) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
}

func (r *Recorder) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inited = true
	return nil
}

func (r *Recorder) Fini() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finied = true
}

func (r *Recorder) Size() (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SizeErr != nil {
		return 0, 0, r.SizeErr
	}
	return r.width, r.height, nil
}

func (r *Recorder) MoveCursor(x, y int) {
	r.x, r.y = x, y
}

func (r *Recorder) SetForeground(c terminal.Color) { r.fg = c }
func (r *Recorder) SetBackground(c terminal.Color) { r.bg = c }

func (r *Recorder) SetColors(fg, bg terminal.Color) {
	r.fg, r.bg = fg, bg
}

func (r *Recorder) WriteText(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := Write{X: r.x, Y: r.y, Text: s, Fg: r.fg, Bg: r.bg}
	r.pending = append(r.pending, w)
	r.screen[pos{r.x, r.y}] = w
	r.x += len([]rune(s))
}

func (r *Recorder) ResetColors() {
	r.fg, r.bg = terminal.Default, terminal.Default
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
	clear(r.screen)
}

// Flush moves pending writes into a new flush group
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FlushErr != nil {
		return r.FlushErr
	}
	r.flushes = append(r.flushes, r.pending)
	r.pending = nil
	r.cursorX, r.cursorY = r.x, r.y
	return nil
}

// Flushes returns the number of successful flushes
func (r *Recorder) Flushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flushes)
}

// LastFlush returns the writes of the most recent flush
func (r *Recorder) LastFlush() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.flushes) == 0 {
		return nil
	}
	return r.flushes[len(r.flushes)-1]
}

// At returns the last write that landed on (x, y)
func (r *Recorder) At(x, y int) (Write, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.screen[pos{x, y}]
	return w, ok
}

// Cursor returns the cursor position at the last flush
func (r *Recorder) Cursor() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursorX, r.cursorY
}

// Clears returns how many times Clear was called
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Finalized reports whether Fini was called
func (r *Recorder) Finalized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finied
}
