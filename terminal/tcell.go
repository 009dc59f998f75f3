package terminal

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

// tcellTerminal adapts a tcell.Screen to Terminal.
// tcell keeps its own cell buffer and diffs on Show, so writes here are cheap.
type tcellTerminal struct {
	screen tcell.Screen

	x, y  int
	style tcell.Style

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a Terminal backed by a real tcell screen
func NewTcell() (Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, ioError("new screen", err)
	}
	return NewTcellScreen(s), nil
}

// NewTcellScreen wraps an existing screen (a simulation screen in tests)
func NewTcellScreen(s tcell.Screen) Terminal {
	return &tcellTerminal{screen: s, style: tcell.StyleDefault}
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return ioError("init", err)
	}
	t.screen.HideCursor()
	t.screen.Clear()
	t.initialized = true
	return nil
}

// Fini restores the tty; tcell leaves the alternate screen so parking is implicit
func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.screen.Fini()
	t.finalized = true
}

func (t *tcellTerminal) Size() (int, int, error) {
	w, h := t.screen.Size()
	return w, h, nil
}

func (t *tcellTerminal) MoveCursor(x, y int) {
	t.x, t.y = x, y
}

func (t *tcellTerminal) SetForeground(c Color) {
	t.style = t.style.Foreground(toTcell(c))
}

func (t *tcellTerminal) SetBackground(c Color) {
	t.style = t.style.Background(toTcell(c))
}

func (t *tcellTerminal) SetColors(fg, bg Color) {
	t.style = tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
}

// WriteText places each rune at the cursor; out of range cells are ignored by tcell
func (t *tcellTerminal) WriteText(s string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		t.screen.SetContent(t.x, t.y, r, nil, t.style)
		t.x += w
	}
}

func (t *tcellTerminal) ResetColors() {
	t.style = tcell.StyleDefault
}

func (t *tcellTerminal) Clear() {
	t.screen.Fill(' ', t.style)
}

func (t *tcellTerminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return ioError("flush", errors.New("screen finalized"))
	}
	t.screen.Show()
	return nil
}

// WaitInterrupt polls tcell events; the screen is in raw mode so Ctrl-C arrives as a key
func (t *tcellTerminal) WaitInterrupt(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// Screen finalized
			return nil
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyEscape:
				return ErrInterrupted
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				return ErrInterrupted
			}
		}
	}
}

// toTcell maps a Color onto tcell's palette
func toTcell(c Color) tcell.Color {
	if c.IsRGB() {
		return tcell.NewRGBColor(int32(c.RGB.R), int32(c.RGB.G), int32(c.RGB.B))
	}
	switch c.Named {
	case NamedBlack:
		return tcell.ColorBlack
	case NamedRed:
		return tcell.ColorMaroon
	case NamedGreen:
		return tcell.ColorGreen
	case NamedYellow:
		return tcell.ColorOlive
	case NamedBlue:
		return tcell.ColorNavy
	case NamedMagenta:
		return tcell.ColorPurple
	case NamedCyan:
		return tcell.ColorTeal
	case NamedWhite:
		return tcell.ColorSilver
	}
	return tcell.ColorDefault
}
