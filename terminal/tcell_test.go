package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerminal(t *testing.T) (Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	term := NewTcellScreen(s)
	require.NoError(t, term.Init())
	s.SetSize(10, 4)
	t.Cleanup(term.Fini)
	return term, s
}

func TestTcell_WriteAndSize(t *testing.T) {
	term, s := newSimTerminal(t)

	w, h, err := term.Size()
	require.NoError(t, err)
	assert.Equal(t, 10, w)
	assert.Equal(t, 4, h)

	term.MoveCursor(2, 1)
	term.SetColors(NewRGB(0, 110, 38), Red)
	term.WriteText("ab")
	require.NoError(t, term.Flush())

	r, _, style, _ := s.GetContent(3, 1)
	assert.Equal(t, 'b', r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 110, 38), fg)
	assert.Equal(t, tcell.ColorMaroon, bg)
}

func TestTcell_ResetAndClear(t *testing.T) {
	term, s := newSimTerminal(t)

	term.SetBackground(Blue)
	term.Clear()
	_, _, style, _ := s.GetContent(9, 3)
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.ColorNavy, bg)

	term.ResetColors()
	term.MoveCursor(0, 0)
	term.WriteText("x")
	_, _, style, _ = s.GetContent(0, 0)
	assert.Equal(t, tcell.StyleDefault, style)
}

func TestTcell_FlushAfterFini(t *testing.T) {
	term, _ := newSimTerminal(t)
	term.Fini()

	err := term.Flush()
	require.Error(t, err)
	assert.True(t, IsIO(err))
}

func TestTcell_WaitInterrupt(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		mod  tcell.ModMask
	}{
		{"ctrl-c", tcell.KeyCtrlC, 0, tcell.ModCtrl},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone},
		{"q", tcell.KeyRune, 'q', tcell.ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, s := newSimTerminal(t)
			w, ok := term.(InterruptWatcher)
			require.True(t, ok)

			done := make(chan error, 1)
			go func() { done <- w.WaitInterrupt(context.Background()) }()

			s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
			s.InjectKey(tt.key, tt.ch, tt.mod)

			select {
			case err := <-done:
				assert.ErrorIs(t, err, ErrInterrupted)
			case <-time.After(2 * time.Second):
				t.Fatal("WaitInterrupt did not return")
			}
		})
	}
}

func TestTcell_WaitInterruptEndsOnFini(t *testing.T) {
	term, _ := newSimTerminal(t)
	w := term.(InterruptWatcher)

	done := make(chan error, 1)
	go func() { done <- w.WaitInterrupt(context.Background()) }()

	term.Fini()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitInterrupt did not return")
	}
}
