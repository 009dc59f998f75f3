package rain

import (
	"math"
	"time"

	"github.com/lixenwraith/rain/render"
	"github.com/lixenwraith/rain/terminal"
)

// SpeedUnit is the wall time over which a line falls Speed rows
const SpeedUnit = 100 * time.Millisecond

// Line is one falling trail: a bright head followed by Length fading tail cells
type Line struct {
	Column     int
	Y          float64 // head position; the head cell is at round(Y)-1
	Speed      float64 // rows per SpeedUnit, > 0
	Length     int     // tail cells behind the head
	Glyphs     []rune  // glyph for each absolute row, fixed at spawn
	LastUpdate time.Time
}

// NewLine creates a line entering from the top of column
func NewLine(column int, speed float64, length int, glyphs []rune, now time.Time) *Line {
	return &Line{
		Column:     column,
		Speed:      speed,
		Length:     length,
		Glyphs:     glyphs,
		LastUpdate: now,
	}
}

// AdvanceBy moves the line by elapsed wall time
func (l *Line) AdvanceBy(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	l.Y += l.Speed * float64(elapsed) / float64(SpeedUnit)
}

// Advance moves the line by the time since its last update
func (l *Line) Advance(now time.Time) {
	l.AdvanceBy(now.Sub(l.LastUpdate))
	l.LastUpdate = now
}

// Gone reports whether the tail end has fallen below the last row
func (l *Line) Gone(rows int) bool {
	return l.Y-float64(l.Length) > float64(rows)
}

// Row returns the screen row of trail position i; 0 is the head
func (l *Line) Row(i int) int {
	return int(math.Round(l.Y-float64(i))) - 1
}

// glyph returns the glyph for an absolute row; rows past the spawn height wrap
func (l *Line) glyph(row int) rune {
	if len(l.Glyphs) == 0 {
		return ' '
	}
	return l.Glyphs[row%len(l.Glyphs)]
}

// Rasterize stages the head and tail cells that fall within [0, rows).
// palette[i] colors tail index i; the last entry is reused if palette is short.
func (l *Line) Rasterize(s *render.Surface, rows int, head terminal.Color, palette []terminal.Color, bg terminal.Color) {
	for i := 0; i <= l.Length; i++ {
		row := l.Row(i)
		if row < 0 || row >= rows {
			continue
		}

		fg := head
		if i > 0 && len(palette) > 0 {
			fg = palette[min(i-1, len(palette)-1)]
		}
		s.Stage(l.Column, row, render.Cell{Glyph: l.glyph(row), Fg: fg, Bg: bg})
	}
}
