package render

import (
	"github.com/lixenwraith/rain/terminal"
)

// Cell is one glyph with its colors. Identity is the Point it is stored under.
type Cell struct {
	Glyph rune
	Fg    terminal.Color
	Bg    terminal.Color
}

// Point is a grid coordinate, column X and row Y, 0-indexed from top-left
type Point struct {
	X, Y int
}

// Blank returns the erase cell for a background color
func Blank(bg terminal.Color) Cell {
	return Cell{Glyph: ' ', Bg: bg}
}

// text returns the glyph as written to the terminal; the zero rune draws as space
func (c Cell) text() string {
	if c.Glyph == 0 {
		return " "
	}
	return string(c.Glyph)
}

// less orders points top-to-bottom, then left-to-right
func less(a, b Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
