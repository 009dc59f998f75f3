package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/rain/terminal"
)

// Surface is a retained-mode screen: cells staged for the frame being built,
// reconciled on flush against the cells committed by the previous flush.
// Not safe for concurrent use; a single frame loop owns it.
type Surface struct {
	term terminal.Terminal

	staged    map[Point]Cell
	committed map[Point]Cell

	// Size observed by the last flush
	width    int
	height   int
	rendered bool

	// Size observed by the last Query, used by ClearTo
	queryWidth  int
	queryHeight int

	background terminal.Color

	// Scratch buffer for sorted iteration, reused across frames
	order []Point
}

// NewSurface creates a surface drawing through term
func NewSurface(term terminal.Terminal) *Surface {
	return &Surface{
		term:      term,
		staged:    make(map[Point]Cell),
		committed: make(map[Point]Cell),
	}
}

// Query reads the terminal size for the frame being built.
// Returns *terminal.DegenerateSizeError for 0 rows or columns.
func (s *Surface) Query() (width, height int, err error) {
	width, height, err = s.term.Size()
	if err != nil {
		return 0, 0, wrapIO("size", err)
	}
	s.queryWidth, s.queryHeight = width, height
	if err := terminal.CheckSize(width, height); err != nil {
		return width, height, err
	}
	return width, height, nil
}

// Stage records the cell planned for (x, y) this frame, replacing any earlier one.
// Coordinates outside the terminal are accepted and dropped at flush.
func (s *Surface) Stage(x, y int, c Cell) {
	s.staged[Point{x, y}] = c
}

// StageText stages a string starting at (x, y). A line break continues at
// column x of the next row. Wide runes take two columns, zero-width runes none.
func (s *Surface) StageText(x, y int, text string, fg, bg terminal.Color) {
	col := x
	for _, r := range text {
		if r == '\n' {
			y++
			col = x
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.staged[Point{col, y}] = Cell{Glyph: r, Fg: fg, Bg: bg}
		if w > 1 {
			// The terminal paints the right half; a staged blank there would cut the glyph
			delete(s.staged, Point{col + 1, y})
		}
		col += w
	}
}

// ClearTo stages a blank over the whole grid from the last Query and makes bg
// the erase color for cells dropped by later frames
func (s *Surface) ClearTo(bg terminal.Color) {
	s.background = bg
	blank := Blank(bg)
	for y := 0; y < s.queryHeight; y++ {
		for x := 0; x < s.queryWidth; x++ {
			s.staged[Point{x, y}] = blank
		}
	}
}

// Discard drops the staged frame without drawing it
func (s *Surface) Discard() {
	clear(s.staged)
}

// Sync forces the next flush to redraw every cell
func (s *Surface) Sync() {
	s.rendered = false
}

// Size returns the terminal size seen by the last flush
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Background returns the erase color
func (s *Surface) Background() terminal.Color {
	return s.background
}

// StagedAt returns the cell staged at (x, y) for the current frame
func (s *Surface) StagedAt(x, y int) (Cell, bool) {
	c, ok := s.staged[Point{x, y}]
	return c, ok
}

// CommittedAt returns the cell believed visible at (x, y)
func (s *Surface) CommittedAt(x, y int) (Cell, bool) {
	c, ok := s.committed[Point{x, y}]
	return c, ok
}

// StagedCount returns the number of staged coordinates
func (s *Surface) StagedCount() int {
	return len(s.staged)
}
