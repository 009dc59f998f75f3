// @lixen: #focus{render[diff,commit,flush]}
package render

import (
	"slices"

	"github.com/lixenwraith/rain/terminal"
)

// CommitAndFlush reconciles the staged frame with the committed one, writes
// the difference to the terminal and returns the number of cells written.
//
// The first flush, and any flush after a size change, repaints the full grid.
// Otherwise only cells that changed are written, and cells committed last frame
// but absent now are erased with the background. The staged frame then becomes
// the committed frame and staging starts empty.
//
// A zero-sized terminal yields *terminal.DegenerateSizeError with nothing written
// and the staged frame dropped; I/O failures yield *terminal.TerminalIOError.
func (s *Surface) CommitAndFlush() (int, error) {
	width, height, err := s.term.Size()
	if err != nil {
		return 0, wrapIO("size", err)
	}
	if err := terminal.CheckSize(width, height); err != nil {
		s.Discard()
		return 0, err
	}

	var writes int
	if !s.rendered || width != s.width || height != s.height {
		writes = s.redrawFull(width, height)
	} else {
		writes = s.redrawDiff(width, height)
	}

	// Park the cursor below the grid so it does not sit on a drawn cell
	s.term.ResetColors()
	s.term.MoveCursor(0, height)
	if err := s.term.Flush(); err != nil {
		return writes, wrapIO("flush", err)
	}

	s.committed, s.staged = s.staged, s.committed
	clear(s.staged)
	s.width, s.height = width, height
	s.rendered = true

	return writes, nil
}

// redrawFull writes every cell of the grid, staged content or blank
func (s *Surface) redrawFull(width, height int) int {
	blank := Blank(s.background)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, ok := s.staged[Point{x, y}]
			if !ok {
				c = blank
			}
			s.emit(x, y, c)
		}
	}
	return width * height
}

// redrawDiff writes changed staged cells in row order, then erases vacated cells
func (s *Surface) redrawDiff(width, height int) int {
	writes := 0

	s.order = s.order[:0]
	for p := range s.staged {
		if inBounds(p, width, height) {
			s.order = append(s.order, p)
		}
	}
	slices.SortFunc(s.order, less)

	for _, p := range s.order {
		c := s.staged[p]
		if old, ok := s.committed[p]; ok && old == c {
			continue
		}
		s.emit(p.X, p.Y, c)
		writes++
	}

	s.order = s.order[:0]
	for p := range s.committed {
		if _, ok := s.staged[p]; ok {
			continue
		}
		if inBounds(p, width, height) {
			s.order = append(s.order, p)
		}
	}
	slices.SortFunc(s.order, less)

	blank := Blank(s.background)
	for _, p := range s.order {
		s.emit(p.X, p.Y, blank)
		writes++
	}

	return writes
}

func (s *Surface) emit(x, y int, c Cell) {
	s.term.MoveCursor(x, y)
	s.term.SetColors(c.Fg, c.Bg)
	s.term.WriteText(c.text())
}

func inBounds(p Point, width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// wrapIO classifies a collaborator failure as a TerminalIOError
func wrapIO(op string, err error) error {
	if terminal.IsIO(err) {
		return err
	}
	return &terminal.TerminalIOError{Op: op, Err: err}
}
