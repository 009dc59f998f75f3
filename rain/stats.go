package rain

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/lixenwraith/rain/render"
)

// Stats is the snapshot shown by the overlay, refreshed every StatsInterval
type Stats struct {
	FPS       int64
	FrameTime time.Duration
	Lines     int
	Writes    int
	Width     int
	Height    int
}

// refresh samples the frame rate from the last frame time.
// A zero frame time keeps the previous FPS.
func (s *Stats) refresh(frameTime time.Duration, lines, writes, width, height int) {
	if frameTime > 0 {
		s.FPS = int64(time.Second / frameTime)
	}
	s.FrameTime = frameTime
	s.Lines = lines
	s.Writes = writes
	s.Width = width
	s.Height = height
}

// rows formats the overlay, every row padded to the widest one
func (s Stats) rows() []string {
	rows := []string{
		fmt.Sprintf(" fps: %d ", s.FPS),
		fmt.Sprintf(" frame: %s ", s.FrameTime.Round(time.Microsecond)),
		fmt.Sprintf(" lines: %d ", s.Lines),
		fmt.Sprintf(" writes: %d ", s.Writes),
		fmt.Sprintf(" size: %dx%d ", s.Width, s.Height),
	}
	width := 0
	for _, r := range rows {
		width = max(width, ansi.StringWidth(r))
	}
	for i, r := range rows {
		rows[i] = r + strings.Repeat(" ", width-ansi.StringWidth(r))
	}
	return rows
}

// statsLayer stages the overlay in the bottom-left corner, above the lines
type statsLayer struct {
	d *Driver
}

func (l *statsLayer) IsVisible() bool {
	return l.d.cfg.ShowStats
}

func (l *statsLayer) Render(ctx render.Context, s *render.Surface) {
	rows := l.d.stats.rows()
	top := max(ctx.Height-len(rows), 0)
	for i, r := range rows {
		y := top + i
		if y >= ctx.Height {
			break
		}
		s.StageText(0, y, r, l.d.cfg.StatsFg, l.d.cfg.StatsBg)
	}
}
