// @lixen: #focus{sim[timing,spawn,cull]}

package rain

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/lixenwraith/rain/render"
	"github.com/lixenwraith/rain/terminal"
)

// Driver runs the simulation loop. It exclusively owns its lines and the surface;
// none of its methods are safe for concurrent use.
type Driver struct {
	cfg     Config
	log     *slog.Logger
	surface *render.Surface
	orch    *render.Orchestrator

	lines   []*Line
	palette []terminal.Color
	glyphs  *glyphCache

	// Time of the last event for each timer
	lastFrame time.Time
	lastSpawn time.Time
	lastStats time.Time

	frameTime time.Duration
	writes    int
	stats     Stats

	width, height int
}

// NewDriver creates a driver staging onto surface
func NewDriver(surface *render.Surface, cfg Config) *Driver {
	cfg = cfg.withDefaults()
	now := cfg.Now()

	d := &Driver{
		cfg:       cfg,
		log:       cfg.Logger,
		surface:   surface,
		orch:      render.NewOrchestrator(surface),
		palette:   cfg.Gradient.Palette(cfg.TrailLength),
		glyphs:    newGlyphCache(),
		lastFrame: now,
		lastSpawn: now,
		lastStats: now,
	}

	d.orch.Register(render.LayerFunc(d.renderLines), render.PriorityParticle)
	d.orch.Register(&statsLayer{d: d}, render.PriorityOverlay)

	return d
}

// Lines returns the active lines in spawn order
func (d *Driver) Lines() []*Line {
	return d.lines
}

// Stats returns the values the overlay currently shows
func (d *Driver) Stats() Stats {
	return d.stats
}

// Run steps until ctx is cancelled (nil) or a step fails
func (d *Driver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := d.Step(); err != nil {
			return err
		}
	}
}

// Step runs one frame: compose, advance, refresh stats, spawn and cull, flush.
// A zero-sized terminal skips the frame and returns nil; terminal I/O failures
// are returned as *terminal.TerminalIOError.
func (d *Driver) Step() error {
	now := d.cfg.Now()
	d.frameTime = now.Sub(d.lastFrame)
	d.lastFrame = now

	width, height, err := d.surface.Query()
	if err != nil {
		if terminal.IsDegenerate(err) {
			d.log.Debug("frame skipped", "width", width, "height", height)
			return nil
		}
		return err
	}
	if width != d.width || height != d.height {
		d.log.Debug("terminal size changed",
			"from_width", d.width, "from_height", d.height,
			"width", width, "height", height)
		d.width, d.height = width, height
	}

	// Lines are staged at their current position, then moved for the next frame
	d.orch.Compose(render.Context{
		Now:        now,
		Width:      width,
		Height:     height,
		Background: d.cfg.Background,
	})
	for _, l := range d.lines {
		l.Advance(now)
	}

	if now.Sub(d.lastStats) >= d.cfg.StatsInterval {
		d.stats.refresh(d.frameTime, len(d.lines), d.writes, width, height)
		d.lastStats = now
	}

	if now.Sub(d.lastSpawn) >= d.cfg.SpawnInterval {
		d.Spawn(width, height)
		d.cull(height)
		d.lastSpawn = now
	}

	writes, err := d.surface.CommitAndFlush()
	if err != nil {
		if terminal.IsDegenerate(err) {
			d.log.Debug("frame dropped at flush", "error", err)
			return nil
		}
		return err
	}
	d.writes = writes
	return nil
}

// Spawn adds a line at a random column with a random speed in [MinSpeed, MaxSpeed)
func (d *Driver) Spawn(width, height int) *Line {
	if width <= 0 || height <= 0 {
		return nil
	}
	column := d.cfg.Rand.IntN(width)
	speed := d.cfg.MinSpeed + d.cfg.Rand.Float64()*(d.cfg.MaxSpeed-d.cfg.MinSpeed)

	l := NewLine(column, speed, d.cfg.TrailLength, d.glyphs.get(column, height), d.cfg.Now())
	d.lines = append(d.lines, l)
	return l
}

// cull drops lines whose tail has passed the last row
func (d *Driver) cull(rows int) {
	before := len(d.lines)
	d.lines = slices.DeleteFunc(d.lines, func(l *Line) bool {
		return l.Gone(rows)
	})
	if removed := before - len(d.lines); removed > 0 {
		d.log.Debug("lines culled", "removed", removed, "active", len(d.lines))
	}
}

func (d *Driver) renderLines(ctx render.Context, s *render.Surface) {
	for _, l := range d.lines {
		l.Rasterize(s, ctx.Height, d.cfg.HeadColor, d.palette, ctx.Background)
	}
}
