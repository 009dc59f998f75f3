package rain

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rain/render"
	"github.com/lixenwraith/rain/terminal"
	"github.com/lixenwraith/rain/terminal/termtest"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDriver(t *testing.T, width, height int, showStats bool) (*Driver, *termtest.Recorder, *fakeClock) {
	t.Helper()
	rec := termtest.New(width, height)
	clk := &fakeClock{t: epoch}

	cfg := DefaultConfig()
	cfg.ShowStats = showStats
	cfg.Now = clk.Now
	cfg.Rand = rand.New(rand.NewPCG(1, 2))

	return NewDriver(render.NewSurface(rec), cfg), rec, clk
}

func TestDriver_FirstStepFullRedraw(t *testing.T) {
	d, rec, _ := newTestDriver(t, 12, 6, false)

	require.NoError(t, d.Step())
	assert.Equal(t, 1, rec.Flushes())
	assert.Len(t, rec.LastFlush(), 12*6)

	bg := DefaultConfig().Background
	w, ok := rec.At(11, 5)
	require.True(t, ok)
	assert.Equal(t, bg, w.Bg)

	x, y := rec.Cursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 6, y, "cursor parked below the grid")

	// Nothing spawned, nothing moved: the next frame writes nothing
	require.NoError(t, d.Step())
	assert.Empty(t, rec.LastFlush())
}

func TestDriver_SpawnCadence(t *testing.T) {
	d, _, clk := newTestDriver(t, 20, 10, false)

	require.NoError(t, d.Step())
	assert.Empty(t, d.Lines(), "no spawn before the first interval")

	clk.Advance(10 * time.Millisecond)
	require.NoError(t, d.Step())
	require.Len(t, d.Lines(), 1)

	clk.Advance(5 * time.Millisecond)
	require.NoError(t, d.Step())
	assert.Len(t, d.Lines(), 1)

	clk.Advance(5 * time.Millisecond)
	require.NoError(t, d.Step())
	assert.Len(t, d.Lines(), 2)

	for _, l := range d.Lines() {
		assert.GreaterOrEqual(t, l.Column, 0)
		assert.Less(t, l.Column, 20)
		assert.GreaterOrEqual(t, l.Speed, 0.2)
		assert.Less(t, l.Speed, 3.0)
		assert.Equal(t, 20, l.Length)
		assert.Len(t, l.Glyphs, 10)
	}
}

func TestDriver_LineDrawnThenAdvanced(t *testing.T) {
	d, rec, clk := newTestDriver(t, 20, 10, false)
	require.NoError(t, d.Step())

	l := d.Spawn(20, 10)
	l.Speed = 1.0
	l.Y = 3.0

	clk.Advance(5 * time.Millisecond)
	require.NoError(t, d.Step())

	// Staged at y=3 (head row 2), then moved by 5ms
	w, ok := rec.At(l.Column, 2)
	require.True(t, ok)
	assert.Equal(t, terminal.White, w.Fg)
	assert.InDelta(t, 3.05, l.Y, 1e-9)
}

func TestDriver_Cull(t *testing.T) {
	d, _, clk := newTestDriver(t, 20, 10, false)
	require.NoError(t, d.Step())

	stay := d.Spawn(20, 10)
	stay.Speed = 1.0
	stay.Y = 29.0

	gone := d.Spawn(20, 10)
	gone.Speed = 1.0
	gone.Y = 30.0

	clk.Advance(10 * time.Millisecond)
	require.NoError(t, d.Step())

	// Both moved 0.1 rows: 29.1 - 20 is still on screen, 30.1 - 20 is past row 10
	lines := d.Lines()
	assert.Contains(t, lines, stay)
	assert.NotContains(t, lines, gone)
	assert.Len(t, lines, 2, "the line spawned this step is kept")
}

func TestDriver_StatsRefresh(t *testing.T) {
	d, rec, clk := newTestDriver(t, 40, 10, true)
	require.NoError(t, d.Step())
	writes := len(rec.LastFlush())

	clk.Advance(149 * time.Millisecond)
	require.NoError(t, d.Step())
	assert.Zero(t, d.Stats().FPS, "refresh interval not reached")

	clk.Advance(1 * time.Millisecond)
	require.NoError(t, d.Step())

	s := d.Stats()
	assert.Equal(t, int64(1000), s.FPS)
	assert.Equal(t, time.Millisecond, s.FrameTime)
	assert.Equal(t, 40, s.Width)
	assert.Equal(t, 10, s.Height)
	assert.Equal(t, 1, s.Lines, "spawned on the second frame")
	assert.Zero(t, s.Writes, "second frame repeated the first")
	assert.Equal(t, 400, writes)
}

func TestDriver_StatsOverlay(t *testing.T) {
	d, rec, _ := newTestDriver(t, 40, 10, true)
	require.NoError(t, d.Step())

	rows := d.Stats().rows()
	top := 10 - len(rows)
	for i := range rows {
		w, ok := rec.At(0, top+i)
		require.True(t, ok)
		assert.Equal(t, terminal.Blue, w.Fg)
		assert.Equal(t, terminal.Red, w.Bg)
	}

	w, ok := rec.At(1, top)
	require.True(t, ok)
	assert.Equal(t, "f", w.Text)

	// Rows above the overlay keep the background
	w, ok = rec.At(0, top-1)
	require.True(t, ok)
	assert.Equal(t, DefaultConfig().Background, w.Bg)
}

func TestStats_ZeroFrameTime(t *testing.T) {
	var s Stats
	s.refresh(0, 1, 2, 3, 4)
	assert.Zero(t, s.FPS)

	s.refresh(4*time.Millisecond, 1, 2, 3, 4)
	assert.Equal(t, int64(250), s.FPS)

	s.refresh(0, 1, 2, 3, 4)
	assert.Equal(t, int64(250), s.FPS, "previous value kept")
}

func TestStats_RowsPadded(t *testing.T) {
	s := Stats{FPS: 12345, Lines: 3}
	rows := s.rows()
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.Equal(t, len(rows[0]), len(r))
	}
}

func TestDriver_DegenerateSizeSkipsFrame(t *testing.T) {
	d, rec, clk := newTestDriver(t, 20, 10, false)

	rec.SetSize(0, 10)
	clk.Advance(10 * time.Millisecond)
	require.NoError(t, d.Step())
	assert.Zero(t, rec.Flushes())
	assert.Empty(t, d.Lines(), "skipped frame does not spawn")

	rec.SetSize(20, 0)
	require.NoError(t, d.Step())
	assert.Zero(t, rec.Flushes())

	rec.SetSize(20, 10)
	require.NoError(t, d.Step())
	assert.Equal(t, 1, rec.Flushes())
	assert.Len(t, rec.LastFlush(), 200)
}

func TestDriver_IOErrorIsFatal(t *testing.T) {
	t.Run("flush", func(t *testing.T) {
		d, rec, _ := newTestDriver(t, 20, 10, false)
		rec.FlushErr = errors.New("broken pipe")

		err := d.Step()
		require.Error(t, err)
		assert.True(t, terminal.IsIO(err))
		assert.ErrorContains(t, err, "broken pipe")
	})

	t.Run("size", func(t *testing.T) {
		d, rec, _ := newTestDriver(t, 20, 10, false)
		rec.SizeErr = errors.New("bad file descriptor")

		err := d.Step()
		require.Error(t, err)
		assert.True(t, terminal.IsIO(err))
	})

	t.Run("run returns it", func(t *testing.T) {
		d, rec, _ := newTestDriver(t, 20, 10, false)
		rec.FlushErr = errors.New("broken pipe")

		err := d.Run(context.Background())
		assert.True(t, terminal.IsIO(err))
	})
}

func TestDriver_RunStopsOnCancel(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		d, rec, _ := newTestDriver(t, 20, 10, false)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, d.Run(ctx))
		assert.Zero(t, rec.Flushes())
	})

	t.Run("cancelled while running", func(t *testing.T) {
		d, rec, _ := newTestDriver(t, 20, 10, false)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		require.NoError(t, d.Run(ctx))
		assert.Positive(t, rec.Flushes())
	})
}
