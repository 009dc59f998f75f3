package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rain/terminal"
	"github.com/lixenwraith/rain/terminal/termtest"
)

type hiddenLayer struct {
	visible bool
	calls   int
}

func (l *hiddenLayer) IsVisible() bool { return l.visible }

func (l *hiddenLayer) Render(ctx Context, s *Surface) {
	l.calls++
	s.Stage(0, 0, Cell{Glyph: 'h', Bg: ctx.Background})
}

func TestOrchestrator_PriorityOrder(t *testing.T) {
	rec := termtest.New(4, 2)
	s := NewSurface(rec)
	o := NewOrchestrator(s)

	var order []string
	stage := func(name string, glyph rune) Layer {
		return LayerFunc(func(ctx Context, s *Surface) {
			order = append(order, name)
			s.Stage(1, 1, Cell{Glyph: glyph, Bg: ctx.Background})
		})
	}

	o.Register(stage("overlay", 'o'), PriorityOverlay)
	o.Register(stage("particle-a", 'a'), PriorityParticle)
	o.Register(stage("particle-b", 'b'), PriorityParticle)
	o.Register(stage("background", 'g'), PriorityBackground)

	_, _, err := s.Query()
	require.NoError(t, err)
	o.Compose(Context{Width: 4, Height: 2, Background: terminal.Black})

	assert.Equal(t, []string{"background", "particle-a", "particle-b", "overlay"}, order)

	c, ok := s.StagedAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, 'o', c.Glyph, "later layers overwrite earlier ones")

	c, ok = s.StagedAt(3, 1)
	require.True(t, ok)
	assert.Equal(t, Blank(terminal.Black), c)
	assert.Equal(t, terminal.Black, s.Background())
	assert.Same(t, s, o.Surface())
}

func TestOrchestrator_Visibility(t *testing.T) {
	rec := termtest.New(4, 2)
	s := NewSurface(rec)
	o := NewOrchestrator(s)

	l := &hiddenLayer{}
	o.Register(l, PriorityUI)

	o.Compose(Context{Background: terminal.Black})
	assert.Zero(t, l.calls)

	l.visible = true
	o.Compose(Context{Background: terminal.Black})
	assert.Equal(t, 1, l.calls)
	c, ok := s.StagedAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, 'h', c.Glyph)
}
