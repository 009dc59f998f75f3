package rain

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/rain/terminal"
)

// HSV is a color stop: hue in degrees, saturation and value in [0,1]
type HSV struct {
	H, S, V float64
}

// Gradient interpolates linearly between two HSV stops
type Gradient struct {
	From HSV
	To   HSV
}

// At samples the gradient at t, clamped to [0,1]
func (g Gradient) At(t float64) terminal.Color {
	t = min(max(t, 0), 1)
	h := g.From.H + (g.To.H-g.From.H)*t
	s := g.From.S + (g.To.S-g.From.S)*t
	v := g.From.V + (g.To.V-g.From.V)*t

	r, gr, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return terminal.NewRGB(r, gr, b)
}

// Palette returns the tail colors for a trail of the given length.
// Tail index i samples (i+1)/length: the stop at 0 belongs to the head position,
// the last tail cell lands on the far stop.
func (g Gradient) Palette(length int) []terminal.Color {
	if length <= 0 {
		return nil
	}
	p := make([]terminal.Color, length)
	for i := range p {
		p[i] = g.At(float64(i+1) / float64(length))
	}
	return p
}
