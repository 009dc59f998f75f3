package render

// Layer is implemented by anything that stages cells for a frame
type Layer interface {
	Render(ctx Context, s *Surface)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

// LayerFunc adapts a function to Layer
type LayerFunc func(ctx Context, s *Surface)

func (f LayerFunc) Render(ctx Context, s *Surface) {
	f(ctx, s)
}
