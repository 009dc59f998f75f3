package render

import (
	"time"

	"github.com/lixenwraith/rain/terminal"
)

// Context provides frame state for layers, passed by value
type Context struct {
	// Frame start
	Now time.Time

	// Terminal size queried for this frame
	Width  int
	Height int

	// Fill staged under every layer
	Background terminal.Color
}
