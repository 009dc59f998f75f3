package render

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator composes a frame from prioritized layers onto a Surface
type Orchestrator struct {
	surface  *Surface
	layers   []layerEntry
	regCount int
}

// NewOrchestrator creates an orchestrator staging onto surface
func NewOrchestrator(surface *Surface) *Orchestrator {
	return &Orchestrator{
		surface: surface,
		layers:  make([]layerEntry, 0, 4),
	}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority Priority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Compose clears the staged frame to the background and stages every visible layer.
// Nothing is written until the surface is flushed.
func (o *Orchestrator) Compose(ctx Context) {
	o.surface.ClearTo(ctx.Background)

	for _, entry := range o.layers {
		// Skip if layer implements VisibilityToggle and is not visible
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Render(ctx, o.surface)
	}
}

// Surface returns the surface layers stage onto
func (o *Orchestrator) Surface() *Surface {
	return o.surface
}
