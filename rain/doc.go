// Package rain simulates falling glyph trails and stages them onto a render.Surface.
//
// A Driver owns the active lines and the surface. Each Step queries the terminal,
// composes the frame (background, lines, stats overlay), advances every line by its
// own elapsed wall time, spawns and culls on a fixed cadence, and flushes the
// surface, which writes only the cells that changed.
package rain
