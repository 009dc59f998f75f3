// @lixen: #focus{sys[term,io,output]}
// @lixen: #interact{trigger[output,ansi]}
package terminal

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// outputBuffer queues ANSI output and coalesces redundant cursor and style sequences
type outputBuffer struct {
	colorMode ColorMode
	writer    *bufio.Writer

	// Requested cursor, emitted lazily before the next glyph
	pendingX int
	pendingY int

	// Cursor position the terminal is known to be at
	cursorX     int
	cursorY     int
	cursorValid bool

	// Requested style, emitted lazily before the next glyph
	pendingFg Color
	pendingBg Color

	// Style state for coalescing
	lastFg    Color
	lastBg    Color
	lastValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 131072), // 128KB buffer
		colorMode: colorMode,
	}
}

// moveCursor records the target position; nothing is written until text follows
func (o *outputBuffer) moveCursor(x, y int) {
	o.pendingX = x
	o.pendingY = y
}

func (o *outputBuffer) setStyle(fg, bg Color) {
	o.pendingFg = fg
	o.pendingBg = bg
}

// writeText emits s at the pending cursor with the pending style
func (o *outputBuffer) writeText(s string) {
	if s == "" {
		return
	}
	w := o.writer

	if !o.cursorValid || o.cursorX != o.pendingX || o.cursorY != o.pendingY {
		writeCursorPos(w, o.pendingX, o.pendingY)
		o.cursorX = o.pendingX
		o.cursorY = o.pendingY
		o.cursorValid = true
	}

	o.writeStyleCoalesced(w)

	for _, r := range s {
		if r < utf8.RuneSelf {
			w.WriteByte(byte(r))
		} else {
			w.WriteRune(r)
		}
		o.cursorX += runewidth.RuneWidth(r)
	}
	o.pendingX = o.cursorX
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyleCoalesced(w *bufio.Writer) {
	fgChanged := !o.lastValid || o.pendingFg != o.lastFg
	bgChanged := !o.lastValid || o.pendingBg != o.lastBg

	if !fgChanged && !bgChanged {
		return
	}

	w.Write(csi)
	if fgChanged {
		writeColorParams(w, o.pendingFg, false, o.colorMode)
	}
	if bgChanged {
		if fgChanged {
			w.WriteByte(';')
		}
		writeColorParams(w, o.pendingBg, true, o.colorMode)
	}
	w.WriteByte('m')

	o.lastFg = o.pendingFg
	o.lastBg = o.pendingBg
	o.lastValid = true
}

// reset returns to default colors
func (o *outputBuffer) reset() {
	o.writer.Write(csiSGR0)
	o.pendingFg = Default
	o.pendingBg = Default
	o.lastFg = Default
	o.lastBg = Default
	o.lastValid = true
}

// clear erases the screen with the pending background
func (o *outputBuffer) clear() {
	w := o.writer
	w.Write(csi)
	writeColorParams(w, o.pendingBg, true, o.colorMode)
	w.WriteByte('m')
	w.WriteString(ansi.EraseEntireScreen)
	o.invalidate()
}

// flush resets SGR, moves the cursor to its pending position, then drains the writer
func (o *outputBuffer) flush() error {
	w := o.writer
	if !o.lastValid || o.lastFg != Default || o.lastBg != Default {
		w.Write(csiSGR0)
		o.lastFg = Default
		o.lastBg = Default
		o.lastValid = true
	}
	if !o.cursorValid || o.cursorX != o.pendingX || o.cursorY != o.pendingY {
		writeCursorPos(w, o.pendingX, o.pendingY)
		o.cursorX = o.pendingX
		o.cursorY = o.pendingY
		o.cursorValid = true
	}
	return w.Flush()
}

// invalidate forgets both cursor and style state
func (o *outputBuffer) invalidate() {
	o.lastValid = false
	o.invalidateCursor()
}

// invalidateCursor marks cursor position as unknown
func (o *outputBuffer) invalidateCursor() {
	o.cursorValid = false
}
