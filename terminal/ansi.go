// @focus: #terminal { ansi, sgr }
package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi     = []byte("\x1b[")
	csiSGR0 = []byte("\x1b[0m")

	csiFgRGB = []byte("38;2;") // followed by R;G;B
	csiBgRGB = []byte("48;2;")
	csiFg256 = []byte("38;5;") // followed by N
	csiBg256 = []byte("48;5;")
)

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [10]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeColorParams writes SGR parameters for one color (no CSI prefix, no 'm' suffix)
// Named colors use the 8-color codes, RGB uses 38;2 or 38;5 depending on mode
func writeColorParams(w *bufio.Writer, c Color, bg bool, mode ColorMode) {
	switch {
	case c.IsRGB() && mode == ColorModeTrueColor:
		if bg {
			w.Write(csiBgRGB)
		} else {
			w.Write(csiFgRGB)
		}
		writeInt(w, int(c.RGB.R))
		w.WriteByte(';')
		writeInt(w, int(c.RGB.G))
		w.WriteByte(';')
		writeInt(w, int(c.RGB.B))
	case c.IsRGB():
		if bg {
			w.Write(csiBg256)
		} else {
			w.Write(csiFg256)
		}
		writeInt(w, int(RGBTo256(c.RGB)))
	case c.Named == NamedDefault:
		if bg {
			writeInt(w, 49)
		} else {
			writeInt(w, 39)
		}
	default:
		base := 30
		if bg {
			base = 40
		}
		writeInt(w, base+c.Named.sgrIndex())
	}
}
