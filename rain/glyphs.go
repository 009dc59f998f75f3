package rain

import (
	"math/rand/v2"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GlyphColumn returns one printable alphanumeric glyph per row.
// Each glyph is seeded from (column, row) so a column always shows the same
// characters at the same rows, whichever line passes through it.
func GlyphColumn(column, rows int) []rune {
	if rows <= 0 {
		return nil
	}
	out := make([]rune, rows)
	for row := range out {
		r := rand.New(rand.NewPCG(uint64(column), uint64(row)))
		out[row] = rune(alphanumeric[r.IntN(len(alphanumeric))])
	}
	return out
}

// glyphCache shares read-only glyph columns between lines in the same column
type glyphCache struct {
	rows    int
	columns map[int][]rune
}

func newGlyphCache() *glyphCache {
	return &glyphCache{columns: make(map[int][]rune)}
}

// get returns the column's glyphs, regenerating everything when the row count changes
func (c *glyphCache) get(column, rows int) []rune {
	if rows != c.rows {
		clear(c.columns)
		c.rows = rows
	}
	g, ok := c.columns[column]
	if !ok {
		g = GlyphColumn(column, rows)
		c.columns[column] = g
	}
	return g
}
