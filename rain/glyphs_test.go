package rain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphColumn_Deterministic(t *testing.T) {
	a := GlyphColumn(7, 40)
	b := GlyphColumn(7, 40)
	require.Len(t, a, 40)
	assert.Equal(t, a, b)

	// Shorter terminal, same rows, same glyphs
	assert.Equal(t, a[:10], GlyphColumn(7, 10))

	assert.NotEqual(t, a, GlyphColumn(8, 40))
}

func TestGlyphColumn_Alphanumeric(t *testing.T) {
	for col := 0; col < 16; col++ {
		for _, r := range GlyphColumn(col, 64) {
			assert.True(t, strings.ContainsRune(alphanumeric, r), "glyph %q", r)
		}
	}
	assert.Nil(t, GlyphColumn(0, 0))
}

func TestGlyphCache_Shared(t *testing.T) {
	c := newGlyphCache()

	a := c.get(3, 10)
	b := c.get(3, 10)
	require.Len(t, a, 10)
	assert.Same(t, &a[0], &b[0], "lines in one column share a glyph column")

	// Row count change rebuilds
	grown := c.get(3, 12)
	require.Len(t, grown, 12)
	assert.Equal(t, a, grown[:10])
	assert.Len(t, c.columns, 1)
}
