package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBand_PaddingBothSides(t *testing.T) {
	// domain [a b c], range [0, 100], padding 0.2 on both sides
	b := NewBand([]string{"a", "b", "c"}, 0, 100, 0.2)
	step := 100 / (3 - 0.2 + 0.4)
	assert.InDelta(t, step, b.Step(), 1e-9)
	assert.InDelta(t, step*0.8, b.Bandwidth(), 1e-9)

	a, ok := b.Pos("a")
	require.True(t, ok)
	assert.InDelta(t, step*0.2, a, 1e-9)
	c, _ := b.Pos("c")
	assert.InDelta(t, 100-step*0.2-b.Bandwidth(), c, 1e-9)

	_, ok = b.Pos("zzz")
	assert.False(t, ok)
}

func TestBand_InnerOnly(t *testing.T) {
	b := NewBandInner([]string{"x", "y"}, 0, 90, 0.2)
	x, _ := b.Pos("x")
	y, _ := b.Pos("y")
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 90, y+b.Bandwidth(), 1e-9)
	mid, _ := b.Center("x")
	assert.InDelta(t, b.Bandwidth()/2, mid, 1e-9)
}

func TestBand_EmptyDomain(t *testing.T) {
	b := NewBand(nil, 0, 100, 0.1)
	assert.Greater(t, b.Step(), 0.0)
	_, ok := b.Pos("a")
	assert.False(t, ok)
}

func TestLinear_NiceAndMap(t *testing.T) {
	l := NewLinear(0, 87, 400, 0).Nice(10)
	ticks := l.Ticks(10)
	require.NotEmpty(t, ticks)
	lo, hi := ticks[0], ticks[len(ticks)-1]
	assert.Equal(t, 0.0, lo)
	assert.GreaterOrEqual(t, hi, 87.0)
	assert.LessOrEqual(t, hi, 100.0)

	// the niced domain ends on ticks
	assert.InDelta(t, 400, l.Map(lo), 1e-9)
	assert.InDelta(t, 0, l.Map(hi), 1e-9)

	assert.LessOrEqual(t, len(ticks), 10)
	for i := 1; i < len(ticks); i++ {
		assert.Greater(t, ticks[i], ticks[i-1])
	}
	for _, v := range ticks {
		assert.GreaterOrEqual(t, v, lo)
		assert.LessOrEqual(t, v, hi)
	}
}

func TestLinear_DegenerateDomain(t *testing.T) {
	l := NewLinear(0, 0, 100, 0)
	assert.InDelta(t, 100, l.Map(0), 1e-9)
	assert.InDelta(t, 0, l.Map(1), 1e-9, "widened to [0, 1]")
}

func TestOrdinal(t *testing.T) {
	o := Ordinal{Domain: []string{"Yes", "No"}, Range: []string{"#4daf4a", "#e41a1c"}}
	assert.Equal(t, "#4daf4a", o.Color("Yes"))
	assert.Equal(t, "#e41a1c", o.Color("No"))
	assert.Equal(t, "#999999", o.Color("Maybe"))

	o.Unknown = "#000"
	assert.Equal(t, "#000", o.Color("Maybe"))
}
