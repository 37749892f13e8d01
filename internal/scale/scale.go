// Package scale maps aggregate domains onto pixel ranges: band scales for
// categorical keys, niced linear scales for counts and measurements, and
// ordinal color scales.
package scale

import (
	"math"

	mscale "github.com/aclements/go-moremath/scale"
)

// Band maps an ordered set of keys to contiguous, equally sized intervals
// of [R0, R1].
type Band struct {
	Domain       []string
	R0, R1       float64
	PaddingInner float64
	PaddingOuter float64
	// Align positions the outer padding; 0.5 centers the bands.
	Align float64

	index map[string]int
}

// NewBand returns a centered band scale with equal inner and outer padding.
func NewBand(domain []string, r0, r1, padding float64) *Band {
	b := &Band{Domain: domain, R0: r0, R1: r1, PaddingInner: padding, PaddingOuter: padding, Align: 0.5}
	b.reindex()
	return b
}

// NewBandInner returns a band scale padded only between bands.
func NewBandInner(domain []string, r0, r1, paddingInner float64) *Band {
	b := &Band{Domain: domain, R0: r0, R1: r1, PaddingInner: paddingInner, Align: 0.5}
	b.reindex()
	return b
}

func (b *Band) reindex() {
	b.index = make(map[string]int, len(b.Domain))
	for i, k := range b.Domain {
		if _, dup := b.index[k]; !dup {
			b.index[k] = i
		}
	}
}

// Step is the distance between the starts of adjacent bands.
func (b *Band) Step() float64 {
	n := float64(len(b.Domain))
	return (b.R1 - b.R0) / math.Max(1, n-b.PaddingInner+2*b.PaddingOuter)
}

// Bandwidth is the width of each band.
func (b *Band) Bandwidth() float64 {
	return b.Step() * (1 - b.PaddingInner)
}

// Pos returns the start of key's band.
func (b *Band) Pos(key string) (float64, bool) {
	if b.index == nil {
		b.reindex()
	}
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	step := b.Step()
	n := float64(len(b.Domain))
	start := b.R0 + (b.R1-b.R0-step*(n-b.PaddingInner))*b.Align
	return start + step*float64(i), true
}

// Center returns the midpoint of key's band.
func (b *Band) Center(key string) (float64, bool) {
	p, ok := b.Pos(key)
	if !ok {
		return 0, false
	}
	return p + b.Bandwidth()/2, true
}

// Linear maps a continuous domain onto [R0, R1]. R0 may exceed R1, which is
// how SVG y axes grow upward.
type Linear struct {
	s      mscale.Linear
	R0, R1 float64
}

// NewLinear returns a linear scale over [min, max]. A degenerate domain is
// widened to [min, min+1] so that mapping stays finite.
func NewLinear(min, max, r0, r1 float64) *Linear {
	if math.IsNaN(min) || math.IsInf(min, 0) {
		min = 0
	}
	if !(max > min) {
		max = min + 1
	}
	return &Linear{s: mscale.Linear{Min: min, Max: max}, R0: r0, R1: r1}
}

// Nice extends the domain outward to round tick values.
func (l *Linear) Nice(maxTicks int) *Linear {
	l.s.Nice(mscale.TickOptions{Max: maxTicks})
	return l
}

// Map converts a domain value to a range value.
func (l *Linear) Map(x float64) float64 {
	return l.R0 + l.s.Map(x)*(l.R1-l.R0)
}

// Ticks returns at most maxTicks major tick values inside the domain.
func (l *Linear) Ticks(maxTicks int) []float64 {
	major, _ := l.s.Ticks(mscale.TickOptions{Max: maxTicks})
	return major
}

// Ordinal assigns colors to keys by domain position, cycling Range.
type Ordinal struct {
	Domain  []string
	Range   []string
	Unknown string
}

// Color returns the color of key, or Unknown when key is not in Domain.
func (o Ordinal) Color(key string) string {
	if len(o.Range) == 0 {
		return o.Unknown
	}
	for i, k := range o.Domain {
		if k == key {
			return o.Range[i%len(o.Range)]
		}
	}
	if o.Unknown != "" {
		return o.Unknown
	}
	return "#999999"
}
