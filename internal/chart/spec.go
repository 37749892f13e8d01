// Package chart turns survey records into grouped-bar and box-plot SVG
// charts. A Spec names what to aggregate; Build runs the aggregation and
// fixes the scale domains; Render draws the result with svgo.
package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/KaramelBytes/heartviz/internal/aggregate"
	"github.com/KaramelBytes/heartviz/internal/survey"
)

// ErrUnknownChart is returned when a chart id is not in the catalog.
var ErrUnknownChart = errors.New("unknown chart")

// Kind selects the aggregation and the drawing.
type Kind int

const (
	GroupedBar Kind = iota
	BoxPlot
)

func (k Kind) String() string {
	switch k {
	case GroupedBar:
		return "grouped-bar"
	case BoxPlot:
		return "box-plot"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Note is a legend footnote such as a clinical threshold.
type Note struct {
	Label string
	Text  string
}

// Spec describes one chart.
type Spec struct {
	ID     string
	Title  string
	XLabel string
	YLabel string
	Kind   Kind

	// Outer keys the x axis. Records it rejects are left out of the chart.
	Outer aggregate.KeyFunc[survey.Record]
	// Inner keys the bars within a group (GroupedBar only).
	Inner aggregate.KeyFunc[survey.Record]
	// Categories are the inner keys drawn, in order.
	Categories []string
	// Order fixes the leading outer keys.
	Order []string
	// Value is the measurement summarized per group (BoxPlot only).
	Value func(survey.Record) float64

	// Colors align with Categories for bars and with the outer keys for
	// boxes.
	Colors []string
	// Headroom multiplies the y maximum before it is niced; 0 means 1.
	Headroom float64
	// Padding is the outer band padding; InnerPadding separates bars in a
	// group.
	Padding      float64
	InnerPadding float64

	LegendTitle  string
	LegendPrefix string
	Notes        []Note
}

// Theme holds the drawing parameters shared by every chart.
type Theme struct {
	Width, Height int
	MarginTop     int
	MarginRight   int
	MarginBottom  int
	MarginLeft    int

	Background string
	Foreground string
	Axis       string
	FontSize   int
	MaxTicks   int
	Animation  time.Duration
}

// DefaultTheme is the dark dashboard theme.
func DefaultTheme() Theme {
	return Theme{
		Width:        900,
		Height:       500,
		MarginTop:    40,
		MarginRight:  220,
		MarginBottom: 60,
		MarginLeft:   70,
		Background:   "#1e1e2e",
		Foreground:   "#ffffff",
		Axis:         "#cccccc",
		FontSize:     12,
		MaxTicks:     10,
		Animation:    time.Second,
	}
}

func (t Theme) plotWidth() float64 {
	return float64(t.Width - t.MarginLeft - t.MarginRight)
}

func (t Theme) plotHeight() float64 {
	return float64(t.Height - t.MarginTop - t.MarginBottom)
}
