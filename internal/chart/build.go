package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/heartviz/internal/aggregate"
	"github.com/KaramelBytes/heartviz/internal/scale"
	"github.com/KaramelBytes/heartviz/internal/survey"
)

// Data is a built chart: the aggregate table plus the scale domains.
type Data struct {
	ID         string                  `json:"id"`
	Title      string                  `json:"title"`
	Kind       Kind                    `json:"kind"`
	Keys       []string                `json:"keys"`
	Categories []string                `json:"categories,omitempty"`
	Counts     *aggregate.CountTable   `json:"counts,omitempty"`
	Summary    *aggregate.SummaryTable `json:"summary,omitempty"`
	YMax       float64                 `json:"y_max"`
	Included   int                     `json:"included"`
	Excluded   int                     `json:"excluded"`

	spec Spec
}

// Spec returns the spec the data was built from.
func (d *Data) Spec() Spec { return d.spec }

// Empty reports whether no record made it into the chart.
func (d *Data) Empty() bool { return len(d.Keys) == 0 }

// Build aggregates records for spec. The y domain runs from 0 to the largest
// aggregate value times the spec's headroom; Layout nices it.
func Build(spec Spec, records []survey.Record) (*Data, error) {
	if spec.Outer == nil {
		return nil, fmt.Errorf("chart %s: no outer key", spec.ID)
	}
	d := &Data{ID: spec.ID, Title: spec.Title, Kind: spec.Kind, spec: spec}
	opt := aggregate.Options{Order: spec.Order}

	switch spec.Kind {
	case GroupedBar:
		t := aggregate.Count(records, spec.Outer, spec.Inner, spec.Categories, opt)
		d.Counts = &t
		d.Keys = t.Keys()
		d.Categories = t.Categories
		d.YMax = float64(t.Max())
		d.Included, d.Excluded = t.Included, t.Excluded
	case BoxPlot:
		if spec.Value == nil {
			return nil, fmt.Errorf("chart %s: box plot without a value", spec.ID)
		}
		t := aggregate.Summarize(records, spec.Outer, spec.Value, opt)
		d.Summary = &t
		d.Keys = t.Keys()
		if _, hi, ok := t.Bounds(); ok {
			d.YMax = hi
		}
		d.Included, d.Excluded = t.Included, t.Excluded
	default:
		return nil, fmt.Errorf("chart %s: unsupported kind %s", spec.ID, spec.Kind)
	}

	if spec.Headroom > 0 {
		d.YMax *= spec.Headroom
	}
	return d, nil
}

// Layout is the pixel geometry of a chart for one theme. X, Inner and Y
// are relative to the plot origin at (Left, Top).
type Layout struct {
	Left, Top     float64
	Width, Height float64
	X             *scale.Band
	Inner         *scale.Band
	Y             *scale.Linear
	Color         scale.Ordinal
}

// Layout builds the scales of d for theme t.
func (d *Data) Layout(t Theme) Layout {
	w, h := t.plotWidth(), t.plotHeight()
	l := Layout{
		Left:   float64(t.MarginLeft),
		Top:    float64(t.MarginTop),
		Width:  w,
		Height: h,
		X:      scale.NewBand(d.Keys, 0, w, d.spec.Padding),
		Y:      scale.NewLinear(0, d.YMax, h, 0).Nice(t.MaxTicks),
	}
	switch d.Kind {
	case GroupedBar:
		l.Inner = scale.NewBandInner(d.Categories, 0, l.X.Bandwidth(), d.spec.InnerPadding)
		l.Color = scale.Ordinal{Domain: d.Categories, Range: d.spec.Colors}
	case BoxPlot:
		l.Color = scale.Ordinal{Domain: d.Keys, Range: d.spec.Colors}
	}
	return l
}

// Markdown renders the aggregate table with its inclusion counts.
func (d *Data) Markdown() string {
	var b strings.Builder
	s := d.spec
	xl := s.XLabel
	if xl == "" {
		xl = "Group"
	}
	b.WriteString("### " + d.Title + "\n\n")
	switch {
	case d.Counts != nil:
		b.WriteString("| " + escapeCell(xl) + " |")
		for _, c := range d.Counts.Categories {
			b.WriteString(" " + escapeCell(s.LegendPrefix+c) + " |")
		}
		b.WriteString(" Total |\n|---|")
		for range d.Counts.Categories {
			b.WriteString("---:|")
		}
		b.WriteString("---:|\n")
		for _, r := range d.Counts.Rows {
			b.WriteString("| " + escapeCell(r.Key) + " |")
			for _, c := range r.Counts {
				b.WriteString(" " + strconv.Itoa(c) + " |")
			}
			b.WriteString(" " + strconv.Itoa(r.Total) + " |\n")
		}
	case d.Summary != nil:
		b.WriteString("| " + escapeCell(xl) + " | N | Min | Q1 | Median | Q3 | Max | Mean |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|\n")
		for _, r := range d.Summary.Rows {
			m := r.Summary
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s | %s |\n",
				escapeCell(r.Key), m.N, num(m.Min), num(m.Q1), num(m.Median), num(m.Q3), num(m.Max), num(m.Mean))
		}
	}
	if d.Empty() {
		b.WriteString("\n_No data._\n")
	}
	fmt.Fprintf(&b, "\nIncluded: %d, excluded: %d\n", d.Included, d.Excluded)
	for _, n := range s.Notes {
		fmt.Fprintf(&b, "\n- %s: %s", n.Label, n.Text)
	}
	if len(s.Notes) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
