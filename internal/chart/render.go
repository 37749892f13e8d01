package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

func px(v float64) int { return int(math.Round(v)) }

// Render writes d as a standalone SVG document.
func Render(w io.Writer, d *Data, t Theme) error {
	if d == nil {
		return fmt.Errorf("render: nil chart data")
	}
	l := d.Layout(t)
	c := svg.New(w)
	c.Start(t.Width, t.Height, fmt.Sprintf(`font-family="sans-serif" font-size="%d"`, t.FontSize))
	c.Title(d.Title)
	c.Rect(0, 0, t.Width, t.Height, "fill:"+t.Background)
	c.Text(t.Width/2, t.MarginTop/2+t.FontSize/2, d.Title, "text-anchor:middle;font-weight:bold;fill:"+t.Foreground)

	c.Translate(px(l.Left), px(l.Top))
	drawAxes(c, d, l, t)
	if d.Empty() {
		c.Text(px(l.Width/2), px(l.Height/2), "no data", "text-anchor:middle;fill:"+t.Axis)
	} else {
		switch d.Kind {
		case GroupedBar:
			drawBars(c, d, l, t)
		case BoxPlot:
			drawBoxes(c, d, l, t)
		}
	}
	c.Gend()

	drawLegend(c, d, l, t)
	c.End()
	return nil
}

func drawAxes(c *svg.SVG, d *Data, l Layout, t Theme) {
	stroke := "stroke:" + t.Axis
	text := "fill:" + t.Foreground

	// y axis with gridlines
	c.Line(0, 0, 0, px(l.Height), stroke)
	for _, v := range l.Y.Ticks(t.MaxTicks) {
		y := px(l.Y.Map(v))
		c.Line(-6, y, 0, y, stroke)
		c.Line(0, y, px(l.Width), y, stroke+";stroke-opacity:0.15")
		c.Text(-9, y+t.FontSize/3, tickLabel(v), "text-anchor:end;"+text)
	}

	// x axis
	c.Line(0, px(l.Height), px(l.Width), px(l.Height), stroke)
	for _, k := range d.Keys {
		x, _ := l.X.Center(k)
		c.Line(px(x), px(l.Height), px(x), px(l.Height)+6, stroke)
		c.Text(px(x), px(l.Height)+6+t.FontSize+2, k, "text-anchor:middle;"+text)
	}

	spec := d.spec
	c.Text(px(l.Width/2), px(l.Height)+t.MarginBottom-12, spec.XLabel, "text-anchor:middle;font-size:14px;"+text)
	c.Text(px(-l.Height/2), -t.MarginLeft+18, spec.YLabel,
		"text-anchor:middle;font-size:14px;"+text, `transform="rotate(-90)"`)
}

func tickLabel(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func dur(t Theme) float64 {
	s := t.Animation.Seconds()
	if s <= 0 {
		return 0
	}
	return s
}

func drawBars(c *svg.SVG, d *Data, l Layout, t Theme) {
	base := px(l.Height)
	secs := dur(t)
	n := 0
	for _, cell := range d.Counts.Cells() {
		x0, _ := l.X.Pos(cell.Outer)
		x1, ok := l.Inner.Pos(cell.Inner)
		if !ok {
			continue
		}
		x := px(x0 + x1)
		bw := px(l.Inner.Bandwidth())
		y := px(l.Y.Map(float64(cell.Value)))
		h := base - y
		id := fmt.Sprintf("%s-bar-%d", d.ID, n)
		n++

		c.Group()
		c.Title(fmt.Sprintf("%s: %s\n%s%s: %d", d.spec.XLabel, cell.Outer, d.spec.LegendPrefix, cell.Inner, cell.Value))
		c.Rect(x, y, bw, h, `id="`+id+`"`, "fill:"+l.Color.Color(cell.Inner))
		if secs > 0 {
			c.Animate("#"+id, "y", base, y, secs, 1, `fill="freeze"`)
			c.Animate("#"+id, "height", 0, h, secs, 1, `fill="freeze"`)
		}
		c.Text(x+bw/2, y-5, strconv.Itoa(cell.Value), "text-anchor:middle;fill:"+t.Foreground)
		c.Gend()
	}
}

func drawBoxes(c *svg.SVG, d *Data, l Layout, t Theme) {
	stroke := "stroke:" + t.Foreground
	secs := dur(t)
	for i, r := range d.Summary.Rows {
		m := r.Summary
		if m.N == 0 {
			continue
		}
		x0, _ := l.X.Pos(r.Key)
		bw := l.X.Bandwidth()
		cx := px(x0 + bw/2)
		left, right := px(x0), px(x0+bw)
		capL, capR := px(x0+bw/4), px(x0+3*bw/4)
		yq1, yq3 := px(l.Y.Map(m.Q1)), px(l.Y.Map(m.Q3))
		ymed := px(l.Y.Map(m.Median))
		ymin, ymax := px(l.Y.Map(m.Min)), px(l.Y.Map(m.Max))
		id := fmt.Sprintf("%s-box-%d", d.ID, i)

		c.Group(`id="`+id+`"`, "opacity:1")
		c.Title(fmt.Sprintf("%s: %s\nN: %d\nMin: %s\nQ1: %s\nMedian: %s\nQ3: %s\nMax: %s",
			d.spec.XLabel, r.Key, m.N, num(m.Min), num(m.Q1), num(m.Median), num(m.Q3), num(m.Max)))
		// whiskers and caps
		c.Line(cx, ymin, cx, yq1, stroke)
		c.Line(cx, yq3, cx, ymax, stroke)
		c.Line(capL, ymin, capR, ymin, stroke)
		c.Line(capL, ymax, capR, ymax, stroke)
		c.Rect(left, yq3, right-left, yq1-yq3, "fill:"+l.Color.Color(r.Key)+";"+stroke)
		c.Line(left, ymed, right, ymed, stroke+";stroke-width:2")
		if secs > 0 {
			c.Animate("#"+id, "opacity", 0, 1, secs, 1, `fill="freeze"`)
		}
		c.Gend()
	}
}

func drawLegend(c *svg.SVG, d *Data, l Layout, t Theme) {
	spec := d.spec
	entries := d.Categories
	if d.Kind == BoxPlot {
		entries = d.Keys
	}
	x := t.Width - t.MarginRight + 30
	y := t.MarginTop + 10
	text := "fill:" + t.Foreground

	c.Translate(x, y)
	if spec.LegendTitle != "" {
		c.Text(0, 0, spec.LegendTitle, "font-weight:bold;"+text)
	}
	for i, e := range entries {
		ey := 16 + i*22
		c.Rect(0, ey, 15, 15, "fill:"+l.Color.Color(e))
		c.Text(22, ey+12, spec.LegendPrefix+e, text)
	}
	ny := 16 + len(entries)*22 + 20
	for i, n := range spec.Notes {
		c.Text(0, ny+i*18, n.Label+": "+n.Text, text+";font-size:11px")
	}
	c.Gend()
}
