// Package analysis profiles a loaded survey: per-column statistics,
// per-group summaries and correlations between the numeric measurements.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/heartviz/internal/aggregate"
	"github.com/KaramelBytes/heartviz/internal/survey"
)

// Options controls profiling.
type Options struct {
	// GroupBy is the categorical column used for per-group summaries.
	// Empty disables grouping.
	GroupBy string
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// TopValues caps the categories listed per categorical column.
	TopValues int
	// OutlierThreshold flags values with robust |z| above it; 0 disables.
	OutlierThreshold float64
}

// DefaultOptions groups by heart-disease status and computes correlations.
func DefaultOptions() Options {
	return Options{
		GroupBy:          survey.ColStatus,
		Correlations:     true,
		TopValues:        5,
		OutlierThreshold: 3.5,
	}
}

// Report is a markdown-friendly profile of a survey.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Warnings []string
	GroupBy  string
	Groups   []GroupResult
	Corr     *CorrMatrix
}

// ColumnSummary captures the kind and statistics of one column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Std    float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// GroupResult captures numeric metrics per group key.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary // by column name
}

type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Profile computes the report for ds.
func Profile(ds *survey.Dataset, opt Options) *Report {
	rep := &Report{Name: ds.Name, Rows: ds.Rows, Warnings: append([]string(nil), ds.Warnings...)}

	for _, col := range survey.RequiredColumns {
		if isNumeric(col) {
			rep.Cols = append(rep.Cols, numericColumn(ds.Records, col, opt))
		} else {
			rep.Cols = append(rep.Cols, categoricalColumn(ds.Records, col, opt))
		}
	}

	if opt.GroupBy != "" {
		rep.GroupBy = opt.GroupBy
		key := func(r survey.Record) (string, bool) {
			v := r.Categorical(opt.GroupBy)
			return v, v != ""
		}
		for _, g := range aggregate.GroupBy(ds.Records, key, aggregate.Options{}) {
			gr := GroupResult{Key: g.Key, Size: len(g.Records), Metrics: map[string]NumSummary{}}
			for _, col := range survey.NumericColumns {
				vals := values(g.Records, col)
				if len(vals) == 0 {
					continue
				}
				lo, _ := stats.Min(vals)
				hi, _ := stats.Max(vals)
				mean, _ := stats.Mean(vals)
				gr.Metrics[col] = NumSummary{Count: len(vals), Min: lo, Max: hi, Mean: mean}
			}
			rep.Groups = append(rep.Groups, gr)
		}
	}

	if opt.Correlations {
		rep.Corr = correlations(ds.Records)
	}
	return rep
}

func isNumeric(col string) bool {
	for _, c := range survey.NumericColumns {
		if c == col {
			return true
		}
	}
	return false
}

func values(records []survey.Record, col string) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v := r.Numeric(col); survey.Valid(v) {
			out = append(out, v)
		}
	}
	return out
}

func numericColumn(records []survey.Record, col string, opt Options) ColumnSummary {
	vals := values(records, col)
	c := ColumnSummary{Name: col, Kind: "numeric", NonNull: len(vals), Missing: len(records) - len(vals)}
	if len(vals) == 0 {
		return c
	}
	seen := make(map[float64]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	c.Unique = len(seen)
	c.Min, _ = stats.Min(vals)
	c.Max, _ = stats.Max(vals)
	c.Mean, _ = stats.Mean(vals)
	c.Median, _ = stats.Median(vals)
	if len(vals) > 1 {
		c.Std, _ = stats.StandardDeviationSample(vals)
	}
	if opt.OutlierThreshold > 0 {
		c.OutlierThreshold = opt.OutlierThreshold
		c.OutliersCount, c.OutliersMaxAbsZ = robustOutliers(vals, c.Median, opt.OutlierThreshold)
	}
	return c
}

// robustOutliers counts values whose robust z-score, 0.6745*(x-median)/MAD,
// exceeds threshold in absolute value.
func robustOutliers(vals []float64, median, threshold float64) (int, float64) {
	mad, err := stats.MedianAbsoluteDeviation(vals)
	if err != nil || mad == 0 {
		return 0, 0
	}
	count, maxAbs := 0, 0.0
	for _, v := range vals {
		z := math.Abs(0.6745 * (v - median) / mad)
		if z > threshold {
			count++
		}
		if z > maxAbs {
			maxAbs = z
		}
	}
	return count, maxAbs
}

func categoricalColumn(records []survey.Record, col string, opt Options) ColumnSummary {
	c := ColumnSummary{Name: col, Kind: "categorical"}
	counts := map[string]int{}
	for _, r := range records {
		v := r.Categorical(col)
		if v == "" {
			c.Missing++
			continue
		}
		c.NonNull++
		counts[v]++
	}
	c.Unique = len(counts)
	for v, n := range counts {
		c.TopValues = append(c.TopValues, CategoryCount{Value: v, Count: n})
	}
	sort.Slice(c.TopValues, func(i, j int) bool {
		if c.TopValues[i].Count == c.TopValues[j].Count {
			return c.TopValues[i].Value < c.TopValues[j].Value
		}
		return c.TopValues[i].Count > c.TopValues[j].Count
	})
	if opt.TopValues > 0 && len(c.TopValues) > opt.TopValues {
		c.TopValues = c.TopValues[:opt.TopValues]
	}
	return c
}

// correlations computes pairwise Pearson r over rows where both values are
// present.
func correlations(records []survey.Record) *CorrMatrix {
	cols := survey.NumericColumns
	n := len(cols)
	m := &CorrMatrix{Columns: append([]string(nil), cols...), Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var xs, ys []float64
			for _, r := range records {
				x, y := r.Numeric(cols[i]), r.Numeric(cols[j])
				if survey.Valid(x) && survey.Valid(y) {
					xs = append(xs, x)
					ys = append(ys, y)
				}
			}
			r := math.NaN()
			if len(xs) > 1 {
				if v, err := stats.Correlation(xs, ys); err == nil {
					r = v
				}
			}
			m.Values[i][j], m.Values[j][i] = r, r
		}
	}
	return m
}

// Markdown renders the report in bracketed sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", c.Name, c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			if c.NonNull > 0 {
				b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g, median %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Median, c.Std))
			}
			if c.OutlierThreshold > 0 && c.OutliersCount > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f (max |z|≈%.2f)", c.OutliersCount, c.OutlierThreshold, c.OutliersMaxAbsZ))
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(": top ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}

	if len(r.Groups) > 0 {
		b.WriteString(fmt.Sprintf("\n[GROUP-BY SUMMARY] %s\n", r.GroupBy))
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s (n=%d)\n", safeVal(g.Key), g.Size))
			for _, col := range survey.NumericColumns {
				m, ok := g.Metrics[col]
				if !ok {
					continue
				}
				b.WriteString(fmt.Sprintf("  • %s: mean %.4g (min %.4g, max %.4g)\n", col, m.Mean, m.Min, m.Max))
			}
		}
	}

	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pr struct {
			A, B string
			R    float64
		}
		var pairs []pr
		n := len(r.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if v := r.Corr.Values[i][j]; !math.IsNaN(v) {
					pairs = append(pairs, pr{A: r.Corr.Columns[i], B: r.Corr.Columns[j], R: v})
				}
			}
		}
		sort.Slice(pairs, func(i, j int) bool {
			ai := math.Abs(pairs[i].R)
			aj := math.Abs(pairs[j].R)
			if ai == aj {
				return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
			}
			return ai > aj
		})
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
