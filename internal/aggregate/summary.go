package aggregate

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Summary is the five-number summary plus mean of a numeric sample.
// N == 0 means the group had no usable values and every statistic is zero.
type Summary struct {
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	Mean   float64
}

// SummaryRow is the summary of one group.
type SummaryRow struct {
	Key     string
	Summary Summary
}

// SummaryTable is the result of Summarize.
type SummaryTable struct {
	Rows []SummaryRow
	// Included values were summarized; Excluded records were rejected by
	// the key function or had no usable value.
	Included int
	Excluded int
}

// Summarize groups records by key and summarizes value within each group.
// NaN and infinite values are left out of the group they would fall into.
func Summarize[R any](records []R, key KeyFunc[R], value func(R) float64, opt Options) SummaryTable {
	rolled, excluded := rollup(records, key, opt, func(rs []R) Summary {
		xs := make([]float64, 0, len(rs))
		for _, r := range rs {
			if v := value(r); !math.IsNaN(v) && !math.IsInf(v, 0) {
				xs = append(xs, v)
			}
		}
		return Summarize5(xs)
	})
	t := SummaryTable{Rows: make([]SummaryRow, 0, len(rolled)), Excluded: excluded}
	for _, g := range rolled {
		t.Included += g.Value.N
		t.Excluded += g.Size - g.Value.N
		t.Rows = append(t.Rows, SummaryRow{Key: g.Key, Summary: g.Value})
	}
	return t
}

// Summarize5 computes the summary of values. The input slice is not
// modified.
func Summarize5(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	return Summary{
		N:      n,
		Min:    sorted[0],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Max:    sorted[n-1],
		Mean:   stats.Mean(sorted),
	}
}

// Quantile returns the p-quantile of sorted values by linear interpolation
// between closest ranks (Hyndman & Fan type 7): index p*(n-1).
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Keys returns the group keys in row order.
func (t SummaryTable) Keys() []string {
	keys := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Bounds returns the smallest Min and largest Max over non-empty rows.
// ok is false when no row has data.
func (t SummaryTable) Bounds() (lo, hi float64, ok bool) {
	var xs []float64
	for _, r := range t.Rows {
		if r.Summary.N == 0 {
			continue
		}
		xs = append(xs, r.Summary.Min, r.Summary.Max)
	}
	if len(xs) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Bounds(xs)
	return lo, hi, true
}
