package aggregate

// Total is the single category of a one-level count.
const Total = "Total"

// CountRow holds the counts of one outer key. Counts is aligned with the
// owning table's Categories and always has exactly that many entries.
type CountRow struct {
	Key    string
	Counts []int
	Total  int
}

// CountTable is the result of a one- or two-level count.
type CountTable struct {
	Categories []string
	Rows       []CountRow
	// Included records were counted; Excluded were rejected by a key
	// function or had an inner key outside Categories.
	Included int
	Excluded int
}

// Cell is one (outer, inner) count, handy for drawing one bar per cell.
type Cell struct {
	Outer string
	Inner string
	Value int
}

// Count groups records by outer and, when inner is non-nil, counts each of
// categories inside every group. Categories absent from a group count zero.
// Records whose inner key is not in categories are excluded. With a nil
// inner, the table has the single category Total.
func Count[R any](records []R, outer, inner KeyFunc[R], categories []string, opt Options) CountTable {
	cats := dedupe(categories)
	if inner == nil {
		cats = []string{Total}
	}
	catIndex := make(map[string]int, len(cats))
	for i, c := range cats {
		catIndex[c] = i
	}
	innerIndex := func(r R) (int, bool) {
		if inner == nil {
			return 0, true
		}
		c, ok := inner(r)
		if !ok {
			return 0, false
		}
		i, ok := catIndex[c]
		return i, ok
	}
	key := func(r R) (string, bool) {
		k, ok := outer(r)
		if !ok {
			return "", false
		}
		if _, ok := innerIndex(r); !ok {
			return "", false
		}
		return k, true
	}

	rolled, excluded := rollup(records, key, opt, func(rs []R) []int {
		counts := make([]int, len(cats))
		for _, r := range rs {
			i, _ := innerIndex(r)
			counts[i]++
		}
		return counts
	})
	t := CountTable{Categories: cats, Rows: make([]CountRow, 0, len(rolled)), Excluded: excluded}
	for _, g := range rolled {
		t.Included += g.Size
		t.Rows = append(t.Rows, CountRow{Key: g.Key, Counts: g.Value, Total: g.Size})
	}
	return t
}

// Keys returns the outer keys in row order.
func (t CountTable) Keys() []string {
	keys := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Max returns the largest single count, or 0 for an empty table.
func (t CountTable) Max() int {
	m := 0
	for _, r := range t.Rows {
		for _, c := range r.Counts {
			if c > m {
				m = c
			}
		}
	}
	return m
}

// Cells flattens the table in row-major order.
func (t CountTable) Cells() []Cell {
	out := make([]Cell, 0, len(t.Rows)*len(t.Categories))
	for _, r := range t.Rows {
		for i, c := range t.Categories {
			out = append(out, Cell{Outer: r.Key, Inner: c, Value: r.Counts[i]})
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
