// Package aggregate groups survey records by categorical keys and reduces
// each group to counts or an order-statistics summary. Every function here is
// pure: inputs are never mutated and repeated calls give identical output.
package aggregate

// KeyFunc extracts a group key from a record. Returning false excludes the
// record, which is how a chart's inclusion filter is expressed.
type KeyFunc[R any] func(R) (string, bool)

// Options controls row ordering.
type Options struct {
	// Order is the canonical order of outer keys. When set, output rows
	// follow it exactly and every listed key gets a row, even if no record
	// produced it. Keys not listed follow in first-occurrence order.
	Order []string
}

// Group is one cell of an ordered partition.
type Group[R any] struct {
	Key     string
	Records []R
}

// Rolled is the reduction of one group.
type Rolled[S any] struct {
	Key   string
	Size  int
	Value S
}

// GroupBy partitions records by key. Rows are ordered by opt.Order, then by
// first occurrence. Empty input yields no groups.
func GroupBy[R any](records []R, key KeyFunc[R], opt Options) []Group[R] {
	groups, _ := partition(records, key, opt)
	return groups
}

// Rollup groups records by key and reduces every group with reduce. It is
// the general form behind Count and Summarize.
func Rollup[R, S any](records []R, key KeyFunc[R], opt Options, reduce func([]R) S) []Rolled[S] {
	out, _ := rollup(records, key, opt, reduce)
	return out
}

// rollup is Rollup plus the number of records key rejected.
func rollup[R, S any](records []R, key KeyFunc[R], opt Options, reduce func([]R) S) ([]Rolled[S], int) {
	groups, excluded := partition(records, key, opt)
	out := make([]Rolled[S], 0, len(groups))
	for _, g := range groups {
		out = append(out, Rolled[S]{Key: g.Key, Size: len(g.Records), Value: reduce(g.Records)})
	}
	return out, excluded
}

// partition does the grouping and reports how many records key rejected.
func partition[R any](records []R, key KeyFunc[R], opt Options) ([]Group[R], int) {
	if len(records) == 0 {
		return nil, 0
	}
	index := make(map[string]int, len(opt.Order))
	groups := make([]Group[R], 0, len(opt.Order))
	for _, k := range opt.Order {
		if _, dup := index[k]; dup {
			continue
		}
		index[k] = len(groups)
		groups = append(groups, Group[R]{Key: k})
	}
	excluded := 0
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			excluded++
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[R]{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups, excluded
}
