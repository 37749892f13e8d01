package chart

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/heartviz/internal/survey"
)

// Result is one rendered chart.
type Result struct {
	Data *Data
	SVG  []byte
}

// Sink receives each result in spec order once every chart has rendered.
type Sink func(Result) error

// RenderAll builds and renders specs concurrently. Records are only read.
// Results are returned, and passed to sink when it is non-nil, in the order
// of specs.
func RenderAll(ctx context.Context, specs []Spec, records []survey.Record, t Theme, sink Sink) ([]Result, error) {
	results := make([]Result, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, spec := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := Build(spec, records)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := Render(&buf, d, t); err != nil {
				return fmt.Errorf("render %s: %w", spec.ID, err)
			}
			results[i] = Result{Data: d, SVG: buf.Bytes()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if sink != nil {
		for _, r := range results {
			if err := sink(r); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}
