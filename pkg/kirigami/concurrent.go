package kirigami

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CollectLinesConcurrent scans columns on up to workers goroutines and
// returns the same lines, in the same order, as Lines. A workers value
// below one uses GOMAXPROCS.
func (c *Configuration) CollectLinesConcurrent(ctx context.Context, workers int) ([]Line, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	// One slot per cross-column pair followed by one slot per column keeps
	// the merge in Lines order.
	pairs := max(c.width-1, 0)
	slots := make([][]Line, pairs+c.width)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range slots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			collect := func(l Line) bool {
				slots[i] = append(slots[i], l)
				return true
			}
			if i < pairs {
				cutLines(i, c.column(i), c.column(i+1), collect)
				return nil
			}
			j := i - pairs
			_, err := foldLines(j, c.column(j), c.basePlaneDepth, collect)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, s := range slots {
		n += len(s)
	}
	lines := make([]Line, 0, n)
	for _, s := range slots {
		lines = append(lines, s...)
	}
	return lines, nil
}
