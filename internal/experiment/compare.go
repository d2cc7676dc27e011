package experiment

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Compare runs the scenario once per frame rate, in parallel. Each run owns
// its own world, so results only differ where the frame rate changes the
// number of fixed ticks.
func (e *Experiment) Compare(ctx context.Context, rates []int) ([]*Result, error) {
	results := make([]*Result, len(rates))

	g, ctx := errgroup.WithContext(ctx)
	for i, fps := range rates {
		i, fps := i, fps
		g.Go(func() error {
			res, err := e.RunAt(ctx, fps)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Final returns the last sample of every entity in r, keyed by entity id.
func (r *Result) Final() map[uint64]Sample {
	out := make(map[uint64]Sample)
	for _, s := range r.Samples {
		out[s.Entity] = s
	}
	return out
}
