package sim

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrStopWorld may be returned from a RunWorlds callback to end that
// world's run early without affecting the others.
var ErrStopWorld = errors.New("stop world")

// RunWorlds steps each simulation for the given number of ticks, one
// goroutine per world. Worlds share no mutable state. onReport, if set, is
// called from the world's goroutine after every tick and must be safe for
// concurrent use across worlds. Any other error from onReport, or
// cancelling ctx, stops every world after its current tick.
func RunWorlds(ctx context.Context, sims []*Simulation, steps int, dt float64, onReport func(world int, r Report) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range sims {
		g.Go(func() error {
			for n := 0; n < steps; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				r := s.Step(dt)
				if onReport == nil {
					continue
				}
				if err := onReport(i, r); err != nil {
					if errors.Is(err, ErrStopWorld) {
						return nil
					}
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
