package headless

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/nodemesh/internal/visualizer"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent instances over consecutive seeds.
type Ensemble struct {
	Runner    Runner
	Runs      int
	SeedStart int64
	// Workers bounds concurrency; zero means one goroutine per run.
	Workers int
}

func NewEnsemble(r Runner, runs int, seedStart int64) *Ensemble {
	return &Ensemble{Runner: r, Runs: runs, SeedStart: seedStart}
}

// Run returns results in seed order. The first error cancels the rest.
func (e *Ensemble) Run(ctx context.Context, cfg visualizer.Config) ([]*Result, error) {
	if e.Runs < 0 {
		return nil, fmt.Errorf("headless: negative run count %d", e.Runs)
	}
	results := make([]*Result, e.Runs)
	g, ctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i := 0; i < e.Runs; i++ {
		g.Go(func() error {
			c := cfg
			c.Seed = e.SeedStart + int64(i)
			res, err := e.Runner.Run(ctx, c)
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

// Summary describes the spread of connection counts across runs.
type Summary struct {
	Runs   int
	Mean   float64
	StdDev float64
	Min    int
	Max    int
	// Expected is the connection count implied by the probability gate
	// alone, before distance filtering.
	Expected float64
}

func Summarize(results []*Result, connectionProbability float64) Summary {
	s := Summary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}
	s.Min, s.Max = results[0].Connections, results[0].Connections
	sum := 0.0
	for _, r := range results {
		c := r.Connections
		sum += float64(c)
		s.Min, s.Max = min(s.Min, c), max(s.Max, c)
	}
	s.Mean = sum / float64(len(results))
	for _, r := range results {
		d := float64(r.Connections) - s.Mean
		s.StdDev += d * d
	}
	s.StdDev = math.Sqrt(s.StdDev / float64(len(results)))
	n := float64(results[0].Nodes)
	s.Expected = n * (n - 1) / 2 * connectionProbability
	return s
}
