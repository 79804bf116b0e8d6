package sim

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/metrics"
	"github.com/san-kum/gasbox/internal/physics"
	"golang.org/x/sync/errgroup"
)

type SweepPoint struct {
	Temperature float64
	Result      *dynamo.Result
}

// Sweep runs one independent gas per temperature, concurrently. Run k is
// seeded with seed+k so the sweep is reproducible.
func Sweep(ctx context.Context, base physics.Params, temps []float64, cfg dynamo.Config, seed int64) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(temps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for k, temp := range temps {
		k, temp := k, temp
		g.Go(func() error {
			p := base
			p.Temperature = temp
			gas, err := physics.New(p, rand.New(rand.NewSource(seed+int64(k))))
			if err != nil {
				return err
			}

			s := New(gas)
			for _, m := range metrics.Defaults(p) {
				s.AddMetric(m)
			}

			res, err := s.Run(ctx, cfg)
			if err != nil {
				return err
			}
			points[k] = SweepPoint{Temperature: temp, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
