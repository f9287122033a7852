package sim

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/dynamo"
)

// Summary is the outcome of one ensemble member.
type Summary struct {
	Seed          int64
	Frames        int
	KineticEnergy []float64
	Collisions    int
	WallHits      int
	Metrics       map[string]float64
	Elapsed       time.Duration
}

// Ensemble runs independent simulations of one config with consecutive
// seeds. Each member owns its own Simulation on its own goroutine; nothing is
// shared between members.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	opts      []Option
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, opts: opts}
}

// Run steps every member frames times with a fixed dt. newMetrics, if not
// nil, is called once per member so metrics are never shared.
func (e *Ensemble) Run(ctx context.Context, frames int, dt float32, newMetrics func() []Metric) ([]Summary, error) {
	if e.numRuns < 1 {
		return nil, dynamo.Invalid("runs", float64(e.numRuns), dynamo.ErrParameterBounds)
	}
	results := make([]Summary, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg.Clone()
			cfg.Seed = e.seedStart + int64(idx)

			s, err := New(cfg, e.opts...)
			if err != nil {
				errs[idx] = err
				return
			}
			if newMetrics != nil {
				for _, m := range newMetrics() {
					s.AddMetric(m)
				}
			}

			start := time.Now()
			stats, err := s.Run(ctx, frames, dt, nil)
			results[idx] = summarize(cfg.Seed, stats, s.Metrics(), time.Since(start))
			errs[idx] = err
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func summarize(seed int64, stats []FrameStats, metrics map[string]float64, elapsed time.Duration) Summary {
	sum := Summary{
		Seed:          seed,
		Frames:        len(stats),
		KineticEnergy: make([]float64, len(stats)),
		Metrics:       metrics,
		Elapsed:       elapsed,
	}
	for i, st := range stats {
		sum.KineticEnergy[i] = float64(st.KineticEnergy)
		sum.Collisions += st.Collisions
		sum.WallHits += st.WallHits
	}
	return sum
}
