package metrics

import (
	"github.com/san-kum/particles/internal/physics"
	"github.com/san-kum/particles/internal/sim"
)

// Collisions counts resolved pair and wall contacts across all frames.
type Collisions struct {
	name     string
	pairs    int
	wallHits int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(stats sim.FrameStats, _ []physics.Particle) {
	c.pairs += stats.Collisions
	c.wallHits += stats.WallHits
}

// Value is the number of pair collisions; wall hits are reported by WallHits.
func (c *Collisions) Value() float64 { return float64(c.pairs) }

func (c *Collisions) WallHits() int { return c.wallHits }

func (c *Collisions) Reset() {
	c.pairs = 0
	c.wallHits = 0
}

// Default returns the metric set the CLI attaches to every run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewStability(physics.MaxSpeed),
		NewCollisions(),
	}
}
