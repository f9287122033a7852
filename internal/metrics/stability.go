package metrics

import (
	"github.com/san-kum/particles/internal/physics"
	"github.com/san-kum/particles/internal/sim"
)

// Stability is the fraction of frames in which every particle had finite
// state and a speed within threshold.
type Stability struct {
	name       string
	threshold  float32
	violations int
	samples    int
}

func NewStability(threshold float32) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(_ sim.FrameStats, particles []physics.Particle) {
	s.samples++
	for i := range particles {
		p := &particles[i]
		if !p.IsValid() || p.Speed() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
