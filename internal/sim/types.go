package sim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/physics"
)

// Body is the read-only view of a particle handed to renderers.
type Body struct {
	Position mgl32.Vec2
	Radius   float32
	Color    uint32
}

// FrameStats summarises one pass of the frame pipeline.
type FrameStats struct {
	Frame         uint64
	Dt            float32
	Clamped       bool
	KineticEnergy float32
	WallHits      int
	Collisions    int
}

type Metric interface {
	Name() string
	Observe(stats FrameStats, particles []physics.Particle)
	Value() float64
	Reset()
}

// Observer is notified after every frame. particles must not be modified or
// retained.
type Observer interface {
	OnFrame(stats FrameStats, particles []physics.Particle)
}

type ObserverFunc func(stats FrameStats, particles []physics.Particle)

func (f ObserverFunc) OnFrame(stats FrameStats, particles []physics.Particle) {
	f(stats, particles)
}
