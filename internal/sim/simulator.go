package sim

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/dynamo"
	"github.com/san-kum/particles/internal/integrators"
	"github.com/san-kum/particles/internal/physics"
)

// Simulation owns a particle population and advances it one frame at a time.
// It is not safe for concurrent use: one goroutine drives Update and reads
// the particles between frames.
type Simulation struct {
	particles   []physics.Particle
	forces      []physics.Force
	interaction physics.Interaction
	integrator  dynamo.Integrator

	width, height float32
	maxDt         float32

	now        func() time.Time
	lastUpdate time.Time
	frame      uint64

	metrics   []Metric
	observers []Observer
	logger    *log.Logger

	customParticles bool
	customForces    bool
}

type Option func(*Simulation)

// WithClock replaces time.Now as the source of frame timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Simulation) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithParticles replaces the random population. The slice is copied.
func WithParticles(ps []physics.Particle) Option {
	return func(s *Simulation) {
		s.particles = append([]physics.Particle(nil), ps...)
		s.customParticles = true
	}
}

// WithForces replaces the forces built from the config.
func WithForces(fs ...physics.Force) Option {
	return func(s *Simulation) {
		s.forces = append([]physics.Force(nil), fs...)
		s.customForces = true
	}
}

// WithInteraction replaces the pairwise law; nil disables it.
func WithInteraction(i physics.Interaction) Option {
	return func(s *Simulation) { s.interaction = i }
}

// New validates cfg and builds a simulation seeded with cfg.Population.Count
// particles placed uniformly at random from cfg.Seed.
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		integrator: integ,
		width:      float32(cfg.Viewport.Width),
		height:     float32(cfg.Viewport.Height),
		maxDt:      cfg.MaxDt,
		now:        time.Now,
		logger:     log.New(io.Discard),
	}
	if cfg.Interaction.Enabled {
		s.interaction = physics.Spring{
			Coefficient: cfg.Interaction.Coefficient,
			Equilibrium: cfg.Interaction.Equilibrium,
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	if !s.customForces {
		s.forces = BuildForces(cfg)
	}
	if !s.customParticles {
		ps, err := Populate(cfg, rand.New(rand.NewSource(cfg.Seed)))
		if err != nil {
			return nil, err
		}
		s.particles = ps
	}
	s.lastUpdate = s.now()

	s.logger.Info("simulation ready",
		"particles", len(s.particles),
		"forces", len(s.forces),
		"integrator", integ.Name(),
		"bounds", fmt.Sprintf("%gx%g", s.width, s.height),
		"seed", cfg.Seed)
	return s, nil
}

// BuildForces turns the enabled force sections of cfg into Force values.
func BuildForces(cfg *config.Config) []physics.Force {
	f := cfg.Forces
	var forces []physics.Force
	if f.Gravity.Enabled {
		forces = append(forces, physics.Gravity{Strength: f.Gravity.Strength, Direction: mgl32.Vec2(f.Gravity.Direction)})
	}
	if f.Wind.Enabled {
		forces = append(forces, physics.Wind{Strength: f.Wind.Strength, Direction: mgl32.Vec2(f.Wind.Direction)})
	}
	if f.Attractor.Enabled {
		forces = append(forces, physics.PointAttractor{Strength: f.Attractor.Strength, MinDistanceSq: f.Attractor.MinDistanceSq})
	}
	if f.Turbulence.Enabled {
		forces = append(forces, physics.NewTurbulence(f.Turbulence.Strength, f.Turbulence.Scale, cfg.Seed))
	}
	return forces
}

// Populate places cfg.Population.Count particles uniformly in the viewport
// with mass uniform in [MassMin, MassMax), radius proportional to mass and a
// random color.
func Populate(cfg *config.Config, rng *rand.Rand) ([]physics.Particle, error) {
	p := cfg.Population
	w, h := float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)

	particles := make([]physics.Particle, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		pos := mgl32.Vec2{rng.Float32() * w, rng.Float32() * h}
		mass := p.MassMin + rng.Float32()*(p.MassMax-p.MassMin)
		color := uint32(rng.Intn(255))<<16 | uint32(rng.Intn(255))<<8 | uint32(rng.Intn(255))

		particle, err := physics.NewParticle(pos, mass, mass*p.RadiusPerMass, color,
			physics.WithDamping(p.Damping),
			physics.WithRestitution(p.Restitution))
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		particles = append(particles, particle)
	}
	return particles, nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Update advances one frame using the wall-clock time elapsed since the
// previous call (or since New) as dt. point is the external attraction point
// and may be nil.
func (s *Simulation) Update(point *mgl32.Vec2) FrameStats {
	now := s.now()
	dt := float32(now.Sub(s.lastUpdate).Seconds())
	s.lastUpdate = now
	return s.Step(dt, point)
}

// Step advances one frame by dt, clamped to [0, MaxDt]. The stages always run
// in this order: external forces, pairwise interaction, integration, wall
// collisions, pair collisions.
func (s *Simulation) Step(dt float32, point *mgl32.Vec2) FrameStats {
	raw := dt
	clamped := false
	// NaN fails every comparison, so it lands on zero with negative dt.
	if !(dt >= 0) {
		dt, clamped = 0, true
	} else if dt > s.maxDt {
		dt, clamped = s.maxDt, true
	}

	for i := range s.particles {
		p := &s.particles[i]
		for _, f := range s.forces {
			p.ApplyForce(f.Apply(p.Position, p.Velocity, p.Mass(), point))
		}
	}

	if s.interaction != nil {
		s.interaction.Apply(s.particles)
	}

	for i := range s.particles {
		s.particles[i].Update(s.integrator, dt)
	}

	wallHits := 0
	for i := range s.particles {
		if s.particles[i].ResolveBoundary(s.width, s.height) {
			wallHits++
		}
	}

	collisions := physics.ResolveCollisions(s.particles)

	s.frame++
	stats := FrameStats{
		Frame:         s.frame,
		Dt:            dt,
		Clamped:       clamped,
		KineticEnergy: s.KineticEnergy(),
		WallHits:      wallHits,
		Collisions:    collisions,
	}
	if clamped {
		s.logger.Debug("dt clamped", "frame", s.frame, "raw", raw, "dt", dt)
	}

	for _, m := range s.metrics {
		m.Observe(stats, s.particles)
	}
	for _, o := range s.observers {
		o.OnFrame(stats, s.particles)
	}
	return stats
}

// Run steps the simulation frames times with a fixed dt, stopping early if
// ctx is cancelled between frames.
func (s *Simulation) Run(ctx context.Context, frames int, dt float32, point *mgl32.Vec2) ([]FrameStats, error) {
	stats := make([]FrameStats, 0, frames)
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}
		stats = append(stats, s.Step(dt, point))
	}
	return stats, nil
}

// Particles returns the population in stable order. The slice aliases the
// simulation's storage and must be treated as read-only.
func (s *Simulation) Particles() []physics.Particle {
	return s.particles
}

// Snapshot appends a Body per particle to dst[:0] and returns it.
func (s *Simulation) Snapshot(dst []Body) []Body {
	dst = dst[:0]
	for i := range s.particles {
		p := &s.particles[i]
		dst = append(dst, Body{Position: p.Position, Radius: p.Radius(), Color: p.Color})
	}
	return dst
}

func (s *Simulation) Bounds() (width, height float32) { return s.width, s.height }
func (s *Simulation) Frame() uint64                   { return s.frame }
func (s *Simulation) Integrator() string              { return s.integrator.Name() }
func (s *Simulation) Forces() []physics.Force         { return s.forces }

func (s *Simulation) KineticEnergy() float32 {
	var e float32
	for i := range s.particles {
		e += s.particles[i].KineticEnergy()
	}
	return e
}

func (s *Simulation) Momentum() mgl32.Vec2 {
	var m mgl32.Vec2
	for i := range s.particles {
		m = m.Add(s.particles[i].Momentum())
	}
	return m
}

// Metrics returns the current value of every registered metric.
func (s *Simulation) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
