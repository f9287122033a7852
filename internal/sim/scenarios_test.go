package sim_test

import (
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/physics"
	"github.com/san-kum/particles/internal/sim"
)

func newParticle(x, y, mass, radius float32, opts ...physics.Option) physics.Particle {
	p, err := physics.NewParticle(mgl32.Vec2{x, y}, mass, radius, 0x00ff00, opts...)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Simulation", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Seed = 1
	})

	Describe("spring interaction", func() {
		It("pushes a close pair apart along the connecting axis", func() {
			cfg.MaxDt = 0.1
			s, err := sim.New(cfg,
				sim.WithParticles([]physics.Particle{
					newParticle(100, 300, 1, 1, physics.WithDamping(1)),
					newParticle(110, 300, 1, 1, physics.WithDamping(1)),
				}),
				sim.WithForces())
			Expect(err).NotTo(HaveOccurred())

			s.Step(0.1, nil)

			ps := s.Particles()
			Expect(ps[0].Velocity.X()).To(BeNumerically("~", -0.2, 1e-5))
			Expect(ps[1].Velocity.X()).To(BeNumerically("~", 0.2, 1e-5))
			Expect(ps[0].Velocity.Y()).To(BeZero())
			Expect(ps[1].Velocity.Y()).To(BeZero())
		})
	})

	Describe("point attractor", func() {
		var s *sim.Simulation

		BeforeEach(func() {
			var err error
			s, err = sim.New(cfg,
				sim.WithParticles([]physics.Particle{newParticle(400, 300, 2, 4, physics.WithDamping(1))}),
				sim.WithForces(physics.NewPointAttractor(100)),
				sim.WithInteraction(nil))
			Expect(err).NotTo(HaveOccurred())
		})

		It("contributes nothing without a point", func() {
			s.Step(0.1, nil)
			Expect(s.Particles()[0].Velocity).To(Equal(mgl32.Vec2{}))
		})

		It("pulls toward the point when one is given", func() {
			point := mgl32.Vec2{500, 300}
			s.Step(0.1, &point)
			Expect(s.Particles()[0].Velocity.X()).To(BeNumerically(">", 0))
			Expect(s.Particles()[0].Velocity.Y()).To(BeNumerically("~", 0, 1e-6))
		})
	})

	Describe("walls", func() {
		It("reflects a particle crossing the left wall", func() {
			s, err := sim.New(cfg,
				sim.WithParticles([]physics.Particle{
					newParticle(2, 300, 1, 5, physics.WithVelocity(mgl32.Vec2{-10, 0}), physics.WithDamping(1)),
				}),
				sim.WithForces(),
				sim.WithInteraction(nil))
			Expect(err).NotTo(HaveOccurred())

			stats := s.Step(0, nil)

			p := s.Particles()[0]
			Expect(stats.WallHits).To(Equal(1))
			Expect(p.Position).To(Equal(mgl32.Vec2{5, 300}))
			Expect(p.Velocity.X()).To(BeNumerically("~", 8, 1e-5))
		})

		It("keeps a random population inside the viewport", func() {
			cfg.Forces.Wind.Enabled = true
			cfg.Forces.Turbulence.Enabled = true
			s, err := sim.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			point := mgl32.Vec2{10, 10}
			for i := 0; i < 120; i++ {
				s.Step(1.0/60, &point)
			}

			w, h := s.Bounds()
			for _, p := range s.Particles() {
				Expect(p.IsValid()).To(BeTrue())
				// positional correction after the wall pass may push a
				// particle slightly past the wall for one frame
				slack := p.Radius()
				Expect(p.Position.X()).To(BeNumerically(">=", -slack))
				Expect(p.Position.X()).To(BeNumerically("<=", w+slack))
				Expect(p.Position.Y()).To(BeNumerically(">=", -slack))
				Expect(p.Position.Y()).To(BeNumerically("<=", h+slack))
			}
		})
	})

	Describe("collisions", func() {
		It("does not add kinetic energy to a closed pair", func() {
			cfg.Population.Restitution = 0.5
			s, err := sim.New(cfg,
				sim.WithParticles([]physics.Particle{
					newParticle(300, 300, 2, 6, physics.WithRestitution(0.5), physics.WithDamping(1), physics.WithVelocity(mgl32.Vec2{30, 0})),
					newParticle(311, 302, 3, 6, physics.WithRestitution(0.5), physics.WithDamping(1), physics.WithVelocity(mgl32.Vec2{-20, 0})),
				}),
				sim.WithForces(),
				sim.WithInteraction(nil))
			Expect(err).NotTo(HaveOccurred())

			before := s.KineticEnergy()
			stats := s.Step(0, nil)

			Expect(stats.Collisions).To(Equal(1))
			Expect(s.KineticEnergy()).To(BeNumerically("<=", before*(1+1e-5)))
		})
	})
})
