package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func mustParticle(t testing.TB, pos mgl32.Vec2, mass, radius float32, opts ...Option) Particle {
	t.Helper()
	p, err := NewParticle(pos, mass, radius, 0xffffff, opts...)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}
	return p
}

func TestSpringTwoParticles(t *testing.T) {
	ps := []Particle{
		mustParticle(t, mgl32.Vec2{0, 0}, 1, 1),
		mustParticle(t, mgl32.Vec2{10, 0}, 1, 1),
	}

	DefaultSpring().Apply(ps)

	// magnitude 0.05*(10-50) = -2 along the axis from 0 to 1: inside the
	// equilibrium distance the pair is pushed apart.
	if !near(ps[0].Acceleration, mgl32.Vec2{-2, 0}, 1e-5) {
		t.Errorf("a0 = %v, want [-2 0]", ps[0].Acceleration)
	}
	if !near(ps[1].Acceleration, mgl32.Vec2{2, 0}, 1e-5) {
		t.Errorf("a1 = %v, want [2 0]", ps[1].Acceleration)
	}
}

func TestSpringAttractsBeyondEquilibrium(t *testing.T) {
	f, ok := DefaultSpring().Force(mgl32.Vec2{0, 0}, mgl32.Vec2{0, 100})
	if !ok {
		t.Fatal("expected force")
	}
	if !near(f, mgl32.Vec2{0, 2.5}, 1e-5) {
		t.Errorf("force = %v, want [0 2.5]", f)
	}
}

func TestSpringSymmetry(t *testing.T) {
	s := DefaultSpring()
	pairs := [][2]mgl32.Vec2{
		{{0, 0}, {3, 4}},
		{{100, 50}, {20, 80}},
		{{-5, 7}, {-5, 200}},
		{{400, 300}, {400.01, 300}},
	}

	for _, pair := range pairs {
		fa, okA := s.Force(pair[0], pair[1])
		fb, okB := s.Force(pair[1], pair[0])
		if !okA || !okB {
			t.Fatalf("unexpected skip for %v", pair)
		}
		if !near(fa, fb.Mul(-1), 1e-5) {
			t.Errorf("forces not opposite for %v: %v vs %v", pair, fa, fb)
		}
	}
}

func TestSpringCoincidentSkipped(t *testing.T) {
	ps := []Particle{
		mustParticle(t, mgl32.Vec2{5, 5}, 1, 1),
		mustParticle(t, mgl32.Vec2{5, 5.00001}, 1, 1),
	}

	DefaultSpring().Apply(ps)

	for i, p := range ps {
		if p.Acceleration != (mgl32.Vec2{}) {
			t.Errorf("particle %d received force %v", i, p.Acceleration)
		}
	}
}

func TestSpringNetForceZero(t *testing.T) {
	ps := []Particle{
		mustParticle(t, mgl32.Vec2{0, 0}, 2, 1),
		mustParticle(t, mgl32.Vec2{30, 10}, 3, 1),
		mustParticle(t, mgl32.Vec2{90, -40}, 1, 1),
		mustParticle(t, mgl32.Vec2{12, 70}, 4, 1),
	}

	DefaultSpring().Apply(ps)

	var net mgl32.Vec2
	for _, p := range ps {
		net = net.Add(p.Acceleration.Mul(p.Mass()))
	}
	if math.Abs(float64(net[0])) > 1e-4 || math.Abs(float64(net[1])) > 1e-4 {
		t.Errorf("net force = %v, want zero", net)
	}
}

func near(a, b mgl32.Vec2, tol float64) bool {
	return math.Abs(float64(a[0]-b[0])) <= tol && math.Abs(float64(a[1]-b[1])) <= tol
}
