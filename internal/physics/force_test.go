package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGravity(t *testing.T) {
	g := DefaultGravity()
	f := g.Apply(mgl32.Vec2{10, 20}, mgl32.Vec2{5, 5}, 2, nil)

	if f[0] != 0 || math.Abs(float64(f[1])-19.6) > 1e-5 {
		t.Errorf("gravity = %v, want [0 19.6]", f)
	}
}

func TestWind(t *testing.T) {
	w := Wind{Strength: 3, Direction: mgl32.Vec2{1, 0}}

	light := w.Apply(mgl32.Vec2{}, mgl32.Vec2{}, 1, nil)
	heavy := w.Apply(mgl32.Vec2{100, 100}, mgl32.Vec2{1, 1}, 50, nil)

	if light != (mgl32.Vec2{3, 0}) || heavy != light {
		t.Errorf("wind should ignore mass and state: %v vs %v", light, heavy)
	}
}

func TestPointAttractor(t *testing.T) {
	a := NewPointAttractor(100)
	pos := mgl32.Vec2{0, 0}

	t.Run("no point", func(t *testing.T) {
		if f := a.Apply(pos, mgl32.Vec2{}, 1, nil); f != (mgl32.Vec2{}) {
			t.Errorf("expected zero force, got %v", f)
		}
	})

	t.Run("inside guard", func(t *testing.T) {
		point := mgl32.Vec2{0.5, 0.5}
		if f := a.Apply(pos, mgl32.Vec2{}, 1, &point); f != (mgl32.Vec2{}) {
			t.Errorf("expected zero force, got %v", f)
		}
	})

	t.Run("on the point without a guard", func(t *testing.T) {
		unguarded := PointAttractor{Strength: 100}
		point := pos
		f := unguarded.Apply(pos, mgl32.Vec2{}, 1, &point)
		if f != (mgl32.Vec2{}) {
			t.Errorf("expected zero force, got %v", f)
		}
	})

	t.Run("direction and magnitude", func(t *testing.T) {
		point := mgl32.Vec2{0, 10}
		f := a.Apply(pos, mgl32.Vec2{}, 2, &point)
		// 100 * 2 / 10
		if math.Abs(float64(f[0])) > 1e-5 || math.Abs(float64(f[1])-20) > 1e-4 {
			t.Errorf("force = %v, want [0 20]", f)
		}
	})

	t.Run("magnitude decreases with distance", func(t *testing.T) {
		prev := float32(math.MaxFloat32)
		for _, d := range []float32{1.5, 2, 5, 10, 50, 200} {
			point := mgl32.Vec2{d, 0}
			mag := a.Apply(pos, mgl32.Vec2{}, 1, &point).Len()
			if mag >= prev {
				t.Errorf("magnitude at %v = %v, not below %v", d, mag, prev)
			}
			prev = mag
		}
	})
}

func TestTurbulence(t *testing.T) {
	turb := NewTurbulence(4, 0.01, 7)
	pos := mgl32.Vec2{123, 456}

	f1 := turb.Apply(pos, mgl32.Vec2{}, 1, nil)
	f2 := turb.Apply(pos, mgl32.Vec2{9, 9}, 30, nil)

	if f1 != f2 {
		t.Errorf("turbulence should depend on position only: %v vs %v", f1, f2)
	}
	if math.Abs(float64(f1.Len())-4) > 1e-2 {
		t.Errorf("|f| = %f, want 4", f1.Len())
	}

	var zero Turbulence
	if f := zero.Apply(pos, mgl32.Vec2{}, 1, nil); f != (mgl32.Vec2{}) {
		t.Errorf("zero-value turbulence should be inert, got %v", f)
	}
}

func TestForcesArePure(t *testing.T) {
	forces := []Force{
		DefaultGravity(),
		Wind{Strength: 1, Direction: mgl32.Vec2{1, 0}},
		NewPointAttractor(50),
		NewTurbulence(1, 0.05, 1),
	}
	pos := mgl32.Vec2{10, 10}
	vel := mgl32.Vec2{1, 2}
	point := mgl32.Vec2{40, 40}

	for _, f := range forces {
		first := f.Apply(pos, vel, 3, &point)
		second := f.Apply(pos, vel, 3, &point)
		if first != second {
			t.Errorf("%T not deterministic: %v vs %v", f, first, second)
		}
		if pos != (mgl32.Vec2{10, 10}) || vel != (mgl32.Vec2{1, 2}) || point != (mgl32.Vec2{40, 40}) {
			t.Errorf("%T mutated its inputs", f)
		}
	}
}
