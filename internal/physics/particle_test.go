package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/dynamo"
	"github.com/san-kum/particles/internal/integrators"
)

func TestNewParticle_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mass   float32
		radius float32
		opts   []Option
		want   error
	}{
		{"zero mass", 0, 1, nil, dynamo.ErrInvalidMass},
		{"negative mass", -2, 1, nil, dynamo.ErrInvalidMass},
		{"infinite mass", float32(math.Inf(1)), 1, nil, dynamo.ErrInvalidMass},
		{"NaN mass", float32(math.NaN()), 1, nil, dynamo.ErrInvalidMass},
		{"zero radius", 1, 0, nil, dynamo.ErrInvalidRadius},
		{"negative radius", 1, -1, nil, dynamo.ErrInvalidRadius},
		{"zero damping", 1, 1, []Option{WithDamping(0)}, dynamo.ErrParameterBounds},
		{"damping above one", 1, 1, []Option{WithDamping(1.5)}, dynamo.ErrParameterBounds},
		{"negative restitution", 1, 1, []Option{WithRestitution(-0.1)}, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParticle(mgl32.Vec2{}, tt.mass, tt.radius, 0, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewParticle_Defaults(t *testing.T) {
	p := mustParticle(t, mgl32.Vec2{1, 2}, 3, 6)

	if p.Mass() != 3 || p.Radius() != 6 {
		t.Errorf("mass/radius = %v/%v", p.Mass(), p.Radius())
	}
	if p.Damping() != DefaultDamping || p.Restitution() != DefaultRestitution {
		t.Errorf("damping/restitution = %v/%v", p.Damping(), p.Restitution())
	}
	if p.Velocity != (mgl32.Vec2{}) || p.Acceleration != (mgl32.Vec2{}) {
		t.Error("new particle should be at rest")
	}
}

func TestApplyForce(t *testing.T) {
	p := mustParticle(t, mgl32.Vec2{}, 2, 1)

	p.ApplyForce(mgl32.Vec2{4, 0})
	p.ApplyForce(mgl32.Vec2{0, -2})

	if p.Acceleration != (mgl32.Vec2{2, -1}) {
		t.Errorf("acceleration = %v, want [2 -1]", p.Acceleration)
	}
}

func TestApplyForce_Clamped(t *testing.T) {
	p := mustParticle(t, mgl32.Vec2{}, 2, 1)

	p.ApplyForce(mgl32.Vec2{1e9, -1e9})

	if p.Acceleration != (mgl32.Vec2{500, -500}) {
		t.Errorf("acceleration = %v, want [500 -500]", p.Acceleration)
	}
}

func TestUpdate_ResetsAcceleration(t *testing.T) {
	for _, name := range integrators.Names() {
		t.Run(name, func(t *testing.T) {
			integ, _ := integrators.New(name)
			p := mustParticle(t, mgl32.Vec2{100, 100}, 1, 1)
			p.ApplyForce(mgl32.Vec2{30, -20})

			p.Update(integ, 1.0/60)

			if p.Acceleration != (mgl32.Vec2{}) {
				t.Errorf("acceleration = %v after update", p.Acceleration)
			}
		})
	}
}

func TestUpdate_ZeroForce(t *testing.T) {
	for _, name := range integrators.Names() {
		t.Run(name, func(t *testing.T) {
			integ, _ := integrators.New(name)
			v := mgl32.Vec2{12, -4}
			p := mustParticle(t, mgl32.Vec2{100, 100}, 1, 1, WithDamping(1), WithVelocity(v))

			p.Update(integ, 0.5)

			if p.Velocity != v {
				t.Errorf("velocity = %v, want %v", p.Velocity, v)
			}
			if !near(p.Position, mgl32.Vec2{106, 98}, 1e-4) {
				t.Errorf("position = %v, want [106 98]", p.Position)
			}
		})
	}
}

func TestUpdate_Damping(t *testing.T) {
	integ := integrators.NewEuler()
	p := mustParticle(t, mgl32.Vec2{}, 1, 1, WithDamping(0.5), WithVelocity(mgl32.Vec2{10, 0}))

	p.Update(integ, 1)

	if p.Velocity != (mgl32.Vec2{5, 0}) || p.Position != (mgl32.Vec2{5, 0}) {
		t.Errorf("got v=%v x=%v, want v=[5 0] x=[5 0]", p.Velocity, p.Position)
	}
}

func TestUpdate_SpeedClamp(t *testing.T) {
	integ := integrators.NewRK4()
	p := mustParticle(t, mgl32.Vec2{}, 1, 1, WithDamping(1), WithVelocity(mgl32.Vec2{5000, 0}))

	p.Update(integ, 0.01)

	if math.Abs(float64(p.Speed()-MaxSpeed)) > 1e-2 {
		t.Errorf("speed = %f, want %f", p.Speed(), MaxSpeed)
	}
}

func TestKineticEnergy(t *testing.T) {
	p := mustParticle(t, mgl32.Vec2{}, 4, 1, WithVelocity(mgl32.Vec2{3, 4}))

	if p.KineticEnergy() != 50 {
		t.Errorf("kinetic energy = %f, want 50", p.KineticEnergy())
	}
	if p.Momentum() != (mgl32.Vec2{12, 16}) {
		t.Errorf("momentum = %v, want [12 16]", p.Momentum())
	}
}
