package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ClampComponents limits each component of v to [-bound, bound].
func ClampComponents(v mgl32.Vec2, bound float32) mgl32.Vec2 {
	return mgl32.Vec2{
		mgl32.Clamp(v[0], -bound, bound),
		mgl32.Clamp(v[1], -bound, bound),
	}
}

// ClampLength rescales v so that |v| <= limit, keeping its direction.
func ClampLength(v mgl32.Vec2, limit float32) mgl32.Vec2 {
	l2 := v.Dot(v)
	if l2 <= limit*limit {
		return v
	}
	return v.Mul(limit / float32(math.Sqrt(float64(l2))))
}

// LengthSq returns |v|².
func LengthSq(v mgl32.Vec2) float32 {
	return v.Dot(v)
}

func IsFinite(v mgl32.Vec2) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
