package dynamo

import "math"

// TrigTable provides precomputed sin/cos values for fast lookup.
// Uses linear interpolation for values between table entries.
type TrigTable struct {
	sin []float32
	cos []float32
	n   int
}

// DefaultTrigTable has 1024 entries (~0.006 rad resolution), plenty for
// steering directions.
var DefaultTrigTable = NewTrigTable(1024)

func NewTrigTable(n int) *TrigTable {
	t := &TrigTable{
		sin: make([]float32, n),
		cos: make([]float32, n),
		n:   n,
	}
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		t.sin[i] = float32(math.Sin(angle))
		t.cos[i] = float32(math.Cos(angle))
	}
	return t
}

// SinCos returns sin and cos of x (radians, any range).
func (t *TrigTable) SinCos(x float64) (sin, cos float32) {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := float32(idx - float64(i))

	i0 := i % t.n
	i1 := (i + 1) % t.n

	sin = t.sin[i0]*(1-frac) + t.sin[i1]*frac
	cos = t.cos[i0]*(1-frac) + t.cos[i1]*frac
	return
}

func FastSinCos(x float64) (float32, float32) {
	return DefaultTrigTable.SinCos(x)
}
