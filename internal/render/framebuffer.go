// Package render rasterizes particle snapshots into a packed 0xRRGGBB pixel
// buffer that a window host can upload as a texture.
package render

import (
	"math"

	"github.com/san-kum/particles/internal/sim"
)

// Framebuffer is a row-major W×H grid of 0xRRGGBB pixels. Pixel (x, y) sits
// at integer coordinates; a disc covers it iff (x-cx)²+(y-cy)² <= r².
type Framebuffer struct {
	Width, Height int
	Pix           []uint32
	Background    uint32
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

func (f *Framebuffer) Clear() {
	for i := range f.Pix {
		f.Pix[i] = f.Background
	}
}

// Draw clears the buffer and paints every body in order, later bodies on top.
func (f *Framebuffer) Draw(bodies []sim.Body) {
	f.Clear()
	for _, b := range bodies {
		f.DrawDisc(b.Position.X(), b.Position.Y(), b.Radius, b.Color)
	}
}

// DrawDisc fills the disc at (cx, cy), clipped to the buffer. Non-finite
// input draws nothing.
func (f *Framebuffer) DrawDisc(cx, cy, radius float32, color uint32) {
	if !finite(cx) || !finite(cy) || !finite(radius) || radius < 0 {
		return
	}

	x0 := clampInt(int(math.Ceil(float64(cx-radius))), 0, f.Width)
	x1 := clampInt(int(math.Floor(float64(cx+radius))), -1, f.Width-1)
	y0 := clampInt(int(math.Ceil(float64(cy-radius))), 0, f.Height)
	y1 := clampInt(int(math.Floor(float64(cy+radius))), -1, f.Height-1)

	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		dy := float32(y) - cy
		row := f.Pix[y*f.Width : (y+1)*f.Width]
		for x := x0; x <= x1; x++ {
			dx := float32(x) - cx
			if dx*dx+dy*dy <= r2 {
				row[x] = color
			}
		}
	}
}

// At returns the pixel at (x, y), or 0 outside the buffer.
func (f *Framebuffer) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0
	}
	return f.Pix[y*f.Width+x]
}

// RGBA expands the buffer into opaque 8-bit RGBA bytes, reusing dst when it
// is large enough.
func (f *Framebuffer) RGBA(dst []byte) []byte {
	n := len(f.Pix) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, c := range f.Pix {
		o := i * 4
		dst[o] = byte(c >> 16)
		dst[o+1] = byte(c >> 8)
		dst[o+2] = byte(c)
		dst[o+3] = 0xff
	}
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
