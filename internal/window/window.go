// Package window hosts a simulation in a native window: the cursor drives the
// point attractor and each tick's snapshot is rasterized into the screen.
package window

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/render"
	"github.com/san-kum/particles/internal/sim"
)

// Game adapts a Simulation to ebiten's game loop. One ebiten tick is one
// simulation frame.
type Game struct {
	ctx    context.Context
	sim    *sim.Simulation
	fb     *render.Framebuffer
	bodies []sim.Body
	pixels []byte
	paused bool
	logger *log.Logger
}

func NewGame(ctx context.Context, s *sim.Simulation, logger *log.Logger) *Game {
	w, h := s.Bounds()
	return &Game{
		ctx:    ctx,
		sim:    s,
		fb:     render.NewFramebuffer(int(w), int(h)),
		logger: logger,
	}
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.logger.Debug("pause toggled", "paused", g.paused, "frame", g.sim.Frame())
	}
	if g.paused {
		return nil
	}

	mx, my := ebiten.CursorPosition()
	g.sim.Update(pointerIn(mx, my, g.fb.Width, g.fb.Height))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.bodies = g.sim.Snapshot(g.bodies)
	g.fb.Draw(g.bodies)
	g.pixels = g.fb.RGBA(g.pixels)
	screen.WritePixels(g.pixels)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.fb.Width, g.fb.Height
}

// pointerIn returns the cursor as an attraction point, or nil while it is
// outside the window.
func pointerIn(x, y, width, height int) *mgl32.Vec2 {
	if x < 0 || y < 0 || x >= width || y >= height {
		return nil
	}
	return &mgl32.Vec2{float32(x), float32(y)}
}

// Run opens a window sized to the viewport and blocks until it is closed,
// Escape is pressed or ctx is cancelled.
func Run(ctx context.Context, s *sim.Simulation, cfg *config.Config, logger *log.Logger) error {
	ebiten.SetWindowSize(cfg.Viewport.Width, cfg.Viewport.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("particles (%d, %s)", len(s.Particles()), s.Integrator()))
	ebiten.SetTPS(cfg.Viewport.FPS)

	logger.Info("opening window", "width", cfg.Viewport.Width, "height", cfg.Viewport.Height, "fps", cfg.Viewport.FPS)
	if err := ebiten.RunGame(NewGame(ctx, s, logger)); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
