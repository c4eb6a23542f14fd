package main

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"mazecast/internal/raycast"
	"mazecast/internal/view"
)

// Game adapts a Simulation to ebiten's Update/Draw loop.
type Game struct {
	sim   *raycast.Simulation
	frame raycast.Frame
	proj  view.Projection
	log   *zap.Logger

	lastCast time.Duration

	showMinimap bool
	showRays    bool
	occlude     bool
	debug       bool

	walker *autoWalker
	fog    *fogMask
}

// newGame constructs a Game for sim using the current flag values.
func newGame(sim *raycast.Simulation, logger *zap.Logger) *Game {
	cfg := sim.Config()
	grid := sim.Grid()
	return &Game{
		sim:         sim,
		proj:        view.NewProjection(w, h, cfg.FieldOfView, cfg.TileSize, cfg.MaxDistance),
		log:         logger,
		showMinimap: *minimapFlag,
		showRays:    *showRaysFlag,
		occlude:     *occludeLineOfSightFlag,
		debug:       *debugFlag,
		walker:      newAutoWalker(time.Now().UnixNano()),
		fog:         newFogMask(grid.Width(), grid.Height()),
	}
}

// Update advances the simulation by one frame and refreshes the fog mask when
// the fan was recast.
func (g *Game) Update() error {
	g.handleDebugControls()
	in := g.readInput()

	start := time.Now()
	frame, err := g.sim.Tick(in)
	if errors.Is(err, raycast.ErrStopped) {
		return ebiten.Termination
	}
	if err != nil {
		return err
	}
	if frame.Recast {
		g.lastCast = time.Since(start)
		g.fog.refresh(g.sim.Grid(), frame)
	}
	g.frame = frame
	if frame.State == raycast.Stopped {
		return ebiten.Termination
	}
	return nil
}
