package main

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"mazecast/internal/raycast"
)

// autoWalker produces scripted input for a limited duration. Once the
// deadline passes it asks the simulation to quit so a profile run ends on its
// own.
type autoWalker struct {
	active   bool
	deadline time.Time
	rnd      *rand.Rand
	turn     int
	frames   int
	now      func() time.Time
}

func newAutoWalker(seed int64) *autoWalker {
	return &autoWalker{rnd: rand.New(rand.NewSource(seed)), now: time.Now}
}

// enable schedules scripted movement for duration.
func (a *autoWalker) enable(duration time.Duration) {
	a.active = true
	a.deadline = a.now().Add(duration)
	a.frames = 0
}

// next returns this frame's scripted input, or false when the walker is idle.
func (a *autoWalker) next(g *raycast.Grid, p raycast.Player, moveSpeed float64) (raycast.Input, bool) {
	if !a.active {
		return raycast.Input{}, false
	}
	if a.now().After(a.deadline) {
		a.active = false
		return raycast.Input{Quit: true}, true
	}
	if a.frames <= 0 {
		a.randomize()
	}
	a.frames--

	in := raycast.Input{RotateLeft: a.turn < 0, RotateRight: a.turn > 0}
	ahead := p.Position.Add(p.Forward().Scale(4 * moveSpeed))
	if g.IsWall(ahead) {
		// Turn in place until the way ahead clears.
		in.RotateLeft, in.RotateRight = false, true
		a.frames = 0
		return in, true
	}
	in.Forward = true
	return in, true
}

// randomize chooses a new turn direction and how long to keep it.
func (a *autoWalker) randomize() {
	a.turn = a.rnd.Intn(3) - 1
	a.frames = autoWalkMinFrames + a.rnd.Intn(autoWalkExtraFrames)
}

// readInput selects either scripted or keyboard input.
func (g *Game) readInput() raycast.Input {
	cfg := g.sim.Config()
	if in, ok := g.walker.next(g.sim.Grid(), g.sim.Player(), cfg.MoveSpeed); ok {
		if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
			in.Quit = true
		}
		return in
	}
	return keyboardInput()
}

// keyboardInput polls WASD and the arrow keys.
func keyboardInput() raycast.Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return raycast.Input{
		Forward:     pressed(ebiten.KeyW, ebiten.KeyUp),
		Back:        pressed(ebiten.KeyS, ebiten.KeyDown),
		StrafeLeft:  pressed(ebiten.KeyA),
		StrafeRight: pressed(ebiten.KeyD),
		RotateLeft:  pressed(ebiten.KeyLeft, ebiten.KeyQ),
		RotateRight: pressed(ebiten.KeyRight, ebiten.KeyE),
		Quit:        pressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed(),
	}
}

// handleDebugControls processes overlay hotkeys.
func (g *Game) handleDebugControls() {
	toggle := func(key ebiten.Key, name string, v *bool) {
		if inpututil.IsKeyJustPressed(key) {
			*v = !*v
			g.log.Debug("overlay toggled", zap.String("overlay", name), zap.Bool("on", *v))
		}
	}
	toggle(ebiten.KeyM, "minimap", &g.showMinimap)
	toggle(ebiten.KeyR, "rays", &g.showRays)
	toggle(ebiten.KeyF, "fog", &g.occlude)
	toggle(ebiten.KeyF3, "debug", &g.debug)
}
