package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"mazecast/internal/raycast"
	"mazecast/internal/view"
)

var (
	terminalSky    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	terminalFloor  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkOliveGreen)
	terminalStatus = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow)
)

// terminal renders a Simulation with shaded runes, one column per screen
// column.
type terminal struct {
	sim     *raycast.Simulation
	screen  tcell.Screen
	log     *zap.Logger
	walker  *autoWalker
	pending raycast.Input
}

func newTerminal(sim *raycast.Simulation, logger *zap.Logger) (*terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	screen.HideCursor()
	screen.SetStyle(terminalSky)
	screen.Clear()
	return &terminal{
		sim:    sim,
		screen: screen,
		log:    logger,
		walker: newAutoWalker(time.Now().UnixNano()),
	}, nil
}

// run drives the simulation at terminalTick until the player quits.
func (t *terminal) run() error {
	done := make(chan struct{})
	defer t.screen.Fini()
	defer close(done)

	events := make(chan tcell.Event, 64)
	go pumpEvents(t.screen.PollEvent, events, done)

	ticker := time.NewTicker(terminalTick)
	defer ticker.Stop()
	t.log.Info("terminal frontend started")

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				applyKey(&t.pending, ev.Key(), ev.Rune())
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			in := t.pending
			t.pending = raycast.Input{}
			if scripted, ok := t.walker.next(t.sim.Grid(), t.sim.Player(), t.sim.Config().MoveSpeed); ok {
				scripted.Quit = scripted.Quit || in.Quit
				in = scripted
			}
			frame, err := t.sim.Tick(in)
			if errors.Is(err, raycast.ErrStopped) {
				return nil
			}
			if err != nil {
				return err
			}
			if frame.State == raycast.Stopped {
				return nil
			}
			t.draw(frame)
		}
	}
}

// pumpEvents forwards polled events until poll returns nil, which closes
// events, or until done is closed.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// applyKey folds one key event into the input for the next tick. Terminals
// only report presses, so each press moves for a single frame.
func applyKey(in *raycast.Input, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.Quit = true
	case tcell.KeyUp:
		in.Forward = true
	case tcell.KeyDown:
		in.Back = true
	case tcell.KeyLeft:
		in.RotateLeft = true
	case tcell.KeyRight:
		in.RotateRight = true
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			in.Quit = true
		case 'w', 'W':
			in.Forward = true
		case 's', 'S':
			in.Back = true
		case 'a', 'A':
			in.StrafeLeft = true
		case 'd', 'D':
			in.StrafeRight = true
		case ',', '<':
			in.RotateLeft = true
		case '.', '>':
			in.RotateRight = true
		}
	}
}

// draw renders one frame. Ray i of n covers the screen columns Columns(i, n).
func (t *terminal) draw(frame raycast.Frame) {
	sw, sh := t.screen.Size()
	cfg := t.sim.Config()
	proj := view.NewProjection(sw, sh, cfg.FieldOfView, cfg.TileSize, cfg.MaxDistance)
	grid := t.sim.Grid()

	t.screen.Clear()
	for i := range frame.Rays {
		ray := frame.Rays[i]
		s := proj.Slice(ray, frame.Player.Heading)
		v, _ := grid.Value(ray.Col, ray.Row)
		c := wallColor(v)
		wallStyle := terminalSky.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		x0, x1 := proj.Columns(i, len(frame.Rays))
		for x := x0; x < x1 && x < sw; x++ {
			for y := 0; y < sh; y++ {
				r, kind := terminalCell(s, y, sh)
				style := terminalSky
				switch kind {
				case cellWall:
					style = wallStyle
				case cellFloor:
					style = terminalFloor
				}
				t.screen.SetContent(x, y, r, nil, style)
			}
		}
	}

	p := frame.Player
	status := fmt.Sprintf(" x=%.1f y=%.1f heading=%.0f° frame=%d %s | arrows/WASD move, q quit ",
		p.Position.X, p.Position.Y, degrees(p.Heading), frame.Seq, frame.Backend)
	for i, r := range []rune(status) {
		if i >= sw {
			break
		}
		t.screen.SetContent(i, 0, r, nil, terminalStatus)
	}
	t.screen.Show()
}

type cellKind uint8

const (
	cellSky cellKind = iota
	cellWall
	cellFloor
)

// terminalCell picks the rune for row y of a column showing slice s.
func terminalCell(s view.Slice, y, height int) (rune, cellKind) {
	switch {
	case s.Visible && y >= s.Top && y < s.Bottom:
		return view.Shade(s.Brightness), cellWall
	case y >= height/2:
		return view.FloorShade(y, height), cellFloor
	}
	return ' ', cellSky
}
