package raycast

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrStopped is returned by Tick once the quit signal has been processed.
var ErrStopped = errors.New("simulation stopped")

// State is the coarse run state. Stopped is terminal.
type State uint8

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Frame is what a presentation layer draws from. Rays is owned by the
// Simulation and is only valid until the next Tick.
type Frame struct {
	Seq     uint64
	State   State
	Player  Player
	Rays    []Ray
	Recast  bool
	Backend string
}

// Option customizes a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFanCaster casts whole frames with f. If f fails the simulation logs it
// and falls back to the CPU fan for the rest of the run.
func WithFanCaster(f FanCaster) Option {
	return func(s *Simulation) {
		if f != nil {
			s.fan = f
		}
	}
}

// Simulation owns the player and the grid and is the only thing that mutates
// the player, once per Tick and before any ray of that frame is cast.
type Simulation struct {
	cfg    Config
	grid   *Grid
	player Player
	state  State
	seq    uint64

	caster Caster
	cpu    FanCaster
	fan    FanCaster

	rays     []Ray
	castFor  Player
	castOnce bool

	log *zap.Logger
}

// NewSimulation validates cfg against grid and places the player at the
// centre of the configured start tile.
func NewSimulation(cfg Config, grid *Grid, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidConfig)
	}
	if grid.Width() != cfg.MapW || grid.Height() != cfg.MapH {
		return nil, fmt.Errorf("%w: map size %dx%d does not match %dx%d grid",
			ErrInvalidConfig, cfg.MapW, cfg.MapH, grid.Width(), grid.Height())
	}
	if grid.TileSize() != cfg.TileSize {
		return nil, fmt.Errorf("%w: tile size %v does not match grid tile size %v",
			ErrInvalidConfig, cfg.TileSize, grid.TileSize())
	}
	if grid.CellAt(cfg.StartCol, cfg.StartRow) == Wall {
		return nil, fmt.Errorf("%w: start tile (%d, %d) is solid", ErrInvalidConfig, cfg.StartCol, cfg.StartRow)
	}

	var caster Caster
	var err error
	switch cfg.Caster {
	case CasterDDA:
		caster, err = NewTraverser(grid, cfg.MaxDistance)
	default:
		caster, err = NewMarcher(grid, cfg.StepSize, cfg.MaxDistance)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s := &Simulation{
		cfg:  cfg,
		grid: grid,
		player: Player{
			Position: grid.TileCenter(cfg.StartCol, cfg.StartRow),
			Heading:  WrapAngle(cfg.StartHeading),
		},
		caster: caster,
		rays:   make([]Ray, cfg.RayCount),
		log:    zap.NewNop(),
	}
	s.cpu = NewCPUFan(caster, cfg.Workers)
	s.fan = s.cpu
	for _, opt := range opts {
		opt(s)
	}

	s.log.Info("simulation ready",
		zap.Int("map_w", grid.Width()),
		zap.Int("map_h", grid.Height()),
		zap.Uint64("grid_fingerprint", grid.Fingerprint()),
		zap.String("caster", string(cfg.Caster)),
		zap.String("fan", s.fan.Name()),
		zap.Int("rays", cfg.RayCount),
	)
	if cfg.TunnelingRisk() {
		s.log.Warn("step size may tunnel through thin walls",
			zap.Float64("step", cfg.StepSize),
			zap.Float64("tile_size", cfg.TileSize))
	}
	return s, nil
}

func (s *Simulation) Grid() *Grid     { return s.grid }
func (s *Simulation) Config() Config  { return s.cfg }
func (s *Simulation) Player() Player  { return s.player }
func (s *Simulation) State() State    { return s.state }
func (s *Simulation) Backend() string { return s.fan.Name() }

// Tick applies one frame of input and casts the ray fan for the resulting
// player snapshot. When the player has not changed since the last cast the
// previous rays are reused and Frame.Recast is false.
func (s *Simulation) Tick(in Input) (Frame, error) {
	if s.state == Stopped {
		return s.frame(false), ErrStopped
	}
	if in.Quit {
		s.state = Stopped
		s.log.Info("simulation stopped", zap.Uint64("frames", s.seq))
		return s.frame(false), nil
	}

	if in.Moving() {
		s.player = s.player.Steer(s.grid, in, s.cfg.MoveSpeed, s.cfg.RotateSpeed)
	}

	recast := !s.castOnce || s.player != s.castFor
	if recast {
		if err := s.castFan(s.player); err != nil {
			return s.frame(false), err
		}
		s.castFor = s.player
		s.castOnce = true
	}
	s.seq++
	return s.frame(recast), nil
}

func (s *Simulation) castFan(p Player) error {
	n := len(s.rays)
	for i := range s.rays {
		a := RayAngle(p.Heading, s.cfg.FieldOfView, i, n)
		s.rays[i] = Ray{Angle: a, Direction: FromAngle(a)}
	}
	err := s.fan.CastFan(p.Position, s.rays)
	if err == nil {
		return nil
	}
	if s.fan == s.cpu {
		return fmt.Errorf("casting fan: %w", err)
	}
	s.log.Warn("fan backend failed, falling back to cpu",
		zap.String("backend", s.fan.Name()), zap.Error(err))
	s.fan = s.cpu
	return s.castFan(p)
}

func (s *Simulation) frame(recast bool) Frame {
	return Frame{
		Seq:     s.seq,
		State:   s.state,
		Player:  s.player,
		Rays:    s.rays,
		Recast:  recast,
		Backend: s.fan.Name(),
	}
}
