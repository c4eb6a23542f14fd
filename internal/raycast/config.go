package raycast

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// CasterKind selects the single-ray algorithm.
type CasterKind string

const (
	CasterMarch CasterKind = "march"
	CasterDDA   CasterKind = "dda"
)

// Config holds the options fixed at startup.
type Config struct {
	MapW     int
	MapH     int
	TileSize float64

	RayCount    int
	FieldOfView float64 // radians
	StepSize    float64
	MaxDistance float64
	Caster      CasterKind
	// Workers > 1 casts the fan on that many goroutines.
	Workers int

	MoveSpeed   float64 // world units per frame
	RotateSpeed float64 // radians per frame

	StartCol     int
	StartRow     int
	StartHeading float64
}

// DefaultConfig matches the built-in maze.
func DefaultConfig() Config {
	return Config{
		MapW:         len(defaultMaze[0]),
		MapH:         len(defaultMaze),
		TileSize:     64,
		RayCount:     320,
		FieldOfView:  math.Pi / 3,
		StepSize:     1,
		MaxDistance:  1024,
		Caster:       CasterMarch,
		Workers:      1,
		MoveSpeed:    3,
		RotateSpeed:  math.Pi / 60,
		StartCol:     defaultStartCol,
		StartRow:     defaultStartRow,
		StartHeading: 0,
	}
}

// Validate reports every problem found, joined, each wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if c.MapW <= 0 || c.MapH <= 0 {
		bad("map size %dx%d must be positive", c.MapW, c.MapH)
	}
	if !positiveFinite(c.TileSize) {
		bad("tile size %v must be positive", c.TileSize)
	}
	if c.RayCount < 1 {
		bad("ray count %d must be at least 1", c.RayCount)
	}
	if !(c.FieldOfView > 0 && c.FieldOfView < tau) {
		bad("field of view %v must be in (0, 2π)", c.FieldOfView)
	}
	if !positiveFinite(c.StepSize) {
		bad("step size %v must be positive", c.StepSize)
	} else if positiveFinite(c.TileSize) && c.StepSize > c.TileSize {
		bad("step size %v exceeds tile size %v", c.StepSize, c.TileSize)
	}
	if !positiveFinite(c.MaxDistance) {
		bad("max distance %v must be positive", c.MaxDistance)
	}
	switch c.Caster {
	case CasterMarch, CasterDDA:
	default:
		bad("unknown caster %q", c.Caster)
	}
	if c.MoveSpeed < 0 || math.IsNaN(c.MoveSpeed) || math.IsInf(c.MoveSpeed, 0) {
		bad("move speed %v must be finite and non-negative", c.MoveSpeed)
	}
	if c.RotateSpeed < 0 || math.IsNaN(c.RotateSpeed) || math.IsInf(c.RotateSpeed, 0) {
		bad("rotate speed %v must be finite and non-negative", c.RotateSpeed)
	}
	if math.IsNaN(c.StartHeading) || math.IsInf(c.StartHeading, 0) {
		bad("start heading %v must be finite", c.StartHeading)
	}
	return errors.Join(errs...)
}

// TunnelingRisk reports whether the step is coarse enough to skip thin walls
// at grazing angles.
func (c Config) TunnelingRisk() bool {
	return c.Caster == CasterMarch && c.StepSize > c.TileSize/64
}
