package main

import (
	"flag"
	"math"

	"mazecast/internal/config"
	"mazecast/internal/raycast"
)

// Command-line flags. Flags that mirror raycast.Config only override the
// config file when they are given explicitly.
var (
	// configPathFlag names an optional YAML settings file.
	configPathFlag = flag.String("config", "", "YAML settings file (defaults to the built-in maze)")

	raysFlag     = flag.Int("rays", 320, "number of rays cast per frame")
	fovDegFlag   = flag.Float64("fov-deg", 60, "horizontal field of view (degrees)")
	stepFlag     = flag.Float64("step", 1, "ray march step size in world units")
	maxDistFlag  = flag.Float64("max-dist", 1024, "maximum ray distance in world units")
	casterFlag   = flag.String("caster", string(raycast.CasterMarch), "ray caster: march or dda")
	workersFlag  = flag.Int("workers", 1, "goroutines used to cast each frame")
	moveFlag     = flag.Float64("move-speed", 3, "player movement per frame in world units")
	rotateFlag   = flag.Float64("rotate-deg", 3, "player rotation per frame (degrees)")
	terminalFlag = flag.Bool("terminal", false, "render in the terminal instead of a window")

	// gpuFlag casts the ray fan with OpenCL when built with -tags opencl.
	gpuFlag = flag.Bool("gpu", false, "cast rays with OpenCL (requires -tags opencl)")

	// showRaysFlag draws the ray fan on the minimap.
	showRaysFlag = flag.Bool("show-rays", true, "draw the ray fan on the minimap")

	// minimapFlag toggles the top-down map overlay.
	minimapFlag = flag.Bool("minimap", true, "render the minimap overlay")

	// occludeLineOfSightFlag hides minimap tiles the player has not seen.
	occludeLineOfSightFlag = flag.Bool("occlude-line-of-sight", false, "hide minimap tiles outside the player's line of sight")

	// debugFlag enables the FPS and cast timing overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and cast timing overlay")

	// recordDefaultPGO triggers a scripted walk to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "walk randomly for 15s while capturing default.pgo")

	logLevelFlag  = flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFormatFlag = flag.String("log-format", "console", "log encoding: console or json")
	logFileFlag   = flag.String("log-file", "", "write logs to this file instead of stderr")
)

// applyFlagOverrides copies explicitly set flags onto cfg.
func applyFlagOverrides(cfg raycast.Config) raycast.Config {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rays":
			cfg.RayCount = *raysFlag
		case "fov-deg":
			cfg.FieldOfView = config.Radians(*fovDegFlag)
		case "step":
			cfg.StepSize = *stepFlag
		case "max-dist":
			cfg.MaxDistance = *maxDistFlag
		case "caster":
			cfg.Caster = raycast.CasterKind(*casterFlag)
		case "workers":
			cfg.Workers = *workersFlag
		case "move-speed":
			cfg.MoveSpeed = *moveFlag
		case "rotate-deg":
			cfg.RotateSpeed = config.Radians(*rotateFlag)
		}
	})
	return cfg
}

// degrees converts a heading for display.
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
