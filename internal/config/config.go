// Package config reads the optional YAML settings file. Values not present in
// the file keep raycast.DefaultConfig.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"mazecast/internal/raycast"
)

// File is the on-disk layout.
type File struct {
	TileSize     float64 `yaml:"tile_size"`
	Rays         int     `yaml:"rays"`
	FOVDegrees   float64 `yaml:"fov_degrees"`
	StepSize     float64 `yaml:"step_size"`
	MaxDistance  float64 `yaml:"max_distance"`
	Caster       string  `yaml:"caster"`
	Workers      int     `yaml:"workers"`
	MoveSpeed    float64 `yaml:"move_speed"`
	RotateDegree float64 `yaml:"rotate_degrees"`
	StartCol     int     `yaml:"start_col"`
	StartRow     int     `yaml:"start_row"`
	StartHeading float64 `yaml:"start_heading_degrees"`
}

// Settings is a decoded file: the core configuration plus the built-in maze
// rows it is sized for. The maze itself is not configurable.
type Settings struct {
	Config raycast.Config
	Maze   []string
}

// Defaults returns the built-in configuration and maze.
func Defaults() Settings {
	return Settings{Config: raycast.DefaultConfig(), Maze: raycast.DefaultMaze()}
}

// Grid parses the maze at the configured tile size.
func (s Settings) Grid() (*raycast.Grid, error) {
	return raycast.ParseGrid(s.Maze, s.Config.TileSize)
}

// Load reads path. An empty path yields the defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		return Defaults(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads YAML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Settings, error) {
	s := Defaults()
	file := toFile(s.Config)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}

	s.Config = file.apply(s.Config)
	return s, nil
}

func toFile(c raycast.Config) File {
	return File{
		TileSize:     c.TileSize,
		Rays:         c.RayCount,
		FOVDegrees:   degrees(c.FieldOfView),
		StepSize:     c.StepSize,
		MaxDistance:  c.MaxDistance,
		Caster:       string(c.Caster),
		Workers:      c.Workers,
		MoveSpeed:    c.MoveSpeed,
		RotateDegree: degrees(c.RotateSpeed),
		StartCol:     c.StartCol,
		StartRow:     c.StartRow,
		StartHeading: degrees(c.StartHeading),
	}
}

func (f File) apply(c raycast.Config) raycast.Config {
	c.TileSize = f.TileSize
	c.RayCount = f.Rays
	c.FieldOfView = Radians(f.FOVDegrees)
	c.StepSize = f.StepSize
	c.MaxDistance = f.MaxDistance
	c.Caster = raycast.CasterKind(f.Caster)
	c.Workers = f.Workers
	c.MoveSpeed = f.MoveSpeed
	c.RotateSpeed = Radians(f.RotateDegree)
	c.StartCol = f.StartCol
	c.StartRow = f.StartRow
	c.StartHeading = Radians(f.StartHeading)
	return c
}

// Radians converts degrees, the unit used on disk and on the command line.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
