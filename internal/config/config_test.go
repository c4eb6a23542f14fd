package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazecast/internal/raycast"
)

func TestDecode(t *testing.T) {
	t.Run("Empty keeps defaults", func(t *testing.T) {
		s, err := Decode(strings.NewReader(""))
		require.NoError(t, err)

		def := raycast.DefaultConfig()
		assert.Equal(t, def.RayCount, s.Config.RayCount)
		assert.Equal(t, def.Caster, s.Config.Caster)
		assert.InDelta(t, def.FieldOfView, s.Config.FieldOfView, 1e-12)
		assert.InDelta(t, def.RotateSpeed, s.Config.RotateSpeed, 1e-12)
		assert.Equal(t, raycast.DefaultMaze(), s.Maze)
		require.NoError(t, s.Config.Validate())
	})

	t.Run("Overrides", func(t *testing.T) {
		s, err := Decode(strings.NewReader(`
rays: 90
fov_degrees: 90
step_size: 0.5
caster: dda
workers: 4
start_heading_degrees: 180
`))
		require.NoError(t, err)
		assert.Equal(t, 90, s.Config.RayCount)
		assert.InDelta(t, math.Pi/2, s.Config.FieldOfView, 1e-12)
		assert.Equal(t, 0.5, s.Config.StepSize)
		assert.Equal(t, raycast.CasterDDA, s.Config.Caster)
		assert.Equal(t, 4, s.Config.Workers)
		assert.InDelta(t, math.Pi, s.Config.StartHeading, 1e-12)
		assert.Equal(t, raycast.DefaultConfig().MaxDistance, s.Config.MaxDistance)
	})

	t.Run("Maze is not configurable", func(t *testing.T) {
		_, err := Decode(strings.NewReader("maze:\n  - \"###\"\n"))
		require.Error(t, err)

		s, err := Decode(strings.NewReader("start_col: 2\n"))
		require.NoError(t, err)
		g, err := s.Grid()
		require.NoError(t, err)
		assert.Equal(t, s.Config.MapW, g.Width())
		assert.Equal(t, s.Config.MapH, g.Height())
		assert.Equal(t, 2, s.Config.StartCol)
	})

	t.Run("Unknown key", func(t *testing.T) {
		_, err := Decode(strings.NewReader("rayz: 3\n"))
		require.Error(t, err)
	})

	t.Run("Invalid values surface at validation", func(t *testing.T) {
		s, err := Decode(strings.NewReader("rays: 0\ncaster: beam\n"))
		require.NoError(t, err)
		err = s.Config.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, raycast.ErrInvalidConfig))
	})
}

func TestLoad(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Config.RayCount, s.Config.RayCount)

	path := filepath.Join(t.TempDir(), "mazecast.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rays: 12\n"), 0o644))
	s, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Config.RayCount)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
