//go:build !opencl

package main

import (
	"errors"

	"mazecast/internal/raycast"
)

type openCLFan struct{}

func newOpenCLFan(_ *raycast.Grid, _ raycast.Config) (*openCLFan, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (f *openCLFan) Name() string { return "opencl" }

func (f *openCLFan) DeviceName() string { return "" }

func (f *openCLFan) CastFan(raycast.Vec2, []raycast.Ray) error {
	return errors.New("OpenCL fan unavailable")
}

func (f *openCLFan) Close() {}
