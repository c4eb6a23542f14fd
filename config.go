package main

import "time"

// Presentation constants for the window and terminal frontends. Everything the
// core needs lives in raycast.Config; these only size and pace the views.
const (
	w, h                = 640, 400
	windowScale         = 2
	defaultTPS          = 60.0
	minimapCell         = 6
	minimapMargin       = 8
	minimapRayStride    = 8
	terminalTick        = 33 * time.Millisecond
	autoWalkMinFrames   = 20
	autoWalkExtraFrames = 50
	pgoRecordDuration   = 15 * time.Second
	pgoProfilePath      = "default.pgo"
)
