package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sync"

	"go.uber.org/zap"
)

// startDefaultPGORecording writes a CPU profile to path until the returned
// stop function is called. Build with -pgo=auto to use the result.
func startDefaultPGORecording(path string, logger *zap.Logger) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}
	logger.Info("recording cpu profile", zap.String("path", path), zap.Duration("walk", pgoRecordDuration))
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				logger.Warn("closing cpu profile", zap.Error(err))
				return
			}
			logger.Info("cpu profile written", zap.String("path", path))
		})
	}
	return stop, nil
}
