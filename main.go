package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"mazecast/internal/config"
	"mazecast/internal/logging"
	"mazecast/internal/raycast"
)

// terminalLogFile receives logs in terminal mode when -log-file is not set.
const terminalLogFile = "mazecast.log"

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mazecast: %v\n", err)
		os.Exit(1)
	}
	if err := run(logger); err != nil {
		logger.Error("exiting", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// newLogger builds the root logger. The terminal frontend owns the tty, so
// its logs always go to a file.
func newLogger() (*zap.Logger, error) {
	opts := logging.Options{Level: *logLevelFlag, Encoding: *logFormatFlag}
	switch {
	case *logFileFlag != "":
		opts.Outputs = []string{*logFileFlag}
	case *terminalFlag:
		opts.Outputs = []string{terminalLogFile}
	}
	return logging.New(opts)
}

// run wires configuration, the simulation and the selected frontend.
func run(logger *zap.Logger) error {
	settings, err := config.Load(*configPathFlag)
	if err != nil {
		return err
	}
	cfg := applyFlagOverrides(settings.Config)
	grid, err := settings.Grid()
	if err != nil {
		return err
	}

	opts := []raycast.Option{raycast.WithLogger(logger)}
	if *gpuFlag {
		fan, err := newOpenCLFan(grid, cfg)
		if err != nil {
			logger.Warn("OpenCL unavailable, casting on cpu", zap.Error(err))
		} else {
			defer fan.Close()
			logger.Info("OpenCL fan enabled", zap.String("device", fan.DeviceName()))
			opts = append(opts, raycast.WithFanCaster(fan))
		}
	}

	sim, err := raycast.NewSimulation(cfg, grid, opts...)
	if err != nil {
		return err
	}
	logger.Info("simulation ready", zap.String("backend", sim.Backend()))

	stopProfile := func() {}
	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording(pgoProfilePath, logger)
		if err != nil {
			return fmt.Errorf("starting profile: %w", err)
		}
		stopProfile = stop
	}
	defer stopProfile()

	if *terminalFlag {
		t, err := newTerminal(sim, logger)
		if err != nil {
			return err
		}
		if *recordDefaultPGO {
			t.walker.enable(pgoRecordDuration)
		}
		return t.run()
	}

	g := newGame(sim, logger)
	if *recordDefaultPGO {
		g.walker.enable(pgoRecordDuration)
	}
	ebiten.SetWindowSize(w*windowScale, h*windowScale)
	ebiten.SetWindowTitle("mazecast")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(int(defaultTPS))
	return ebiten.RunGame(g)
}
