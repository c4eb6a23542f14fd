// Package logging builds the process logger.
package logging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level, encoding and destinations.
type Options struct {
	Level    string   // debug, info, warn, error
	Encoding string   // console or json
	Outputs  []string // zap output paths; defaults to stderr
}

// New builds a zap logger tagged with a fresh run identifier.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(orDefault(opts.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	encoding := strings.ToLower(orDefault(opts.Encoding, "console"))
	if encoding != "console" && encoding != "json" {
		return nil, fmt.Errorf("unknown log encoding %q", opts.Encoding)
	}
	outputs := opts.Outputs
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.With(zap.String("run", uuid.NewString())), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
