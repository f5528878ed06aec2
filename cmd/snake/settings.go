package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// overrides are the command-line values layered over the config file.
type overrides struct {
	configPath string
	difficulty string
	seed       int64
	width      int
	height     int
}

func flagOverrides() overrides {
	return overrides{
		configPath: flagConfig,
		difficulty: flagDifficulty,
		seed:       flagSeed,
		width:      flagWidth,
		height:     flagHeight,
	}
}

// loadConfig resolves the effective engine configuration: file or embedded
// defaults, then the difficulty preset, then explicit flags.
func loadConfig(o overrides) (config.EngineConfig, config.Source, error) {
	cfg, src, err := config.Load(o.configPath)
	if err != nil {
		return config.EngineConfig{}, "", err
	}

	preset, err := config.ParsePreset(o.difficulty)
	if err != nil {
		return config.EngineConfig{}, "", err
	}
	config.ApplyPreset(&cfg, preset)

	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.width > 0 {
		cfg.Grid.Width = o.width
	}
	if o.height > 0 {
		cfg.Grid.Height = o.height
	}

	if err := cfg.Validate(); err != nil {
		return config.EngineConfig{}, "", fmt.Errorf("invalid configuration (%s): %w", src, err)
	}
	return cfg, src, nil
}

func loadSettings() (snake.Settings, error) {
	cfg, _, err := loadConfig(flagOverrides())
	if err != nil {
		return snake.Settings{}, err
	}
	return cfg.Settings(), nil
}

// newLogger builds the command logger. Output goes to the log file when one
// is set, otherwise to fallback. A nil fallback discards.
func newLogger(level, file string, fallback io.Writer, prefix string) (*log.Logger, func() error, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	w := fallback
	closeFn := func() error { return nil }
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", file, err)
		}
		w, closeFn = f, f.Close
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
	return logger, closeFn, nil
}
