package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	MazePath    string // .hcl/.yaml file or directory
	ProgramPath string // program file, "-" for stdin
	Level       string // level name, empty for the first one

	Delay    time.Duration
	StepMode bool
	Watch    bool
	MaxSteps int

	RelayURL       string
	RelayNamespace string
	StatusPort     int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.MazePath == "" {
		return nil, errors.New("MazePath is a required configuration field and cannot be empty")
	}
	if cfg.ProgramPath == "" {
		return nil, errors.New("ProgramPath is a required configuration field and cannot be empty")
	}
	if cfg.ProgramPath == "-" && cfg.StepMode {
		return nil, errors.New("step mode reads commands from stdin, so the program cannot come from stdin too")
	}
	if cfg.ProgramPath == "-" && cfg.Watch {
		return nil, errors.New("cannot watch stdin for changes")
	}
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("MaxSteps must not be negative, got %d", cfg.MaxSteps)
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("Delay must not be negative, got %s", cfg.Delay)
	}
	if cfg.StatusPort < 0 || cfg.StatusPort > 65535 {
		return nil, fmt.Errorf("StatusPort out of range: %d", cfg.StatusPort)
	}
	return &cfg, nil
}
