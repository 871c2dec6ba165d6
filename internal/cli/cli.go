package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/cargogo/internal/app"
	"github.com/specialistvlad/cargogo/internal/compiler"
	"github.com/specialistvlad/cargogo/internal/scheduler"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitNotFinished = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cargogo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
CarGo - drive a car through a maze with a tiny command language.

Usage:
  cargogo [options] MAZE_PATH

Arguments:
  MAZE_PATH
    Path to a .hcl/.yaml maze file or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	programFlag := flagSet.String("program", "", "Path to the program file, '-' reads it from stdin.")
	pFlag := flagSet.String("p", "", "Path to the program file (shorthand).")
	levelFlag := flagSet.String("level", "", "Name of the level to play. Defaults to the first one found.")
	delayFlag := flagSet.Duration("delay", scheduler.DefaultDelay, "Pause between executed commands.")
	stepFlag := flagSet.Bool("step", false, "Step manually: Enter steps, r runs, p pauses, +/- change speed, q quits.")
	watchFlag := flagSet.Bool("watch", false, "Restart the level whenever the program file changes.")
	maxStepsFlag := flagSet.Int("max-steps", 0, "Stop after this many executed commands. 0 is unbounded.")
	relayURLFlag := flagSet.String("relay-url", "", "socket.io server to forward every signal to.")
	relayNSFlag := flagSet.String("relay-namespace", "/", "socket.io namespace for the relay.")
	statusPortFlag := flagSet.Int("status-port", 0, "Port for the HTTP health and status server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No maze path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("expected one MAZE_PATH, got %d", flagSet.NArg())}
	}
	mazePath := flagSet.Arg(0)

	programPath := *programFlag
	if programPath == "" {
		programPath = *pFlag
	}
	if programPath == "" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "a program is required: pass --program FILE"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		MazePath:       mazePath,
		ProgramPath:    programPath,
		Level:          *levelFlag,
		Delay:          *delayFlag,
		StepMode:       *stepFlag,
		Watch:          *watchFlag,
		MaxSteps:       *maxStepsFlag,
		RelayURL:       *relayURLFlag,
		RelayNamespace: *relayNSFlag,
		StatusPort:     *statusPortFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// FromRunError maps an error returned by app.Run to an ExitError. A nil
// error stays nil.
func FromRunError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var parseErr *compiler.ParseError
	switch {
	case errors.As(err, &parseErr):
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	case errors.Is(err, app.ErrFinishNotReached):
		return &ExitError{Code: ExitNotFinished, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
