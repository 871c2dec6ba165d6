package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/cargogo/internal/app"
	"github.com/specialistvlad/cargogo/internal/cli"
	"github.com/specialistvlad/cargogo/internal/hcl"
	"github.com/specialistvlad/cargogo/internal/yaml"
)

// main is the entrypoint for the cargogo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		stop()
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical config errors, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{
				Code:    cli.ExitFailure,
				Message: fmt.Sprintf("application startup panicked: %v", r),
			}
		}
	}()

	// Every supported maze format gets its loader.
	cargoApp := app.NewApp(outW, appConfig, hcl.NewLoader(), yaml.NewLoader())

	return cli.FromRunError(cargoApp.Run(ctx))
}
