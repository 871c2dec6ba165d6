package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/cargogo/internal/compiler"
	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/relay"
	"github.com/specialistvlad/cargogo/internal/scoreboard"
	"github.com/specialistvlad/cargogo/internal/session"
	"github.com/specialistvlad/cargogo/internal/signal"
	"github.com/specialistvlad/cargogo/internal/watch"
)

// ErrFinishNotReached is returned by Run when the program stopped without
// the car standing on the finish.
var ErrFinishNotReached = errors.New("finish not reached")

// progressSignals are logged at info level while the car moves.
var progressSignals = []signal.Name{
	signal.Drive,
	signal.Collision,
	signal.TurnLeft,
	signal.TurnRight,
	signal.CreditPickedUp,
	signal.CreditFailed,
	signal.ReachedFinish,
}

// Run plays the selected level with the configured program.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.logger.Debug("App.Run method started.")

	// The scoreboard subscribes before the session exists so it sees the
	// initial credits-placed.
	bus := signal.NewBus()
	board, detach := scoreboard.New(ctx, bus)
	defer detach()
	bus.Subscribe(func(sig signal.Signal) {
		a.logger.Info("Car event.", "signal", sig)
	}, progressSignals...)

	sess, err := session.New(ctx, a.level.Maze, session.WithDelay(a.config.Delay), session.WithBus(bus))
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	a.session, a.board = sess, board

	if a.config.StatusPort > 0 {
		a.startStatusServer(a.config.StatusPort)
		defer a.closeStatusServer()
	}

	if a.config.RelayURL != "" {
		r, err := relay.Connect(ctx, a.config.RelayURL, relay.Options{Namespace: a.config.RelayNamespace})
		if err != nil {
			return fmt.Errorf("failed to connect relay: %w", err)
		}
		defer r.Close()
		defer sess.Bus().Subscribe(r.Forward)()
	}

	text, err := a.readProgram()
	if err != nil {
		return err
	}
	if err := sess.Load(text); err != nil {
		return fmt.Errorf("failed to compile %s: %w", a.config.ProgramPath, err)
	}

	out, unsubscribe := newOutcome(sess.Bus(), a.config.MaxSteps, sess.Pause)
	defer unsubscribe()

	loopDone := make(chan error, 1)
	go func() { loopDone <- sess.Start(ctx) }()
	defer func() {
		cancel()
		<-loopDone
	}()

	if a.config.Watch {
		go a.watchProgram(ctx, out)
	}

	a.logger.Info("🚗 Starting program.", "level", a.level.Name, "delay", a.config.Delay)
	if a.config.StepMode {
		return a.stepLoop(ctx, out)
	}

	if err := sess.Run(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("App.Run cancelled.")
			return nil
		case reason := <-out.halted:
			err := a.report(out, reason)
			if !a.config.Watch {
				return err
			}
			a.logger.Info("Waiting for program changes...")
		}
	}
}

func (a *App) readProgram() (string, error) {
	var (
		data []byte
		err  error
	)
	if a.config.ProgramPath == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(a.config.ProgramPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read program %s: %w", a.config.ProgramPath, err)
	}
	return string(data), nil
}

// watchProgram restarts the level from scratch every time the program file
// changes. A program that no longer compiles leaves the car parked.
func (a *App) watchProgram(ctx context.Context, out *outcome) {
	w := watch.NewFile(a.config.ProgramPath, func(content string) {
		a.logger.Info("Program changed, restarting level.")
		a.session.Reset()
		a.board.Reset()
		out.reset()
		if err := a.session.Load(content); err != nil {
			fmt.Fprintf(a.outW, "compile error: %v\n", err)
			return
		}
		if err := a.session.Run(); err != nil {
			a.logger.Error("Failed to restart program.", "error", err)
		}
	})
	if err := w.Run(ctx); err != nil {
		a.logger.Error("Program watcher stopped.", "error", err)
	}
}

// stepLoop drives the session from line commands read from the input.
func (a *App) stepLoop(ctx context.Context, out *outcome) error {
	fmt.Fprintln(a.outW, "Step mode: Enter steps, r runs, p pauses, + faster, - slower, = default speed, s status, q quits.")
	if program, ok := a.session.Program(); ok {
		for _, line := range compiler.Format(program) {
			fmt.Fprintln(a.outW, "  "+line)
		}
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	sess := a.session
	for {
		select {
		case <-ctx.Done():
			return nil

		case reason := <-out.halted:
			return a.report(out, reason)

		case line, ok := <-lines:
			if !ok {
				a.logger.Debug("Input closed, leaving step mode.")
				return a.report(out, haltQuit)
			}
			switch line {
			case "":
				if err := sess.Step(); err != nil {
					return err
				}
				a.printPosition()
			case "r":
				if err := sess.Run(); err != nil {
					return err
				}
			case "p":
				sess.Pause()
			case "+":
				fmt.Fprintf(a.outW, "delay %s\n", sess.Faster())
			case "-":
				fmt.Fprintf(a.outW, "delay %s\n", sess.Slower())
			case "=":
				fmt.Fprintf(a.outW, "delay %s\n", sess.ResetSpeed())
			case "s":
				fmt.Fprint(a.outW, sess.Snapshot().Grid)
			case "q":
				return a.report(out, haltQuit)
			default:
				fmt.Fprintf(a.outW, "unknown command %q\n", line)
			}
		}
	}
}

func (a *App) printPosition() {
	snap := a.session.Snapshot()
	fmt.Fprintf(a.outW, "car at %s facing %s, %d pending\n", snap.Position, snap.Heading, snap.Pending)
}

// report prints the final board and score and turns the outcome into the
// error Run returns.
func (a *App) report(out *outcome, reason haltReason) error {
	steps, finished := out.result()
	snap := a.session.Snapshot()
	totals := a.board.Totals()

	fmt.Fprint(a.outW, snap.Grid)
	fmt.Fprintf(a.outW, "steps: %d, credits: %d/%d, score: %d\n", steps, totals.Picked, totals.Credits, totals.Score)
	if err := a.board.Err(); err != nil {
		a.logger.Error("Score is unreliable.", "error", err)
	}

	if finished {
		fmt.Fprintln(a.outW, "🏁 The car reached the finish.")
		return nil
	}
	if reason == haltMaxSteps {
		fmt.Fprintf(a.outW, "Stopped after %d steps.\n", steps)
		return fmt.Errorf("%w: stopped after %d steps", ErrFinishNotReached, steps)
	}
	if reason == haltQuit {
		fmt.Fprintln(a.outW, "Stopped before the finish.")
		return fmt.Errorf("%w: car is at %s", ErrFinishNotReached, snap.Position)
	}
	fmt.Fprintln(a.outW, "The program ended before the finish.")
	return fmt.Errorf("%w: car is at %s", ErrFinishNotReached, snap.Position)
}
