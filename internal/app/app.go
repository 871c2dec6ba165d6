package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/specialistvlad/cargogo/internal/config"
	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/scoreboard"
	"github.com/specialistvlad/cargogo/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx    context.Context
	outW   io.Writer
	in     io.Reader
	logger *slog.Logger
	config *Config
	model  *config.Model
	level  *config.Level

	// Set by Run.
	session    *session.Session
	board      *scoreboard.Scoreboard
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It configures an
// isolated logger, loads every level through the given loaders and selects
// the level to play.
func NewApp(outW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		// Programmer error: the entrypoint must wire at least one format.
		panic("app: no config loaders given")
	}

	model, err := loadLevels(ctx, cfg.MazePath, loaders...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load levels: %w", err))
	}

	level, err := model.Level(cfg.Level)
	if err != nil {
		panic(fmt.Errorf("failed to select level: %w", err))
	}
	logger.Debug("Level selected.", "level", level.Name, "source", level.Source)

	return &App{
		ctx:    ctx,
		outW:   outW,
		in:     os.Stdin,
		logger: logger,
		config: cfg,
		model:  model,
		level:  level,
	}
}

// WithInput replaces stdin as the source of step mode commands and of a
// program read from "-".
func (a *App) WithInput(r io.Reader) *App {
	a.in = r
	return a
}

// Level returns the level the app plays.
func (a *App) Level() *config.Level {
	return a.level
}
