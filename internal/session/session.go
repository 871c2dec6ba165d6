package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/specialistvlad/cargogo/internal/compiler"
	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/interpreter"
	"github.com/specialistvlad/cargogo/internal/scheduler"
	"github.com/specialistvlad/cargogo/internal/signal"
	"github.com/specialistvlad/cargogo/internal/world"
)

// ErrNoProgram is returned by Run and Step before a program has been loaded.
var ErrNoProgram = errors.New("no program loaded")

// Option configures a Session.
type Option func(*options)

type options struct {
	delay time.Duration
	bus   *signal.Bus
}

// WithDelay sets the initial pause between automatically drained actions.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithBus makes the session publish on an existing bus instead of a new one.
func WithBus(bus *signal.Bus) Option {
	return func(o *options) { o.bus = bus }
}

// Session owns every moving part of a single game.
type Session struct {
	logger *slog.Logger
	bus    *signal.Bus
	world  *world.World
	queue  *scheduler.Queue
	interp *interpreter.Interpreter
	cache  *compiler.Cache

	mu      sync.Mutex
	program compiler.Program
	loaded  bool
}

// New builds a session for maze. The maze is validated and copied; the
// caller may reuse it.
func New(ctx context.Context, maze *world.Maze, opts ...Option) (*Session, error) {
	o := options{delay: scheduler.DefaultDelay}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bus == nil {
		o.bus = signal.NewBus()
	}

	if maze == nil {
		return nil, errors.New("maze is required")
	}
	w, err := world.New(maze)
	if err != nil {
		return nil, fmt.Errorf("failed to build world for maze %q: %w", maze.Name, err)
	}

	logger := ctxlog.FromContext(ctx).With("maze", maze.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	s := &Session{
		logger: logger,
		bus:    o.bus,
		world:  w,
		cache:  compiler.NewCache(o.bus),
	}
	s.bus.Subscribe(func(sig signal.Signal) {
		s.logger.Debug("Signal published.", "signal", sig)
	})

	s.queue = scheduler.New(
		scheduler.WithDelay(o.delay),
		scheduler.WithOnEmpty(func() {
			s.bus.Publish(signal.Signal{Name: signal.QueueEmpty})
		}),
	)
	s.interp = interpreter.New(ctx, s.queue, s.world, s.bus)

	s.placeCredits()
	logger.Debug("Session created.", "width", maze.Width, "height", maze.Height)
	return s, nil
}

func (s *Session) placeCredits() {
	s.bus.Publish(signal.Signal{Name: signal.CreditsPlaced, Count: s.world.Grid().Credits()})
}

// Bus returns the bus every signal of this session is published on.
func (s *Session) Bus() *signal.Bus {
	return s.bus
}

// Load compiles text and makes it the current program. On a compile error
// the previous program stays in place and nothing is enqueued.
func (s *Session) Load(text string) error {
	program, err := s.cache.Parse(text)
	if err != nil {
		s.logger.Warn("Program failed to compile.", "error", err)
		return err
	}

	s.mu.Lock()
	s.program = program
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("Program loaded.", "commands", compiler.Count(program))
	return nil
}

// Program returns the current program, if one has been loaded.
func (s *Session) Program() (compiler.Program, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program, s.loaded
}

// Run seeds the queue with the current program when nothing is pending and
// resumes automatic execution.
func (s *Session) Run() error {
	program, ok := s.Program()
	if !ok {
		return ErrNoProgram
	}
	s.interp.Run(program)
	return nil
}

// Step executes exactly one pending action, seeding the queue first when it
// is empty, and leaves the session paused.
func (s *Session) Step() error {
	program, ok := s.Program()
	if !ok {
		return ErrNoProgram
	}
	s.interp.Step(program)
	return nil
}

// Pause halts automatic execution and keeps pending work.
func (s *Session) Pause() {
	s.queue.Pause()
}

// Faster halves the execution delay and returns the new value.
func (s *Session) Faster() time.Duration {
	return s.queue.Faster()
}

// Slower doubles the execution delay and returns the new value.
func (s *Session) Slower() time.Duration {
	return s.queue.Slower()
}

// ResetSpeed restores the default execution delay.
func (s *Session) ResetSpeed() time.Duration {
	return s.queue.ResetSpeed()
}

// Reset discards pending work and puts the maze back into its initial state.
// The queue is cleared first so no stale action can touch the fresh world.
// Reset is safe to call while an action is executing on another goroutine;
// it waits for that action and drops whatever it enqueued.
func (s *Session) Reset() {
	s.queue.Reset(s.world.Reset)
	s.logger.Debug("Session reset.")
	s.placeCredits()
}

// Start runs the scheduler loop until ctx is done. It blocks; callers
// usually run it in its own goroutine.
func (s *Session) Start(ctx context.Context) error {
	err := s.queue.Run(ctxlog.WithLogger(ctx, s.logger))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	Maze     string          `json:"maze"`
	Position world.Position  `json:"position"`
	Heading  world.Direction `json:"heading"`
	Credits  int             `json:"credits"`
	Finished bool            `json:"finished"`
	Pending  int             `json:"pending"`
	Paused   bool            `json:"paused"`
	Running  bool            `json:"running"`
	Delay    string          `json:"delay"`
	Loaded   bool            `json:"loaded"`
	Grid     string          `json:"grid"`
}

// Snapshot reads the session state between two actions.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{Maze: s.world.Maze().Name}
	s.queue.Do(func() {
		car := s.world.Car()
		snap.Position = car.Position()
		snap.Heading = car.Heading()
		snap.Finished = car.OnFinish()
		snap.Credits = s.world.Grid().Credits()
		snap.Grid = s.world.Grid().String()
	})
	snap.Pending = s.queue.Len()
	snap.Paused = s.queue.Paused()
	snap.Running = s.queue.Active()
	snap.Delay = s.queue.Delay().String()
	_, snap.Loaded = s.Program()
	return snap
}
