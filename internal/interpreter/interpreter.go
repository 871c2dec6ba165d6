package interpreter

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/cargogo/internal/compiler"
	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/scheduler"
	"github.com/specialistvlad/cargogo/internal/signal"
	"github.com/specialistvlad/cargogo/internal/world"
)

// Interpreter drives a program through a scheduler queue against a world.
type Interpreter struct {
	queue  *scheduler.Queue
	world  *world.World
	bus    *signal.Bus
	logger *slog.Logger
}

// New wires an interpreter. bus may be nil when nobody listens.
func New(ctx context.Context, queue *scheduler.Queue, w *world.World, bus *signal.Bus) *Interpreter {
	return &Interpreter{
		queue:  queue,
		world:  w,
		bus:    bus,
		logger: ctxlog.FromContext(ctx).With("component", "interpreter"),
	}
}

// Run seeds the queue with the top-level program when nothing is pending and
// (re)starts automatic draining. Calling Run on a queue that is already
// seeded only resumes it.
func (in *Interpreter) Run(program compiler.Program) {
	in.seed(program)
	in.queue.Resume()
}

// Step seeds the queue the same way as Run, then drains a single action and
// leaves the queue paused.
func (in *Interpreter) Step(program compiler.Program) {
	in.seed(program)
	in.queue.Step()
}

func (in *Interpreter) seed(program compiler.Program) {
	if !in.queue.IsEmpty() {
		return
	}
	in.logger.Debug("Seeding queue with program.", "commands", len(program))
	in.queue.EnqueueBack(in.actions(program)...)
}

func (in *Interpreter) actions(cmds []compiler.Command) []scheduler.Action {
	out := make([]scheduler.Action, len(cmds))
	for i, cmd := range cmds {
		out[i] = in.action(cmd)
	}
	return out
}

func (in *Interpreter) action(cmd compiler.Command) scheduler.Action {
	return func() { in.execute(cmd) }
}

// execute is the body of every queued action.
func (in *Interpreter) execute(cmd compiler.Command) {
	in.bus.Publish(signal.Signal{Name: signal.StepExecuting, Line: compiler.MetaOf(cmd).Line})

	switch c := cmd.(type) {
	case *compiler.Simple:
		in.perform(c.Instruction)

	case *compiler.Conditional:
		if !in.guard(c.Control, c.Condition) {
			return
		}
		in.perform(c.Instruction)
		if c.Control.IsLoop() {
			in.queue.EnqueueFront(in.action(c))
		}

	case *compiler.Block:
		if !in.guard(c.Control, c.Condition) {
			return
		}
		body := in.actions(c.Children)
		if c.Control.IsLoop() {
			body = append(body, in.action(c))
		}
		in.queue.EnqueueFront(body...)
	}
}

// guard evaluates a condition through the car's sensors, inverted for
// UNLESS and UNTIL.
func (in *Interpreter) guard(control compiler.Control, cond compiler.Condition) bool {
	car := in.world.Car()

	var ok bool
	switch cond {
	case compiler.OnCredit:
		ok = car.OnCredit()
	case compiler.OnFinish:
		ok = car.OnFinish()
	case compiler.WallAhead:
		ok = car.WallAhead()
	}
	if control.Inverts() {
		ok = !ok
	}
	return ok
}

// perform applies one instruction to the car and reports the outcome.
func (in *Interpreter) perform(instr compiler.Instruction) {
	car := in.world.Car()

	switch instr {
	case compiler.Drive:
		move := car.Drive()
		if !move.Moved {
			in.bus.Publish(signal.Signal{Name: signal.Collision, From: move.From, To: move.From})
			return
		}
		in.bus.Publish(signal.Signal{Name: signal.Drive, From: move.From, To: move.To})
		if move.Finished {
			in.bus.Publish(signal.Signal{Name: signal.ReachedFinish, From: move.To, To: move.To})
		}

	case compiler.TurnLeft:
		h := car.TurnLeft()
		in.bus.Publish(signal.Signal{Name: signal.TurnLeft, From: car.Position(), To: car.Position(), Heading: h})

	case compiler.TurnRight:
		h := car.TurnRight()
		in.bus.Publish(signal.Signal{Name: signal.TurnRight, From: car.Position(), To: car.Position(), Heading: h})

	case compiler.PickUpCredit:
		name := signal.CreditFailed
		if car.PickUpCredit() {
			name = signal.CreditPickedUp
		}
		in.bus.Publish(signal.Signal{Name: name, From: car.Position(), To: car.Position()})

	case compiler.Stop:
		// Ends a branch on purpose; the car stays put.
	}
}
