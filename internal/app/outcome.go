package app

import (
	"sync"

	"github.com/specialistvlad/cargogo/internal/signal"
)

type haltReason int

const (
	haltQueueEmpty haltReason = iota + 1
	haltMaxSteps
	haltQuit
)

// outcome follows a run through the bus: whether the car reached the finish
// and why execution stopped.
type outcome struct {
	maxSteps int
	pause    func()

	mu       sync.Mutex
	steps    int
	finished bool

	halted chan haltReason
}

func newOutcome(bus *signal.Bus, maxSteps int, pause func()) (*outcome, func()) {
	o := &outcome{
		maxSteps: maxSteps,
		pause:    pause,
		halted:   make(chan haltReason, 1),
	}
	unsubscribe := bus.Subscribe(o.handle, signal.StepExecuting, signal.ReachedFinish, signal.QueueEmpty)
	return o, unsubscribe
}

func (o *outcome) handle(sig signal.Signal) {
	switch sig.Name {
	case signal.ReachedFinish:
		o.mu.Lock()
		o.finished = true
		o.mu.Unlock()

	case signal.QueueEmpty:
		o.halt(haltQueueEmpty)

	case signal.StepExecuting:
		o.mu.Lock()
		o.steps++
		hit := o.maxSteps > 0 && o.steps == o.maxSteps
		o.mu.Unlock()
		if hit {
			o.pause()
			o.halt(haltMaxSteps)
		}
	}
}

func (o *outcome) halt(r haltReason) {
	select {
	case o.halted <- r:
	default:
	}
}

func (o *outcome) result() (steps int, finished bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.steps, o.finished
}

// reset forgets the previous attempt.
func (o *outcome) reset() {
	o.mu.Lock()
	o.steps = 0
	o.finished = false
	o.mu.Unlock()
	select {
	case <-o.halted:
	default:
	}
}
