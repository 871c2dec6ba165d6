package testutil

import (
	"sync"

	"github.com/specialistvlad/cargogo/internal/signal"
)

// Recorder collects every signal published on a bus.
type Recorder struct {
	mu      sync.Mutex
	signals []signal.Signal
}

// Record subscribes a new Recorder to bus for the given names (all when
// none are given).
func Record(bus *signal.Bus, names ...signal.Name) *Recorder {
	r := &Recorder{}
	bus.Subscribe(r.handle, names...)
	return r
}

func (r *Recorder) handle(s signal.Signal) {
	r.mu.Lock()
	r.signals = append(r.signals, s)
	r.mu.Unlock()
}

// Signals returns a copy of everything recorded so far.
func (r *Recorder) Signals() []signal.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]signal.Signal(nil), r.signals...)
}

// Names returns the recorded signal names in order.
func (r *Recorder) Names() []signal.Name {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]signal.Name, 0, len(r.signals))
	for _, s := range r.signals {
		out = append(out, s.Name)
	}
	return out
}

// Count returns how many signals with the given name were recorded.
func (r *Recorder) Count(name signal.Name) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.signals {
		if s.Name == name {
			n++
		}
	}
	return n
}

// Lines returns the line numbers of the recorded step-executing signals.
func (r *Recorder) Lines() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, s := range r.signals {
		if s.Name == signal.StepExecuting {
			out = append(out, s.Line)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.signals = nil
	r.mu.Unlock()
}
