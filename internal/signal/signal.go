// Package signal defines the named, ordered notifications the engine emits
// for collaborators (progress highlighting, audio, scoring, remote relays)
// and a small synchronous bus to deliver them.
package signal

import (
	"log/slog"
	"sync"

	"github.com/specialistvlad/cargogo/internal/world"
)

// Name identifies a kind of signal.
type Name string

const (
	ProgramParsed  Name = "program-parsed"
	ProgramEmpty   Name = "program-empty"
	ParseError     Name = "parse-error"
	StepExecuting  Name = "step-executing"
	Drive          Name = "drive"
	Collision      Name = "collision"
	TurnLeft       Name = "turn-left"
	TurnRight      Name = "turn-right"
	CreditPickedUp Name = "credit-picked-up"
	CreditFailed   Name = "credit-failed"
	ReachedFinish  Name = "reached-finish"
	QueueEmpty     Name = "queue-empty"
	CreditsPlaced  Name = "credits-placed"
)

// Signal carries a Name and whatever context is relevant to it. Fields that
// do not apply to a given Name are left at their zero value.
type Signal struct {
	Name Name
	// Line is the 1-based program line for step-executing and parse-error.
	Line int
	// From and To are the car's cell before and after drive, and the car's
	// cell for collision, turns and credit signals.
	From world.Position
	To   world.Position
	// Heading is the car's heading after a turn.
	Heading world.Direction
	// Count is the credit total for credits-placed and the command count for
	// program-parsed.
	Count int
	// Text is the offending source line for parse-error.
	Text string
	Err  error
}

// LogValue implements slog.LogValuer so signals log as a compact group.
func (s Signal) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("name", string(s.Name))}
	switch s.Name {
	case StepExecuting:
		attrs = append(attrs, slog.Int("line", s.Line))
	case Drive:
		attrs = append(attrs, slog.String("from", s.From.String()), slog.String("to", s.To.String()))
	case Collision, CreditPickedUp, CreditFailed, ReachedFinish:
		attrs = append(attrs, slog.String("at", s.From.String()))
	case TurnLeft, TurnRight:
		attrs = append(attrs, slog.String("heading", string(s.Heading)))
	case CreditsPlaced, ProgramParsed:
		attrs = append(attrs, slog.Int("count", s.Count))
	case ParseError:
		attrs = append(attrs, slog.Int("line", s.Line), slog.String("text", s.Text))
	}
	if s.Err != nil {
		attrs = append(attrs, slog.String("error", s.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}

// Handler receives published signals.
type Handler func(Signal)

type subscription struct {
	id    int
	names map[Name]struct{}
	fn    Handler
}

func (s *subscription) wants(n Name) bool {
	if len(s.names) == 0 {
		return true
	}
	_, ok := s.names[n]
	return ok
}

// Bus delivers signals synchronously to subscribers in the order they
// subscribed. A handler may publish; the nested signal is fully delivered
// before the outer Publish continues with the next subscriber.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	nextID int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for the given names, or for every signal when no
// names are given. The returned function removes the subscription.
func (b *Bus) Subscribe(fn Handler, names ...Name) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	if len(names) > 0 {
		sub.names = make(map[Name]struct{}, len(names))
		for _, n := range names {
			sub.names[n] = struct{}{}
		}
	}

	b.mu.Lock()
	b.nextID++
	sub.id = b.nextID
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sub.id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers sig to every interested subscriber. A nil bus drops it.
func (b *Bus) Publish(sig Signal) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, s := range subs {
		if s.wants(sig.Name) {
			s.fn(sig)
		}
	}
}
