// Package scoreboard keeps the running score of a game by listening to the
// signals a session publishes.
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/signal"
)

// ErrImpossibleCredits means more credits were picked up than were ever
// placed. Once recorded the scoreboard stops counting.
var ErrImpossibleCredits = errors.New("more credits picked up than placed")

const (
	creditWeight  = 10
	commandWeight = 2
)

// Scoreboard tallies executed steps, picked credits and program size.
type Scoreboard struct {
	logger *slog.Logger

	mu       sync.Mutex
	credits  int
	picked   int
	executed int
	commands int
	err      error
}

// Totals is a copy of the counters behind a score.
type Totals struct {
	Credits  int `json:"credits"`
	Picked   int `json:"picked"`
	Executed int `json:"executed"`
	Commands int `json:"commands"`
	Score    int `json:"score"`
}

// New subscribes a scoreboard to bus. The returned function detaches it.
func New(ctx context.Context, bus *signal.Bus) (*Scoreboard, func()) {
	sb := &Scoreboard{logger: ctxlog.FromContext(ctx).With("component", "scoreboard")}
	unsubscribe := bus.Subscribe(sb.handle,
		signal.StepExecuting,
		signal.CreditPickedUp,
		signal.CreditsPlaced,
		signal.ProgramParsed,
	)
	return sb, unsubscribe
}

func (sb *Scoreboard) handle(sig signal.Signal) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	// A freshly parsed program starts a new attempt, even after an error.
	if sig.Name == signal.ProgramParsed {
		sb.commands = sig.Count
		sb.resetLocked()
		return
	}
	if sb.err != nil {
		return
	}

	switch sig.Name {
	case signal.StepExecuting:
		sb.executed++
	case signal.CreditsPlaced:
		sb.credits = sig.Count
	case signal.CreditPickedUp:
		sb.picked++
		if sb.picked > sb.credits {
			sb.err = fmt.Errorf("%w: picked %d of %d", ErrImpossibleCredits, sb.picked, sb.credits)
			sb.logger.Error("Scoreboard stopped counting.", "error", sb.err)
		}
	}
}

// Score returns the current score.
//
// Every credit left in the maze costs ten points, every executed step one
// and every command in the program two. Lower is better.
func (sb *Scoreboard) Score() int {
	return sb.Totals().Score
}

// Totals returns the counters and the score computed from them.
func (sb *Scoreboard) Totals() Totals {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return Totals{
		Credits:  sb.credits,
		Picked:   sb.picked,
		Executed: sb.executed,
		Commands: sb.commands,
		Score:    (sb.credits-sb.picked)*creditWeight + sb.executed + sb.commands*commandWeight,
	}
}

// Err returns the error that stopped the scoreboard, if any.
func (sb *Scoreboard) Err() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.err
}

// Reset zeroes the executed and picked counters for a new attempt and lets a
// stopped scoreboard count again.
func (sb *Scoreboard) Reset() {
	sb.mu.Lock()
	sb.resetLocked()
	sb.mu.Unlock()
}

func (sb *Scoreboard) resetLocked() {
	sb.executed = 0
	sb.picked = 0
	sb.err = nil
}
