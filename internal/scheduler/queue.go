package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/cargogo/internal/ctxlog"
)

const (
	DefaultDelay = 250 * time.Millisecond
	MinDelay     = 1 * time.Millisecond
	MaxDelay     = 10 * time.Second
)

// Action is a deferred unit of work.
type Action func()

// Option configures a Queue.
type Option func(*Queue)

// WithDelay sets the initial delay between automatic drains, clamped to the
// allowed range.
func WithDelay(d time.Duration) Option {
	return func(q *Queue) { q.delay = clamp(d) }
}

// WithOnEmpty registers a hook called every time a drain leaves the queue
// empty, or a drain is attempted on an empty queue.
func WithOnEmpty(fn func()) Option {
	return func(q *Queue) { q.onEmpty = fn }
}

// Queue is an ordered list of pending actions with a timed drain loop.
type Queue struct {
	mu      sync.Mutex
	actions []Action
	delay   time.Duration
	paused  bool
	// active is true while the Run loop should keep draining on its timer.
	active  bool
	onEmpty func()

	// wake nudges the Run loop to re-read its state.
	wake chan struct{}
	// exec serializes action invocation between Run and Step.
	exec sync.Mutex
}

// New creates an idle, empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		delay: DefaultDelay,
		wake:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func clamp(d time.Duration) time.Duration {
	if d < MinDelay {
		return MinDelay
	}
	if d > MaxDelay {
		return MaxDelay
	}
	return d
}

func (q *Queue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// EnqueueBack appends actions to the tail in the given order.
func (q *Queue) EnqueueBack(actions ...Action) {
	q.mu.Lock()
	q.actions = append(q.actions, actions...)
	q.mu.Unlock()
}

// EnqueueFront inserts actions at the head; the first argument becomes the
// next action to run and the rest follow it in order.
func (q *Queue) EnqueueFront(actions ...Action) {
	if len(actions) == 0 {
		return
	}
	q.mu.Lock()
	merged := make([]Action, 0, len(actions)+len(q.actions))
	merged = append(merged, actions...)
	q.actions = append(merged, q.actions...)
	q.mu.Unlock()
}

// Len returns the number of pending actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}

// IsEmpty reports whether nothing is pending.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// Paused reports whether automatic draining has been paused.
func (q *Queue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// Active reports whether the Run loop is currently draining on its timer.
func (q *Queue) Active() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// DrainOne pops and invokes the head action. It reports whether an action
// ran. The OnEmpty hook fires when the queue is empty afterwards.
func (q *Queue) DrainOne() bool {
	q.exec.Lock()
	defer q.exec.Unlock()
	return q.drain()
}

// Do runs fn while no action is executing, so fn may read or mutate state the
// actions touch. fn must not call DrainOne, Step or Do.
func (q *Queue) Do(fn func()) {
	q.exec.Lock()
	defer q.exec.Unlock()
	fn()
}

// drain must be called with exec held.
func (q *Queue) drain() bool {
	q.mu.Lock()
	if len(q.actions) == 0 {
		q.active = false
		q.mu.Unlock()
		q.emptied()
		return false
	}
	head := q.actions[0]
	q.actions[0] = nil
	q.actions = q.actions[1:]
	q.mu.Unlock()

	head()

	q.mu.Lock()
	empty := len(q.actions) == 0
	if empty {
		q.active = false
	}
	q.mu.Unlock()

	if empty {
		q.emptied()
	}
	return true
}

func (q *Queue) emptied() {
	if q.onEmpty != nil {
		q.onEmpty()
	}
}

// Pause halts automatic draining. Queued actions are kept.
func (q *Queue) Pause() {
	q.mu.Lock()
	q.paused = true
	q.active = false
	q.mu.Unlock()
	q.notify()
}

// Resume (re)starts automatic draining on the next tick.
func (q *Queue) Resume() {
	q.mu.Lock()
	q.paused = false
	q.active = true
	q.mu.Unlock()
	q.notify()
}

// Step pauses the queue and drains exactly one action.
func (q *Queue) Step() bool {
	q.Pause()
	return q.DrainOne()
}

// Clear discards every pending action.
func (q *Queue) Clear() {
	q.mu.Lock()
	clear(q.actions)
	q.actions = nil
	q.mu.Unlock()
}

// Reset pauses the queue, then waits for the running action to return before
// it discards every pending action and calls fn. Nothing can be drained
// between the clear and fn, and an action that enqueued work while Reset was
// waiting loses that work too. fn may be nil; the same limits as Do apply.
func (q *Queue) Reset(fn func()) {
	q.Pause()
	q.exec.Lock()
	defer q.exec.Unlock()
	q.Clear()
	if fn != nil {
		fn()
	}
}

// Delay returns the current pause between automatic drains.
func (q *Queue) Delay() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.delay
}

// Faster halves the delay, never going below MinDelay.
func (q *Queue) Faster() time.Duration {
	return q.setDelay(func(d time.Duration) time.Duration { return d / 2 })
}

// Slower doubles the delay, never going above MaxDelay.
func (q *Queue) Slower() time.Duration {
	return q.setDelay(func(d time.Duration) time.Duration { return d * 2 })
}

// ResetSpeed restores DefaultDelay.
func (q *Queue) ResetSpeed() time.Duration {
	return q.setDelay(func(time.Duration) time.Duration { return DefaultDelay })
}

func (q *Queue) setDelay(fn func(time.Duration) time.Duration) time.Duration {
	q.mu.Lock()
	q.delay = clamp(fn(q.delay))
	d := q.delay
	q.mu.Unlock()
	q.notify()
	return d
}

// Run is the automatic drain loop. While the queue is active it drains one
// action per Delay; otherwise it sleeps until Resume or a speed change. It
// returns when ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scheduler loop started.")
	defer logger.Debug("Scheduler loop stopped.")

	for {
		q.mu.Lock()
		active, delay := q.active, q.delay
		q.mu.Unlock()

		if !active {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-q.wake:
				continue
			}
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-q.wake:
			// State or speed changed; start a fresh tick.
			timer.Stop()
		case <-timer.C:
			q.exec.Lock()
			// Pause may have landed while the timer fired.
			if q.Active() {
				q.drain()
			}
			q.exec.Unlock()
		}
	}
}
