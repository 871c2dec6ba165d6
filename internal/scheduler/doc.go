// Package scheduler provides the step queue that paces program execution.
//
// # Why Scheduler Exists
//
// Programs may loop forever and must stay visible and interruptible while
// they run. Instead of recursing through the command tree, the interpreter
// turns every unit of work into a deferred Action and hands it to the Queue.
// The Queue drains one Action per tick, so the call stack never grows with
// program length or loop count, and a user can pause, single-step, change
// speed or clear the run between any two Actions.
//
// # How It Works
//
//  1. Actions are appended (EnqueueBack) or pushed ahead of everything else
//     (EnqueueFront, order within the batch preserved).
//  2. Run drives a timer loop: while active, every Delay it pops and invokes
//     the head Action.
//  3. When a drain leaves the queue empty the OnEmpty hook fires and the loop
//     goes idle until Resume.
//  4. Pause stops the timer without losing queued Actions; Step drains exactly
//     one Action regardless and leaves the queue paused.
//
// # Thread-Safety
//
// All methods are safe to call from any goroutine. Actions are always invoked
// without the queue lock held, so they may enqueue freely, and never more than
// one Action runs at a time.
package scheduler
