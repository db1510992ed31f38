package event

import (
	"context"
	"runtime/debug"
	"time"
)

// Handler processes one signal.
type Handler interface {
	Handle(ctx context.Context, sig Signal) error
}

// Result is the outcome of dispatching one signal.
type Result struct {
	// Err is the error returned by the handler, if any.
	Err error

	// Panicked is true if the handler panicked.
	Panicked bool

	// PanicValue is the value passed to panic() when Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Duration is how long the handler took.
	Duration time.Duration

	// Skipped is true if the handler never ran (context cancelled).
	Skipped bool
}

// OK returns true if the handler completed without error or panic.
func (r Result) OK() bool {
	return !r.Skipped && !r.Panicked && r.Err == nil
}

// PanicHandler is called when a signal handler panics.
type PanicHandler func(sig Signal, value any, stack []byte)

// Dispatcher executes signal handlers synchronously, in signal order,
// with panic recovery. Signals must be handled exactly once and in
// order: command N's correctness depends on command N-1 having fully
// normalized first, so there is deliberately no async variant.
type Dispatcher struct {
	onPanic PanicHandler
}

// NewDispatcher creates a dispatcher. A nil panic handler swallows the
// panic after recovery.
func NewDispatcher(onPanic PanicHandler) *Dispatcher {
	return &Dispatcher{onPanic: onPanic}
}

// Dispatch runs handler for sig and reports the outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, sig Signal, handler Handler) (result Result) {
	select {
	case <-ctx.Done():
		return Result{Err: ctx.Err(), Skipped: true}
	default:
	}

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		if r := recover(); r != nil {
			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = debug.Stack()
			if d.onPanic != nil {
				func() {
					defer func() { _ = recover() }()
					d.onPanic(sig, r, result.PanicStack)
				}()
			}
		}
	}()

	result.Err = handler.Handle(ctx, sig)
	return result
}
