// Package async provides a one-shot completion signal used to hand the results of
// background work back to the engine's main thread.
package async

import (
	"context"
	"sync"
)

// Future is a value that becomes available exactly once.
// Resolve may be called from any goroutine; callbacks registered with OnResolve run on the
// goroutine that resolves the future, or immediately on the caller if it is already resolved.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	value     T
	err       error
	callbacks []func(T, error)
}

// NewFuture creates an unresolved Future.
//
// Returns:
//   - *Future[T]: the pending future
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve completes the future with a value and error. Only the first call has any effect.
//
// Parameters:
//   - value: the result value
//   - err: the result error (nil on success)
//
// Returns:
//   - bool: true if this call resolved the future, false if it was already resolved
func (f *Future[T]) Resolve(value T, err error) bool {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return false
	}
	f.resolved = true
	f.value = value
	f.err = err
	cbs := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range cbs {
		cb(value, err)
	}
	return true
}

// Done returns a channel that is closed once the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsResolved reports whether Resolve has been called.
func (f *Future[T]) IsResolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

// TryResult returns the result without blocking.
//
// Returns:
//   - T: the value (zero if unresolved)
//   - error: the error (nil if unresolved)
//   - bool: true if the future has resolved
func (f *Future[T]) TryResult() (T, error, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.resolved {
		var zero T
		return zero, nil, false
	}
	return f.value, f.err, true
}

// Wait blocks until the future resolves or ctx is done.
//
// Parameters:
//   - ctx: context bounding the wait
//
// Returns:
//   - T: the resolved value
//   - error: the resolved error, or ctx.Err() if the context ended first
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		v, err, _ := f.TryResult()
		return v, err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// OnResolve registers fn to be called with the result. If the future has already resolved,
// fn runs immediately on the calling goroutine.
//
// Parameters:
//   - fn: the continuation
func (f *Future[T]) OnResolve(fn func(T, error)) {
	f.mu.Lock()
	if !f.resolved {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.value, f.err
	f.mu.Unlock()
	fn(v, err)
}
