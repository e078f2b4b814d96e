// Package fetch abstracts asynchronous flight lookups so the in-memory
// source can be swapped for a real backend without touching callers.
package fetch

import (
	"context"
)

// Future is the pending result of an asynchronous call. Cancelling the
// context passed to Go, or calling Cancel, aborts the call.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	val    T
	err    error
}

func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[T]{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(f.done)
		defer cancel()
		f.val, f.err = fn(ctx)
	}()
	return f
}

func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Cancel aborts the call. The owner calls it on teardown so a late result is
// never delivered.
func (f *Future[T]) Cancel() { f.cancel() }

// Await blocks until the call finishes or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
