package fetch

import (
	"context"
	"errors"
	"sync"
)

// ErrNotMounted is returned when Execute is called before Mount.
var ErrNotMounted = errors.New("operation not mounted")

// Operation wraps a single server call and tracks its lifecycle state
// (loading flag, last result, last error) for the consumer. Execute refuses
// to run until Mount has been called, so a consumer cannot act on state it
// has not finished initializing.
type Operation[T any] struct {
	mu      sync.Mutex
	mounted bool
	loading bool
	data    T
	err     error
}

func New[T any]() *Operation[T] {
	return &Operation[T]{}
}

// Mount marks the consumer ready. Until then Execute is a no-op.
func (o *Operation[T]) Mount() {
	o.mu.Lock()
	o.mounted = true
	o.mu.Unlock()
}

func (o *Operation[T]) Mounted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mounted
}

// Execute runs fn, recording loading state, result and error. The error is
// both stored (readable via Err) and returned, so callers can react either
// way. Loading is always cleared, including on panic.
func (o *Operation[T]) Execute(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	o.mu.Lock()
	if !o.mounted {
		o.mu.Unlock()
		return zero, ErrNotMounted
	}
	o.loading = true
	o.err = nil
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.loading = false
		o.mu.Unlock()
	}()

	result, err := fn(ctx)

	o.mu.Lock()
	if err != nil {
		o.err = err
	} else {
		o.data = result
	}
	o.mu.Unlock()

	if err != nil {
		return zero, err
	}
	return result, nil
}

func (o *Operation[T]) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

func (o *Operation[T]) Data() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.data
}

func (o *Operation[T]) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// SetData overrides the stored result, for consumers that mutate state
// locally after a call (optimistic updates).
func (o *Operation[T]) SetData(v T) {
	o.mu.Lock()
	o.data = v
	o.mu.Unlock()
}
