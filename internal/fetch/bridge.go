// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package fetch adapts an asynchronous call into observable loading/data/error
// state. A Bridge wraps one function; every Execute performs a fresh call,
// publishes the state transitions to subscribers, raises a notification on
// failure, and hands the original result or error back to the caller.
package fetch

import (
	"context"
	"sync"

	apperrors "examdesk/cli/internal/errors"
)

// State is the observable outcome of a bridge.
// Data is nil until a call succeeds; Error is empty unless the last accepted call failed.
type State[T any] struct {
	Data    *T
	Loading bool
	Error   string
}

// Func is the call a bridge adapts.
type Func[A, T any] func(ctx context.Context, arg A) (T, error)

// Notifier surfaces a failure message to the user.
type Notifier interface {
	Notify(msg string)
}

type options struct {
	notifier Notifier
	silent   bool
	guard    bool
}

// Option configures a Bridge.
type Option func(*options)

// WithNotifier sets where failure messages are sent.
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// Silent suppresses failure notifications. State is still updated.
func Silent() Option {
	return func(o *options) { o.silent = true }
}

// WithSequenceGuard controls whether only the most recently issued call may
// update state. It is on by default; when off, whichever call completes last wins.
func WithSequenceGuard(enabled bool) Option {
	return func(o *options) { o.guard = enabled }
}

// Bridge exposes one call as State. It is safe for concurrent use.
// Subscribers may read State from their callback but must not call Execute
// synchronously from it.
type Bridge[A, T any] struct {
	fn   Func[A, T]
	opts options

	mu        sync.Mutex
	state     State[T]
	seq       uint64
	listeners map[int]func(State[T])
	nextID    int

	// version counts state changes; delivered is the newest one handed to
	// subscribers. Both keep callbacks in the order the state changed.
	version   uint64
	emitMu    sync.Mutex
	delivered uint64
}

// New returns a bridge over fn in its initial state (no data, not loading, no error).
func New[A, T any](fn Func[A, T], opts ...Option) *Bridge[A, T] {
	o := options{guard: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Bridge[A, T]{
		fn:        fn,
		opts:      o,
		listeners: make(map[int]func(State[T])),
	}
}

// State returns a snapshot of the current state.
func (b *Bridge[A, T]) State() State[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Subscribe registers fn to receive every state change and returns a function
// that removes it.
func (b *Bridge[A, T]) Subscribe(fn func(State[T])) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Execute invokes the wrapped call with arg.
//
// On start Loading is set and Error cleared; Data is kept. On success Data is
// replaced and the result returned. On failure Error holds the normalized
// message, Data is left as it was, the notifier is told unless the bridge is
// silent, and the original error is returned unchanged.
func (b *Bridge[A, T]) Execute(ctx context.Context, arg A) (T, error) {
	b.mu.Lock()
	b.seq++
	id := b.seq
	b.state.Loading = true
	b.state.Error = ""
	b.emit(b.snapshotLocked())

	result, err := b.fn(ctx, arg)

	b.mu.Lock()
	if b.opts.guard && id != b.seq {
		// A newer call owns the visible state.
		b.mu.Unlock()
		return result, err
	}
	b.state.Loading = false
	var msg string
	if err != nil {
		msg = apperrors.Message(err)
		b.state.Error = msg
	} else {
		data := result
		b.state.Data = &data
		b.state.Error = ""
	}
	b.emit(b.snapshotLocked())

	if err != nil && !b.opts.silent && b.opts.notifier != nil {
		b.opts.notifier.Notify(msg)
	}
	return result, err
}

type snapshot[T any] struct {
	version   uint64
	state     State[T]
	listeners []func(State[T])
}

// snapshotLocked captures the current state for delivery. It must be called
// with mu held and releases it, so mu is never held while waiting on emitMu.
func (b *Bridge[A, T]) snapshotLocked() snapshot[T] {
	b.version++
	snap := snapshot[T]{version: b.version, state: b.state}
	for i := 0; i < b.nextID; i++ {
		if fn, ok := b.listeners[i]; ok {
			snap.listeners = append(snap.listeners, fn)
		}
	}
	b.mu.Unlock()
	return snap
}

// emit delivers snap unless a newer state has already been delivered.
func (b *Bridge[A, T]) emit(snap snapshot[T]) {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()
	if snap.version <= b.delivered {
		return
	}
	b.delivered = snap.version
	for _, fn := range snap.listeners {
		fn(snap.state)
	}
}
