// Package shared provides reference-counted handles to a value.
//
// A Ref is one holder's claim on a value. Cloning a Ref adds a holder;
// releasing it drops one. When the last holder releases, the value's
// destructor runs exactly once and Done is closed. Handles are safe to
// clone and release from any goroutine.
package shared

import (
	"sync/atomic"

	"github.com/libtour/libtour/pkg/errors"
)

// Destructor releases whatever a value owns. It runs once, on the goroutine
// that drops the last reference.
type Destructor[T any] func(*T)

type control[T any] struct {
	value   *T
	refs    atomic.Int64
	destroy Destructor[T]
	done    chan struct{}
}

// Ref is a single holder's handle. The zero value is not usable; create
// handles with New or Clone.
type Ref[T any] struct {
	ctl      *control[T]
	released atomic.Bool
}

// New takes ownership of value and returns the first handle to it.
// destroy may be nil.
func New[T any](value *T, destroy Destructor[T]) *Ref[T] {
	ctl := &control[T]{
		value:   value,
		destroy: destroy,
		done:    make(chan struct{}),
	}
	ctl.refs.Store(1)
	return &Ref[T]{ctl: ctl}
}

// Get returns the shared value, or nil once this handle has been released.
func (r *Ref[T]) Get() *T {
	if r == nil || r.released.Load() {
		return nil
	}
	return r.ctl.value
}

// Clone returns a new handle to the same value. It fails if this handle
// was released or the value has already been destroyed.
func (r *Ref[T]) Clone() (*Ref[T], error) {
	if r == nil || r.released.Load() {
		return nil, errors.New(errors.ErrReleased, "cannot clone a released reference")
	}
	for {
		n := r.ctl.refs.Load()
		if n <= 0 {
			return nil, errors.New(errors.ErrReleased, "value has already been destroyed")
		}
		if r.ctl.refs.CompareAndSwap(n, n+1) {
			return &Ref[T]{ctl: r.ctl}, nil
		}
	}
}

// Release drops this handle's reference. Calling it more than once on the
// same handle is a no-op. It reports whether this call destroyed the value.
func (r *Ref[T]) Release() bool {
	if r == nil || !r.released.CompareAndSwap(false, true) {
		return false
	}
	if r.ctl.refs.Add(-1) != 0 {
		return false
	}
	if r.ctl.destroy != nil {
		r.ctl.destroy(r.ctl.value)
	}
	close(r.ctl.done)
	return true
}

// UseCount is the number of live handles sharing the value.
func (r *Ref[T]) UseCount() int64 {
	if r == nil {
		return 0
	}
	return r.ctl.refs.Load()
}

// Same reports whether both handles share one value.
func (r *Ref[T]) Same(other *Ref[T]) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ctl == other.ctl
}

// Done is closed after the destructor has run.
func (r *Ref[T]) Done() <-chan struct{} {
	return r.ctl.done
}
