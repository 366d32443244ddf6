package singleton

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/logging"
	"github.com/libtour/libtour/pkg/shared"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// State is the lifecycle stage of a registry's instance.
type State int32

const (
	Uninitialized State = iota
	Constructing
	Ready
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Constructing:
		return "constructing"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Constructor builds the instance. It is called with the context of the Get
// call that won the initialization race.
type Constructor[T any] func(ctx context.Context) (*T, error)

// Option configures a Registry.
type Option[T any] func(*Registry[T])

// WithDestructor sets the function run once when the instance is destroyed.
func WithDestructor[T any](destroy shared.Destructor[T]) Option[T] {
	return func(r *Registry[T]) {
		r.destroy = destroy
	}
}

// WithName sets the name used in logs and errors.
func WithName[T any](name string) Option[T] {
	return func(r *Registry[T]) {
		r.name = name
	}
}

// Registry owns at most one instance of T.
type Registry[T any] struct {
	name      string
	construct Constructor[T]
	destroy   shared.Destructor[T]

	// lock guards check-and-create and shutdown only; it is never held
	// while callers use the instance.
	lock  *semaphore.Weighted
	owner atomic.Pointer[shared.Ref[T]]
	state atomic.Int32
}

// New returns a registry that will build its instance with construct on
// first use.
func New[T any](construct Constructor[T], opts ...Option[T]) *Registry[T] {
	r := &Registry[T]{
		name:      strings.TrimPrefix(fmt.Sprintf("%T", (*T)(nil)), "*"),
		construct: construct,
		lock:      semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the name used in logs and errors.
func (r *Registry[T]) Name() string {
	return r.name
}

// State returns the current lifecycle stage.
func (r *Registry[T]) State() State {
	return State(r.state.Load())
}

// GetInstance returns a reference to the instance, constructing it if
// needed. It waits as long as construction by another caller takes.
// The caller should Release the reference when done with it.
func (r *Registry[T]) GetInstance() (*shared.Ref[T], error) {
	return r.Get(context.Background())
}

// Get is GetInstance with a bounded wait: if ctx ends before the
// initialization lock is acquired, Get returns ErrCanceled and the registry
// is left untouched.
func (r *Registry[T]) Get(ctx context.Context) (*shared.Ref[T], error) {
	if ref, ok := r.acquire(); ok {
		return ref, nil
	}

	if err := r.lock.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCanceled, "gave up waiting for %s", r.name)
	}
	defer r.lock.Release(1)

	// another caller may have published while we waited
	if ref, ok := r.acquire(); ok {
		return ref, nil
	}
	if r.State() == Destroyed {
		return nil, errors.Newf(errors.ErrRegistryClosed, "%s has been shut down", r.name)
	}

	return r.create(ctx)
}

func (r *Registry[T]) acquire() (*shared.Ref[T], bool) {
	owner := r.owner.Load()
	if owner == nil {
		return nil, false
	}
	ref, err := owner.Clone()
	if err != nil {
		return nil, false
	}
	return ref, true
}

// create must be called with lock held.
func (r *Registry[T]) create(ctx context.Context) (*shared.Ref[T], error) {
	logger := r.logger()
	r.state.Store(int32(Constructing))
	done := logging.LogOperationStart(logger, "construct")
	defer done()

	value, err := r.runConstructor(ctx)
	if err != nil {
		r.state.Store(int32(Uninitialized))
		logger.Warn().Err(err).Msg("Construction failed, next call will retry")
		return nil, errors.Wrapf(err, errors.ErrConstruction, "failed to construct %s", r.name)
	}

	owner := shared.New(value, r.destroy)
	ref, err := owner.Clone()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "fresh reference could not be cloned")
	}
	r.owner.Store(owner)
	r.state.Store(int32(Ready))

	logger.Debug().Msg("Instance published")
	return ref, nil
}

func (r *Registry[T]) runConstructor(ctx context.Context) (value *T, err error) {
	defer func() {
		if p := recover(); p != nil {
			value = nil
			err = errors.Newf(errors.ErrInternal, "constructor panicked: %v", p)
		}
	}()

	value, err = r.construct(ctx)
	if err == nil && value == nil {
		err = errors.New(errors.ErrInternal, "constructor returned no instance")
	}
	return value, err
}

// Shutdown closes the registry and drops its own reference to the instance.
// The destructor runs once the last outstanding reference is released;
// Shutdown waits for that until ctx ends, then returns ErrCanceled with the
// number of references still held. Calling Shutdown again is a no-op.
func (r *Registry[T]) Shutdown(ctx context.Context) error {
	if err := r.lock.Acquire(ctx, 1); err != nil {
		return errors.Wrapf(err, errors.ErrCanceled, "gave up waiting to shut down %s", r.name)
	}
	prev := State(r.state.Swap(int32(Destroyed)))
	owner := r.owner.Swap(nil)
	r.lock.Release(1)

	logger := r.logger()
	if prev == Destroyed || owner == nil {
		logger.Debug().Str("previous", prev.String()).Msg("Shutdown with no live instance")
		return nil
	}

	owner.Release()
	select {
	case <-owner.Done():
		logger.Debug().Msg("Instance destroyed")
		return nil
	case <-ctx.Done():
		select {
		case <-owner.Done():
			return nil
		default:
		}
		return errors.Wrapf(ctx.Err(), errors.ErrCanceled, "%s is still referenced", r.name).
			WithDetail("refs", owner.UseCount())
	}
}

func (r *Registry[T]) logger() zerolog.Logger {
	return logging.GetLogger("singleton").With().Str("instance", r.name).Logger()
}
