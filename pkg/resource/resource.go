// Package resource holds the process-wide shared resource and the
// disposable buffers used by the shared ownership demo.
package resource

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/libtour/libtour/pkg/logging"
	"github.com/libtour/libtour/pkg/shared"
	"github.com/libtour/libtour/pkg/singleton"
)

// Resource is the single object managed by the process-wide registry.
type Resource struct {
	Serial    int64
	CreatedAt time.Time
}

var serials atomic.Int64

// RegistryOptions configures a Resource registry.
type RegistryOptions struct {
	// Trace receives the constructor and destructor lines. Nil discards them.
	Trace io.Writer
	// Delay is slept inside the constructor, widening the construction race.
	Delay time.Duration
}

// NewRegistry returns a registry for Resource.
func NewRegistry(opts RegistryOptions) *singleton.Registry[Resource] {
	trace := opts.Trace
	if trace == nil {
		trace = io.Discard
	}
	logger := logging.GetLogger("resource")

	construct := func(ctx context.Context) (*Resource, error) {
		if opts.Delay > 0 {
			select {
			case <-time.After(opts.Delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		r := &Resource{Serial: serials.Add(1), CreatedAt: time.Now()}
		fmt.Fprintf(trace, "Constructor called for singleton #%d!\n", r.Serial)
		logger.Info().Int64("serial", r.Serial).Msg("Resource constructed")
		return r, nil
	}
	destroy := func(r *Resource) {
		fmt.Fprintf(trace, "Destructor called for singleton #%d!\n", r.Serial)
		logger.Info().Int64("serial", r.Serial).Dur("lifetime", time.Since(r.CreatedAt)).Msg("Resource destroyed")
	}

	return singleton.New(construct,
		singleton.WithName[Resource]("resource"),
		singleton.WithDestructor(destroy))
}

var (
	defaultOnce     sync.Once
	defaultRegistry *singleton.Registry[Resource]

	defaultMu      sync.Mutex
	defaultOptions = RegistryOptions{Trace: os.Stdout}
)

// Configure sets the options of the process-wide registry. It only has an
// effect before the first call to Default, GetInstance or Shutdown, and is
// safe to call concurrently with them.
func Configure(opts RegistryOptions) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOptions = opts
}

// Default returns the process-wide registry.
func Default() *singleton.Registry[Resource] {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		opts := defaultOptions
		defaultMu.Unlock()
		defaultRegistry = NewRegistry(opts)
	})
	return defaultRegistry
}

// GetInstance returns a shared reference to the process-wide Resource,
// constructing it on first use.
func GetInstance() (*shared.Ref[Resource], error) {
	return Default().GetInstance()
}

// Shutdown tears down the process-wide registry. Call it once at exit.
func Shutdown(ctx context.Context) error {
	return Default().Shutdown(ctx)
}
