package demos

import (
	"cmp"
	"context"
	"time"

	"github.com/spf13/afero"

	"github.com/libtour/libtour/pkg/config"
	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/logging"
	"github.com/libtour/libtour/pkg/registry"
	"github.com/libtour/libtour/pkg/resource"
	"github.com/libtour/libtour/pkg/singleton"
	"github.com/libtour/libtour/pkg/ui"
)

// Build identifies the running libtour binary.
type Build struct {
	Version string
	Commit  string
	Date    string
}

// Env is everything a demo may touch.
type Env struct {
	Out    *ui.Printer
	Config *config.Config
	FS     afero.Fs
	Build  Build
	// Resources is the registry the singleton demo contends on
	Resources *singleton.Registry[resource.Resource]
}

// Demo is one stop of the tour.
type Demo struct {
	Name    string
	Summary string
	// Order positions the demo in the full tour, lowest first
	Order int
	Run   func(ctx context.Context, env *Env) error
}

var demos = registry.New[Demo]()

// Register adds a demo. It panics on a duplicate name.
func Register(d Demo) {
	registry.MustRegister(demos, d.Name, d)
}

// Get returns the named demo.
func Get(name string) (Demo, error) {
	d, err := demos.Get(name)
	if err != nil {
		return Demo{}, errors.Wrapf(err, errors.ErrDemoNotFound, "no demo named %q", name).
			WithDetail("available", demos.List())
	}
	return d, nil
}

// Ordered returns every demo in tour order.
func Ordered() []Demo {
	return demos.Values(func(a, b Demo) int { return cmp.Compare(a.Order, b.Order) })
}

// Run executes the named demos, or the whole tour when names is empty. It
// stops at the first failure.
func Run(ctx context.Context, env *Env, names ...string) error {
	selected := Ordered()
	if len(names) > 0 {
		selected = selected[:0]
		for _, name := range names {
			d, err := Get(name)
			if err != nil {
				return err
			}
			selected = append(selected, d)
		}
	}

	logger := logging.GetLogger("demos")
	for _, d := range selected {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCanceled, "tour interrupted")
		}

		start := time.Now()
		logger.Debug().Str("demo", d.Name).Msg("Running demo")
		if err := d.Run(ctx, env); err != nil {
			if errors.GetErrorCode(err) == errors.ErrCanceled {
				return err
			}
			return errors.Wrapf(err, errors.ErrDemoFailed, "%s demo failed", d.Name).
				WithDetail("demo", d.Name)
		}
		logger.Info().Str("demo", d.Name).Dur("duration", time.Since(start)).Msg("Demo finished")
	}
	return nil
}

// sleep waits for d or until ctx ends.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.ErrCanceled, "interrupted while waiting")
	}
}
