package demos

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/resource"
)

func init() {
	Register(Demo{
		Name:    "singleton",
		Summary: "Contend for the process-wide resource from several goroutines",
		Order:   50,
		Run:     runSingleton,
	})
}

// contention tracks what the goroutines observed.
type contention struct {
	first        atomic.Pointer[resource.Resource]
	acquisitions atomic.Int64
}

func (c *contention) observe(r *resource.Resource) error {
	c.acquisitions.Add(1)
	if c.first.CompareAndSwap(nil, r) {
		return nil
	}
	if seen := c.first.Load(); seen != r {
		return errors.Newf(errors.ErrInternal, "observed two instances: #%d and #%d", seen.Serial, r.Serial)
	}
	return nil
}

func runSingleton(ctx context.Context, env *Env) error {
	cfg := env.Config.Singleton
	out := env.Out
	reg := env.Resources
	out.Header("Multithreading")

	var seen contention
	contend := func(ctx context.Context, who string) error {
		for i := 0; i < cfg.Iterations; i++ {
			out.Line("%s - main body", who)
			if err := sleep(ctx, cfg.Interval); err != nil {
				return err
			}
			ref, err := reg.Get(ctx)
			if err != nil {
				return err
			}
			err = seen.observe(ref.Get())
			ref.Release()
			if err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 1; w <= cfg.Workers; w++ {
		who := fmt.Sprintf("Worker %d", w)
		g.Go(func() error { return contend(gctx, who) })
	}
	g.Go(func() error { return contend(gctx, "Main") })
	if err := g.Wait(); err != nil {
		return err
	}

	if err := reg.Shutdown(ctx); err != nil {
		return err
	}

	out.Field("goroutines", cfg.Workers+1)
	out.Field("acquisitions", seen.acquisitions.Load())
	if r := seen.first.Load(); r != nil {
		out.Success("Every acquisition observed instance #%d", r.Serial)
	}
	return nil
}
