package demos

import (
	"context"
	"fmt"
	"strings"

	"github.com/libtour/libtour/pkg/random"
)

func init() {
	Register(Demo{
		Name:    "random",
		Summary: "Draw seeded samples from a normal or uniform distribution",
		Order:   30,
		Run:     runRandom,
	})
}

func runRandom(_ context.Context, env *Env) error {
	cfg := env.Config.Random
	sampler, err := random.New(random.Params{
		Seed:         cfg.Seed,
		Distribution: cfg.Distribution,
		Mean:         cfg.Mean,
		StdDev:       cfg.StdDev,
		Min:          cfg.Min,
		Max:          cfg.Max,
	})
	if err != nil {
		return err
	}

	out := env.Out
	out.Header("Random numbers (" + titleCase(cfg.Distribution) + " distribution)")
	out.Field("seed", cfg.Seed)

	values := sampler.Sample(cfg.Count)
	for _, v := range values {
		if cfg.Distribution == random.Uniform {
			out.Line("%.0f", v)
		} else {
			out.Line("%.4f", v)
		}
	}

	sum := random.Summarize(values)
	out.Field("count", sum.Count)
	out.Field("mean", fmt.Sprintf("%.4f", sum.Mean))
	out.Field("stddev", fmt.Sprintf("%.4f", sum.StdDev))
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
