// Package random draws reproducible samples from a seeded generator.
package random

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/libtour/libtour/pkg/errors"
)

// Distribution names.
const (
	Normal  = "normal"
	Uniform = "uniform"
)

// Params describes what to draw.
type Params struct {
	Seed         uint64
	Distribution string
	// Mean and StdDev apply to Normal.
	Mean   float64
	StdDev float64
	// Min and Max bound Uniform, inclusive.
	Min int
	Max int
}

// Validate rejects parameters no sampler can honor.
func (p Params) Validate() error {
	switch p.Distribution {
	case Normal:
		if p.StdDev < 0 || math.IsNaN(p.StdDev) || math.IsNaN(p.Mean) {
			return errors.Newf(errors.ErrInvalidInput, "normal distribution needs a non-negative stddev, got %v", p.StdDev)
		}
	case Uniform:
		if p.Min > p.Max {
			return errors.Newf(errors.ErrInvalidInput, "uniform range [%d, %d] is empty", p.Min, p.Max)
		}
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown distribution %q", p.Distribution).
			WithDetail("supported", []string{Normal, Uniform})
	}
	return nil
}

// Sampler draws from one distribution. It is safe for concurrent use; the
// sequence is deterministic for a given seed when drawn from one goroutine.
type Sampler struct {
	mu     sync.Mutex
	rng    *rand.Rand
	params Params
}

// New returns a sampler seeded with p.Seed.
func New(p Params) (*Sampler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Sampler{
		rng:    rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15)),
		params: p,
	}, nil
}

// Next draws one value. Uniform values are whole numbers.
func (s *Sampler) Next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next()
}

func (s *Sampler) next() float64 {
	switch s.params.Distribution {
	case Uniform:
		// Unsigned arithmetic so ranges wider than math.MaxInt64 do not wrap.
		width := uint64(s.params.Max) - uint64(s.params.Min)
		var offset uint64
		if width == math.MaxUint64 {
			offset = s.rng.Uint64()
		} else {
			offset = s.rng.Uint64N(width + 1)
		}
		return float64(int64(uint64(s.params.Min) + offset))
	default:
		return s.rng.NormFloat64()*s.params.StdDev + s.params.Mean
	}
}

// Sample draws n values in one critical section.
func (s *Sampler) Sample(n int) []float64 {
	if n <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		out[i] = s.next()
	}
	return out
}

// Summary holds basic statistics over a sample.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes population statistics of values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sum := Summary{Count: len(values), Min: values[0], Max: values[0]}
	var total float64
	for _, v := range values {
		total += v
		sum.Min = math.Min(sum.Min, v)
		sum.Max = math.Max(sum.Max, v)
	}
	sum.Mean = total / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - sum.Mean
		sq += d * d
	}
	sum.StdDev = math.Sqrt(sq / float64(len(values)))
	return sum
}
