package config

import (
	_ "embed"
	"time"

	"github.com/libtour/libtour/pkg/errors"
)

//go:embed defaults.toml
var defaultConfig []byte

// DefaultContent returns the embedded defaults file.
func DefaultContent() string {
	return string(defaultConfig)
}

type Config struct {
	Random    RandomConfig    `koanf:"random"`
	Archive   ArchiveConfig   `koanf:"archive"`
	Singleton SingletonConfig `koanf:"singleton"`
	Output    OutputConfig    `koanf:"output"`
}

type RandomConfig struct {
	Seed         uint64  `koanf:"seed"`
	Count        int     `koanf:"count"`
	Distribution string  `koanf:"distribution"`
	Mean         float64 `koanf:"mean"`
	StdDev       float64 `koanf:"stddev"`
	Min          int     `koanf:"min"`
	Max          int     `koanf:"max"`
}

type ArchiveConfig struct {
	Path   string `koanf:"path"`
	Format string `koanf:"format"`
}

type SingletonConfig struct {
	Workers    int           `koanf:"workers"`
	Iterations int           `koanf:"iterations"`
	Interval   time.Duration `koanf:"interval"`
	Delay      time.Duration `koanf:"delay"`
}

type OutputConfig struct {
	Style string `koanf:"style"`
	Color string `koanf:"color"`
}

// Validate checks ranges that do not depend on another package. Unknown
// distributions and archive formats are rejected where they are used.
func (c *Config) Validate() error {
	switch {
	case c.Random.Count < 0:
		return invalid("random.count", c.Random.Count, "must not be negative")
	case c.Random.StdDev < 0:
		return invalid("random.stddev", c.Random.StdDev, "must not be negative")
	case c.Random.Min > c.Random.Max:
		return invalid("random.min", c.Random.Min, "must not exceed random.max")
	case c.Archive.Path == "":
		return invalid("archive.path", c.Archive.Path, "must not be empty")
	case c.Singleton.Workers < 0:
		return invalid("singleton.workers", c.Singleton.Workers, "must not be negative")
	case c.Singleton.Iterations < 1:
		return invalid("singleton.iterations", c.Singleton.Iterations, "must be at least 1")
	case c.Singleton.Interval < 0:
		return invalid("singleton.interval", c.Singleton.Interval, "must not be negative")
	case c.Singleton.Delay < 0:
		return invalid("singleton.delay", c.Singleton.Delay, "must not be negative")
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return invalid("output.color", c.Output.Color, "must be auto, always or never")
	}
	return nil
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "%s %s", key, reason).
		WithDetail("key", key).
		WithDetail("value", value)
}
