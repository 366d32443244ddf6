package demos

import (
	"context"
	"maps"

	"github.com/libtour/libtour/pkg/archive"
	"github.com/libtour/libtour/pkg/errors"
)

// Message is the map the serialization demo round-trips.
var Message = map[int]string{
	1: "Hello, ",
	2: "this ",
	3: "is ",
	4: "a ",
	5: "message.",
}

func init() {
	Register(Demo{
		Name:    "serialize",
		Summary: "Write a map to an archive file and read it back",
		Order:   20,
		Run:     runSerialize,
	})
}

func runSerialize(_ context.Context, env *Env) error {
	cfg := env.Config.Archive
	out := env.Out

	out.Header("Serialization (" + cfg.Format + ")")
	printEntries(env, Message)

	if err := archive.Save(env.FS, cfg.Path, cfg.Format, Message); err != nil {
		return err
	}
	out.Trace("Wrote %d entries to %s", len(Message), cfg.Path)

	restored, err := archive.Load(env.FS, cfg.Path, cfg.Format)
	if err != nil {
		return err
	}
	out.Trace("Restored %d entries from %s", len(restored), cfg.Path)
	printEntries(env, restored)

	if !maps.Equal(Message, restored) {
		return errors.New(errors.ErrArchiveInvalid, "restored map differs from the original").
			WithDetail("path", cfg.Path)
	}
	return nil
}

func printEntries(env *Env, entries map[int]string) {
	for _, k := range archive.Keys(entries) {
		env.Out.Line("Key: %d, Value: %s", k, entries[k])
	}
}
