package demos

import (
	"context"
	"io"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/resource"
	"github.com/libtour/libtour/pkg/shared"
)

func init() {
	Register(Demo{
		Name:    "shared",
		Summary: "Release reference-counted buffers exactly once",
		Order:   40,
		Run:     runShared,
	})
}

// makeBuffers allocates three buffers and hands back only the third; the
// first two are released on return.
func makeBuffers(trace io.Writer) *shared.Ref[resource.Buffer] {
	first := resource.NewBuffer(1, trace)
	defer first.Release()
	second := resource.NewBuffer(2, trace)
	defer second.Release()

	return resource.NewBuffer(3, trace)
}

func runShared(_ context.Context, env *Env) error {
	out := env.Out
	out.Header("Shared ownership")

	kept := makeBuffers(out)
	defer kept.Release()

	out.Line("We hold buffer %d, so it outlives the helper and is released when this demo returns.", kept.Get().Value)

	alias, err := kept.Clone()
	if err != nil {
		return err
	}
	out.Field("use count", alias.UseCount())
	alias.Release()
	out.Field("use count", kept.UseCount())

	if kept.Get().Len() != resource.BufferSize {
		return errors.Newf(errors.ErrInternal, "buffer %d was freed while still referenced", kept.Get().Value)
	}
	return nil
}
