package shared_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buffer struct {
	value int
	data  []int
}

func TestReleaseLastHandleDestroys(t *testing.T) {
	var destroyed []int
	ref := shared.New(&buffer{value: 3}, func(b *buffer) { destroyed = append(destroyed, b.value) })

	clone, err := ref.Clone()
	require.NoError(t, err)
	assert.EqualValues(t, 2, ref.UseCount())
	assert.Same(t, ref.Get(), clone.Get())
	assert.True(t, ref.Same(clone))

	assert.False(t, ref.Release(), "other holders remain")
	assert.Empty(t, destroyed)
	assert.Nil(t, ref.Get(), "a released handle no longer exposes the value")

	assert.True(t, clone.Release())
	assert.Equal(t, []int{3}, destroyed)

	select {
	case <-clone.Done():
	default:
		t.Fatal("Done should be closed after destruction")
	}
}

func TestReleaseIsIdempotentPerHandle(t *testing.T) {
	var calls atomic.Int32
	ref := shared.New(&buffer{}, func(*buffer) { calls.Add(1) })
	clone, err := ref.Clone()
	require.NoError(t, err)

	ref.Release()
	ref.Release()
	ref.Release()
	assert.EqualValues(t, 1, clone.UseCount(), "repeated release of one handle drops one reference")
	assert.Zero(t, calls.Load())

	clone.Release()
	assert.EqualValues(t, 1, calls.Load())
}

func TestCloneAfterRelease(t *testing.T) {
	ref := shared.New(&buffer{}, nil)
	ref.Release()

	_, err := ref.Clone()
	assert.True(t, errors.IsErrorCode(err, errors.ErrReleased))
}

func TestCloneFromDestroyedValue(t *testing.T) {
	ref := shared.New(&buffer{}, nil)
	// neither handle can bring the value back once it is gone
	other, err := ref.Clone()
	require.NoError(t, err)
	other.Release()
	ref.Release()

	_, err = other.Clone()
	assert.True(t, errors.IsErrorCode(err, errors.ErrReleased))
}

func TestConcurrentCloneRelease(t *testing.T) {
	var calls atomic.Int32
	owner := shared.New(&buffer{data: make([]int, 100)}, func(*buffer) { calls.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h, err := owner.Clone()
				if err != nil {
					t.Error(err)
					return
				}
				assert.Len(t, h.Get().data, 100)
				h.Release()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, owner.UseCount())
	assert.Zero(t, calls.Load())
	owner.Release()
	assert.EqualValues(t, 1, calls.Load())
}

func TestNilHandle(t *testing.T) {
	var ref *shared.Ref[buffer]
	assert.Nil(t, ref.Get())
	assert.False(t, ref.Release())
	assert.Zero(t, ref.UseCount())
	assert.True(t, ref.Same(nil))
	_, err := ref.Clone()
	assert.Error(t, err)
}
