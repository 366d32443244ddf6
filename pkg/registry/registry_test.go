package registry

import (
	"cmp"
	"fmt"
	"sync"
	"testing"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Order int
	Label string
}

func TestNew(t *testing.T) {
	reg := New[entry]()
	require.NotNil(t, reg)
	assert.Empty(t, reg.List())
	assert.Empty(t, reg.Values(nil))
}

func TestRegister(t *testing.T) {
	reg := New[entry]()

	t.Run("valid_item", func(t *testing.T) {
		require.NoError(t, reg.Register("random", entry{Order: 3}))
		assert.Equal(t, []string{"random"}, reg.List())
	})

	t.Run("empty_name", func(t *testing.T) {
		err := reg.Register("", entry{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("duplicate", func(t *testing.T) {
		err := reg.Register("random", entry{Order: 9})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
		assert.Equal(t, "random", errors.GetErrorDetails(err)["name"])

		got, err := reg.Get("random")
		require.NoError(t, err)
		assert.Equal(t, 3, got.Order, "first registration wins")
	})
}

func TestGet(t *testing.T) {
	reg := New[entry]()
	MustRegister(reg, "shared", entry{Order: 4, Label: "Shared ownership"})

	got, err := reg.Get("shared")
	require.NoError(t, err)
	assert.Equal(t, "Shared ownership", got.Label)

	_, err = reg.Get("missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, "missing", errors.GetErrorDetails(err)["name"])
}

func TestListIsSorted(t *testing.T) {
	reg := New[entry]()
	for _, name := range []string{"singleton", "random", "version", "shared"} {
		MustRegister(reg, name, entry{})
	}
	assert.Equal(t, []string{"random", "shared", "singleton", "version"}, reg.List())
}

func TestValues(t *testing.T) {
	reg := New[entry]()
	MustRegister(reg, "a", entry{Order: 3, Label: "a"})
	MustRegister(reg, "b", entry{Order: 1, Label: "b"})
	MustRegister(reg, "c", entry{Order: 1, Label: "c"})

	byName := reg.Values(nil)
	assert.Equal(t, []string{"a", "b", "c"}, labels(byName))

	byOrder := reg.Values(func(x, y entry) int { return cmp.Compare(x.Order, y.Order) })
	assert.Equal(t, []string{"b", "c", "a"}, labels(byOrder), "ties keep name order")
}

func TestMustRegisterPanics(t *testing.T) {
	reg := New[entry]()
	MustRegister(reg, "a", entry{})

	assert.Panics(t, func() { MustRegister(reg, "a", entry{}) })
}

func TestConcurrentAccess(t *testing.T) {
	reg := New[entry]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("item%d", i)
			assert.NoError(t, reg.Register(name, entry{Order: i}))
			_, err := reg.Get(name)
			assert.NoError(t, err)
			_ = reg.Values(nil)
		}(i)
	}
	wg.Wait()

	assert.Len(t, reg.List(), 50)
}

func labels(entries []entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}
