package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := New[int]()

	require.NoError(t, reg.Register("one", 1))
	assert.Equal(t, 1, reg.Len())

	err := reg.Register("one", 2)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	err = reg.Register("", 3)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	got, err := reg.Get("one")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestReplace(t *testing.T) {
	reg := New[string]()

	require.NoError(t, reg.Replace("copy", "a"))
	require.NoError(t, reg.Replace("copy", "b"))

	got, ok := reg.Lookup("copy")
	assert.True(t, ok)
	assert.Equal(t, "b", got)
	assert.Equal(t, 1, reg.Len())
}

func TestGetMissing(t *testing.T) {
	reg := New[int]()

	got, err := reg.Get("missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, 0, got)
	assert.Equal(t, "missing", errors.GetErrorDetails(err)["name"])

	_, ok := reg.Lookup("missing")
	assert.False(t, ok)
	assert.False(t, reg.Has("missing"))
}

func TestRemove(t *testing.T) {
	reg := New[int]()
	require.NoError(t, reg.Register("one", 1))

	require.NoError(t, reg.Remove("one"))
	assert.False(t, reg.Has("one"))

	err := reg.Remove("one")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestNamesSorted(t *testing.T) {
	reg := New[int]()
	for i, name := range []string{"require-js", "copy", "build-js"} {
		require.NoError(t, reg.Register(name, i))
	}

	assert.Equal(t, []string{"build-js", "copy", "require-js"}, reg.Names())
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := New[int]()
	MustRegister(reg, "one", 1)

	assert.Panics(t, func() { MustRegister(reg, "one", 1) })
}

func TestConcurrentAccess(t *testing.T) {
	reg := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("item%d", i)
			_ = reg.Register(name, i)
			_, _ = reg.Get(name)
			_ = reg.Names()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, reg.Len())
}
