package memo

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetSet(t *testing.T) {
	s := NewStore[int](4)
	require.True(t, s.Enabled())

	_, err := s.Get("a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("a", 1))
	v, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, s.Set("a", 2))
	v, _ = s.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, s.Len())

	assert.ErrorIs(t, s.Set("", 1), ErrInvalidKey)
	_, err = s.Get("")
	assert.ErrorIs(t, err, ErrInvalidKey)

	st := s.Stats()
	assert.Equal(t, uint64(2), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
	assert.InDelta(t, 2.0/3.0, st.HitRate(), 1e-12)
}

func TestStoreEviction(t *testing.T) {
	s := NewStore[string](3)
	for i := range 5 {
		require.NoError(t, s.Set(fmt.Sprintf("k%d", i), fmt.Sprint(i)))
	}
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, uint64(2), s.Stats().Evicted)

	for _, k := range []string{"k0", "k1"} {
		_, err := s.Get(k)
		assert.ErrorIs(t, err, ErrNotFound, k)
	}
	for _, k := range []string{"k2", "k3", "k4"} {
		_, err := s.Get(k)
		assert.NoError(t, err, k)
	}
}

func TestStoreDisabled(t *testing.T) {
	s := NewStore[int](-1)
	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.Set("a", 1), ErrDisabled)
	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrDisabled)

	calls := 0
	for range 3 {
		v, hit := s.GetOrCompute("a", func() int { calls++; return 7 })
		assert.Equal(t, 7, v)
		assert.False(t, hit)
	}
	assert.Equal(t, 3, calls)
	assert.Zero(t, s.Len())
}

func TestStoreDefaultCapacity(t *testing.T) {
	s := NewStore[int](0)
	for i := range DefaultCapacity + 10 {
		require.NoError(t, s.Set(fmt.Sprint(i), i))
	}
	assert.Equal(t, DefaultCapacity, s.Len())
}

func TestGetOrCompute(t *testing.T) {
	s := NewStore[*int](8)
	calls := 0
	compute := func() *int { calls++; v := 42; return &v }

	first, hit := s.GetOrCompute("k", compute)
	assert.False(t, hit)
	second, hit := s.GetOrCompute("k", compute)
	assert.True(t, hit)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestDeleteAndClear(t *testing.T) {
	s := NewStore[int](3)
	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Set("b", 2))
	s.Delete("a")
	s.Delete("missing")
	assert.Equal(t, 1, s.Len())

	// Deleted keys free their slot.
	require.NoError(t, s.Set("c", 3))
	require.NoError(t, s.Set("d", 4))
	assert.Zero(t, s.Stats().Evicted)

	_, _ = s.Get("b")
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Equal(t, Stats{}, s.Stats())
}

func TestStoreConcurrent(t *testing.T) {
	s := NewStore[int](16)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprint(i % 20)
			s.GetOrCompute(key, func() int { return i })
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 16)
}

func TestKey(t *testing.T) {
	assert.Len(t, Key("a", "b"), 64)
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("ab"))
	assert.NotEqual(t, Key("a", "b"), Key("b", "a"))
}
