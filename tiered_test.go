package cachekit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cachekit"
)

func TestTiered_Construction(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](10)
		l2 := cachekit.MustNew[string, int](100)

		tc, err := cachekit.NewTiered[string, int](l1, l2)
		require.NoError(t, err)
		assert.Equal(t, 2, tc.Levels())
	})

	t.Run("no levels", func(t *testing.T) {
		_, err := cachekit.NewTiered[string, int]()
		assert.ErrorIs(t, err, cachekit.ErrNoLevels)
	})

	t.Run("nil level", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](10)

		_, err := cachekit.NewTiered[string, int](l1, nil)
		assert.ErrorIs(t, err, cachekit.ErrNilLevel)
	})

	t.Run("must new tiered panics without levels", func(t *testing.T) {
		assert.Panics(t, func() {
			cachekit.MustNewTiered[string, int]()
		})
	})
}

func TestTiered_Get(t *testing.T) {
	t.Run("hit in the first level", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](10)
		l2 := cachekit.MustNew[string, int](10)
		tc := cachekit.MustNewTiered[string, int](l1, l2)

		l1.Put("a", 1)

		val, ok := tc.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		// No promotion needed, so the slower level stays empty.
		assert.False(t, l2.Contains("a"))
	})

	t.Run("fall through and promote", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](10)
		l2 := cachekit.MustNew[string, int](10)
		l3 := cachekit.MustNew[string, int](10)
		tc := cachekit.MustNewTiered[string, int](l1, l2, l3)

		l3.Put("a", 1)

		val, ok := tc.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		// The hit was promoted into every faster level.
		assert.True(t, l1.Contains("a"))
		assert.True(t, l2.Contains("a"))
	})

	t.Run("miss in every level", func(t *testing.T) {
		tc := cachekit.MustNewTiered[string, int](
			cachekit.MustNew[string, int](10),
			cachekit.MustNew[string, int](10),
		)

		val, ok := tc.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, val)
	})

	t.Run("promotion revives entries evicted from the fast level", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](1)
		l2 := cachekit.MustNew[string, int](10)
		tc := cachekit.MustNewTiered[string, int](l1, l2)

		tc.Put("a", 1)
		tc.Put("b", 2) // evicts a from l1; l2 keeps both

		assert.False(t, l1.Contains("a"))

		val, ok := tc.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.True(t, l1.Contains("a"), "hit should have been promoted back into l1")
	})
}

func TestTiered_Put(t *testing.T) {
	t.Run("writes through every level", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](10)
		l2 := cachekit.MustNew[string, int](10)
		tc := cachekit.MustNewTiered[string, int](l1, l2)

		tc.Put("a", 1)

		assert.True(t, l1.Contains("a"))
		assert.True(t, l2.Contains("a"))
	})

	t.Run("reports the first level's previous value", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](10)
		l2 := cachekit.MustNew[string, int](10)
		tc := cachekit.MustNewTiered[string, int](l1, l2)

		tc.Put("a", 1)
		oldVal, existed := tc.Put("a", 2)

		assert.True(t, existed)
		assert.Equal(t, 1, oldVal)
	})
}

func TestTiered_Remove(t *testing.T) {
	t.Run("removes from every level", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](10)
		l2 := cachekit.MustNew[string, int](10)
		tc := cachekit.MustNewTiered[string, int](l1, l2)

		tc.Put("a", 1)

		val, ok := tc.Remove("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.False(t, l1.Contains("a"))
		assert.False(t, l2.Contains("a"))
	})

	t.Run("reports the fastest level's value", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](10)
		l2 := cachekit.MustNew[string, int](10)
		tc := cachekit.MustNewTiered[string, int](l1, l2)

		// The levels disagree; the fastest one wins, as it does on reads.
		l1.Put("a", 1)
		l2.Put("a", 2)

		val, ok := tc.Remove("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
	})

	t.Run("removes entries the fast level already lost", func(t *testing.T) {
		l1 := cachekit.MustNew[string, int](1)
		l2 := cachekit.MustNew[string, int](10)
		tc := cachekit.MustNewTiered[string, int](l1, l2)

		tc.Put("a", 1)
		tc.Put("b", 2) // evicts a from l1

		val, ok := tc.Remove("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.False(t, l2.Contains("a"))
	})

	t.Run("remove non-existent", func(t *testing.T) {
		tc := cachekit.MustNewTiered[string, int](
			cachekit.MustNew[string, int](10),
		)

		_, ok := tc.Remove("missing")
		assert.False(t, ok)
	})
}

func TestTiered_Clear(t *testing.T) {
	l1 := cachekit.MustNew[string, int](10)
	l2 := cachekit.MustNew[string, int](10)
	tc := cachekit.MustNewTiered[string, int](l1, l2)

	tc.Put("a", 1)
	tc.Put("b", 2)
	tc.Clear()

	assert.Equal(t, 0, l1.Len())
	assert.Equal(t, 0, l2.Len())
}

func TestTiered_Nesting(t *testing.T) {
	// A tiered cache is itself a Level, so chains compose.
	inner := cachekit.MustNewTiered[string, int](
		cachekit.MustNew[string, int](10),
		cachekit.MustNew[string, int](100),
	)
	front := cachekit.MustNew[string, int](5)
	outer := cachekit.MustNewTiered[string, int](front, inner)

	outer.Put("a", 1)

	val, ok := outer.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	outer.Remove("a")
	_, ok = outer.Get("a")
	assert.False(t, ok)
}

func TestTiered_NoOpLevel(t *testing.T) {
	// NoOp disables a tier without changing the wiring: promotion writes
	// into it vanish and reads fall through.
	backing := cachekit.MustNew[string, int](10)
	tc := cachekit.MustNewTiered[string, int](cachekit.NoOp[string, int]{}, backing)

	tc.Put("a", 1)

	val, ok := tc.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)
	assert.True(t, backing.Contains("a"))
}

func TestNoOp(t *testing.T) {
	n := cachekit.NoOp[string, int]{}

	old, existed := n.Put("a", 1)
	assert.False(t, existed)
	assert.Zero(t, old)

	_, ok := n.Get("a")
	assert.False(t, ok)

	_, ok = n.Peek("a")
	assert.False(t, ok)

	_, ok = n.Remove("a")
	assert.False(t, ok)

	assert.False(t, n.Contains("a"))
	assert.Equal(t, 0, n.Len())
	n.Clear()
}
