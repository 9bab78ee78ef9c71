package viewdb_test

import (
	"errors"
	"testing"

	"github.com/hupe1980/viewdb"
	"github.com/hupe1980/viewdb/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_SelectComposes(t *testing.T) {
	rng := testutil.NewRNG(42)

	for round := 0; round < 10; round++ {
		data := rng.Ints(150, -50, 50)
		s := viewdb.New(data)

		first, err := s.Select(isEven)
		require.NoError(t, err)
		chained, err := first.Select(isPositive)
		require.NoError(t, err)
		combined, err := s.Select(viewdb.And(isEven, isPositive))
		require.NoError(t, err)

		want := testutil.Filter(testutil.Filter(data, isEven), isPositive)
		assert.Equal(t, len(want), chained.Len())
		assert.Equal(t, want, collect(t, chained))
		assert.Equal(t, collect(t, combined), collect(t, chained))
	}
}

func TestView_SelectLeavesSourceUntouched(t *testing.T) {
	s := viewdb.New(testutil.Range(-5, 5))

	src, err := s.View()
	require.NoError(t, err)
	before := collect(t, src)

	narrowed, err := src.Select(isPositive)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, collect(t, narrowed))

	assert.Equal(t, before, collect(t, src))
	assert.Equal(t, 10, src.Len())
}

func TestView_DerivedOutlivesParent(t *testing.T) {
	data := testutil.Range(-100, 100)
	s := viewdb.New(data)

	derived := func() *viewdb.View[int] {
		parent, err := s.Select(isEven)
		require.NoError(t, err)
		defer parent.Release()

		child, err := parent.Select(isPositive)
		require.NoError(t, err)
		return child
	}()

	want := testutil.Filter(testutil.Filter(data, isEven), isPositive)
	assert.Equal(t, len(want), derived.Len())
	assert.Equal(t, want, collect(t, derived))
}

func TestView_ReIterable(t *testing.T) {
	s := viewdb.New([]int{3, 1, 2})
	v, err := s.View()
	require.NoError(t, err)

	assert.Equal(t, []int{3, 1, 2}, collect(t, v))
	assert.Equal(t, []int{3, 1, 2}, collect(t, v))
}

func TestView_SeesCurrentStoreContents(t *testing.T) {
	s := viewdb.New([]int{1, 2, 3})

	m, err := s.SelectMut(isEven)
	require.NoError(t, err)
	for p, err := range m.All() {
		require.NoError(t, err)
		*p = 200
	}
	m.Release()

	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 200, 3}, collect(t, v))
}

func TestView_Release(t *testing.T) {
	s := viewdb.New([]int{1, 2, 3})
	v, err := s.View()
	require.NoError(t, err)

	v.Release()
	v.Release()

	_, err = v.Select(isPositive)
	assert.True(t, errors.Is(err, viewdb.ErrConsumed))
	_, err = v.Collect()
	assert.True(t, errors.Is(err, viewdb.ErrConsumed))

	// Released borrows no longer block exclusive access.
	m, err := s.ViewMut()
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
}

func TestView_ReleaseDuringIteration(t *testing.T) {
	s := viewdb.New([]int{1, 2, 3})
	v, err := s.View()
	require.NoError(t, err)

	var got []int
	var iterErr error
	for x, err := range v.All() {
		if err != nil {
			iterErr = err
			break
		}
		got = append(got, x)
		v.Release()
	}
	assert.Equal(t, []int{1}, got)
	assert.True(t, errors.Is(iterErr, viewdb.ErrConsumed))
}

func TestView_StaleAfterClose(t *testing.T) {
	t.Run("non-empty", func(t *testing.T) {
		s := viewdb.New([]int{1, 2, 3})
		v, err := s.Select(isPositive)
		require.NoError(t, err)
		require.NoError(t, s.Close())

		_, err = v.Select(viewdb.Always[int]())
		assert.True(t, viewdb.IsStale(err))
		_, err = viewdb.FilterOne(v, isEven)
		assert.True(t, viewdb.IsStale(err))

		// Len reports what the view referenced; it never dereferences.
		assert.Equal(t, 3, v.Len())
	})

	t.Run("empty", func(t *testing.T) {
		s := viewdb.New([]int{-1})
		v, err := s.Select(isPositive)
		require.NoError(t, err)
		require.NoError(t, s.Close())

		_, err = v.Collect()
		assert.True(t, viewdb.IsStale(err))
	})

	t.Run("closed inside loop", func(t *testing.T) {
		s := viewdb.New([]int{1, 2, 3})
		v, err := s.View()
		require.NoError(t, err)

		var iterErr error
		n := 0
		for _, err := range v.All() {
			if err != nil {
				iterErr = err
				break
			}
			n++
			_ = s.Close()
		}
		assert.Equal(t, 1, n)
		assert.True(t, viewdb.IsStale(iterErr))
	})

	t.Run("closed by predicate", func(t *testing.T) {
		s := viewdb.New([]int{1, 2, 3})
		v, err := s.View()
		require.NoError(t, err)

		_, err = v.Select(func(x int) bool {
			_ = s.Close()
			return true
		})
		assert.True(t, viewdb.IsStale(err))
	})
}

func TestView_CoexistWithDisjointMutView(t *testing.T) {
	s := viewdb.New([]int{-2, 4, -6, 8})

	neg, err := s.Select(viewdb.Not(isPositive))
	require.NoError(t, err)

	pos, err := s.SelectMut(isPositive)
	require.NoError(t, err)

	// Read views over elements the mutable view does not hold stay usable.
	assert.Equal(t, []int{-2, -6}, collect(t, neg))
	narrowed, err := neg.Select(func(v int) bool { return v < -3 })
	require.NoError(t, err)
	assert.Equal(t, []int{-6}, collect(t, narrowed))

	for p, err := range pos.All() {
		require.NoError(t, err)
		*p = -*p
	}
	pos.Release()

	all, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, []int{-2, -4, -6, -8}, collect(t, all))
}
