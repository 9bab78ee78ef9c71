package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInts(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Ints(64, -10, 10)

	assert.Equal(t, 64, len(v))
	for _, x := range v {
		assert.GreaterOrEqual(t, x, -10)
		assert.Less(t, x, 10)
	}
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	first := rng.Ints(16, 0, 1000)

	rng.Reset()
	assert.Equal(t, first, rng.Ints(16, 0, 1000))
	assert.Equal(t, int64(42), rng.Seed())
}

func TestRecords(t *testing.T) {
	rng := NewRNG(7)

	recs := rng.Records(5, 0, 3)

	assert.Len(t, recs, 5)
	for i, r := range recs {
		assert.Equal(t, i, r.ID)
		assert.GreaterOrEqual(t, r.Value, 0)
		assert.Less(t, r.Value, 3)
	}
}

func TestRange(t *testing.T) {
	assert.Equal(t, []int{-2, -1, 0, 1}, Range(-2, 2))
	assert.Nil(t, Range(3, 3))
}

func TestFilter(t *testing.T) {
	even := func(x int) bool { return x%2 == 0 }

	assert.Equal(t, []int{-2, 0, 4}, Filter([]int{-2, -1, 0, 3, 4}, even))
	assert.Empty(t, Filter([]int{1, 3}, even))
}
