package array_test

import (
	"testing"

	"github.com/ian-shakespeare/subsym/pkg/array"
	"github.com/stretchr/testify/assert"
)

func TestArray(t *testing.T) {
	t.Parallel()

	even := func(n int) bool { return n%2 == 0 }

	t.Run("index", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 1, array.Index([]int{1, 2, 4}, even))
		assert.Equal(t, -1, array.Index([]int{1, 3}, even))
		assert.Equal(t, -1, array.Index(nil, even))
	})

	t.Run("some", func(t *testing.T) {
		t.Parallel()

		assert.True(t, array.Some([]int{1, 2}, even))
		assert.False(t, array.Some([]int{1, 3}, even))
	})

	t.Run("every", func(t *testing.T) {
		t.Parallel()

		assert.True(t, array.Every([]int{2, 4}, even))
		assert.False(t, array.Every([]int{2, 3}, even))
		assert.True(t, array.Every([]int{}, even))
	})

	t.Run("contains", func(t *testing.T) {
		t.Parallel()

		assert.True(t, array.Contains([]byte(">>text3"), 't'))
		assert.False(t, array.Contains([]string{"a", "b"}, "c"))
	})
}
