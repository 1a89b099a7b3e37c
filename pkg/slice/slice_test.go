package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ansiklopedi/pkg/slice"
)

func TestFilter_DoesNotAlias(t *testing.T) {
	input := []int{1, 2, 3, 4}
	even := slice.Filter(input, func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4}, even)

	even[0] = 99
	assert.Equal(t, []int{1, 2, 3, 4}, input)
}

func TestFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, slice.Filter[int](nil, func(int) bool { return true }))
}

func TestMapCountIndexBy(t *testing.T) {
	words := []string{"ada", "ırmak", "göl"}

	assert.Equal(t, []int{3, 6, 4}, slice.Map(words, func(s string) int { return len(s) }))
	assert.Equal(t, 2, slice.Count(words, func(s string) bool { return len(s) > 3 }))

	index := slice.IndexBy(words, func(s string) byte { return s[0] })
	assert.Equal(t, "ada", index['a'])
	assert.Len(t, index, 3)
}
