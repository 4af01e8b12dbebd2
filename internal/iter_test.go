package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]string{"a", "b"})
	b := slices.All([]string{"c"})

	var keys []int
	var values []string
	for k, v := range IterSeq2Concat(a, b) {
		keys = append(keys, k)
		values = append(values, v)
	}

	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"a", "b", "c"}, values)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(maps.All(map[int]int{1: 1}), maps.All(map[int]int{2: 2}))

	count := 0
	for range seq {
		count++
		break
	}

	assert.Equal(1, count)
}
