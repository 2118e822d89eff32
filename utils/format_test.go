package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		man  int
		want string
	}{
		{12345, "1億2345万円"},
		{10000, "1億円"},
		{500, "500万円"},
		{0, "0万円"},
		{25000, "2億5000万円"},
		{123456789, "12345億6789万円"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.man), "man=%d", tt.man)
	}
}

func TestChunk(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Chunk([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2, 3}}, Chunk([]int{1, 2, 3}, 10))
	assert.Nil(t, Chunk([]int{}, 3))
	assert.Nil(t, Chunk([]int{1, 2}, 0))
}
