package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{42, 42},
		{int64(7), 7},
		{uint8(3), 3},
		{2.9, 2},
		{"24", 24},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{[]byte("12"), 12},
		{nil, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToInt(tt.in), "%#v", tt.in)
	}
}

func TestToIntOr(t *testing.T) {
	assert.Equal(t, 24, ToIntOr("", 24))
	assert.Equal(t, 24, ToIntOr("-3", 24))
	assert.Equal(t, 10, ToIntOr(" 10 ", 24))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool([]byte("1")))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool("yes"))
	assert.False(t, ToBool(2))
	assert.False(t, ToBool(1.0))
}
