package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoise_DeterministicAndBounded(t *testing.T) {
	a := NewNoise(12345, 0.37)
	b := NewNoise(12345, 0.37)

	varied := false
	first := a.At(0, 1)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := a.At(x, y)
			assert.Equal(t, v, b.At(x, y), "одинаковый сид должен давать одинаковый шум")
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			if v != first {
				varied = true
			}
		}
	}
	assert.True(t, varied, "шум не должен быть константой")
}
