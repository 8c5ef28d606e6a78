package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFractalDeterministicAndBounded(t *testing.T) {
	a := NewNoise(69)
	b := NewNoise(69)
	p := DefaultFractal()

	for x := -50; x <= 50; x += 7 {
		for z := -50; z <= 50; z += 11 {
			v := a.Fractal2D(float64(x), float64(z), p)
			assert.Equal(t, v, b.Fractal2D(float64(x), float64(z), p))
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestBiomeNoiseBounded(t *testing.T) {
	n := NewNoise(1)
	for x := -20; x <= 20; x++ {
		v := n.BiomeNoise(float64(x), float64(-x), 0.05)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, -1, 1))
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, -1, 1))
}
