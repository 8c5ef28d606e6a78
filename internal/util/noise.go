package util

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// FractalParams содержит параметры фрактального (FBM) шума
type FractalParams struct {
	Frequency  float64
	Lacunarity float64
	Gain       float64
	Octaves    int
}

// DefaultFractal: частота 0.01, лакунарность 2, усиление 0.5, 3 октавы.
func DefaultFractal() FractalParams {
	return FractalParams{Frequency: 0.01, Lacunarity: 2, Gain: 0.5, Octaves: 3}
}

// Noise представляет источник шумов одного сида. Только чтение после создания,
// поэтому один экземпляр можно использовать из нескольких горутин.
type Noise struct {
	simplex opensimplex.Noise
	biome   *perlin.Perlin
}

// NewNoise создаёт источники шума для указанного сида
func NewNoise(seed int64) *Noise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &Noise{
		simplex: opensimplex.New(seed),
		biome:   perlin.NewPerlin(alpha, beta, n, seed),
	}
}

// Fractal2D возвращает фрактальный симплекс-шум в диапазоне [-1, 1].
func (n *Noise) Fractal2D(x, z float64, p FractalParams) float64 {
	if p.Octaves < 1 {
		p.Octaves = 1
	}

	x *= p.Frequency
	z *= p.Frequency

	sum := n.simplex.Eval2(x, z)
	amp := 1.0
	bounding := 1.0
	for i := 1; i < p.Octaves; i++ {
		x *= p.Lacunarity
		z *= p.Lacunarity
		amp *= p.Gain
		bounding += amp
		sum += n.simplex.Eval2(x, z) * amp
	}

	return sum / bounding
}

// BiomeNoise возвращает низкочастотный шум Перлина в диапазоне [-1, 1].
// Сырые значения go-perlin редко выходят за ±0.7, поэтому они растягиваются.
func (n *Noise) BiomeNoise(x, z, frequency float64) float64 {
	v := n.biome.Noise2D(x*frequency, z*frequency) * 1.5
	return Clamp(v, -1, 1)
}

// Clamp ограничивает v отрезком [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
