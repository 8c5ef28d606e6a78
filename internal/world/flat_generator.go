package world

import (
	"math/rand"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// FlatTerrainGenerator строит плоский мир: камень до дна, слой земли и
// травяная поверхность, в которой могут быть дыры.
type FlatTerrainGenerator struct {
	Seed          int64
	SurfaceY      int
	DirtLayers    int
	HoleFrequency int // 0 - без дыр
}

// NewFlatTerrainGenerator создаёт плоский генератор с поверхностью на surfaceY.
func NewFlatTerrainGenerator(seed int64, surfaceY, dirtLayers, holeFrequency int) *FlatTerrainGenerator {
	return &FlatTerrainGenerator{
		Seed:          seed,
		SurfaceY:      surfaceY,
		DirtLayers:    dirtLayers,
		HoleFrequency: holeFrequency,
	}
}

func (g *FlatTerrainGenerator) GenerateTerrain(c *Chunk) {
	rng := rand.New(rand.NewSource(g.Seed + int64(c.Coords.X*31) + int64(c.Coords.Z*17)))
	c.SetBiome(BiomePlains)

	dirtFrom := g.SurfaceY - g.DirtLayers
	for y := vec.MinY; y < g.SurfaceY && y < vec.MaxY; y++ {
		id := block.StoneBlockID
		if y >= dirtFrom {
			id = block.DirtBlockID
		}
		c.FillLayer(y, id, 0, rng)
	}
	c.FillLayer(g.SurfaceY, block.GrassBlockID, g.HoleFrequency, rng)
}
