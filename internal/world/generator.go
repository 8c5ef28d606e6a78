package world

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/util"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// TerrainGenerator заполняет чанк ландшафтом. Записи за пределы чанка
// выполняются через Chunk.PlaceBlock.
type TerrainGenerator interface {
	GenerateTerrain(c *Chunk)
}

// Biome тип биома чанка
type Biome uint8

const (
	BiomeUndefined Biome = iota
	BiomePlains
	BiomeForest
	BiomeMountains
)

var biomeNames = map[Biome]string{
	BiomeUndefined: "undefined",
	BiomePlains:    "plains",
	BiomeForest:    "forest",
	BiomeMountains: "mountains",
}

// BiomeName возвращает имя биома.
func BiomeName(b Biome) string {
	if name, ok := biomeNames[b]; ok {
		return name
	}
	return "unknown"
}

func (b Biome) String() string { return BiomeName(b) }

// Пороги шума биомов (после сдвига в [0, 2]).
const (
	plainsThreshold = 1.2
	forestThreshold = 0.5

	biomeFrequency = 0.05
)

// WorldGenOptions содержит параметры генерации мира
type WorldGenOptions struct {
	Seed       int64
	SeaY       int // уровень моря
	DirtLayers int // толщина слоя земли под травой
	CloudY     int
}

// DefaultWorldGenOptions возвращает параметры генерации по умолчанию.
func DefaultWorldGenOptions() WorldGenOptions {
	return WorldGenOptions{
		Seed:       69,
		SeaY:       0,
		DirtLayers: 5,
		CloudY:     100,
	}
}

// DefaultTerrainGenerator генерирует холмистый ландшафт с водой, лесами и горами.
// Шумы только читаются, поэтому генератор можно вызывать из нескольких
// горутин для разных чанков.
type DefaultTerrainGenerator struct {
	opts   WorldGenOptions
	noise  *util.Noise
	logger *logging.Logger

	terrain  util.FractalParams
	mountain util.FractalParams
	peaks    util.FractalParams
}

// NewDefaultTerrainGenerator создаёт генератор для указанных параметров.
func NewDefaultTerrainGenerator(opts WorldGenOptions) *DefaultTerrainGenerator {
	return &DefaultTerrainGenerator{
		opts:     opts,
		noise:    util.NewNoise(opts.Seed),
		logger:   logging.GetWorldGenLogger(),
		terrain:  util.FractalParams{Frequency: 0.03, Lacunarity: 2, Gain: 0.5, Octaves: 3},
		mountain: util.FractalParams{Frequency: 0.01, Lacunarity: 1, Gain: 0.5, Octaves: 3},
		peaks:    util.FractalParams{Frequency: 0.03, Lacunarity: 3, Gain: 0.5, Octaves: 3},
	}
}

// Options возвращает параметры генерации.
func (g *DefaultTerrainGenerator) Options() WorldGenOptions { return g.opts }

// BiomeAt определяет биом чанка по низкочастотному шуму.
func (g *DefaultTerrainGenerator) BiomeAt(chunk vec.Vec2) Biome {
	v := g.noise.BiomeNoise(float64(chunk.X), float64(chunk.Z), biomeFrequency) + 1
	switch {
	case v >= plainsThreshold:
		return BiomePlains
	case v >= forestThreshold:
		return BiomeForest
	default:
		return BiomeMountains
	}
}

// Height возвращает высоту поверхности в колонке (x, z) для биома.
func (g *DefaultTerrainGenerator) Height(b Biome, x, z int) int {
	fx, fz := float64(x), float64(z)

	var n float64
	if b == BiomeMountains {
		n = g.noise.Fractal2D(fx, fz, util.DefaultFractal())
	} else {
		mountain := g.noise.Fractal2D(fx, fz, g.mountain)
		terrain := g.noise.Fractal2D(fx, fz, g.terrain)
		n = math.Pow(0.2*mountain+0.8*terrain, 5)
	}

	return int(n * vec.ChunkHeight / 2)
}

// isTreePeak сообщает, что в колонке растёт дерево: шум в ней строго
// больше, чем во всех соседних колонках в радиусе.
func (g *DefaultTerrainGenerator) isTreePeak(b Biome, x, z int) bool {
	radius := 3
	if b == BiomeForest {
		radius = 1
	}

	center := g.noise.Fractal2D(float64(x), float64(z), g.peaks)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if g.noise.Fractal2D(float64(x+dx), float64(z+dz), g.peaks) >= center {
				return false
			}
		}
	}
	return true
}

// GenerateTerrain заполняет чанк колонками воды, травы, земли и камня.
func (g *DefaultTerrainGenerator) GenerateTerrain(c *Chunk) {
	// Детерминированный генератор для каждого чанка
	rng := rand.New(rand.NewSource(g.opts.Seed + int64(c.Coords.X*31) + int64(c.Coords.Z*17)))

	biome := g.BiomeAt(c.Coords)
	c.SetBiome(biome)

	trees := 0
	for x := 0; x < vec.ChunkWidth; x++ {
		for z := 0; z < vec.ChunkDepth; z++ {
			column := c.WorldPosition(vec.Vec3{X: x, Z: z})
			height := g.Height(biome, column.X, column.Z)

			if height < g.opts.SeaY {
				for y := height; y <= g.opts.SeaY; y++ {
					c.PlaceBlock(vec.Vec3{X: column.X, Y: y, Z: column.Z}, block.WaterBlockID)
				}
			} else {
				ground := vec.Vec3{X: column.X, Y: height, Z: column.Z}
				c.PlaceBlock(ground, block.GrassBlockID)
				if g.isTreePeak(biome, column.X, column.Z) {
					g.generateTree(c, ground, rng)
					trees++
				}
			}

			y := height - 1
			for ; y >= height-1-g.opts.DirtLayers && y >= vec.MinY; y-- {
				c.PlaceBlock(vec.Vec3{X: column.X, Y: y, Z: column.Z}, block.DirtBlockID)
			}
			for ; y >= vec.MinY; y-- {
				c.PlaceBlock(vec.Vec3{X: column.X, Y: y, Z: column.Z}, block.StoneBlockID)
			}
		}
	}

	g.logger.Trace("Чанк %v сгенерирован: биом %s, деревьев %d", c.Coords, biome, trees)
}

// generateTree ставит дерево на блок pos: ствол 3-5 блоков, куб листвы
// 3x3x3 вокруг вершины и случайные листья по внешнему кольцу 5x5.
func (g *DefaultTerrainGenerator) generateTree(c *Chunk, pos vec.Vec3, rng *rand.Rand) {
	height := 3 + rng.Intn(3)
	top := pos.Y + height

	for y := pos.Y + 1; y <= top; y++ {
		c.PlaceBlock(vec.Vec3{X: pos.X, Y: y, Z: pos.Z}, block.OakWoodBlockID)
	}

	for y := top - 1; y <= top+1; y++ {
		for dx := -1; dx <= 1; dx++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dz == 0 && y <= top {
					continue
				}
				c.PlaceBlock(vec.Vec3{X: pos.X + dx, Y: y, Z: pos.Z + dz}, block.LeafBlockID)
			}
		}
	}

	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			if dx > -2 && dx < 2 && dz > -2 && dz < 2 {
				continue
			}
			leaf := vec.Vec3{X: pos.X + dx, Y: top - 1, Z: pos.Z + dz}
			c.PlaceBlock(leaf, block.LeafBlockID)
			if rng.Intn(3) == 0 {
				leaf.Y++
				c.PlaceBlock(leaf, block.LeafBlockID)
			}
		}
	}
}
