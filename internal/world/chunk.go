package world

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/annel0/voxel-engine/internal/world/mesh"
)

// Chunk представляет столб мира 16x256x16 блоков
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире

	world    *World
	segments [vec.SegmentsPerChunk]*ChunkSegment

	// spill получает записи генератора за пределами чанка, пока чанк
	// генерируется отдельно от мира (см. AsyncLoader).
	spill func(pos vec.Vec3, b Block)

	dirty     bool
	generated bool
	biome     Biome
	box       physics.BoundingBox
	mesh      *mesh.ChunkMesh
}

// NewChunk создаёт пустой чанк. world может быть nil: тогда записи за
// пределы чанка и поиск соседей через мир не выполняются.
func NewChunk(world *World, coords vec.Vec2) *Chunk {
	const (
		width  = vec.ChunkWidth * vec.BlockScale
		height = vec.ChunkHeight * vec.BlockScale
		depth  = vec.ChunkDepth * vec.BlockScale
	)

	box := physics.BoundingBox{
		MinX: -width / 2, MaxX: width / 2,
		MinY: -height / 2, MaxY: height / 2,
		MinZ: -depth / 2, MaxZ: depth / 2,
	}
	box.ApplyOffset(mgl32.Vec3{float32(coords.X)*width + width/2, 0, float32(coords.Z)*depth + depth/2})

	return &Chunk{
		Coords: coords,
		world:  world,
		box:    box,
		mesh:   mesh.NewChunkMesh(),
	}
}

func (c *Chunk) Position() vec.Vec2 { return c.Coords }

// contains проверяет, попадает ли мировая позиция в столб чанка по X/Z.
func (c *Chunk) contains(pos vec.Vec3) bool {
	minX := c.Coords.X * vec.ChunkWidth
	minZ := c.Coords.Z * vec.ChunkDepth
	return pos.X >= minX && pos.X < minX+vec.ChunkWidth &&
		pos.Z >= minZ && pos.Z < minZ+vec.ChunkDepth
}

// SegmentForY возвращает сегмент, содержащий мировую y. При allocate
// недостающий сегмент создаётся. Вне [MinY, MaxY) возвращает nil.
func (c *Chunk) SegmentForY(y int, allocate bool) *ChunkSegment {
	if y < vec.MinY || y >= vec.MaxY {
		return nil
	}

	idx := (y - vec.MinY) / vec.SegmentHeight
	seg := c.segments[idx]
	if seg != nil || !allocate {
		return seg
	}

	origin := c.WorldPosition(vec.Vec3{Y: vec.MinY + idx*vec.SegmentHeight})
	seg = newChunkSegment(origin)
	c.segments[idx] = seg
	return seg
}

// BlockAt возвращает блок по мировой позиции или nil, если позиция вне
// чанка или её сегмент ещё не создан.
func (c *Chunk) BlockAt(pos vec.Vec3) *Block {
	if !c.contains(pos) {
		return nil
	}
	seg := c.SegmentForY(pos.Y, false)
	if seg == nil {
		return nil
	}
	return seg.BlockAt(vec.PositionInChunk(pos))
}

// UpdateBlock записывает блок по мировой позиции. Позиции вне чанка
// молча игнорируются. При recheck чанк и соседи по затронутой границе
// помечаются для перестроения меша.
func (c *Chunk) UpdateBlock(pos vec.Vec3, b Block, recheck bool) {
	if !c.contains(pos) {
		return
	}
	seg := c.SegmentForY(pos.Y, true)
	if seg == nil {
		return
	}

	seg.airOnly = seg.airOnly && b.IsAir()

	b.moveTo(pos)
	b.Faces = block.FaceNone
	local := vec.PositionInChunk(pos)
	*seg.BlockAt(local) = b

	if recheck {
		c.modifiedBlock(local)
	}
}

// PlaceBlock используется генераторами. Внутри чанка пишет без пометки dirty,
// снаружи передаёт блок в мир (с откладыванием для незагруженных чанков).
func (c *Chunk) PlaceBlock(pos vec.Vec3, id block.BlockID) {
	b := NewBlock(id, pos)
	switch {
	case c.contains(pos):
		c.UpdateBlock(pos, b, false)
	case c.spill != nil:
		c.spill(pos, b)
	case c.world != nil:
		c.world.UpdateBlock(pos, b, true)
	}
}

// modifiedBlock помечает чанк и соседей, если блок лежит на границе.
func (c *Chunk) modifiedBlock(local vec.Vec3) {
	c.dirty = true
	if c.world == nil {
		return
	}

	mark := func(dx, dz int) {
		if other := c.world.Chunk(vec.Vec2{X: c.Coords.X + dx, Z: c.Coords.Z + dz}, false); other != nil {
			other.dirty = true
		}
	}

	if local.X == 0 {
		mark(-1, 0)
	}
	if local.X == vec.ChunkWidth-1 {
		mark(1, 0)
	}
	if local.Z == 0 {
		mark(0, -1)
	}
	if local.Z == vec.ChunkDepth-1 {
		mark(0, 1)
	}
}

// FillLayer заполняет слой y блоками id. При holeFrequency > 0 каждая
// позиция с вероятностью 1/holeFrequency остаётся пустой.
func (c *Chunk) FillLayer(y int, id block.BlockID, holeFrequency int, rng *rand.Rand) {
	if c.SegmentForY(y, true) == nil {
		return
	}

	for x := 0; x < vec.ChunkWidth; x++ {
		for z := 0; z < vec.ChunkDepth; z++ {
			if holeFrequency > 0 && rng.Intn(holeFrequency) == 0 {
				continue
			}
			pos := c.WorldPosition(vec.Vec3{X: x, Y: y, Z: z})
			c.UpdateBlock(pos, NewBlock(id, pos), false)
		}
	}
	c.dirty = true
}

// WorldPosition переводит позицию в чанке в мировую.
func (c *Chunk) WorldPosition(local vec.Vec3) vec.Vec3 {
	origin := c.Coords.WorldOrigin()
	return vec.Vec3{X: origin.X + local.X, Y: local.Y, Z: origin.Z + local.Z}
}

func (c *Chunk) CenterWorldPosition() vec.Vec3 { return c.Coords.CenterWorldPosition() }

// Mesh возвращает меш последнего расчёта видимости.
func (c *Chunk) Mesh() *mesh.ChunkMesh { return c.mesh }

func (c *Chunk) BoundingBox() physics.BoundingBox { return c.box }

// IsDirty сообщает, что меш устарел.
func (c *Chunk) IsDirty() bool { return c.dirty }

// SetModified помечает меш устаревшим.
func (c *Chunk) SetModified() { c.dirty = true }

func (c *Chunk) Biome() Biome     { return c.biome }
func (c *Chunk) SetBiome(b Biome) { c.biome = b }
func (c *Chunk) Generated() bool  { return c.generated }

// AllocatedSegments возвращает число созданных сегментов.
func (c *Chunk) AllocatedSegments() int {
	n := 0
	for _, seg := range c.segments {
		if seg != nil {
			n++
		}
	}
	return n
}
