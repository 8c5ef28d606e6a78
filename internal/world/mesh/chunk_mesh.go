package mesh

import (
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// ChunkMesh представляет меш чанка, разбитый по проходам рендера.
type ChunkMesh struct {
	Terrain     Mesh
	Translucent Mesh
	Water       Mesh
}

// Stats содержит размеры буферов меша
type Stats struct {
	Vertices int
	Indices  int
	Faces    int
}

func (s Stats) add(m *Mesh) Stats {
	s.Vertices += len(m.Vertices)
	s.Indices += len(m.Indices)
	s.Faces += m.FaceCount()
	return s
}

func NewChunkMesh() *ChunkMesh {
	return &ChunkMesh{}
}

// Bucket выбирает меш для типа блока: вода отдельно,
// остальные прозрачные в Translucent, непрозрачные в Terrain.
func (c *ChunkMesh) Bucket(id block.BlockID) *Mesh {
	switch {
	case id == block.WaterBlockID:
		return &c.Water
	case block.IsTransparent(id):
		return &c.Translucent
	default:
		return &c.Terrain
	}
}

// AddBlock добавляет видимые грани блока в соответствующий меш.
func (c *ChunkMesh) AddBlock(id block.BlockID, box physics.BoundingBox, faces block.FaceMask) {
	if faces == block.FaceNone {
		return
	}
	m := c.Bucket(id)
	size := block.TextureSize()
	for f := block.FaceRight; f < block.FaceCount; f++ {
		if faces.Has(f) {
			m.AddCubeFace(box, f, block.TextureUV(id, f), size)
		}
	}
}

func (c *ChunkMesh) Reset() {
	c.Terrain.Reset()
	c.Translucent.Reset()
	c.Water.Reset()
}

func (c *ChunkMesh) Finalize() {
	c.Terrain.Finalize()
	c.Translucent.Finalize()
	c.Water.Finalize()
}

func (c *ChunkMesh) Finalized() bool {
	return c.Terrain.Finalized() && c.Translucent.Finalized() && c.Water.Finalized()
}

// Stats суммирует размеры всех трёх мешей.
func (c *ChunkMesh) Stats() Stats {
	return Stats{}.add(&c.Terrain).add(&c.Translucent).add(&c.Water)
}
