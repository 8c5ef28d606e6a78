package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/world/block"
)

func TestAddCubeFaceTop(t *testing.T) {
	var m Mesh
	box := physics.UnitCube()
	m.AddCubeFace(box, block.FaceTop, mgl32.Vec2{0.5, 0.25}, mgl32.Vec2{0.125, 0.5})

	require.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{1, 0, 3, 1, 3, 2}, m.Indices)

	assert.Equal(t, box.FTL(), m.Vertices[0].Position)
	assert.Equal(t, box.BTL(), m.Vertices[1].Position)
	assert.Equal(t, box.BTR(), m.Vertices[2].Position)
	assert.Equal(t, box.FTR(), m.Vertices[3].Position)

	assert.Equal(t, mgl32.Vec2{0.5, 0.75}, m.Vertices[0].UV)
	assert.Equal(t, mgl32.Vec2{0.5, 0.25}, m.Vertices[1].UV)
	assert.Equal(t, mgl32.Vec2{0.625, 0.25}, m.Vertices[2].UV)
	assert.Equal(t, mgl32.Vec2{0.625, 0.75}, m.Vertices[3].UV)

	for _, v := range m.Vertices {
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, v.Normal)
		assert.Equal(t, float32(2), v.Position.Y())
	}
}

func TestAddCubeFaceOffsetsIndices(t *testing.T) {
	var m Mesh
	box := physics.UnitCube()
	m.AddCubeFace(box, block.FaceRight, mgl32.Vec2{}, mgl32.Vec2{1, 1})
	m.AddCubeFace(box, block.FaceBack, mgl32.Vec2{}, mgl32.Vec2{1, 1})

	assert.Equal(t, []uint32{1, 0, 3, 1, 3, 2, 5, 4, 7, 5, 7, 6}, m.Indices)
	assert.Equal(t, 2, m.FaceCount())

	for _, v := range m.Vertices[:4] {
		assert.Equal(t, float32(2), v.Position.X())
	}
	for _, v := range m.Vertices[4:] {
		assert.Equal(t, float32(0), v.Position.Z())
	}

	m.AddCubeFace(box, block.Face(7), mgl32.Vec2{}, mgl32.Vec2{1, 1})
	assert.Equal(t, 2, m.FaceCount(), "недопустимая грань игнорируется")
}

func TestChunkMeshBuckets(t *testing.T) {
	cm := NewChunkMesh()
	box := physics.UnitCube()

	cm.AddBlock(block.StoneBlockID, box, block.AllFaces)
	cm.AddBlock(block.WaterBlockID, box, block.FaceTop.Mask())
	cm.AddBlock(block.GlassBlockID, box, block.FaceTop.Mask()|block.FaceBottom.Mask())
	cm.AddBlock(block.DirtBlockID, box, block.FaceNone)

	assert.Equal(t, 6, cm.Terrain.FaceCount())
	assert.Equal(t, 1, cm.Water.FaceCount())
	assert.Equal(t, 2, cm.Translucent.FaceCount())

	stats := cm.Stats()
	assert.Equal(t, Stats{Vertices: 36, Indices: 54, Faces: 9}, stats)

	assert.False(t, cm.Finalized())
	cm.Finalize()
	assert.True(t, cm.Finalized())

	cm.Reset()
	assert.True(t, cm.Terrain.Empty())
	assert.False(t, cm.Finalized())
}
