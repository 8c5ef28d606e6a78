package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/camera"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/annel0/voxel-engine/internal/world/entity"
)

func TestLoadChunkSpiral(t *testing.T) {
	w := NewWorld(1, nil)
	w.UpdatePlayerPosition(mgl32.Vec3{1, 0, 1})

	center := w.CenterChunk()
	require.NotNil(t, center)
	assert.Equal(t, vec.Vec2{X: 0, Z: 0}, center.Coords)

	window := w.ChunksToRender()
	require.Len(t, window, 9)
	assert.Same(t, center, window[0])

	seen := make(map[vec.Vec2]bool)
	for _, c := range window[1:] {
		d := c.Coords
		assert.LessOrEqual(t, max(abs(d.X), abs(d.Z)), 1)
		seen[d] = true
	}
	assert.Len(t, seen, 8)
	// Окно задевает четыре сегмента мира вокруг начала координат
	assert.Equal(t, 4, w.LoadedSegments())
}

func TestLoadChunkRingOrder(t *testing.T) {
	w := NewWorld(2, nil)
	w.LoadChunk(w.Chunk(vec.Vec2{X: 10, Z: 10}, true))

	window := w.ChunksToRender()
	require.Len(t, window, 25)
	for i, c := range window {
		ring := max(abs(c.Coords.X-10), abs(c.Coords.Z-10))
		switch {
		case i == 0:
			assert.Equal(t, 0, ring)
		case i < 9:
			assert.Equal(t, 1, ring, "чанк %d", i)
		default:
			assert.Equal(t, 2, ring, "чанк %d", i)
		}
	}
}

func TestIsChunkVisibleInclusive(t *testing.T) {
	w := NewWorld(2, nil)
	assert.False(t, w.IsChunkVisible(vec.Vec2{}))

	w.LoadChunk(w.Chunk(vec.Vec2{X: 0, Z: 0}, true))
	assert.True(t, w.IsChunkVisible(vec.Vec2{X: 0, Z: 0}))
	assert.True(t, w.IsChunkVisible(vec.Vec2{X: 2, Z: -2}))
	assert.True(t, w.IsChunkVisible(vec.Vec2{X: -2, Z: 2}))
	assert.False(t, w.IsChunkVisible(vec.Vec2{X: 3, Z: 0}))
	assert.False(t, w.IsChunkVisible(vec.Vec2{X: 0, Z: -3}))
}

func TestUpdatePlayerPositionThreshold(t *testing.T) {
	w := NewWorld(2, nil)

	// Центр чанка (0, 0) в сцене - (16, 0, 16), порог 30
	w.UpdatePlayerPosition(mgl32.Vec3{16, 0, 16})
	require.Equal(t, vec.Vec2{X: 0, Z: 0}, w.CenterChunk().Coords)

	w.UpdatePlayerPosition(mgl32.Vec3{40, 0, 16})
	assert.Equal(t, vec.Vec2{X: 0, Z: 0}, w.CenterChunk().Coords, "24 единицы меньше порога")

	w.UpdatePlayerPosition(mgl32.Vec3{50, 0, 16})
	assert.Equal(t, vec.Vec2{X: 1, Z: 0}, w.CenterChunk().Coords)
	assert.True(t, w.IsChunkVisible(vec.Vec2{X: 3, Z: 0}))
}

func TestUpdateVisibilityRebuildsWindow(t *testing.T) {
	w := NewWorld(1, nil)
	w.UpdatePlayerPosition(mgl32.Vec3{1, 0, 1})

	assert.Equal(t, 9, w.UpdateVisibility())
	assert.Equal(t, 0, w.UpdateVisibility())

	pos := vec.Vec3{X: 3, Y: 0, Z: 3}
	w.UpdateBlock(pos, NewBlock(block.StoneBlockID, pos), true)
	assert.Equal(t, 1, w.UpdateVisibility())
	assert.Equal(t, 6, w.MeshFaces())
}

func TestVisibleChunksFrustum(t *testing.T) {
	w := NewWorld(1, nil)
	w.UpdatePlayerPosition(mgl32.Vec3{16, 10, 16})

	cam := camera.New(mgl32.Vec3{16, 10, 16}, 16.0/9.0)
	cam.LookAt(mgl32.Vec3{100, 10, 16})

	visible := w.VisibleChunks(cam.Frustum())
	assert.NotEmpty(t, visible)
	assert.Less(t, len(visible), len(w.ChunksToRender()))

	coords := make(map[vec.Vec2]bool)
	for _, c := range visible {
		coords[c.Coords] = true
	}
	assert.True(t, coords[vec.Vec2{X: 0, Z: 0}], "камера внутри центрального чанка")
	assert.True(t, coords[vec.Vec2{X: 1, Z: 0}], "чанк прямо по курсу")
	assert.False(t, coords[vec.Vec2{X: -1, Z: 0}], "чанк за спиной")
}

func TestActiveEntities(t *testing.T) {
	w := NewWorld(1, nil)

	near := entity.NewPlayer("near", mgl32.Vec3{10, 0, 10})
	far := entity.NewPlayer("far", mgl32.Vec3{500, 0, 500})
	w.RegisterEntity(&near.Entity)
	w.RegisterEntity(&far.Entity)

	// До загрузки окна активных сущностей нет
	assert.Empty(t, w.ActiveEntities())
	assert.Len(t, w.Entities(), 2)

	w.UpdatePlayerPosition(mgl32.Vec3{1, 0, 1})
	require.Len(t, w.ActiveEntities(), 1)
	assert.Same(t, &near.Entity, w.ActiveEntities()[0])

	late := entity.NewEntity(entity.EntityTypeObject, mgl32.Vec3{-20, 0, 5}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 1, 1})
	w.RegisterEntity(late)
	assert.Len(t, w.ActiveEntities(), 2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
