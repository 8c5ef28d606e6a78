package world

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// recordingGenerator запоминает порядок генерации и то, что уже лежало
// в чанке к её началу.
type recordingGenerator struct {
	probe     vec.Vec3
	generated []vec.Vec2
	seen      []block.BlockID
}

func (g *recordingGenerator) GenerateTerrain(c *Chunk) {
	g.generated = append(g.generated, c.Coords)
	if b := c.BlockAt(g.probe); b != nil {
		g.seen = append(g.seen, b.ID)
	}
}

func TestWorldCreation(t *testing.T) {
	w := NewWorld(2, nil)

	minX, maxX, minZ, maxZ := w.Bounds()
	assert.Equal(t, [4]int{0, 0, 0, 0}, [4]int{minX, maxX, minZ, maxZ})
	assert.Equal(t, 0, w.LoadedSegments())
	assert.Equal(t, 2, w.RenderDistance())
	assert.Nil(t, w.CenterChunk())
	assert.Empty(t, w.ChunksToRender())

	// Чтение без allocate ничего не создаёт
	assert.Nil(t, w.Chunk(vec.Vec2{X: 3, Z: 3}, false))
	assert.Nil(t, w.Block(vec.Vec3{X: 1, Y: 1, Z: 1}))
	minX, maxX, minZ, maxZ = w.Bounds()
	assert.Equal(t, [4]int{0, 0, 0, 0}, [4]int{minX, maxX, minZ, maxZ})
}

func TestWorldSegmentLaziness(t *testing.T) {
	gen := &recordingGenerator{}
	w := NewWorld(1, gen)

	c := w.Chunk(vec.Vec2{X: 7, Z: -3}, true)
	require.NotNil(t, c)
	assert.Equal(t, vec.Vec2{X: 7, Z: -3}, c.Coords)
	assert.True(t, c.Generated())
	assert.Equal(t, 0, c.AllocatedSegments())

	minX, maxX, minZ, maxZ := w.Bounds()
	assert.Equal(t, [4]int{1, 2, -1, 0}, [4]int{minX, maxX, minZ, maxZ})
	assert.Equal(t, 1, w.LoadedSegments())
	assert.Len(t, gen.generated, vec.WorldSegmentWidth*vec.WorldSegmentDepth)

	// Повторный запрос не генерирует заново
	assert.Same(t, c, w.Chunk(vec.Vec2{X: 7, Z: -3}, true))
	assert.Len(t, gen.generated, vec.WorldSegmentWidth*vec.WorldSegmentDepth)
}

func TestWorldGrowthPreservesIdentity(t *testing.T) {
	w := NewWorld(1, nil)

	first := w.Segment(0, 0, true)
	pos := vec.Vec3{X: 3, Y: 4, Z: 5}
	w.UpdateBlock(pos, NewBlock(block.SandBlockID, pos), false)

	second := w.Segment(3, -2, true)
	require.NotNil(t, second)

	minX, maxX, minZ, maxZ := w.Bounds()
	assert.Equal(t, [4]int{0, 4, -2, 1}, [4]int{minX, maxX, minZ, maxZ})
	assert.Same(t, first, w.Segment(0, 0, false))
	assert.Same(t, second, w.Segment(3, -2, false))
	assert.Nil(t, w.Segment(1, 0, false))
	assert.Equal(t, 2, w.LoadedSegments())

	third := w.Segment(-1, 2, true)
	assert.Same(t, first, w.Segment(0, 0, false))
	assert.Same(t, second, w.Segment(3, -2, false))
	assert.Same(t, third, w.Segment(-1, 2, false))

	b := w.Block(pos)
	require.NotNil(t, b)
	assert.Equal(t, block.SandBlockID, b.ID)
}

func TestWorldBlockNegativeCoordinates(t *testing.T) {
	w := NewWorld(1, nil)

	positions := []vec.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: -16, Y: vec.MinY, Z: -17},
		{X: -81, Y: vec.MaxY - 1, Z: 80},
	}
	for _, pos := range positions {
		w.Chunk(vec.ChunkPosition(pos), true)
		w.UpdateBlock(pos, NewBlock(block.StoneBlockID, pos), false)
	}
	for _, pos := range positions {
		b := w.Block(pos)
		require.NotNil(t, b, "позиция %v", pos)
		assert.Equal(t, block.StoneBlockID, b.ID)
		assert.Equal(t, pos, b.Pos)
		assert.Equal(t, vec.ChunkPosition(pos), w.Chunk(vec.ChunkPosition(pos), false).Coords)
	}
}

func TestWorldBlockNeighbours(t *testing.T) {
	w := NewWorld(1, nil)
	w.Segment(0, 0, true)

	center := vec.Vec3{X: 16, Y: 0, Z: 16}
	w.UpdateBlock(center, NewBlock(block.StoneBlockID, center), false)
	b := w.Block(center)
	require.NotNil(t, b)

	right := center.Add(block.FaceRight.Offset())
	w.UpdateBlock(right, NewBlock(block.DirtBlockID, right), false)

	n := w.BlockNeighbours(b)
	require.NotNil(t, n[block.FaceRight])
	assert.Equal(t, block.DirtBlockID, n[block.FaceRight].ID)
	require.NotNil(t, n[block.FaceTop])
	assert.True(t, n[block.FaceTop].IsAir())
	assert.Equal(t, vec.Vec3{X: 16, Y: 1, Z: 16}, n[block.FaceTop].Pos)
	// В соседнем чанке сегмент на этой высоте ещё не создан
	assert.Nil(t, n[block.FaceLeft])
	assert.Nil(t, w.BlockNeighbour(b, block.Face(42)))
}

func TestWorldDelayedUpdatesReplayedOnce(t *testing.T) {
	pos := vec.Vec3{X: 165, Y: 3, Z: 2}
	gen := &recordingGenerator{probe: pos}
	w := NewWorld(1, gen)

	chunk := vec.ChunkPosition(pos)
	w.UpdateBlock(pos, NewBlock(block.DirtBlockID, pos), true)
	w.UpdateBlock(pos, NewBlock(block.StoneBlockID, pos), true)
	// Без откладывания запись в незагруженный чанк теряется
	w.UpdateBlock(pos, NewBlock(block.SandBlockID, pos), false)
	assert.Equal(t, 2, w.PendingUpdates(chunk))
	assert.Equal(t, 0, w.LoadedSegments())

	c := w.Chunk(chunk, true)
	require.NotNil(t, c)

	// Записи применены по порядку и до генерации ландшафта
	assert.Equal(t, []block.BlockID{block.StoneBlockID}, gen.seen)
	assert.Equal(t, block.StoneBlockID, w.Block(pos).ID)
	assert.Equal(t, 0, w.PendingUpdates(chunk))

	w.UpdateBlock(pos, NewBlock(block.GlassBlockID, pos), true)
	assert.Equal(t, 0, w.PendingUpdates(chunk))
	assert.Equal(t, block.GlassBlockID, w.Block(pos).ID)
}

func TestWorldNewSegmentDirtiesBorders(t *testing.T) {
	w := NewWorld(1, nil)
	w.Segment(0, 0, true)

	edge := w.Chunk(vec.Vec2{X: 4, Z: 2}, false)
	inner := w.Chunk(vec.Vec2{X: 3, Z: 2}, false)
	require.NotNil(t, edge)
	edge.UpdateVisibility()
	inner.UpdateVisibility()

	w.Segment(1, 0, true)
	assert.True(t, edge.IsDirty())
	assert.False(t, inner.IsDirty())
}

func TestWorldObstacle(t *testing.T) {
	w := NewWorld(1, nil)
	w.Segment(0, 0, true)

	stone := vec.Vec3{X: 1, Y: 1, Z: 1}
	glass := vec.Vec3{X: 2, Y: 1, Z: 1}
	w.UpdateBlock(stone, NewBlock(block.StoneBlockID, stone), false)
	w.UpdateBlock(glass, NewBlock(block.GlassBlockID, glass), false)

	box, ok := w.Obstacle(stone)
	assert.True(t, ok)
	assert.Equal(t, float32(2), box.MinX)

	_, ok = w.Obstacle(glass)
	assert.False(t, ok)
	_, ok = w.Obstacle(vec.Vec3{X: 1, Y: 2, Z: 1})
	assert.False(t, ok)
	_, ok = w.Obstacle(vec.Vec3{X: -100, Y: 0, Z: 0})
	assert.False(t, ok)
}

func TestWorldDump(t *testing.T) {
	w := NewWorld(1, nil)
	w.Segment(0, 0, true)
	w.Segment(1, 0, true)

	var buf bytes.Buffer
	require.NoError(t, w.Dump(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2*vec.WorldSegmentWidth)
	assert.Equal(t, "(0, 0) (0, 1) (0, 2) (0, 3) (0, 4)", lines[0])
	assert.Equal(t, "(9, 0) (9, 1) (9, 2) (9, 3) (9, 4)", lines[9])

	w.Segment(0, 1, true)
	buf.Reset()
	require.NoError(t, w.Dump(&buf))
	lines = strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.True(t, strings.HasSuffix(lines[9], "(-) (-) (-) (-) (-)"))
}
