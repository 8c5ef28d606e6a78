package vec

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestWorldScenePositionRoundTrip(t *testing.T) {
	for x := -40; x <= 40; x += 7 {
		for y := MinY; y < MaxY; y += 13 {
			for z := -40; z <= 40; z += 5 {
				p := Vec3{X: x, Y: y, Z: z}
				assert.Equal(t, p, WorldPosition(ScenePosition(p)), "позиция %v должна сохраниться", p)
			}
		}
	}
}

func TestWorldPositionFloorsNegative(t *testing.T) {
	tests := []struct {
		scene mgl32.Vec3
		want  Vec3
	}{
		{mgl32.Vec3{0, 0, 0}, Vec3{0, 0, 0}},
		{mgl32.Vec3{1.9, 3.5, 0.1}, Vec3{0, 1, 0}},
		{mgl32.Vec3{-0.1, -2, -2.1}, Vec3{-1, -1, -2}},
		{mgl32.Vec3{-4, -3.99, 4}, Vec3{-2, -2, 2}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WorldPosition(tt.scene), "scene %v", tt.scene)
	}
}

func TestChunkPositionNegative(t *testing.T) {
	tests := []struct {
		pos  Vec3
		want Vec2
	}{
		{Vec3{X: 0, Z: 0}, Vec2{X: 0, Z: 0}},
		{Vec3{X: 15, Z: 15}, Vec2{X: 0, Z: 0}},
		{Vec3{X: 16, Z: 31}, Vec2{X: 1, Z: 1}},
		{Vec3{X: -1, Z: -1}, Vec2{X: -1, Z: -1}},
		{Vec3{X: -16, Z: -17}, Vec2{X: -1, Z: -2}},
		{Vec3{X: -33, Z: 40}, Vec2{X: -3, Z: 2}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChunkPosition(tt.pos), "pos %v", tt.pos)
	}
}

func TestPositionInChunkReconstructs(t *testing.T) {
	for x := -70; x <= 70; x++ {
		for _, z := range []int{-33, -16, -1, 0, 1, 15, 16, 47} {
			p := Vec3{X: x, Y: -5, Z: z}
			local := PositionInChunk(p)

			assert.GreaterOrEqual(t, local.X, 0)
			assert.Less(t, local.X, ChunkWidth)
			assert.GreaterOrEqual(t, local.Z, 0)
			assert.Less(t, local.Z, ChunkDepth)
			assert.Equal(t, p.Y, local.Y)

			origin := ChunkPosition(p).WorldOrigin()
			assert.Equal(t, p, Vec3{X: origin.X + local.X, Y: local.Y, Z: origin.Z + local.Z})
		}
	}
}

func TestVec2WorldSegment(t *testing.T) {
	seg, local := Vec2{X: 7, Z: 4}.WorldSegment()
	assert.Equal(t, Vec2{X: 1, Z: 0}, seg)
	assert.Equal(t, Vec2{X: 2, Z: 4}, local)

	seg, local = Vec2{X: -1, Z: -5}.WorldSegment()
	assert.Equal(t, Vec2{X: -1, Z: -1}, seg)
	assert.Equal(t, Vec2{X: 4, Z: 0}, local)

	seg, local = Vec2{X: -6, Z: 0}.WorldSegment()
	assert.Equal(t, Vec2{X: -2, Z: 0}, seg)
	assert.Equal(t, Vec2{X: 4, Z: 0}, local)
}

func TestVec2CenterWorldPosition(t *testing.T) {
	assert.Equal(t, Vec3{X: 8, Y: 0, Z: 8}, Vec2{}.CenterWorldPosition())
	assert.Equal(t, Vec3{X: -24, Y: 0, Z: 40}, Vec2{X: -2, Z: 2}.CenterWorldPosition())
}
