package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ScenePosition переводит мировую позицию блока в координаты сцены.
func ScenePosition(p Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(p.X) * BlockScale,
		float32(p.Y) * BlockScale,
		float32(p.Z) * BlockScale,
	}
}

// WorldPosition переводит точку сцены в позицию блока, который её содержит.
// Округление всегда вниз, в том числе для отрицательных координат.
func WorldPosition(scene mgl32.Vec3) Vec3 {
	return Vec3{
		X: int(math.Floor(float64(scene.X() / BlockScale))),
		Y: int(math.Floor(float64(scene.Y() / BlockScale))),
		Z: int(math.Floor(float64(scene.Z() / BlockScale))),
	}
}

// ChunkPosition возвращает координаты чанка, содержащего блок.
func ChunkPosition(p Vec3) Vec2 {
	return Vec2{
		X: floorDiv(p.X, ChunkWidth),
		Z: floorDiv(p.Z, ChunkDepth),
	}
}

// ChunkPositionOfScene возвращает координаты чанка для точки сцены.
func ChunkPositionOfScene(scene mgl32.Vec3) Vec2 {
	return ChunkPosition(WorldPosition(scene))
}

// PositionInChunk возвращает локальные координаты блока внутри его чанка.
// X и Z лежат в [0, 16), Y не меняется.
func PositionInChunk(p Vec3) Vec3 {
	return Vec3{
		X: floorMod(p.X, ChunkWidth),
		Y: p.Y,
		Z: floorMod(p.Z, ChunkDepth),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
