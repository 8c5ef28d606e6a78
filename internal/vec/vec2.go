package vec

import "math"

// Vec2 представляет координаты на горизонтальной плоскости (X, Z).
// Используется для позиций чанков и сегментов мира.
type Vec2 struct {
	X, Z int
}

// WorldSegment возвращает координаты сегмента мира, которому принадлежит чанк,
// и локальные координаты чанка внутри этого сегмента.
func (v Vec2) WorldSegment() (segment Vec2, local Vec2) {
	segment = Vec2{
		X: floorDiv(v.X, WorldSegmentWidth),
		Z: floorDiv(v.Z, WorldSegmentDepth),
	}
	local = Vec2{
		X: floorMod(v.X, WorldSegmentWidth),
		Z: floorMod(v.Z, WorldSegmentDepth),
	}
	return segment, local
}

// WorldOrigin возвращает мировую позицию блока (0, 0, 0) внутри чанка.
func (v Vec2) WorldOrigin() Vec3 {
	return Vec3{X: v.X * ChunkWidth, Y: 0, Z: v.Z * ChunkDepth}
}

// CenterWorldPosition возвращает мировую позицию центра чанка на высоте 0.
func (v Vec2) CenterWorldPosition() Vec3 {
	return Vec3{
		X: v.X*ChunkWidth + ChunkWidth/2,
		Y: 0,
		Z: v.Z*ChunkDepth + ChunkDepth/2,
	}
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dz := float64(v.Z - other.Z)
	return math.Sqrt(dx*dx + dz*dz)
}
