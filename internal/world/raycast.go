package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/vec"
)

// pickStep шаг луча в единицах сцены
const pickStep float32 = 0.5

// PickBlock идёт по лучу из origin в направлении dir с шагом 0.5 и
// возвращает первый твёрдый загруженный блок ближе maxDistance.
func (w *World) PickBlock(origin, dir mgl32.Vec3, maxDistance float32) *Block {
	if dir.Len() == 0 {
		return nil
	}
	dir = dir.Normalize()

	var last vec.Vec3
	visited := false
	for length := pickStep; length < maxDistance; length += pickStep {
		pos := vec.WorldPosition(origin.Add(dir.Mul(length)))
		if visited && pos == last {
			continue
		}
		visited = true
		last = pos

		if b := w.Block(pos); b != nil && b.IsSolid() {
			return b
		}
	}
	return nil
}
