package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// ChunkSegment представляет горизонтальный срез чанка высотой SegmentHeight.
// Создаётся при первой записи и больше не перевыделяется.
type ChunkSegment struct {
	blocks  [vec.SegmentVolume]Block
	airOnly bool
}

// newChunkSegment создаёт сегмент, заполненный воздухом с правильными позициями.
// origin: мировая позиция блока с локальными координатами (0, 0, 0) сегмента.
func newChunkSegment(origin vec.Vec3) *ChunkSegment {
	seg := &ChunkSegment{airOnly: true}
	for x := 0; x < vec.ChunkWidth; x++ {
		for y := 0; y < vec.SegmentHeight; y++ {
			for z := 0; z < vec.ChunkDepth; z++ {
				seg.blocks[x+vec.ChunkWidth*(y+vec.SegmentHeight*z)] = AirBlock(vec.Vec3{
					X: origin.X + x,
					Y: origin.Y + y,
					Z: origin.Z + z,
				})
			}
		}
	}
	return seg
}

// segmentIndex возвращает индекс блока внутри сегмента. local.X и local.Z в [0, 16),
// local.Y берётся мировой, из диапазона сегмента.
func segmentIndex(local vec.Vec3) int {
	ymod := (local.Y - vec.MinY) % vec.SegmentHeight
	return local.X + vec.ChunkWidth*(ymod+vec.SegmentHeight*local.Z)
}

// BlockAt возвращает блок по позиции в чанке. Границы не проверяются.
func (s *ChunkSegment) BlockAt(local vec.Vec3) *Block {
	return &s.blocks[segmentIndex(local)]
}

// AirOnly сообщает, что в сегмент ещё не записывался ни один непустой блок.
func (s *ChunkSegment) AirOnly() bool {
	return s.airOnly
}
