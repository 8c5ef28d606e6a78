package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// WorldSegment представляет квадрат 5x5 чанков, единица загрузки и генерации мира.
type WorldSegment struct {
	Coords vec.Vec2
	chunks [vec.WorldSegmentWidth][vec.WorldSegmentDepth]*Chunk
}

// NewWorldSegment создаёт сегмент со всеми 25 чанками.
func NewWorldSegment(world *World, coords vec.Vec2) *WorldSegment {
	seg := &WorldSegment{Coords: coords}
	baseX := coords.X * vec.WorldSegmentWidth
	baseZ := coords.Z * vec.WorldSegmentDepth
	for i := 0; i < vec.WorldSegmentWidth; i++ {
		for j := 0; j < vec.WorldSegmentDepth; j++ {
			seg.chunks[i][j] = NewChunk(world, vec.Vec2{X: baseX + i, Z: baseZ + j})
		}
	}
	return seg
}

// Chunk возвращает чанк по локальным координатам внутри сегмента.
func (s *WorldSegment) Chunk(local vec.Vec2) *Chunk {
	return s.chunks[local.X][local.Z]
}

// Chunks возвращает все чанки сегмента, X во внешнем цикле.
func (s *WorldSegment) Chunks() []*Chunk {
	out := make([]*Chunk, 0, vec.WorldSegmentWidth*vec.WorldSegmentDepth)
	for i := range s.chunks {
		for j := range s.chunks[i] {
			out = append(out, s.chunks[i][j])
		}
	}
	return out
}

// attach привязывает чанки сегмента к миру.
func (s *WorldSegment) attach(world *World) {
	for _, c := range s.Chunks() {
		c.world = world
		c.spill = nil
	}
}

// chunkAt возвращает чанк сегмента по мировой позиции чанка или nil,
// если чанк принадлежит другому сегменту.
func (s *WorldSegment) chunkAt(pos vec.Vec2) *Chunk {
	segPos, local := pos.WorldSegment()
	if segPos != s.Coords {
		return nil
	}
	return s.Chunk(local)
}
