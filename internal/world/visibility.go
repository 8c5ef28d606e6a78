package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// UpdateVisibility перестраивает меш чанка, если он помечен dirty.
// Возвращает true, если меш был перестроен.
//
// Слои обходятся сверху вниз. Обход останавливается на первом слое, где
// не нашлось ни одного прозрачного блока или прозрачного соседа: всё, что
// ниже, считается закрытым. Это приближение, пещеры под сплошным слоем
// не попадут в меш.
func (c *Chunk) UpdateVisibility() bool {
	if !c.dirty {
		return false
	}
	c.dirty = false

	c.mesh.Reset()
	defer c.mesh.Finalize()

	for segNo := vec.SegmentsPerChunk - 1; segNo >= 0; segNo-- {
		seg := c.segments[segNo]
		if seg == nil || seg.airOnly {
			continue
		}

		base := vec.MinY + segNo*vec.SegmentHeight
		for y := base + vec.SegmentHeight - 1; y >= base; y-- {
			if !c.meshLayer(seg, base, y) {
				return true
			}
		}
	}
	return true
}

// meshLayer считает маски граней для слоя y и добавляет видимые грани в меш.
// Возвращает false, если слой полностью закрыт.
func (c *Chunk) meshLayer(seg *ChunkSegment, base, y int) bool {
	foundTransparent := false

	for x := 0; x < vec.ChunkWidth; x++ {
		for z := 0; z < vec.ChunkDepth; z++ {
			b := seg.BlockAt(vec.Vec3{X: x, Y: y, Z: z})
			if b.IsAir() {
				b.Faces = block.FaceNone
				foundTransparent = true
				continue
			}

			if block.IsTransparent(b.ID) {
				foundTransparent = true
			}

			water := b.ID == block.WaterBlockID
			mask := block.FaceNone
			for f := block.FaceRight; f < block.FaceCount; f++ {
				off := f.Offset()
				nx, ny, nz := x+off.X, y+off.Y, z+off.Z

				var n *Block
				if nx >= 0 && nx < vec.ChunkWidth && nz >= 0 && nz < vec.ChunkDepth &&
					ny >= base && ny < base+vec.SegmentHeight {
					n = seg.BlockAt(vec.Vec3{X: nx, Y: ny, Z: nz})
				} else {
					n = c.neighbourBlock(vec.Vec3{X: nx, Y: ny, Z: nz})
				}

				switch {
				case n == nil:
					// Незагруженный чанк или несозданный сегмент.
					mask |= f.Mask()
					foundTransparent = true
				case block.IsTransparent(n.ID):
					if !water || n.ID != block.WaterBlockID {
						mask |= f.Mask()
					}
					foundTransparent = true
				}
			}

			b.Faces = mask
			if mask != block.FaceNone {
				c.mesh.AddBlock(b.ID, b.BoundingBox(), mask)
			}
		}
	}

	return foundTransparent
}

// neighbourBlock ищет блок по позиции в координатах чанка, которая может
// лежать вне текущего сегмента или чанка.
func (c *Chunk) neighbourBlock(local vec.Vec3) *Block {
	pos := c.WorldPosition(local)
	if c.contains(pos) {
		return c.BlockAt(pos)
	}
	if c.world == nil {
		return nil
	}
	return c.world.Block(pos)
}
