package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Block представляет собой блок в игровом мире
type Block struct {
	ID    block.BlockID  // Идентификатор типа блока
	Faces block.FaceMask // Грани, видимые после последнего расчёта видимости
	Pos   vec.Vec3       // Мировая позиция

	box *physics.BoundingBox // вычисляется при первом обращении
}

// NewBlock создаёт блок указанного типа в мировой позиции pos
func NewBlock(id block.BlockID, pos vec.Vec3) Block {
	return Block{ID: id, Pos: pos}
}

// AirBlock возвращает пустой блок в позиции pos
func AirBlock(pos vec.Vec3) Block {
	return Block{ID: block.AirBlockID, Pos: pos}
}

func (b *Block) Is(id block.BlockID) bool { return b.ID == id }
func (b *Block) IsAir() bool              { return b.ID == block.AirBlockID }
func (b *Block) IsTransparent() bool      { return block.IsTransparent(b.ID) }
func (b *Block) IsSolid() bool            { return block.IsSolid(b.ID) }

// Visible возвращает true, если у блока есть хотя бы одна видимая грань
func (b *Block) Visible() bool {
	return b.Faces != block.FaceNone
}

// ScenePosition возвращает минимальный угол блока в координатах сцены.
func (b *Block) ScenePosition() mgl32.Vec3 {
	return vec.ScenePosition(b.Pos)
}

// BoundingBox возвращает коробку блока в координатах сцены.
func (b *Block) BoundingBox() physics.BoundingBox {
	if b.box == nil {
		box := physics.UnitCube().OffsetBy(b.ScenePosition())
		b.box = &box
	}
	return *b.box
}

// ModelMatrix переносит единичный куб в позицию блока.
func (b *Block) ModelMatrix() mgl32.Mat4 {
	p := b.ScenePosition()
	return mgl32.Translate3D(p.X(), p.Y(), p.Z())
}

// moveTo переносит блок в pos, сбрасывая кэш коробки при смене позиции.
func (b *Block) moveTo(pos vec.Vec3) {
	if b.Pos != pos {
		b.Pos = pos
		b.box = nil
	}
}
