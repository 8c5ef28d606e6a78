package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
)

// EntityType представляет тип сущности
type EntityType uint16

const (
	EntityTypePlayer EntityType = iota
	EntityTypeObject
)

// Obstacles отдаёт коробки препятствий мира. Мир реализует этот интерфейс
// для непрозрачных блоков.
type Obstacles interface {
	Obstacle(pos vec.Vec3) (physics.BoundingBox, bool)
}

// Entity представляет базовую сущность в мире
type Entity struct {
	ID        uuid.UUID  // Уникальный идентификатор сущности
	Type      EntityType // Тип сущности
	Position  mgl32.Vec3 // Позиция центра в координатах сцены
	Direction mgl32.Vec3 // Направление взгляда
	Collides  bool       // Участвует ли в столкновениях

	box physics.BoundingBox // хитбокс с центром в начале координат
}

// NewEntity создаёт новую сущность с хитбоксом заданного размера
func NewEntity(entityType EntityType, position, direction, size mgl32.Vec3) *Entity {
	return &Entity{
		ID:        uuid.New(),
		Type:      entityType,
		Position:  position,
		Direction: direction,
		Collides:  true,
		box:       physics.CenteredBox(size),
	}
}

// BoundingBox возвращает хитбокс в текущей позиции.
func (e *Entity) BoundingBox() physics.BoundingBox {
	return e.box.OffsetBy(e.Position)
}

func (e *Entity) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(e.Position.X(), e.Position.Y(), e.Position.Z())
}

func (e *Entity) WorldPosition() vec.Vec3 {
	return vec.WorldPosition(e.Position)
}

func (e *Entity) ChunkPosition() vec.Vec2 {
	return vec.ChunkPositionOfScene(e.Position)
}

// WouldCollide проверяет, пересёк бы хитбокс в позиции newPos
// какой-либо непрозрачный блок поблизости.
func (e *Entity) WouldCollide(world Obstacles, newPos mgl32.Vec3) bool {
	if !e.Collides {
		return false
	}

	moved := e.box.OffsetBy(newPos)
	size := e.box.Size()

	// Радиус обхода в блоках по каждой оси.
	rx := int(math.Ceil(float64(size.X()/vec.BlockScale))) + 1
	ry := int(math.Ceil(float64(size.Y()/vec.BlockScale))) + 1
	rz := int(math.Ceil(float64(size.Z()/vec.BlockScale))) + 1

	center := vec.WorldPosition(newPos)
	for x := center.X - rx; x < center.X+rx; x++ {
		for y := center.Y - ry; y < center.Y+ry; y++ {
			for z := center.Z - rz; z < center.Z+rz; z++ {
				box, ok := world.Obstacle(vec.Vec3{X: x, Y: y, Z: z})
				if ok && moved.CollidesWith(box) {
					return true
				}
			}
		}
	}
	return false
}

// MoveTo перемещает сущность, если на новом месте нет препятствий.
func (e *Entity) MoveTo(world Obstacles, newPos mgl32.Vec3) bool {
	if e.WouldCollide(world, newPos) {
		return false
	}
	e.Position = newPos
	return true
}
