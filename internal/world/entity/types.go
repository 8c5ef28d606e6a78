package entity

import "github.com/go-gl/mathgl/mgl32"

// Размер хитбокса игрока в координатах сцены.
var PlayerSize = mgl32.Vec3{1.2, 3.6, 1.2}

// Player представляет игрока в игре
type Player struct {
	Entity
	Name string
}

// NewPlayer создаёт игрока, смотрящего вдоль -Z.
func NewPlayer(name string, position mgl32.Vec3) *Player {
	return &Player{
		Entity: *NewEntity(EntityTypePlayer, position, mgl32.Vec3{0, 0, -1}, PlayerSize),
		Name:   name,
	}
}
