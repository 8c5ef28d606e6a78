package physics

import "github.com/go-gl/mathgl/mgl32"

// BoundingSphere описывает сферу в координатах сцены.
type BoundingSphere struct {
	Center mgl32.Vec3
	Radius float32
}

// SphereAround возвращает сферу, описанную вокруг коробки.
func SphereAround(b BoundingBox) BoundingSphere {
	return BoundingSphere{
		Center: b.Center(),
		Radius: b.Size().Len() / 2,
	}
}
