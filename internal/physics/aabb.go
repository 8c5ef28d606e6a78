package physics

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox представляет выровненный по осям параллелепипед в координатах сцены.
// "Передняя" сторона смотрит в +Z, "правая" в +X, "верхняя" в +Y.
type BoundingBox struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32
}

// NewBoundingBox создаёт коробку по двум противоположным углам.
func NewBoundingBox(min, max mgl32.Vec3) BoundingBox {
	return BoundingBox{
		MinX: min.X(), MaxX: max.X(),
		MinY: min.Y(), MaxY: max.Y(),
		MinZ: min.Z(), MaxZ: max.Z(),
	}
}

// CenteredBox создаёт коробку заданного размера с центром в начале координат.
func CenteredBox(size mgl32.Vec3) BoundingBox {
	half := size.Mul(0.5)
	return NewBoundingBox(half.Mul(-1), half)
}

// UnitCube возвращает куб одного блока: [0, BlockScale] по каждой оси.
func UnitCube() BoundingBox {
	return BoundingBox{
		MaxX: vec.BlockScale,
		MaxY: vec.BlockScale,
		MaxZ: vec.BlockScale,
	}
}

func (b BoundingBox) Min() mgl32.Vec3 { return mgl32.Vec3{b.MinX, b.MinY, b.MinZ} }
func (b BoundingBox) Max() mgl32.Vec3 { return mgl32.Vec3{b.MaxX, b.MaxY, b.MaxZ} }

// Center возвращает центр коробки.
func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min().Add(b.Max()).Mul(0.5)
}

// Size возвращает длины рёбер коробки.
func (b BoundingBox) Size() mgl32.Vec3 {
	return b.Max().Sub(b.Min())
}

// OffsetBy возвращает копию коробки, сдвинутую на offset.
func (b BoundingBox) OffsetBy(offset mgl32.Vec3) BoundingBox {
	b.ApplyOffset(offset)
	return b
}

// ApplyOffset сдвигает коробку на месте.
func (b *BoundingBox) ApplyOffset(offset mgl32.Vec3) {
	b.MinX += offset.X()
	b.MaxX += offset.X()
	b.MinY += offset.Y()
	b.MaxY += offset.Y()
	b.MinZ += offset.Z()
	b.MaxZ += offset.Z()
}

// Углы нижней грани: front/back, left/right.
func (b BoundingBox) FBL() mgl32.Vec3 { return mgl32.Vec3{b.MinX, b.MinY, b.MaxZ} }
func (b BoundingBox) BBL() mgl32.Vec3 { return mgl32.Vec3{b.MinX, b.MinY, b.MinZ} }
func (b BoundingBox) FBR() mgl32.Vec3 { return mgl32.Vec3{b.MaxX, b.MinY, b.MaxZ} }
func (b BoundingBox) BBR() mgl32.Vec3 { return mgl32.Vec3{b.MaxX, b.MinY, b.MinZ} }

// Углы верхней грани.
func (b BoundingBox) FTL() mgl32.Vec3 { return mgl32.Vec3{b.MinX, b.MaxY, b.MaxZ} }
func (b BoundingBox) BTL() mgl32.Vec3 { return mgl32.Vec3{b.MinX, b.MaxY, b.MinZ} }
func (b BoundingBox) FTR() mgl32.Vec3 { return mgl32.Vec3{b.MaxX, b.MaxY, b.MaxZ} }
func (b BoundingBox) BTR() mgl32.Vec3 { return mgl32.Vec3{b.MaxX, b.MaxY, b.MinZ} }

// Corners возвращает все восемь углов коробки.
func (b BoundingBox) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		b.FBL(), b.BBL(), b.FBR(), b.BBR(),
		b.FTL(), b.BTL(), b.FTR(), b.BTR(),
	}
}

// Contains проверяет, лежит ли точка внутри коробки (границы включены).
func (b BoundingBox) Contains(p mgl32.Vec3) bool {
	return (p.X() >= b.MinX && p.X() <= b.MaxX) &&
		(p.Y() >= b.MinY && p.Y() <= b.MaxY) &&
		(p.Z() >= b.MinZ && p.Z() <= b.MaxZ)
}

// CollidesWith проверяет пересечение двух коробок. Касание считается пересечением.
func (b BoundingBox) CollidesWith(other BoundingBox) bool {
	return (b.MinX <= other.MaxX && b.MaxX >= other.MinX) &&
		(b.MinY <= other.MaxY && b.MaxY >= other.MinY) &&
		(b.MinZ <= other.MaxZ && b.MaxZ >= other.MinZ)
}

// Intersects пускает луч из origin в направлении dir и возвращает точку входа,
// если пересечение лежит в интервале (minDist, maxDist).
func (b BoundingBox) Intersects(origin, dir mgl32.Vec3, minDist, maxDist float32) (bool, mgl32.Vec3) {
	tmin, tmax := slab(b.MinX, b.MaxX, origin.X(), dir.X())
	tymin, tymax := slab(b.MinY, b.MaxY, origin.Y(), dir.Y())

	if tmin > tymax || tymin > tmax {
		return false, mgl32.Vec3{}
	}
	if tymin > tmin {
		tmin = tymin
	}
	if tymax < tmax {
		tmax = tymax
	}

	tzmin, tzmax := slab(b.MinZ, b.MaxZ, origin.Z(), dir.Z())
	if tmin > tzmax || tzmin > tmax {
		return false, mgl32.Vec3{}
	}
	if tzmin > tmin {
		tmin = tzmin
	}
	if tzmax < tmax {
		tmax = tzmax
	}

	if tmin < maxDist && tmax > minDist {
		return true, origin.Add(dir.Mul(tmin))
	}
	return false, mgl32.Vec3{}
}

// slab возвращает параметры входа и выхода луча для одной оси.
// При нулевой компоненте направления деление даёт ±Inf, что корректно
// отсекает лучи, параллельные граням.
func slab(min, max, origin, dir float32) (float32, float32) {
	inv := 1 / dir
	t0 := (min - origin) * inv
	t1 := (max - origin) * inv
	if inv < 0 {
		t0, t1 = t1, t0
	}
	return t0, t1
}
