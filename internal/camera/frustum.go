package camera

import (
	"math"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/go-gl/mathgl/mgl32"
)

// CullResult результат проверки объёма относительно пирамиды видимости.
type CullResult int

const (
	Outside CullResult = iota
	Inside
	Intersect
)

func (r CullResult) String() string {
	switch r {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case Intersect:
		return "intersect"
	default:
		return "unknown"
	}
}

// Plane задаётся точкой и нормалью, направленной внутрь пирамиды.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// Distance возвращает знаковое расстояние от плоскости до точки.
func (p Plane) Distance(v mgl32.Vec3) float32 {
	return p.Normal.Dot(v.Sub(p.Point))
}

// Frustum хранит шесть плоскостей пирамиды видимости: near, far, right, left, top, bottom.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum строит пирамиду по положению и ориентации камеры.
// direction, up и right должны быть взаимно перпендикулярны.
func NewFrustum(position, direction, up, right mgl32.Vec3, fovDeg, aspect, near, far float32) Frustum {
	d := direction.Normalize()

	tang := float32(math.Tan(float64(mgl32.DegToRad(fovDeg)) / 2))
	nh := near * tang
	nw := nh * aspect

	nc := position.Add(d.Mul(near))
	fc := position.Add(d.Mul(far))

	var f Frustum
	f.Planes[0] = Plane{Point: nc, Normal: d}
	f.Planes[1] = Plane{Point: fc, Normal: d.Mul(-1)}

	a := nc.Add(right.Mul(nw)).Sub(position).Normalize()
	f.Planes[2] = Plane{Point: position, Normal: up.Cross(a).Normalize()}

	a = nc.Sub(right.Mul(nw)).Sub(position).Normalize()
	f.Planes[3] = Plane{Point: position, Normal: a.Cross(up).Normalize()}

	a = nc.Add(up.Mul(nh)).Sub(position).Normalize()
	f.Planes[4] = Plane{Point: position, Normal: a.Cross(right).Normalize()}

	a = nc.Sub(up.Mul(nh)).Sub(position).Normalize()
	f.Planes[5] = Plane{Point: position, Normal: right.Cross(a).Normalize()}

	return f
}

// TestPoint проверяет точку.
func (f *Frustum) TestPoint(p mgl32.Vec3) CullResult {
	for _, plane := range f.Planes {
		if plane.Distance(p) < 0 {
			return Outside
		}
	}
	return Inside
}

// TestSphere проверяет сферу.
func (f *Frustum) TestSphere(s physics.BoundingSphere) CullResult {
	result := Inside
	for _, plane := range f.Planes {
		dist := plane.Distance(s.Center)
		if dist < -s.Radius {
			return Outside
		} else if dist < s.Radius {
			result = Intersect
		}
	}
	return result
}

// TestBox проверяет коробку по её восьми углам.
// Результат консервативен: коробка, которая пересекает плоскости вне
// пирамиды, может получить Intersect вместо Outside.
func (f *Frustum) TestBox(box physics.BoundingBox) CullResult {
	result := Inside
	corners := box.Corners()

	for _, plane := range f.Planes {
		in, out := 0, 0
		for _, c := range corners {
			if in != 0 && out != 0 {
				break
			}
			if plane.Distance(c) < 0 {
				out++
			} else {
				in++
			}
		}

		if in == 0 {
			return Outside
		} else if out != 0 {
			result = Intersect
		}
	}
	return result
}
