package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitCubeOffset(t *testing.T) {
	box := UnitCube().OffsetBy(mgl32.Vec3{10, -4, 2})

	assert.Equal(t, mgl32.Vec3{10, -4, 2}, box.Min())
	assert.Equal(t, mgl32.Vec3{12, -2, 4}, box.Max())
	assert.Equal(t, mgl32.Vec3{11, -3, 3}, box.Center())
}

func TestCornersNaming(t *testing.T) {
	box := NewBoundingBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 2, 3})

	assert.Equal(t, mgl32.Vec3{0, 0, 3}, box.FBL())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, box.BBL())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, box.FTR())
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, box.BTR())

	seen := map[mgl32.Vec3]bool{}
	for _, c := range box.Corners() {
		seen[c] = true
	}
	assert.Len(t, seen, 8)
}

func TestContainsAndCollides(t *testing.T) {
	a := NewBoundingBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2})
	b := a.OffsetBy(mgl32.Vec3{2, 0, 0})
	c := a.OffsetBy(mgl32.Vec3{2.5, 0, 0})

	assert.True(t, a.Contains(mgl32.Vec3{1, 1, 1}))
	assert.True(t, a.Contains(mgl32.Vec3{2, 2, 2}))
	assert.False(t, a.Contains(mgl32.Vec3{2.1, 1, 1}))

	assert.True(t, a.CollidesWith(b), "касание — столкновение")
	assert.False(t, a.CollidesWith(c))
}

func TestIntersectsRay(t *testing.T) {
	box := NewBoundingBox(mgl32.Vec3{4, -1, -1}, mgl32.Vec3{6, 1, 1})

	hit, p := box.Intersects(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 0, 100)
	require.True(t, hit)
	assert.InDelta(t, 4, p.X(), 1e-5)

	hit, _ = box.Intersects(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{-1, 0, 0}, 0, 100)
	assert.False(t, hit, "луч в обратную сторону")

	hit, _ = box.Intersects(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 0, 3)
	assert.False(t, hit, "коробка дальше maxDist")

	hit, p = box.Intersects(mgl32.Vec3{10, 0.5, 0}, mgl32.Vec3{-1, 0, 0}, 0, 100)
	require.True(t, hit)
	assert.InDelta(t, 6, p.X(), 1e-5)

	dir := mgl32.Vec3{1, 1, 0}.Normalize()
	hit, _ = box.Intersects(mgl32.Vec3{0, 0, 0}, dir, 0, 100)
	assert.False(t, hit, "диагональ проходит выше коробки")
}

func TestSphereAround(t *testing.T) {
	s := SphereAround(NewBoundingBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}))

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Center)
	assert.InDelta(t, 1.7320508, s.Radius, 1e-5)
}
