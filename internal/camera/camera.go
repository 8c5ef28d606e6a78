package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Значения по умолчанию для плоскостей отсечения.
const (
	DefaultNear = 0.1
	DefaultFar  = 200.0
	DefaultFOV  = 45.0
)

// Camera хранит положение наблюдателя и производные матрицы.
// Направление задаётся углами: yaw в плоскости XZ, pitch от горизонта.
type Camera struct {
	Position mgl32.Vec3

	Yaw   float32 // радианы
	Pitch float32 // радианы

	FOV    float32 // градусы, по вертикали
	Aspect float32
	Near   float32
	Far    float32

	direction mgl32.Vec3
	right     mgl32.Vec3
	up        mgl32.Vec3

	view       mgl32.Mat4
	projection mgl32.Mat4
	frustum    Frustum
}

// New создаёт камеру с параметрами проекции по умолчанию.
func New(position mgl32.Vec3, aspect float32) *Camera {
	c := &Camera{
		Position: position,
		Yaw:      math.Pi,
		FOV:      DefaultFOV,
		Aspect:   aspect,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
	c.Update()
	return c
}

// Update пересчитывает базис, матрицы и пирамиду видимости.
// Вызывается после изменения положения, углов или параметров проекции.
func (c *Camera) Update() {
	cp := float32(math.Cos(float64(c.Pitch)))
	c.direction = mgl32.Vec3{
		cp * float32(math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		cp * float32(math.Cos(float64(c.Yaw))),
	}
	c.right = mgl32.Vec3{
		float32(math.Sin(float64(c.Yaw) - math.Pi/2)),
		0,
		float32(math.Cos(float64(c.Yaw) - math.Pi/2)),
	}
	c.up = c.right.Cross(c.direction)

	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.view = mgl32.LookAtV(c.Position, c.Position.Add(c.direction), c.up)
	c.frustum = NewFrustum(c.Position, c.direction, c.up, c.right, c.FOV, c.Aspect, c.Near, c.Far)
}

// LookAt поворачивает камеру к точке сцены.
func (c *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Pitch = float32(math.Asin(float64(d.Y())))
	c.Yaw = float32(math.Atan2(float64(d.X()), float64(d.Z())))
	c.Update()
}

func (c *Camera) Direction() mgl32.Vec3  { return c.direction }
func (c *Camera) Right() mgl32.Vec3      { return c.right }
func (c *Camera) Up() mgl32.Vec3         { return c.up }
func (c *Camera) View() mgl32.Mat4       { return c.view }
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// ViewProjection возвращает произведение проекции и вида.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.view)
}

// Frustum возвращает пирамиду видимости, посчитанную при последнем Update.
func (c *Camera) Frustum() *Frustum {
	return &c.frustum
}
