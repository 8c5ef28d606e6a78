// Package mesh собирает вершинные и индексные буферы чанков для рендерера.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Vertex представляет вершину грани в координатах сцены
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
}

// Mesh хранит вершины и индексы треугольников. После Finalize буферы
// готовы к загрузке на GPU.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	finalized bool
}

var faceNormals = [block.FaceCount]mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// AddCubeFace добавляет четыре вершины и два треугольника грани box.
// Углы идут в порядке: левый нижний, левый верхний, правый верхний,
// правый нижний (если смотреть на грань снаружи).
func (m *Mesh) AddCubeFace(box physics.BoundingBox, face block.Face, uv, size mgl32.Vec2) {
	var corners [4]mgl32.Vec3
	switch face {
	case block.FaceRight:
		corners = [4]mgl32.Vec3{box.FBR(), box.FTR(), box.BTR(), box.BBR()}
	case block.FaceLeft:
		corners = [4]mgl32.Vec3{box.BBL(), box.BTL(), box.FTL(), box.FBL()}
	case block.FaceTop:
		corners = [4]mgl32.Vec3{box.FTL(), box.BTL(), box.BTR(), box.FTR()}
	case block.FaceBottom:
		corners = [4]mgl32.Vec3{box.BBL(), box.FBL(), box.FBR(), box.BBR()}
	case block.FaceFront:
		corners = [4]mgl32.Vec3{box.FBL(), box.FTL(), box.FTR(), box.FBR()}
	case block.FaceBack:
		corners = [4]mgl32.Vec3{box.BBR(), box.BTR(), box.BTL(), box.BBL()}
	default:
		return
	}

	uvs := [4]mgl32.Vec2{
		{uv.X(), uv.Y() + size.Y()},
		{uv.X(), uv.Y()},
		{uv.X() + size.X(), uv.Y()},
		{uv.X() + size.X(), uv.Y() + size.Y()},
	}

	base := uint32(len(m.Vertices))
	normal := faceNormals[face]
	for i := range corners {
		m.Vertices = append(m.Vertices, Vertex{Position: corners[i], UV: uvs[i], Normal: normal})
	}
	m.Indices = append(m.Indices,
		base+1, base+0, base+3,
		base+1, base+3, base+2,
	)
	m.finalized = false
}

// Reset очищает буферы, сохраняя выделенную память.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.finalized = false
}

func (m *Mesh) Finalize()       { m.finalized = true }
func (m *Mesh) Finalized() bool { return m.finalized }
func (m *Mesh) Empty() bool     { return len(m.Indices) == 0 }
func (m *Mesh) FaceCount() int  { return len(m.Indices) / 6 }
