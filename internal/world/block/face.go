package block

import (
	"math/bits"

	"github.com/annel0/voxel-engine/internal/vec"
)

// Face обозначает грань куба блока. Порядок совпадает с порядком бит в FaceMask.
type Face uint8

const (
	FaceRight  Face = iota // +X
	FaceLeft               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceFront              // +Z
	FaceBack               // -Z

	FaceCount = 6
)

// FaceMask набор граней, которые нужно отрисовать
type FaceMask uint8

const (
	FaceNone FaceMask = 0
	AllFaces FaceMask = 1<<FaceCount - 1
)

var faceOffsets = [FaceCount]vec.Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

var faceNames = [FaceCount]string{"right", "left", "top", "bottom", "front", "back"}

// Valid сообщает, является ли значение одной из шести граней.
func (f Face) Valid() bool {
	return f < FaceCount
}

// Mask возвращает бит грани или FaceNone для недопустимой грани.
func (f Face) Mask() FaceMask {
	if !f.Valid() {
		return FaceNone
	}
	return 1 << f
}

// Offset возвращает единичное смещение к соседу через эту грань.
func (f Face) Offset() vec.Vec3 {
	if !f.Valid() {
		return vec.Vec3{}
	}
	return faceOffsets[f]
}

// Opposite возвращает противоположную грань.
func (f Face) Opposite() Face {
	return f ^ 1
}

func (f Face) String() string {
	if !f.Valid() {
		return "invalid"
	}
	return faceNames[f]
}

// Has проверяет, входит ли грань в маску.
func (m FaceMask) Has(f Face) bool {
	return m&f.Mask() != 0
}

// Count возвращает количество граней в маске.
func (m FaceMask) Count() int {
	return bits.OnesCount8(uint8(m))
}
