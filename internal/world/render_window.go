package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/camera"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/entity"
)

// UpdatePlayerPosition перестраивает окно рендера, когда игрок ушёл от
// центрального чанка дальше порога renderDistance*15 единиц сцены.
func (w *World) UpdatePlayerPosition(scene mgl32.Vec3) {
	c := w.Chunk(vec.ChunkPositionOfScene(scene), true)
	if c == w.centerChunk {
		return
	}

	if w.centerChunk == nil {
		w.LoadChunk(c)
		return
	}

	center := vec.ScenePosition(w.centerChunk.CenterWorldPosition())
	if scene.Sub(center).Len() > w.reloadThreshold {
		w.LoadChunk(c)
	}
}

// LoadChunk делает c центром окна рендера и заполняет окно по спирали:
// сначала центр, затем кольца на расстоянии 1..renderDistance.
func (w *World) LoadChunk(c *Chunk) {
	rd := w.renderDistance
	size := (2*rd + 1) * (2*rd + 1)
	if cap(w.chunksToRender) < size {
		w.chunksToRender = make([]*Chunk, 0, size)
	}
	window := w.chunksToRender[:0]

	cx, cz := c.Coords.X, c.Coords.Z
	window = append(window, c)
	w.centerChunk = c

	for i := 1; i <= rd; i++ {
		for _, x := range [2]int{-i, i} {
			for z := -i; z <= i; z++ {
				window = append(window, w.Chunk(vec.Vec2{X: cx + x, Z: cz + z}, true))
			}
		}
		for _, z := range [2]int{-i, i} {
			for x := -i + 1; x < i; x++ {
				window = append(window, w.Chunk(vec.Vec2{X: cx + x, Z: cz + z}, true))
			}
		}
	}
	w.chunksToRender = window

	active := make([]*entity.Entity, 0, len(w.entities))
	for _, e := range w.entities {
		if w.IsChunkVisible(e.ChunkPosition()) {
			active = append(active, e)
		}
	}
	w.activeEntities = active

	w.metrics.WindowReloaded()
	w.logger.Debug("Окно рендера перестроено вокруг чанка (%d, %d): %d чанков", cx, cz, len(window))
}

// ChunksToRender возвращает окно рендера. Срез принадлежит миру.
func (w *World) ChunksToRender() []*Chunk {
	return w.chunksToRender
}

// CenterChunk возвращает центральный чанк окна или nil до первой загрузки.
func (w *World) CenterChunk() *Chunk {
	return w.centerChunk
}

// IsChunkVisible проверяет, попадает ли чанк в окно рендера
// [center-rd, center+rd] по обеим осям.
func (w *World) IsChunkVisible(pos vec.Vec2) bool {
	if w.centerChunk == nil {
		return false
	}
	rd := w.renderDistance
	center := w.centerChunk.Coords
	return pos.X >= center.X-rd && pos.X <= center.X+rd &&
		pos.Z >= center.Z-rd && pos.Z <= center.Z+rd
}

// UpdateVisibility перестраивает устаревшие меши окна рендера и
// возвращает число перестроенных чанков.
func (w *World) UpdateVisibility() int {
	rebuilt := 0
	for _, c := range w.chunksToRender {
		if c.UpdateVisibility() {
			rebuilt++
		}
	}
	w.metrics.ChunksRemeshed(rebuilt)
	return rebuilt
}

// VisibleChunks возвращает чанки окна, не отсечённые пирамидой видимости.
func (w *World) VisibleChunks(f *camera.Frustum) []*Chunk {
	visible := make([]*Chunk, 0, len(w.chunksToRender))
	for _, c := range w.chunksToRender {
		if f.TestBox(c.BoundingBox()) != camera.Outside {
			visible = append(visible, c)
		}
	}
	w.metrics.SetVisibleChunks(len(visible))
	return visible
}

// MeshFaces возвращает суммарное число граней в мешах окна рендера.
func (w *World) MeshFaces() int {
	faces := 0
	for _, c := range w.chunksToRender {
		faces += c.Mesh().Stats().Faces
	}
	w.metrics.SetMeshFaces(faces)
	return faces
}

// RegisterEntity добавляет сущность в мир.
func (w *World) RegisterEntity(e *entity.Entity) {
	w.entities = append(w.entities, e)
	if w.IsChunkVisible(e.ChunkPosition()) {
		w.activeEntities = append(w.activeEntities, e)
	}
}

// Entities возвращает все зарегистрированные сущности.
func (w *World) Entities() []*entity.Entity {
	return w.entities
}

// ActiveEntities возвращает сущности в окне рендера на момент последней
// загрузки окна или регистрации.
func (w *World) ActiveEntities() []*entity.Entity {
	return w.activeEntities
}
