package world

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/annel0/voxel-engine/internal/world/entity"
)

// World представляет загруженную часть бесконечного мира и окно рендера вокруг игрока.
// Не потокобезопасен: им владеет одна горутина (цикл кадров).
type World struct {
	grid      segmentGrid
	generator TerrainGenerator
	delayed   *delayedUpdates

	renderDistance  int
	reloadThreshold float32
	chunksToRender  []*Chunk
	centerChunk     *Chunk

	entities       []*entity.Entity
	activeEntities []*entity.Entity

	logger  *logging.Logger
	metrics *observability.WorldMetrics
	tracer  trace.Tracer
}

// Option настраивает World при создании.
type Option func(*World)

// WithLogger задаёт логгер мира.
func WithLogger(l *logging.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithMetrics задаёт Prometheus-метрики мира.
func WithMetrics(m *observability.WorldMetrics) Option {
	return func(w *World) { w.metrics = m }
}

// WithTracer задаёт трейсер для спанов генерации.
func WithTracer(t trace.Tracer) Option {
	return func(w *World) { w.tracer = t }
}

// NewWorld создаёт пустой мир. Генератор можно задать позже через SetGenerator.
func NewWorld(renderDistance int, generator TerrainGenerator, opts ...Option) *World {
	if renderDistance < 0 {
		renderDistance = 0
	}
	w := &World{
		generator:       generator,
		delayed:         newDelayedUpdates(),
		renderDistance:  renderDistance,
		reloadThreshold: float32(renderDistance) * 15,
		logger:          logging.NewNop(),
		tracer:          noop.NewTracerProvider().Tracer(observability.TracerName),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) SetGenerator(g TerrainGenerator) { w.generator = g }
func (w *World) Generator() TerrainGenerator     { return w.generator }
func (w *World) RenderDistance() int             { return w.renderDistance }

// Bounds возвращает текущие границы сетки сегментов: [minX, maxX) x [minZ, maxZ).
func (w *World) Bounds() (minX, maxX, minZ, maxZ int) {
	return w.grid.minX, w.grid.maxX, w.grid.minZ, w.grid.maxZ
}

// Segment возвращает сегмент мира (x, z). При allocate отсутствующий
// сегмент создаётся и генерируется, сетка при необходимости растёт.
func (w *World) Segment(x, z int, allocate bool) *WorldSegment {
	if !w.grid.contains(x, z) {
		if !allocate {
			return nil
		}
		w.grid.grow(x, x+1, z, z+1)
	}

	seg := w.grid.at(x, z)
	if seg != nil || !allocate {
		return seg
	}

	seg = NewWorldSegment(w, vec.Vec2{X: x, Z: z})
	w.grid.set(x, z, seg)
	w.genWorld(seg)
	w.dirtyBorders(seg)
	return seg
}

// genWorld генерирует все чанки нового сегмента: сначала отложенные
// записи, затем ландшафт.
func (w *World) genWorld(seg *WorldSegment) {
	_, span := w.tracer.Start(context.Background(), "world.genWorld",
		trace.WithAttributes(attribute.Int("segment.x", seg.Coords.X), attribute.Int("segment.z", seg.Coords.Z)))
	defer span.End()

	start := time.Now()
	for _, c := range seg.Chunks() {
		w.replayDelayed(c)
		if w.generator != nil {
			w.generator.GenerateTerrain(c)
		}
		c.generated = true
		c.SetModified()
	}

	elapsed := time.Since(start)
	w.metrics.SegmentGenerated(elapsed)
	w.metrics.SetDelayedUpdates(w.delayed.size())
	w.logger.Debug("Сегмент мира (%d, %d) сгенерирован за %v", seg.Coords.X, seg.Coords.Z, elapsed)
}

// replayDelayed применяет накопленные записи чанка ровно один раз.
func (w *World) replayDelayed(c *Chunk) {
	for _, u := range w.delayed.take(c.Coords) {
		c.UpdateBlock(u.pos, u.block, true)
	}
}

// dirtyBorders помечает загруженные чанки, граничащие с новым сегментом:
// их грани в сторону незагруженной области больше не актуальны.
func (w *World) dirtyBorders(seg *WorldSegment) {
	baseX := seg.Coords.X * vec.WorldSegmentWidth
	baseZ := seg.Coords.Z * vec.WorldSegmentDepth

	mark := func(x, z int) {
		if c := w.Chunk(vec.Vec2{X: x, Z: z}, false); c != nil {
			c.SetModified()
		}
	}
	for i := 0; i < vec.WorldSegmentWidth; i++ {
		mark(baseX+i, baseZ-1)
		mark(baseX+i, baseZ+vec.WorldSegmentDepth)
	}
	for j := 0; j < vec.WorldSegmentDepth; j++ {
		mark(baseX-1, baseZ+j)
		mark(baseX+vec.WorldSegmentWidth, baseZ+j)
	}
}

// Chunk возвращает чанк по позиции. При allocate загружает его сегмент.
func (w *World) Chunk(pos vec.Vec2, allocate bool) *Chunk {
	segPos, local := pos.WorldSegment()
	seg := w.Segment(segPos.X, segPos.Z, allocate)
	if seg == nil {
		return nil
	}
	return seg.Chunk(local)
}

// Block возвращает блок по мировой позиции или nil, если он не загружен.
func (w *World) Block(pos vec.Vec3) *Block {
	c := w.Chunk(vec.ChunkPosition(pos), false)
	if c == nil {
		return nil
	}
	return c.BlockAt(pos)
}

// BlockNeighbour возвращает соседа блока через грань face.
func (w *World) BlockNeighbour(b *Block, face block.Face) *Block {
	if !face.Valid() {
		return nil
	}
	return w.Block(b.Pos.Add(face.Offset()))
}

// BlockNeighbours возвращает соседей в порядке граней.
func (w *World) BlockNeighbours(b *Block) [block.FaceCount]*Block {
	var out [block.FaceCount]*Block
	for f := block.FaceRight; f < block.FaceCount; f++ {
		out[f] = w.BlockNeighbour(b, f)
	}
	return out
}

// UpdateBlock записывает блок. Если чанк не загружен, запись либо
// откладывается до его генерации (delayIfNecessary), либо теряется.
func (w *World) UpdateBlock(pos vec.Vec3, b Block, delayIfNecessary bool) {
	chunkPos := vec.ChunkPosition(pos)
	c := w.Chunk(chunkPos, false)
	if c == nil {
		if delayIfNecessary {
			w.delayed.push(chunkPos, pos, b)
		}
		return
	}
	c.UpdateBlock(pos, b, true)
}

// PendingUpdates возвращает число отложенных записей для чанка.
func (w *World) PendingUpdates(chunk vec.Vec2) int {
	return w.delayed.pending(chunk)
}

// DelayedUpdates возвращает общее число отложенных записей.
func (w *World) DelayedUpdates() int {
	return w.delayed.size()
}

// Obstacle отдаёт коробку непрозрачного блока для проверки столкновений.
func (w *World) Obstacle(pos vec.Vec3) (physics.BoundingBox, bool) {
	b := w.Block(pos)
	if b == nil || b.IsTransparent() {
		return physics.BoundingBox{}, false
	}
	return b.BoundingBox(), true
}

// LoadedSegments возвращает число загруженных сегментов мира.
func (w *World) LoadedSegments() int {
	n := 0
	w.grid.each(func(*WorldSegment) { n++ })
	return n
}

// Dump печатает позиции загруженных чанков: строка на X-столбец сетки чанков.
func (w *World) Dump(out io.Writer) error {
	for x := w.grid.minX * vec.WorldSegmentWidth; x < w.grid.maxX*vec.WorldSegmentWidth; x++ {
		sep := ""
		for z := w.grid.minZ * vec.WorldSegmentDepth; z < w.grid.maxZ*vec.WorldSegmentDepth; z++ {
			cell := "(-)"
			if c := w.Chunk(vec.Vec2{X: x, Z: z}, false); c != nil {
				cell = fmt.Sprintf("(%d, %d)", c.Coords.X, c.Coords.Z)
			}
			if _, err := fmt.Fprint(out, sep, cell); err != nil {
				return err
			}
			sep = " "
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	return nil
}
