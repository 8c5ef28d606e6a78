package world

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/vec"
)

// ErrLoaderBusy возвращается Request, когда все воркеры заняты.
var ErrLoaderBusy = errors.New("async loader: все воркеры заняты")

// segmentJob описывает фоновую генерацию одного сегмента мира. Сегмент не привязан
// к миру, пока его не установит Publish.
type segmentJob struct {
	coords  vec.Vec2
	segment *WorldSegment
	preload map[vec.Vec2][]delayedUpdate // отложенные записи, забранные при запросе
	spills  []delayedUpdate              // записи генератора за пределы сегмента
	elapsed time.Duration
}

// AsyncLoader генерирует сегменты мира в фоне. Request и Publish
// вызываются только из горутины-владельца мира.
type AsyncLoader struct {
	world     *World
	generator TerrainGenerator

	ctx     context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group
	results chan *segmentJob

	inflight map[vec.Vec2]*segmentJob

	logger  *logging.Logger
	metrics *observability.WorldMetrics
	tracer  trace.Tracer
}

// NewAsyncLoader создаёт загрузчик с workers параллельными генерациями.
func NewAsyncLoader(ctx context.Context, world *World, generator TerrainGenerator, workers int) *AsyncLoader {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	return &AsyncLoader{
		world:     world,
		generator: generator,
		ctx:       gctx,
		cancel:    cancel,
		group:     group,
		results:   make(chan *segmentJob, workers),
		inflight:  make(map[vec.Vec2]*segmentJob),
		logger:    logging.GetLoaderLogger(),
		metrics:   world.metrics,
		tracer:    world.tracer,
	}
}

// Request ставит сегмент в очередь генерации. Возвращает false, если
// сегмент уже загружен или уже генерируется.
func (l *AsyncLoader) Request(segPos vec.Vec2) (bool, error) {
	if err := l.ctx.Err(); err != nil {
		return false, err
	}
	if _, ok := l.inflight[segPos]; ok {
		return false, nil
	}
	if l.world.grid.at(segPos.X, segPos.Z) != nil {
		return false, nil
	}

	job := &segmentJob{coords: segPos, preload: make(map[vec.Vec2][]delayedUpdate)}
	chunks := segmentChunkPositions(segPos)
	for _, pos := range chunks {
		if updates := l.world.delayed.take(pos); len(updates) > 0 {
			job.preload[pos] = updates
		}
	}

	if !l.group.TryGo(func() error { return l.run(job) }) {
		l.restorePreload(job)
		return false, ErrLoaderBusy
	}

	l.inflight[segPos] = job
	l.metrics.SetAsyncPending(len(l.inflight))
	l.metrics.SetDelayedUpdates(l.world.delayed.size())
	return true, nil
}

// RequestAround запрашивает все незагруженные сегменты, пересекающие
// квадрат чанков [center-radius, center+radius]. Возвращает число
// поставленных в очередь сегментов.
func (l *AsyncLoader) RequestAround(center vec.Vec2, radius int) (int, error) {
	minSeg, _ := vec.Vec2{X: center.X - radius, Z: center.Z - radius}.WorldSegment()
	maxSeg, _ := vec.Vec2{X: center.X + radius, Z: center.Z + radius}.WorldSegment()

	queued := 0
	for x := minSeg.X; x <= maxSeg.X; x++ {
		for z := minSeg.Z; z <= maxSeg.Z; z++ {
			ok, err := l.Request(vec.Vec2{X: x, Z: z})
			if errors.Is(err, ErrLoaderBusy) {
				return queued, nil
			}
			if err != nil {
				return queued, err
			}
			if ok {
				queued++
			}
		}
	}
	return queued, nil
}

// run выполняется в воркере: генерирует отвязанный сегмент.
func (l *AsyncLoader) run(job *segmentJob) error {
	if err := l.ctx.Err(); err != nil {
		return nil
	}

	_, span := l.tracer.Start(l.ctx, "world.asyncGenerate",
		trace.WithAttributes(attribute.Int("segment.x", job.coords.X), attribute.Int("segment.z", job.coords.Z)))
	defer span.End()

	start := time.Now()
	seg := NewWorldSegment(nil, job.coords)
	spill := func(pos vec.Vec3, b Block) {
		if target := seg.chunkAt(vec.ChunkPosition(pos)); target != nil {
			target.UpdateBlock(pos, b, true)
			return
		}
		job.spills = append(job.spills, delayedUpdate{pos: pos, block: b})
	}

	for _, c := range seg.Chunks() {
		c.spill = spill
	}
	for _, c := range seg.Chunks() {
		for _, u := range job.preload[c.Coords] {
			c.UpdateBlock(u.pos, u.block, true)
		}
		if l.generator != nil {
			l.generator.GenerateTerrain(c)
		}
		c.generated = true
	}

	job.segment = seg
	job.elapsed = time.Since(start)

	select {
	case l.results <- job:
	case <-l.ctx.Done():
	}
	return nil
}

// Publish устанавливает в мир все готовые сегменты, не блокируясь.
// Возвращает число установленных сегментов.
func (l *AsyncLoader) Publish() int {
	installed := 0
	for {
		select {
		case job := <-l.results:
			if l.install(job) {
				installed++
			}
		default:
			l.metrics.SetAsyncPending(len(l.inflight))
			return installed
		}
	}
}

// install привязывает сегмент к миру. Если сегмент уже был сгенерирован
// синхронно, побеждает он: к нему применяются только забранные записи.
func (l *AsyncLoader) install(job *segmentJob) bool {
	delete(l.inflight, job.coords)
	w := l.world
	x, z := job.coords.X, job.coords.Z

	if existing := w.grid.at(x, z); existing != nil {
		for pos, updates := range job.preload {
			c := existing.chunkAt(pos)
			for _, u := range updates {
				c.UpdateBlock(u.pos, u.block, true)
			}
		}
		l.logger.Debug("Сегмент (%d, %d) уже загружен, фоновый результат отброшен", x, z)
		return false
	}

	w.grid.grow(x, x+1, z, z+1)
	w.grid.set(x, z, job.segment)
	job.segment.attach(w)

	for _, c := range job.segment.Chunks() {
		w.replayDelayed(c)
	}
	for _, u := range job.spills {
		w.UpdateBlock(u.pos, u.block, true)
	}
	for _, c := range job.segment.Chunks() {
		c.SetModified()
	}
	w.dirtyBorders(job.segment)

	w.metrics.SegmentGenerated(job.elapsed)
	w.metrics.SetDelayedUpdates(w.delayed.size())
	l.logger.Debug("Сегмент (%d, %d) сгенерирован в фоне за %v, внешних записей %d", x, z, job.elapsed, len(job.spills))
	return true
}

// Pending возвращает число запрошенных, но ещё не установленных сегментов.
func (l *AsyncLoader) Pending() int {
	return len(l.inflight)
}

// Close отменяет незавершённые задачи и ждёт остановки воркеров.
// Неустановленные сегменты отбрасываются, а забранные ими отложенные
// записи возвращаются в очередь мира. Вызывается из горутины-владельца мира.
func (l *AsyncLoader) Close() error {
	l.cancel()
	err := l.group.Wait()

drain:
	for {
		select {
		case <-l.results:
		default:
			break drain
		}
	}

	for coords, job := range l.inflight {
		l.restorePreload(job)
		delete(l.inflight, coords)
	}
	l.metrics.SetAsyncPending(0)
	l.metrics.SetDelayedUpdates(l.world.delayed.size())

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// restorePreload возвращает записи задачи в очередь мира в исходном порядке.
func (l *AsyncLoader) restorePreload(job *segmentJob) {
	for pos, updates := range job.preload {
		l.world.delayed.restore(pos, updates)
	}
	job.preload = nil
}

// segmentChunkPositions возвращает позиции всех чанков сегмента.
func segmentChunkPositions(segPos vec.Vec2) []vec.Vec2 {
	out := make([]vec.Vec2, 0, vec.WorldSegmentWidth*vec.WorldSegmentDepth)
	baseX := segPos.X * vec.WorldSegmentWidth
	baseZ := segPos.Z * vec.WorldSegmentDepth
	for i := 0; i < vec.WorldSegmentWidth; i++ {
		for j := 0; j < vec.WorldSegmentDepth; j++ {
			out = append(out, vec.Vec2{X: baseX + i, Z: baseZ + j})
		}
	}
	return out
}
