package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorldMetrics содержит Prometheus-метрики мира. Все методы допускают nil-получатель,
// поэтому мир можно создавать без метрик.
type WorldMetrics struct {
	segmentsGenerated prometheus.Counter
	generationSeconds prometheus.Histogram
	chunksRemeshed    prometheus.Counter
	windowReloads     prometheus.Counter
	loadedSegments    prometheus.Gauge
	delayedUpdates    prometheus.Gauge
	visibleChunks     prometheus.Gauge
	meshFaces         prometheus.Gauge
	asyncPending      prometheus.Gauge
}

// NewWorldMetrics создаёт метрики и регистрирует их в reg.
// При reg == nil метрики создаются, но нигде не регистрируются.
func NewWorldMetrics(reg prometheus.Registerer) *WorldMetrics {
	m := &WorldMetrics{
		segmentsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "world_segments_generated_total",
			Help:      "Сегментов мира, сгенерированных с момента запуска.",
		}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Name:      "world_segment_generation_seconds",
			Help:      "Время генерации одного сегмента мира (25 чанков).",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		chunksRemeshed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "chunks_remeshed_total",
			Help:      "Перестроений меша чанков.",
		}),
		windowReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "render_window_reloads_total",
			Help:      "Пересборок окна рендера вокруг игрока.",
		}),
		loadedSegments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "world_segments_loaded",
			Help:      "Загруженных сегментов мира.",
		}),
		delayedUpdates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "delayed_block_updates",
			Help:      "Отложенных изменений блоков для незагруженных чанков.",
		}),
		visibleChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "visible_chunks",
			Help:      "Чанков, прошедших отсечение пирамидой видимости в последнем кадре.",
		}),
		meshFaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "mesh_faces",
			Help:      "Граней во всех мешах окна рендера.",
		}),
		asyncPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "async_segments_pending",
			Help:      "Сегментов в фоновой генерации.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.segmentsGenerated, m.generationSeconds, m.chunksRemeshed,
			m.windowReloads, m.loadedSegments, m.delayedUpdates,
			m.visibleChunks, m.meshFaces, m.asyncPending,
		)
	}
	return m
}

func (m *WorldMetrics) SegmentGenerated(d time.Duration) {
	if m == nil {
		return
	}
	m.segmentsGenerated.Inc()
	m.generationSeconds.Observe(d.Seconds())
	m.loadedSegments.Inc()
}

func (m *WorldMetrics) ChunksRemeshed(n int) {
	if m == nil || n == 0 {
		return
	}
	m.chunksRemeshed.Add(float64(n))
}

func (m *WorldMetrics) WindowReloaded() {
	if m == nil {
		return
	}
	m.windowReloads.Inc()
}

func (m *WorldMetrics) SetDelayedUpdates(n int) {
	if m == nil {
		return
	}
	m.delayedUpdates.Set(float64(n))
}

func (m *WorldMetrics) SetVisibleChunks(n int) {
	if m == nil {
		return
	}
	m.visibleChunks.Set(float64(n))
}

func (m *WorldMetrics) SetMeshFaces(n int) {
	if m == nil {
		return
	}
	m.meshFaces.Set(float64(n))
}

func (m *WorldMetrics) SetAsyncPending(n int) {
	if m == nil {
		return
	}
	m.asyncPending.Set(float64(n))
}

// Handler возвращает HTTP-обработчик /metrics для указанного регистра.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
