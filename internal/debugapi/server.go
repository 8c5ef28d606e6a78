// Package debugapi реализует HTTP-интерфейс только для чтения к состоянию симуляции.
// Цикл кадров публикует снимки через Publish, обработчики читают
// последний опубликованный снимок и никогда не трогают мир напрямую.
package debugapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/middleware"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/vec"
)

// Options содержит параметры отладочного сервера
type Options struct {
	Addr string
	Mode string // режим gin; пусто — release

	// Registerer получает HTTP-метрики сервера, Gatherer отдаётся на /metrics.
	// nil отключает соответствующую часть.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger *logging.Logger
}

// GenericResponse представляет общий ответ с ошибкой
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Server представляет отладочный HTTP-сервер
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	snapshot   atomic.Pointer[Snapshot]
	process    *ProcessMetrics
	logger     *logging.Logger
}

// New создаёт сервер и настраивает маршруты. Слушать порт начинает Start.
func New(opts Options) *Server {
	if opts.Mode == "" {
		opts.Mode = gin.ReleaseMode
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetDebugAPILogger()
	}
	gin.SetMode(opts.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("voxel_debugapi"))
	router.Use(middleware.NewRequestLogger(opts.Logger).Handler())
	if opts.Registerer != nil {
		router.Use(middleware.NewPrometheusMiddleware("voxel_debugapi", opts.Registerer).Handler())
	}

	s := &Server{
		router:  router,
		process: NewProcessMetrics(),
		logger:  opts.Logger,
	}
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.setupRoutes(opts.Gatherer)
	return s
}

func (s *Server) setupRoutes(gatherer prometheus.Gatherer) {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
	s.router.GET("/world", s.handleWorld)
	s.router.GET("/chunks", s.handleChunks)
	s.router.GET("/chunks/:x/:z", s.handleChunk)
	s.router.GET("/process", s.handleProcess)

	if gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(observability.Handler(gatherer)))
	}
}

// Publish делает snap текущим снимком. snap не должен меняться после вызова.
func (s *Server) Publish(snap *Snapshot) {
	s.snapshot.Store(snap)
}

// Snapshot возвращает последний опубликованный снимок или nil.
func (s *Server) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Handler отдаёт маршрутизатор, например для httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start слушает адрес до вызова Shutdown.
func (s *Server) Start() error {
	s.logger.Info("🔍 Отладочный API слушает %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) current(c *gin.Context) *Snapshot {
	snap := s.snapshot.Load()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{
			Success: false,
			Message: "Мир ещё не опубликован",
		})
	}
	return snap
}

func (s *Server) handleWorld(c *gin.Context) {
	snap := s.current(c)
	if snap == nil {
		return
	}
	summary := *snap
	summary.Chunks = nil
	c.JSON(http.StatusOK, gin.H{
		"world":  summary,
		"uptime": s.process.Uptime(),
	})
}

func (s *Server) handleChunks(c *gin.Context) {
	snap := s.current(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"frame":  snap.Frame,
		"chunks": snap.Chunks,
	})
}

func (s *Server) handleChunk(c *gin.Context) {
	x, errX := strconv.Atoi(c.Param("x"))
	z, errZ := strconv.Atoi(c.Param("z"))
	if errX != nil || errZ != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Координаты чанка должны быть целыми числами",
		})
		return
	}

	snap := s.current(c)
	if snap == nil {
		return
	}
	info, ok := snap.Chunk(vec.Vec2{X: x, Z: z})
	if !ok {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Чанк вне окна рендера",
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Data: info})
}

func (s *Server) handleProcess(c *gin.Context) {
	resp := gin.H{
		"uptime": s.process.Uptime(),
		"memory": s.process.MemoryStats(),
	}
	if cpu, err := s.process.CPUUsage(); err == nil {
		resp["cpu_percent"] = cpu
	} else {
		s.logger.Warn("Не удалось получить загрузку CPU: %v", err)
	}
	if rss, err := s.process.RSS(); err == nil {
		resp["rss_mb"] = rss
	}
	c.JSON(http.StatusOK, resp)
}
