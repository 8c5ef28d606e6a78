package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/debugapi"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к config.yaml или config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.InitLogger(cfg.Logging); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseLogger()

	logger := logging.GetMainLogger()
	if errors.Is(err, config.ErrNoConfig) {
		logger.Info("Файл конфигурации не задан, используются значения по умолчанию")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("❌ %v", err)
		os.Exit(1)
	}
	logger.Info("👋 Симуляция остановлена")
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTelemetry(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Ошибка остановки трассировки: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	w := world.NewWorld(cfg.World.RenderDistance, newGenerator(cfg.Generator),
		world.WithLogger(logging.GetWorldLogger()),
		world.WithMetrics(observability.NewWorldMetrics(reg)),
		world.WithTracer(observability.Tracer()),
	)
	logger.Info("🌍 Мир создан: генератор=%s seed=%d render_distance=%d",
		cfg.Generator.Kind, cfg.Generator.Seed, cfg.World.RenderDistance)

	var loader *world.AsyncLoader
	if cfg.World.AsyncGeneration {
		loader = world.NewAsyncLoader(ctx, w, w.Generator(), cfg.World.GenerationWorkers)
		defer func() {
			if err := loader.Close(); err != nil {
				logger.Warn("Ошибка остановки загрузчика: %v", err)
			}
		}()
		logger.Info("⚙️ Фоновая генерация включена, воркеров: %d", cfg.World.GenerationWorkers)
	}

	var servers []*http.Server
	if cfg.Metrics.Enabled {
		addr := fmt.Sprintf(":%d", cfg.Metrics.GetPort())
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.Handler(reg))
		servers = append(servers, &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second})
		logger.Info("📊 Метрики Prometheus: http://localhost%s/metrics", addr)
	}

	var debug *debugapi.Server
	if cfg.Debug.Enabled {
		debug = debugapi.New(debugapi.Options{
			Addr:       fmt.Sprintf(":%d", cfg.Debug.GetPort()),
			Mode:       cfg.Debug.Mode,
			Registerer: reg,
			Gatherer:   reg,
		})
		go func() {
			if err := debug.Start(); err != nil {
				logger.Error("❌ Отладочный API остановлен: %v", err)
			}
		}()
	}

	for _, srv := range servers {
		go func(srv *http.Server) {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("❌ Сервер метрик остановлен: %v", err)
			}
		}(srv)
	}

	sim := newSimulation(cfg, w, loader, debug)
	loopErr := sim.loop(ctx)

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if debug != nil {
		if err := debug.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Ошибка остановки отладочного API: %v", err)
		}
	}
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Ошибка остановки сервера метрик: %v", err)
		}
	}
	return loopErr
}
