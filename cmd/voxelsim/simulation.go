package main

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/camera"
	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/debugapi"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/entity"
)

// eyeHeight высота глаз над ногами игрока в единицах сцены.
const eyeHeight float32 = 3

// newGenerator выбирает генератор ландшафта по конфигурации.
func newGenerator(cfg config.GeneratorConfig) world.TerrainGenerator {
	if cfg.Kind == config.GeneratorFlat {
		return world.NewFlatTerrainGenerator(cfg.Seed, cfg.FlatSurfaceY, cfg.DirtLayers, cfg.HoleFrequency)
	}
	return world.NewDefaultTerrainGenerator(world.WorldGenOptions{
		Seed:       cfg.Seed,
		SeaY:       cfg.SeaY,
		DirtLayers: cfg.DirtLayers,
		CloudY:     cfg.CloudY,
	})
}

// simulation реализует безголовый цикл кадров: игрок идёт по миру, мир
// подгружает чанки и перестраивает меши, как это делал бы рендерер.
type simulation struct {
	cfg    *config.Config
	world  *world.World
	loader *world.AsyncLoader
	player *entity.Player
	cam    *camera.Camera
	debug  *debugapi.Server
	logger *logging.Logger

	frame   uint64
	heading float64 // радианы в плоскости XZ
}

func newSimulation(cfg *config.Config, w *world.World, loader *world.AsyncLoader, debug *debugapi.Server) *simulation {
	spawn := surfaceHeight(w, vec.Vec2{}) + 2
	pos := vec.ScenePosition(vec.Vec3{X: 0, Y: spawn, Z: 0})

	cam := camera.New(pos.Add(mgl32.Vec3{0, eyeHeight, 0}), cfg.Camera.Aspect)
	cam.FOV = cfg.Camera.FOV
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far

	s := &simulation{
		cfg:    cfg,
		world:  w,
		loader: loader,
		player: entity.NewPlayer("walker", pos),
		cam:    cam,
		debug:  debug,
		logger: logging.GetMainLogger(),
	}
	w.RegisterEntity(&s.player.Entity)
	s.logger.Info("🧍 Игрок появился на высоте %d", spawn)
	return s
}

// surfaceHeight возвращает y первого непрозрачного блока сверху в колонке
// (x, z) чанка или MinY, если колонка пустая.
func surfaceHeight(w *world.World, chunk vec.Vec2) int {
	origin := chunk.WorldOrigin()
	w.Chunk(chunk, true)
	for y := vec.MaxY - 1; y >= vec.MinY; y-- {
		if b := w.Block(vec.Vec3{X: origin.X, Y: y, Z: origin.Z}); b != nil && !b.IsTransparent() {
			return y
		}
	}
	return vec.MinY
}

// movePlayer сдвигает игрока по курсу. Если путь закрыт, пробует шагнуть
// на блок выше, иначе поворачивает.
func (s *simulation) movePlayer(dt float32) {
	p := &s.player.Entity
	dir := mgl32.Vec3{float32(math.Sin(s.heading)), 0, float32(math.Cos(s.heading))}
	step := dir.Mul(s.cfg.Simulation.PlayerSpeed * vec.BlockScale * dt)
	next := p.Position.Add(step)

	switch {
	case p.MoveTo(s.world, next):
	case p.MoveTo(s.world, next.Add(mgl32.Vec3{0, vec.BlockScale, 0})):
	default:
		s.heading += math.Pi / 2
	}
	p.Direction = dir
}

// step выполняет один кадр.
func (s *simulation) step(dt float32) {
	s.frame++
	s.movePlayer(dt)

	pos := s.player.Position
	s.cam.Position = pos.Add(mgl32.Vec3{0, eyeHeight, 0})
	s.cam.Yaw = float32(s.heading)
	s.cam.Pitch = -0.5
	s.cam.Update()

	pending := 0
	if s.loader != nil {
		// Запрашиваем на сегмент дальше окна, чтобы синхронная генерация
		// оставалась запасным путём
		radius := s.world.RenderDistance() + vec.WorldSegmentWidth
		if _, err := s.loader.RequestAround(vec.ChunkPositionOfScene(pos), radius); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("Ошибка запроса сегментов: %v", err)
		}
		if n := s.loader.Publish(); n > 0 {
			s.logger.Debug("Установлено сегментов: %d", n)
		}
		pending = s.loader.Pending()
	}

	s.world.UpdatePlayerPosition(pos)
	rebuilt := s.world.UpdateVisibility()
	visible := s.world.VisibleChunks(s.cam.Frustum())
	faces := s.world.MeshFaces()
	target := s.world.PickBlock(s.cam.Position, s.cam.Direction(), float32(s.cfg.World.InteractionDistance)*vec.BlockScale)

	if rebuilt > 0 {
		s.logger.Trace("Кадр %d: перестроено %d чанков, видно %d, граней %d", s.frame, rebuilt, len(visible), faces)
	}

	if s.debug != nil {
		s.debug.Publish(debugapi.Capture(s.world, debugapi.FrameStats{
			Frame:         s.frame,
			Player:        pos,
			VisibleChunks: len(visible),
			AsyncPending:  pending,
			Target:        target,
		}))
	}
}

// loop крутит кадры с частотой FrameRate до отмены ctx или до
// Simulation.Frames кадров.
func (s *simulation) loop(ctx context.Context) error {
	rate := s.cfg.Simulation.FrameRate
	if rate <= 0 {
		rate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	s.logger.Info("▶️ Цикл кадров запущен: %d кадров/с", rate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("📡 Получен сигнал завершения на кадре %d", s.frame)
			return nil
		case now := <-ticker.C:
			s.step(float32(now.Sub(last).Seconds()))
			last = now
			if limit := s.cfg.Simulation.Frames; limit > 0 && s.frame >= uint64(limit) {
				s.logger.Info("Выполнено %d кадров, загружено сегментов: %d", s.frame, s.world.LoadedSegments())
				return nil
			}
		}
	}
}
