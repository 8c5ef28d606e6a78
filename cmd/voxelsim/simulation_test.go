package main

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/debugapi"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
)

func flatConfig() *config.Config {
	cfg := config.Default()
	cfg.World.RenderDistance = 1
	cfg.Generator.Kind = config.GeneratorFlat
	cfg.Generator.FlatSurfaceY = vec.MinY + 8
	cfg.Generator.DirtLayers = 2
	return cfg
}

func TestNewGenerator(t *testing.T) {
	cfg := config.Default()
	_, ok := newGenerator(cfg.Generator).(*world.DefaultTerrainGenerator)
	assert.True(t, ok)

	cfg.Generator.Kind = config.GeneratorFlat
	_, ok = newGenerator(cfg.Generator).(*world.FlatTerrainGenerator)
	assert.True(t, ok)
}

func TestSimulationSteps(t *testing.T) {
	cfg := flatConfig()
	w := world.NewWorld(cfg.World.RenderDistance, newGenerator(cfg.Generator))
	debug := debugapi.New(debugapi.Options{Mode: gin.TestMode, Logger: logging.NewNop()})
	sim := newSimulation(cfg, w, nil, debug)

	start := sim.player.Position
	assert.Equal(t, cfg.Generator.FlatSurfaceY, surfaceHeight(w, vec.Vec2{}))

	for i := 0; i < 5; i++ {
		sim.step(0.1)
	}

	assert.NotEqual(t, start, sim.player.Position)
	require.NotNil(t, w.CenterChunk())
	assert.Len(t, w.ChunksToRender(), 9)
	for _, c := range w.ChunksToRender() {
		assert.False(t, c.IsDirty())
	}

	snap := debug.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, uint64(5), snap.Frame)
	assert.Equal(t, 9, snap.WindowChunks)
	assert.Greater(t, snap.MeshFaces, 0)
	require.NotNil(t, snap.Target, "камера смотрит вниз на траву")
	assert.Equal(t, "grass", snap.Target.Block)
}

func TestSimulationAsyncLoading(t *testing.T) {
	cfg := flatConfig()
	cfg.World.AsyncGeneration = true
	w := world.NewWorld(cfg.World.RenderDistance, newGenerator(cfg.Generator))
	loader := world.NewAsyncLoader(context.Background(), w, w.Generator(), 4)
	defer loader.Close()
	sim := newSimulation(cfg, w, loader, nil)

	// Игрок стоит на месте: окно запроса не сдвигается
	deadline := time.Now().Add(5 * time.Second)
	sim.step(0)
	for w.LoadedSegments() < 16 || loader.Pending() > 0 {
		require.True(t, time.Now().Before(deadline), "сегменты не сгенерированы вовремя")
		time.Sleep(time.Millisecond)
		sim.step(0)
	}
	// Окно плюс сегмент запаса: чанки [-6, 6] задевают сегменты [-2, 1]
	assert.Equal(t, 16, w.LoadedSegments())
	assert.Nil(t, w.Segment(2, 0, false))
}

func TestSimulationLoopFrameLimit(t *testing.T) {
	cfg := flatConfig()
	cfg.Simulation.FrameRate = 1000
	cfg.Simulation.Frames = 3
	w := world.NewWorld(cfg.World.RenderDistance, newGenerator(cfg.Generator))
	sim := newSimulation(cfg, w, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sim.loop(ctx))
	assert.Equal(t, uint64(3), sim.frame)
}
