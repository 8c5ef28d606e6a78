package debugapi

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// ChunkInfo содержит состояние одного чанка окна рендера
type ChunkInfo struct {
	X           int    `json:"x"`
	Z           int    `json:"z"`
	Biome       string `json:"biome"`
	Generated   bool   `json:"generated"`
	Dirty       bool   `json:"dirty"`
	Segments    int    `json:"segments"`
	Terrain     int    `json:"terrain_faces"`
	Translucent int    `json:"translucent_faces"`
	Water       int    `json:"water_faces"`
	Vertices    int    `json:"vertices"`
}

// TargetInfo описывает блок под прицелом игрока
type TargetInfo struct {
	Pos   vec.Vec3 `json:"pos"`
	Block string   `json:"block"`
}

// Snapshot хранит состояние мира на конец кадра. После публикации не изменяется.
type Snapshot struct {
	Frame          uint64      `json:"frame"`
	Time           time.Time   `json:"time"`
	Player         [3]float32  `json:"player"`
	Center         *vec.Vec2   `json:"center,omitempty"`
	RenderDistance int         `json:"render_distance"`
	LoadedSegments int         `json:"loaded_segments"`
	DelayedUpdates int         `json:"delayed_updates"`
	AsyncPending   int         `json:"async_pending"`
	WindowChunks   int         `json:"window_chunks"`
	VisibleChunks  int         `json:"visible_chunks"`
	MeshFaces      int         `json:"mesh_faces"`
	Target         *TargetInfo `json:"target,omitempty"`
	Chunks         []ChunkInfo `json:"chunks,omitempty"`
}

// FrameStats содержит то, что цикл кадров знает сверх состояния мира.
type FrameStats struct {
	Frame         uint64
	Player        mgl32.Vec3
	VisibleChunks int
	AsyncPending  int
	Target        *world.Block
}

// Capture снимает состояние мира. Вызывается из горутины, владеющей миром.
func Capture(w *world.World, fs FrameStats) *Snapshot {
	s := &Snapshot{
		Frame:          fs.Frame,
		Time:           time.Now(),
		Player:         [3]float32{fs.Player.X(), fs.Player.Y(), fs.Player.Z()},
		RenderDistance: w.RenderDistance(),
		LoadedSegments: w.LoadedSegments(),
		DelayedUpdates: w.DelayedUpdates(),
		AsyncPending:   fs.AsyncPending,
		VisibleChunks:  fs.VisibleChunks,
	}
	if c := w.CenterChunk(); c != nil {
		center := c.Coords
		s.Center = &center
	}
	if fs.Target != nil {
		s.Target = &TargetInfo{Pos: fs.Target.Pos, Block: block.Name(fs.Target.ID)}
	}

	window := w.ChunksToRender()
	s.WindowChunks = len(window)
	s.Chunks = make([]ChunkInfo, 0, len(window))
	for _, c := range window {
		m := c.Mesh()
		info := ChunkInfo{
			X:           c.Coords.X,
			Z:           c.Coords.Z,
			Biome:       c.Biome().String(),
			Generated:   c.Generated(),
			Dirty:       c.IsDirty(),
			Segments:    c.AllocatedSegments(),
			Terrain:     m.Terrain.FaceCount(),
			Translucent: m.Translucent.FaceCount(),
			Water:       m.Water.FaceCount(),
			Vertices:    m.Stats().Vertices,
		}
		s.MeshFaces += info.Terrain + info.Translucent + info.Water
		s.Chunks = append(s.Chunks, info)
	}
	return s
}

// Chunk ищет чанк окна по координатам.
func (s *Snapshot) Chunk(pos vec.Vec2) (ChunkInfo, bool) {
	for _, c := range s.Chunks {
		if c.X == pos.X && c.Z == pos.Z {
			return c, true
		}
	}
	return ChunkInfo{}, false
}
