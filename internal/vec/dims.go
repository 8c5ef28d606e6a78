package vec

// Размеры мира. На них завязана вся арифметика индексов в чанках и сегментах,
// поэтому менять их можно только все вместе.
const (
	ChunkWidth    = 16  // блоков по X
	ChunkDepth    = 16  // блоков по Z
	ChunkHeight   = 256 // блоков по Y
	SegmentHeight = 16  // высота одного сегмента чанка

	SegmentsPerChunk = ChunkHeight / SegmentHeight
	SegmentVolume    = ChunkWidth * SegmentHeight * ChunkDepth

	WorldSegmentWidth = 5 // чанков по X в сегменте мира
	WorldSegmentDepth = 5 // чанков по Z в сегменте мира

	// MinY и MaxY задают допустимый диапазон мировой Y: [MinY, MaxY).
	MinY = -ChunkHeight / 2
	MaxY = ChunkHeight / 2

	// BlockScale размер одного блока в единицах сцены.
	BlockScale float32 = 2.0
)
