package block

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockID представляет идентификатор типа блока
type BlockID uint16

// Константы ID блоков. Каждая обязана присутствовать в каталоге
// под тем же именем, иначе пакет не инициализируется.
const (
	AirBlockID     BlockID = iota // 0
	GrassBlockID                  // 1
	DirtBlockID                   // 2
	StoneBlockID                  // 3
	WaterBlockID                  // 4
	OakWoodBlockID                // 5
	LeafBlockID                   // 6
	SandBlockID                   // 7
	GlassBlockID                  // 8
)

var builtinNames = map[BlockID]string{
	AirBlockID:     "air",
	GrassBlockID:   "grass",
	DirtBlockID:    "dirt",
	StoneBlockID:   "stone",
	WaterBlockID:   "water",
	OakWoodBlockID: "oak_wood",
	LeafBlockID:    "leaf",
	SandBlockID:    "sand",
	GlassBlockID:   "glass",
}

// Definition содержит статические свойства типа блока из каталога
type Definition struct {
	ID          BlockID
	Name        string
	Transparent bool
	Solid       bool
	CubeMap     bool

	uv [FaceCount]mgl32.Vec2
}

var (
	registry    = make(map[BlockID]*Definition)
	textureSize mgl32.Vec2
)

// Register добавляет определение блока в регистр
func Register(def *Definition) {
	registry[def.ID] = def
}

// Get возвращает определение для указанного ID
func Get(id BlockID) (*Definition, bool) {
	def, exists := registry[id]
	return def, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// IDs возвращает все зарегистрированные ID по возрастанию.
func IDs() []BlockID {
	ids := make([]BlockID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// mustGet паникует на ID, которого нет в каталоге: это рассинхронизация
// каталога и кода, а не ошибка данных.
func mustGet(id BlockID) *Definition {
	def, ok := registry[id]
	if !ok {
		panic(fmt.Sprintf("block: id %d отсутствует в каталоге", id))
	}
	return def
}

// Name возвращает имя типа блока.
func Name(id BlockID) string {
	return mustGet(id).Name
}

// IsTransparent сообщает, видны ли соседние грани сквозь блок.
func IsTransparent(id BlockID) bool {
	return mustGet(id).Transparent
}

// IsSolid сообщает, является ли блок препятствием.
func IsSolid(id BlockID) bool {
	return mustGet(id).Solid
}

// UsesCubeMap сообщает, использует ли блок отдельную текстуру для каждой грани.
func UsesCubeMap(id BlockID) bool {
	return mustGet(id).CubeMap
}

// TextureUV возвращает левый верхний угол текстуры грани в атласе.
// Для недопустимой грани возвращается нулевой вектор.
func TextureUV(id BlockID, face Face) mgl32.Vec2 {
	def := mustGet(id)
	if !face.Valid() {
		return mgl32.Vec2{}
	}
	return def.uv[face]
}

// TextureSize возвращает размер одной текстуры в UV-координатах атласа.
func TextureSize() mgl32.Vec2 {
	return textureSize
}
