package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// delayedUpdate хранит запись блока в чанк, который ещё не загружен.
type delayedUpdate struct {
	pos   vec.Vec3
	block Block
}

// delayedUpdates накапливает записи по чанкам в порядке поступления.
type delayedUpdates struct {
	byChunk map[vec.Vec2][]delayedUpdate
	total   int
}

func newDelayedUpdates() *delayedUpdates {
	return &delayedUpdates{byChunk: make(map[vec.Vec2][]delayedUpdate)}
}

func (d *delayedUpdates) push(chunk vec.Vec2, pos vec.Vec3, b Block) {
	d.byChunk[chunk] = append(d.byChunk[chunk], delayedUpdate{pos: pos, block: b})
	d.total++
}

// take забирает очередь чанка. Повторный вызов вернёт nil.
func (d *delayedUpdates) take(chunk vec.Vec2) []delayedUpdate {
	updates, ok := d.byChunk[chunk]
	if !ok {
		return nil
	}
	delete(d.byChunk, chunk)
	d.total -= len(updates)
	return updates
}

// restore возвращает забранные записи в начало очереди чанка,
// перед записями, пришедшими после take.
func (d *delayedUpdates) restore(chunk vec.Vec2, updates []delayedUpdate) {
	if len(updates) == 0 {
		return
	}
	queue := make([]delayedUpdate, 0, len(updates)+len(d.byChunk[chunk]))
	queue = append(queue, updates...)
	d.byChunk[chunk] = append(queue, d.byChunk[chunk]...)
	d.total += len(updates)
}

func (d *delayedUpdates) pending(chunk vec.Vec2) int {
	return len(d.byChunk[chunk])
}

func (d *delayedUpdates) size() int {
	return d.total
}
