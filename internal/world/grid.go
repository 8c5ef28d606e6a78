package world

// segmentGrid растущая двумерная сетка сегментов мира
// Ячейка [x-minX][z-minZ] хранит сегмент (x, z); границы только расширяются.
type segmentGrid struct {
	cells                  [][]*WorldSegment
	minX, maxX, minZ, maxZ int
}

func (g *segmentGrid) empty() bool {
	return g.minX == g.maxX || g.minZ == g.maxZ
}

func (g *segmentGrid) contains(x, z int) bool {
	return x >= g.minX && x < g.maxX && z >= g.minZ && z < g.maxZ
}

func (g *segmentGrid) at(x, z int) *WorldSegment {
	if !g.contains(x, z) {
		return nil
	}
	return g.cells[x-g.minX][z-g.minZ]
}

func (g *segmentGrid) set(x, z int, seg *WorldSegment) {
	g.cells[x-g.minX][z-g.minZ] = seg
}

// grow расширяет сетку до объединения текущих границ и [minX, maxX) x [minZ, maxZ).
// Существующие сегменты сохраняют свои координаты, новые ячейки пусты.
func (g *segmentGrid) grow(minX, maxX, minZ, maxZ int) {
	if !g.empty() {
		minX, maxX = min(minX, g.minX), max(maxX, g.maxX)
		minZ, maxZ = min(minZ, g.minZ), max(maxZ, g.maxZ)
		if minX == g.minX && maxX == g.maxX && minZ == g.minZ && maxZ == g.maxZ {
			return
		}
	}

	cells := make([][]*WorldSegment, maxX-minX)
	for i := range cells {
		cells[i] = make([]*WorldSegment, maxZ-minZ)
	}
	for x := g.minX; x < g.maxX; x++ {
		for z := g.minZ; z < g.maxZ; z++ {
			cells[x-minX][z-minZ] = g.cells[x-g.minX][z-g.minZ]
		}
	}

	g.cells = cells
	g.minX, g.maxX, g.minZ, g.maxZ = minX, maxX, minZ, maxZ
}

// each обходит загруженные сегменты, X во внешнем цикле.
func (g *segmentGrid) each(fn func(*WorldSegment)) {
	for _, col := range g.cells {
		for _, seg := range col {
			if seg != nil {
				fn(seg)
			}
		}
	}
}
