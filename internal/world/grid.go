package world

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// ChunkSize - ребро логического чанка. Чанки не хранятся, это только схема адресации.
const ChunkSize = 16

// airSentinel возвращается при чтении за пределами сетки
var airSentinel = NewBlock(block.AirBlockID)

// VoxelGrid - плотный массив блоков width×height×depth
type VoxelGrid struct {
	width  int
	height int
	depth  int
	blocks []Block
}

// NewVoxelGrid создаёт сетку, заполненную воздухом
func NewVoxelGrid(width, height, depth int) *VoxelGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if depth < 0 {
		depth = 0
	}
	blocks := make([]Block, width*height*depth)
	for i := range blocks {
		blocks[i] = airSentinel
	}
	return &VoxelGrid{width: width, height: height, depth: depth, blocks: blocks}
}

// Width возвращает размер по X
func (g *VoxelGrid) Width() int { return g.width }

// Height возвращает размер по Y
func (g *VoxelGrid) Height() int { return g.height }

// Depth возвращает размер по Z
func (g *VoxelGrid) Depth() int { return g.depth }

// Len возвращает количество ячеек
func (g *VoxelGrid) Len() int { return len(g.blocks) }

// InBounds проверяет, лежат ли координаты внутри сетки
func (g *VoxelGrid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && z >= 0 && z < g.depth
}

// index - z-слои, внутри слоя строки по y, внутри строки x
func (g *VoxelGrid) index(x, y, z int) int {
	return (z * g.width * g.height) + (y * g.width) + x
}

// Get возвращает копию блока или воздух за пределами сетки
func (g *VoxelGrid) Get(x, y, z int) Block {
	if !g.InBounds(x, y, z) {
		return airSentinel
	}
	return g.blocks[g.index(x, y, z)]
}

// TypeAt возвращает материал ячейки или воздух за пределами сетки
func (g *VoxelGrid) TypeAt(x, y, z int) block.BlockID {
	if !g.InBounds(x, y, z) {
		return block.AirBlockID
	}
	return g.blocks[g.index(x, y, z)].Type
}

// VisibleAt возвращает кэшированный флаг видимости
func (g *VoxelGrid) VisibleAt(x, y, z int) bool {
	if !g.InBounds(x, y, z) {
		return false
	}
	return g.blocks[g.index(x, y, z)].Visible
}

// SetType заменяет ячейку новым блоком материала id. За пределами сетки - no-op.
// Видимость не пересчитывается: это обязанность вызывающего.
func (g *VoxelGrid) SetType(x, y, z int, id block.BlockID) bool {
	if !g.InBounds(x, y, z) {
		return false
	}
	g.blocks[g.index(x, y, z)] = NewBlock(id)
	return true
}

// put записывает готовый блок (с пользовательскими цветами)
func (g *VoxelGrid) put(x, y, z int, b Block) bool {
	if !g.InBounds(x, y, z) {
		return false
	}
	g.blocks[g.index(x, y, z)] = b
	return true
}

// ref возвращает указатель на ячейку; вызывающий обязан проверить границы
func (g *VoxelGrid) ref(x, y, z int) *Block {
	return &g.blocks[g.index(x, y, z)]
}

// SurfaceY возвращает высоту самого верхнего блока столбца, для которого skip возвращает false,
// или -1, если такого нет
func (g *VoxelGrid) SurfaceY(x, z int, skip func(block.BlockID) bool) int {
	if x < 0 || x >= g.width || z < 0 || z >= g.depth {
		return -1
	}
	for y := g.height - 1; y >= 0; y-- {
		if !skip(g.blocks[g.index(x, y, z)].Type) {
			return y
		}
	}
	return -1
}

// CountTypes подсчитывает блоки каждого материала
func (g *VoxelGrid) CountTypes() [block.Count]int {
	var counts [block.Count]int
	for i := range g.blocks {
		if t := g.blocks[i].Type; t < block.Count {
			counts[t]++
		}
	}
	return counts
}

// ChunkCoord переводит координаты блока в координаты чанка (целочисленное деление)
func ChunkCoord(x, y, z int) (cx, cy, cz int) {
	return floorDiv(x, ChunkSize), floorDiv(y, ChunkSize), floorDiv(z, ChunkSize)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func isAir(id block.BlockID) bool { return id == block.AirBlockID }

func isAirOrWater(id block.BlockID) bool {
	return id == block.AirBlockID || id == block.WaterBlockID
}
