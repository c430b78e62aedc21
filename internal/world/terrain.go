package world

import (
	"math/rand"

	"github.com/annel0/voxel-client/internal/world/block"
)

// Параметры растительности
const (
	treeChance      = 0.01
	treeTopMargin   = 10
	treeTrunkHeight = 4
	soilDepth       = 3
)

// TerrainInfo описывает уровни, выведенные из карты высот
type TerrainInfo struct {
	AvgHeight  int
	MaxHeight  int
	WaterLevel int
	SnowLevel  int
	Trees      int
}

// TerrainCompositor заполняет сетку слоями породы по карте высот
type TerrainCompositor struct {
	grid *VoxelGrid
	rng  *rand.Rand
}

// NewTerrainCompositor создаёт компоновщик рельефа
func NewTerrainCompositor(grid *VoxelGrid, rng *rand.Rand) *TerrainCompositor {
	return &TerrainCompositor{grid: grid, rng: rng}
}

// Compose раскладывает бедрок, камень, почву, поверхность, деревья и воду
func (c *TerrainCompositor) Compose(hm *Heightmap) TerrainInfo {
	avg, peak := hm.Stats()
	info := TerrainInfo{
		AvgHeight:  avg,
		MaxHeight:  peak,
		WaterLevel: c.grid.Height() / 3,
		SnowLevel:  peak - (peak-avg)/3,
	}

	for z := 0; z < c.grid.Depth(); z++ {
		for x := 0; x < c.grid.Width(); x++ {
			c.composeColumn(x, z, hm.At(x, z), &info)
		}
	}
	return info
}

func (c *TerrainCompositor) composeColumn(x, z, terrainHeight int, info *TerrainInfo) {
	g := c.grid
	g.SetType(x, 0, z, block.BedrockBlockID)

	for y := 1; y < terrainHeight-soilDepth; y++ {
		g.SetType(x, y, z, block.StoneBlockID)
	}

	sandy := terrainHeight <= info.WaterLevel+1
	for y := max(1, terrainHeight-soilDepth); y < terrainHeight; y++ {
		switch {
		case y >= info.SnowLevel:
			g.SetType(x, y, z, block.SnowBlockID)
		case sandy:
			g.SetType(x, y, z, block.SandBlockID)
		default:
			g.SetType(x, y, z, block.DirtBlockID)
		}
	}

	// бедрок на y=0 не перезаписывается поверхностью
	if terrainHeight > 1 {
		var surface block.BlockID
		switch {
		case terrainHeight >= info.SnowLevel:
			surface = block.SnowBlockID
		case sandy:
			surface = block.SandBlockID
		default:
			surface = block.GrassBlockID
			if c.rng.Float64() < treeChance && terrainHeight < g.Height()-treeTopMargin {
				if c.plantTree(x, terrainHeight, z) {
					info.Trees++
				}
			}
		}
		g.SetType(x, terrainHeight-1, z, surface)
	}

	if terrainHeight < info.WaterLevel {
		for y := max(1, terrainHeight); y <= info.WaterLevel; y++ {
			g.SetType(x, y, z, block.WaterBlockID)
		}
	}
}

// plantTree ставит ствол из четырёх блоков и крону 3×3 на трёх верхних уровнях.
// Листва ставится только в воздух.
func (c *TerrainCompositor) plantTree(x, y, z int) bool {
	g := c.grid
	if y+treeTrunkHeight >= g.Height() || x <= 1 || x >= g.Width()-2 || z <= 1 || z >= g.Depth()-2 {
		return false
	}

	for i := 0; i < treeTrunkHeight; i++ {
		g.SetType(x, y+i, z, block.WoodBlockID)
	}

	for ly := y + 2; ly < y+5; ly++ {
		for lx := x - 1; lx <= x+1; lx++ {
			for lz := z - 1; lz <= z+1; lz++ {
				if g.TypeAt(lx, ly, lz) == block.AirBlockID && g.InBounds(lx, ly, lz) {
					g.SetType(lx, ly, lz, block.LeavesBlockID)
				}
			}
		}
	}
	return true
}
