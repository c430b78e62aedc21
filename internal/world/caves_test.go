package world

import (
	"testing"

	"github.com/annel0/voxel-client/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaveCarver_CarvesAndKeepsBedrock(t *testing.T) {
	g := solidGrid(64, 48, 64, 40)
	report := NewCaveCarver(g, 12).Generate()

	assert.Equal(t, 64*64/caveAreaPerSystem, report.Systems)
	assert.Greater(t, report.CarvedCells, 0, "Пещеры должны вырезать блоки")

	for z := 0; z < 64; z++ {
		for x := 0; x < 64; x++ {
			require.Equal(t, block.BedrockBlockID, g.TypeAt(x, 0, z), "Бедрок на (%d,%d) сохраняется", x, z)
		}
	}
}

func TestCaveCarver_Deterministic(t *testing.T) {
	a := solidGrid(48, 40, 48, 30)
	b := solidGrid(48, 40, 48, 30)

	ra := NewCaveCarver(a, 9).Generate()
	rb := NewCaveCarver(b, 9).Generate()

	assert.Equal(t, ra, rb)
	assert.Equal(t, a.blocks, b.blocks)
}

func TestCaveCarver_SkipsTinyWorld(t *testing.T) {
	g := NewVoxelGrid(8, 1, 8)
	report := NewCaveCarver(g, 1).Generate()
	assert.True(t, report.Skipped)
	assert.Zero(t, report.Systems)
}

func TestCaveCarver_SkipsWorldWithoutSurface(t *testing.T) {
	g := NewVoxelGrid(16, 16, 16)
	report := NewCaveCarver(g, 1).Generate()

	assert.True(t, report.Skipped, "Пустой мир нечего вырезать")
	assert.Zero(t, report.Systems)
	assert.Zero(t, report.CarvedCells)

	solid := solidGrid(16, 16, 16, 15)
	assert.False(t, NewCaveCarver(solid, 1).Generate().Skipped)
}

func TestCaveCarver_CarveSphere(t *testing.T) {
	g := solidGrid(16, 16, 16, 15)
	c := NewCaveCarver(g, 1)

	c.carveSphere(8, 8, 8, 2)
	assert.Equal(t, block.AirBlockID, g.TypeAt(8, 8, 8))
	assert.Equal(t, block.AirBlockID, g.TypeAt(10, 8, 8), "Граница радиуса включительно")
	assert.Equal(t, block.StoneBlockID, g.TypeAt(10, 9, 8), "За радиусом камень остаётся")
	assert.Equal(t, 33, c.report.CarvedCells, "Шар радиуса 2 содержит 33 клетки")

	c.carveSphere(8, 1, 8, 3)
	assert.Equal(t, block.BedrockBlockID, g.TypeAt(8, 0, 8), "Слой y=0 не вырезается")
	assert.Equal(t, block.AirBlockID, g.TypeAt(8, 1, 8))
}

func TestCaveCarver_FixWaterLeaks(t *testing.T) {
	g := solidGrid(4, 16, 4, 5)
	// столб воды над вырезанной полостью
	g.SetType(1, 10, 1, block.WaterBlockID)
	g.SetType(1, 9, 1, block.WaterBlockID)
	for y := 3; y <= 8; y++ {
		g.SetType(1, y, 1, block.AirBlockID)
	}

	c := NewCaveCarver(g, 1)
	filled := c.fixWaterLeaks()

	assert.Equal(t, 6, filled)
	for y := 3; y <= 10; y++ {
		assert.Equal(t, block.WaterBlockID, g.TypeAt(1, y, 1), "y=%d", y)
	}
	assert.Equal(t, block.StoneBlockID, g.TypeAt(1, 2, 1), "Заливка останавливается на опоре")
}

func TestCaveCarver_FixSandStructures(t *testing.T) {
	g := solidGrid(4, 24, 4, 10)
	g.SetType(2, 10, 2, block.SandBlockID)
	g.SetType(2, 9, 2, block.SandBlockID)
	g.SetType(2, 8, 2, block.AirBlockID)
	g.SetType(2, 7, 2, block.AirBlockID)
	g.SetType(2, 6, 2, block.AirBlockID)

	// песок без разрыва в пяти блоках не трогается
	g.SetType(0, 10, 0, block.SandBlockID)
	g.SetType(0, 3, 0, block.AirBlockID)

	c := NewCaveCarver(g, 1)
	filled := c.fixSandStructures()

	assert.Equal(t, 3, filled)
	for y := 6; y <= 10; y++ {
		assert.Equal(t, block.SandBlockID, g.TypeAt(2, y, 2), "y=%d", y)
	}
	assert.Equal(t, block.StoneBlockID, g.TypeAt(2, 5, 2))
	assert.Equal(t, block.AirBlockID, g.TypeAt(0, 3, 0))
}

func TestCaveCarver_SurfaceClearance(t *testing.T) {
	g := solidGrid(16, 32, 16, 20)
	g.SetType(3, 21, 3, block.WaterBlockID)

	s := NewCaveCarver(g, 1).captureSurface()
	surface, depth, ok := s.clearance(3, 3)
	require.True(t, ok)
	assert.Equal(t, 21, surface)
	assert.Equal(t, clearanceWaterSand, depth)

	surface, depth, ok = s.clearance(4, 4)
	require.True(t, ok)
	assert.Equal(t, 20, surface)
	assert.Equal(t, clearanceDefault, depth)

	_, _, ok = s.clearance(-1, 4)
	assert.False(t, ok)
}
