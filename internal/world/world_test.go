package world

import (
	"testing"

	"github.com/annel0/voxel-client/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T, w, h, d int, seed uint32) *World {
	t.Helper()
	wld := New()
	wld.InitWithSeed(w, h, d, seed)
	require.True(t, wld.IsGenerated(), "Мир должен быть сгенерирован")
	return wld
}

// assertVisibilityConsistent сверяет кэш видимости с чистым предикатом для каждой ячейки
func assertVisibilityConsistent(t *testing.T, wld *World) {
	t.Helper()
	wld.ReadGrid(func(g *VoxelGrid) {
		r := NewVisibilityResolver(g)
		for z := 0; z < g.Depth(); z++ {
			for y := 0; y < g.Height(); y++ {
				for x := 0; x < g.Width(); x++ {
					if g.VisibleAt(x, y, z) != r.Compute(x, y, z) {
						t.Fatalf("Видимость (%d,%d,%d) типа %s расходится с предикатом", x, y, z, g.TypeAt(x, y, z))
					}
				}
			}
		}
	})
}

func TestWorld_DeterministicGeneration(t *testing.T) {
	a := newTestWorld(t, 48, 32, 48, 42)
	b := newTestWorld(t, 48, 32, 48, 42)

	assert.Equal(t, a.Digest(), b.Digest(), "Один и тот же сид должен давать идентичные миры")
	assert.Equal(t, a.OreStats(), b.OreStats(), "Статистика руд должна совпадать")
	assert.Equal(t, a.SpawnPoint(), b.SpawnPoint(), "Точка появления должна совпадать")
	assert.NotEqual(t, a.ID(), b.ID(), "Каждое поколение мира получает свой ID")

	c := newTestWorld(t, 48, 32, 48, 43)
	assert.NotEqual(t, a.Digest(), c.Digest(), "Разные сиды должны давать разные миры")
}

func TestWorld_BedrockLayer(t *testing.T) {
	wld := newTestWorld(t, 40, 32, 40, 7)

	for z := 0; z < wld.Depth(); z++ {
		for x := 0; x < wld.Width(); x++ {
			assert.Equal(t, block.BedrockBlockID, wld.GetBlock(x, 0, z).Type, "На y=0 должен быть бедрок (%d,%d)", x, z)
		}
	}
}

func TestWorld_VisibilityMatchesPredicate(t *testing.T) {
	wld := newTestWorld(t, 32, 32, 32, 99)
	assertVisibilityConsistent(t, wld)

	wld.ReadGrid(func(g *VoxelGrid) {
		for i := range g.blocks {
			if g.blocks[i].Type == block.AirBlockID {
				require.False(t, g.blocks[i].Visible, "Воздух никогда не видим")
			}
		}
	})
}

func TestWorld_VisibilityIdempotent(t *testing.T) {
	wld := newTestWorld(t, 32, 24, 32, 5)
	before := wld.Digest()

	wld.UpdateVisibility()
	first := wld.Digest()
	wld.UpdateVisibility()
	second := wld.Digest()

	assert.Equal(t, before, first, "Повторный полный пересчёт не меняет флаги")
	assert.Equal(t, first, second, "Пересчёт идемпотентен")
}

func TestWorld_EditsKeepVisibilityConsistent(t *testing.T) {
	wld := newTestWorld(t, 24, 24, 24, 11)

	edits := []struct {
		x, y, z int
		id      block.BlockID
	}{
		{12, 5, 12, block.AirBlockID},
		{12, 4, 12, block.AirBlockID},
		{3, 3, 3, block.IceBlockID},
		{0, 1, 0, block.AirBlockID},
		{23, 2, 23, block.WaterBlockID},
		{10, 20, 10, block.StoneBlockID},
		{10, 21, 10, block.LeavesBlockID},
		{10, 20, 10, block.AirBlockID},
	}
	for _, e := range edits {
		wld.SetBlock(e.x, e.y, e.z, e.id)
		assert.Equal(t, e.id, wld.GetBlock(e.x, e.y, e.z).Type)
	}

	assertVisibilityConsistent(t, wld)
}

func TestWorld_NoFloatingWaterOrSand(t *testing.T) {
	for _, seed := range []uint32{1, 2, 3, 1234} {
		wld := newTestWorld(t, 48, 32, 48, seed)
		wld.ReadGrid(func(g *VoxelGrid) {
			for z := 0; z < g.Depth(); z++ {
				for x := 0; x < g.Width(); x++ {
					for _, fluid := range []block.BlockID{block.WaterBlockID, block.SandBlockID} {
						id := fluid
						top := g.SurfaceY(x, z, func(b block.BlockID) bool { return b != id })
						if top < 0 {
							continue
						}
						for y := top; y >= 0; y-- {
							t2 := g.TypeAt(x, y, z)
							if t2 != block.AirBlockID && t2 != id {
								break
							}
							require.NotEqual(t, block.AirBlockID, t2,
								"seed %d: воздух под %s в столбце (%d,%d) на y=%d", seed, id, x, z, y)
						}
					}
				}
			}
		})
	}
}

func TestWorld_Scenario16Cube(t *testing.T) {
	a := newTestWorld(t, 16, 16, 16, 1)
	b := newTestWorld(t, 16, 16, 16, 1)

	var heightA, heightB int
	a.ReadGrid(func(g *VoxelGrid) { heightA = g.SurfaceY(8, 8, isAir) })
	b.ReadGrid(func(g *VoxelGrid) { heightB = g.SurfaceY(8, 8, isAir) })
	assert.Equal(t, heightA, heightB, "Высота столбца (8,8) должна совпадать")

	oresA, oresB := a.OreStats(), b.OreStats()
	for _, id := range block.Ores() {
		assert.Equal(t, oresA.Counts[id], oresB.Counts[id], "Количество %s должно совпадать", id)
	}

	// ищем полностью закрытый камень
	x, y, z := -1, -1, -1
	a.ReadGrid(func(g *VoxelGrid) {
		r := NewVisibilityResolver(g)
		for cz := 1; cz < g.Depth()-1 && x < 0; cz++ {
			for cy := 1; cy < g.Height()-1 && x < 0; cy++ {
				for cx := 1; cx < g.Width()-1 && x < 0; cx++ {
					if g.TypeAt(cx, cy, cz) == block.StoneBlockID && r.enclosed(cx, cy, cz) {
						x, y, z = cx, cy, cz
					}
				}
			}
		}
	})
	require.GreaterOrEqual(t, x, 0, "В мире должен быть закрытый камень")
	require.False(t, a.GetBlock(x, y, z).Visible, "Закрытый камень невидим")

	neighbors := [][3]int{{x - 1, y, z}, {x + 1, y, z}, {x, y, z - 1}, {x, y, z + 1}, {x, y - 1, z}}
	before := make([]bool, len(neighbors))
	for i, n := range neighbors {
		before[i] = a.GetBlock(n[0], n[1], n[2]).Visible
	}

	a.SetBlock(x, y+1, z, block.AirBlockID)

	assert.True(t, a.GetBlock(x, y, z).Visible, "Камень под сломанным блоком становится видимым")
	for i, n := range neighbors {
		assert.Equal(t, before[i], a.GetBlock(n[0], n[1], n[2]).Visible, "Флаг соседа %v не должен меняться", n)
	}
}

func TestWorld_DegenerateDimensions(t *testing.T) {
	wld := New()
	require.NotPanics(t, func() { wld.InitWithSeed(1, 0, -5, 3) })

	assert.Equal(t, MinDimension, wld.Width())
	assert.Equal(t, MinDimension, wld.Height())
	assert.Equal(t, MinDimension, wld.Depth())
	assert.Equal(t, block.BedrockBlockID, wld.GetBlock(0, 0, 0).Type)
	assertVisibilityConsistent(t, wld)
}

func TestWorld_SuperFlat(t *testing.T) {
	wld := New()
	wld.InitWithOptions(16, 20, 16, 9, true, block.StoneBlockID)

	assert.True(t, wld.IsSuperFlat())
	assert.Equal(t, block.StoneBlockID, wld.FlatBlockType())

	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			b := wld.GetBlock(x, 0, z)
			assert.Equal(t, block.StoneBlockID, b.Type)
			assert.True(t, b.Visible, "Верх плоского слоя открыт")
			assert.True(t, wld.GetBlock(x, 1, z).IsAir(), "Над плоским слоем воздух")
		}
	}

	// первый непустой блок на y=0, но точка появления не ниже середины мира
	assert.Equal(t, 10, wld.SpawnBlock().Y)
	spawn := wld.SpawnPoint()
	assert.InDelta(t, 8.5, spawn.X, 1e-9)
	assert.InDelta(t, 11.7, spawn.Y, 1e-9)
	assert.InDelta(t, 8.5, spawn.Z, 1e-9)
}

func TestWorld_SpawnAboveSurface(t *testing.T) {
	wld := newTestWorld(t, 32, 32, 32, 77)
	spawn := wld.SpawnBlock()

	assert.Equal(t, 16, spawn.X)
	assert.Equal(t, 16, spawn.Z)
	assert.GreaterOrEqual(t, spawn.Y, 16, "Точка появления не ниже середины мира")
	if spawn.Y < wld.Height() {
		assert.True(t, wld.GetBlock(spawn.X, spawn.Y, spawn.Z).IsAir(), "Точка появления над поверхностью")
	}

	wld.SetSpawnPoint(1, 2, 3)
	assert.Equal(t, 1, wld.SpawnBlock().X)
}

func TestWorld_OutOfBounds(t *testing.T) {
	wld := newTestWorld(t, 16, 16, 16, 4)
	digest := wld.Digest()

	assert.False(t, wld.IsInBounds(-1, 0, 0))
	assert.False(t, wld.IsInBounds(0, 16, 0))
	assert.True(t, wld.GetBlock(100, 100, 100).IsAir(), "За пределами мира читается воздух")

	wld.SetBlock(-1, 3, 3, block.StoneBlockID)
	wld.SetBlock(3, 3, 16, block.StoneBlockID)
	wld.UpdateVisibilityAt(40, 40, 40)
	assert.Equal(t, digest, wld.Digest(), "Запись за пределами мира - no-op")
}

func TestWorld_RegenerateKeepsSeedAndMode(t *testing.T) {
	wld := newTestWorld(t, 16, 16, 16, 314)
	firstID := wld.ID()

	wld.Regenerate(24, 20, 18)

	assert.Equal(t, uint32(314), wld.Seed())
	assert.False(t, wld.IsSuperFlat())
	assert.Equal(t, 24, wld.Width())
	assert.Equal(t, 20, wld.Height())
	assert.Equal(t, 18, wld.Depth())
	assert.NotEqual(t, firstID, wld.ID())
}

func TestWorld_SetBlockWithColors(t *testing.T) {
	wld := newTestWorld(t, 16, 16, 16, 8)

	var colors [block.FaceCount]block.Color
	for i := range colors {
		colors[i] = block.RGBA(10, 20, 30, 255)
	}
	colors[block.FaceTop] = block.RGBA(200, 100, 50, 40)

	wld.SetBlockWithColors(4, 14, 4, block.ChangeBlockID, colors)
	b := wld.GetBlock(4, 14, 4)

	require.Equal(t, block.ChangeBlockID, b.Type)
	assert.True(t, b.HasCustomColors)
	assert.True(t, b.HasTranslucentFace())
	assert.Equal(t, block.RGBA(200, 100, 50, 128), b.FaceColor(block.FaceTop), "Альфа поднимается до 128")
	assert.Equal(t, block.RGBA(10, 20, 30, 255), b.FaceColor(block.FaceLeft))
	assertVisibilityConsistent(t, wld)
}

func TestWorld_XrayToggle(t *testing.T) {
	wld := New()
	assert.False(t, wld.IsXrayMode())
	assert.True(t, wld.ToggleXrayMode())
	assert.True(t, wld.IsXrayMode())
	assert.False(t, wld.ToggleXrayMode())
}

func TestWorld_OreStatsIncludeLava(t *testing.T) {
	wld := newTestWorld(t, 64, 48, 64, 21)
	stats := wld.OreStats()

	assert.Len(t, stats.Counts, 7, "Учитываются семь типов руд, включая лаву")
	_, hasLava := stats.Counts[block.LavaBlockID]
	assert.True(t, hasLava)

	total := 0
	for _, c := range stats.Counts {
		total += c
	}
	assert.Equal(t, total, stats.Total)
	assert.Greater(t, stats.Total, 0, "В мире 64x48x64 должны быть руды")
}
