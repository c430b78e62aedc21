package world

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/util"
	"github.com/annel0/voxel-client/internal/world/block"
)

// OreSeedOffset смещает сид генератора руд относительно сида мира
const OreSeedOffset = 54321

const (
	caveSearchAttempts  = 8
	caveSearchRadius    = 5
	scatterInterval     = 6
	scatterCaveRadius   = 3
	scatterClusterRoll  = 0.3
	scatterNeighborRoll = 0.15
)

// OreDefinition описывает жилу одного типа руды
type OreDefinition struct {
	Type        block.BlockID
	Name        string
	MinHeight   int
	MaxHeight   int
	Frequency   float64 // Доля площади мира, влияющая на число жил
	MinSize     int
	MaxSize     int
	PreferCaves bool    // Пытаться начинать жилу рядом с полостью
	Rarity      float64 // 0..1, чем выше, тем меньше и прямее жилы
	CaveBonus   float64 // Множитель размера жилы рядом с полостью
}

// scatteredOre - одиночные вкрапления на разреженной решётке
type scatteredOre struct {
	Type      block.BlockID
	MinHeight int
	MaxHeight int
	Chance    float64
}

// DefaultOreTable возвращает таблицу жил для мира заданной высоты
func DefaultOreTable(height int) []OreDefinition {
	return []OreDefinition{
		{block.CoalOreBlockID, "coal", 5, height - 15, 0.18, 5, 16, false, 0.1, 1.2},
		{block.IronOreBlockID, "iron", 2, height / 2, 0.15, 3, 10, false, 0.3, 1.3},
		{block.GoldOreBlockID, "gold", 2, height / 3, 0.08, 2, 8, true, 0.5, 1.5},
		{block.RedstoneOreBlockID, "redstone", 2, height / 4, 0.12, 3, 9, true, 0.4, 1.4},
		{block.DiamondOreBlockID, "diamond", 2, height / 6, 0.05, 2, 6, true, 0.8, 2.0},
		{block.EmeraldOreBlockID, "emerald", 2, height / 3, 0.04, 1, 3, true, 0.9, 2.2},
		{block.LavaBlockID, "lava", 2, height / 8, 0.03, 3, 7, true, 0.7, 1.8},
	}
}

func scatteredOreTable(height int) []scatteredOre {
	return []scatteredOre{
		{block.CoalOreBlockID, height / 4, height - 10, 0.006},
		{block.IronOreBlockID, 5, height / 2, 0.004},
		{block.GoldOreBlockID, 5, height / 3, 0.002},
		{block.RedstoneOreBlockID, 5, height / 4, 0.003},
		{block.DiamondOreBlockID, 5, height / 6, 0.001},
	}
}

// OreReport - сколько блоков каждой руды поставлено
type OreReport struct {
	Skipped   bool // Мир слишком мал для руд
	Veins     int
	Vein      map[block.BlockID]int
	Scattered map[block.BlockID]int
}

// OreDistributor размещает рудные жилы и вкрапления, заменяя только камень
type OreDistributor struct {
	grid  *VoxelGrid
	rng   *rand.Rand
	table []OreDefinition
}

// NewOreDistributor создаёт распределитель руд с сидом seed+OreSeedOffset
func NewOreDistributor(grid *VoxelGrid, seed uint32) *OreDistributor {
	return &OreDistributor{
		grid:  grid,
		rng:   rand.New(rand.NewSource(int64(seed + OreSeedOffset))),
		table: DefaultOreTable(grid.Height()),
	}
}

// Generate размещает жилы, затем вкрапления
func (d *OreDistributor) Generate() OreReport {
	report := OreReport{
		Vein:      make(map[block.BlockID]int),
		Scattered: make(map[block.BlockID]int),
	}
	g := d.grid
	if g.Width() <= 1 || g.Height() <= 1 || g.Depth() <= 1 {
		logging.GetWorldGenLogger().Warn("Мир %dx%dx%d слишком мал, руды пропущены", g.Width(), g.Height(), g.Depth())
		report.Skipped = true
		return report
	}

	for _, ore := range d.table {
		veins := int(float64(g.Width()*g.Depth()) * ore.Frequency / (100 * (0.5 + ore.Rarity*0.5)))
		veins = max(3, veins)

		for i := 0; i < veins; i++ {
			report.Vein[ore.Type] += d.placeVein(ore)
			report.Veins++
		}
	}

	d.scatter(report.Scattered)
	return report
}

func (d *OreDistributor) placeVein(ore OreDefinition) int {
	g := d.grid
	ideal := float64(ore.MinHeight+ore.MaxHeight) / 2
	spread := float64(ore.MaxHeight-ore.MinHeight) / 2 / 2

	sampleY := func() int {
		v := d.rng.NormFloat64()*spread + ideal
		return util.ClampInt(int(math.Floor(v)), ore.MinHeight, ore.MaxHeight)
	}

	x := d.rng.Intn(g.Width())
	z := d.rng.Intn(g.Depth())
	y := sampleY()

	nearCave := false
	if ore.PreferCaves {
		for attempt := 0; attempt < caveSearchAttempts && !nearCave; attempt++ {
			tx := d.rng.Intn(g.Width())
			tz := d.rng.Intn(g.Depth())
			ty := sampleY()
			if d.hasAirWithin(tx, ty, tz, caveSearchRadius) {
				nearCave = true
				x, y, z = tx, ty, tz
			}
		}
	}

	multiplier := 1.0
	if nearCave {
		multiplier = ore.CaveBonus
	}
	baseSize := ore.MinSize + d.rng.Intn(max(ore.MinSize, ore.MaxSize)-ore.MinSize+1)
	size := int(float64(baseSize) * multiplier)
	size = int(float64(size) * (1 - ore.Rarity*0.3))
	size = max(1, size)

	return d.growVein(x, y, z, ore.Type, size, ore.Rarity)
}

// growVein растит жилу обходом со стеком. Счётчик бюджета стартует с единицы
// даже если стартовая клетка не камень; возвращается число реально заменённых блоков.
func (d *OreDistributor) growVein(x, y, z int, ore block.BlockID, size int, rarity float64) int {
	placed := 0
	budget := 1
	if d.replaceStone(x, y, z, ore) {
		placed++
	}

	branchChance := 0.4 - rarity*0.2
	turnChance := 0.6 - rarity*0.2
	clusterChance := 0.35 - rarity*0.2
	clusterCell := 0.25 - rarity*0.1

	type point struct{ x, y, z int }
	stack := []point{{x, y, z}}

	for budget < size && len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		directions := 1 + int(d.rng.Float64()*3)
		for dir := 0; dir < directions; dir++ {
			var dx, dy, dz int
			if d.rng.Float64() < turnChance {
				// вертикальная компонента гасится целочисленным делением
				dx = d.step()
				dy = d.step() / 2
				dz = d.step()
			} else {
				dx = d.step()
				dy = d.step()
				dz = d.step()
			}
			if dx == 0 && dy == 0 && dz == 0 {
				dx = d.step()
				if dx == 0 {
					dx = 1
				}
			}

			nx, ny, nz := cur.x+dx, cur.y+dy, cur.z+dz
			if !d.grid.InBounds(nx, ny, nz) || !d.replaceStone(nx, ny, nz, ore) {
				continue
			}
			placed++
			budget++
			stack = append(stack, point{nx, ny, nz})
			if budget >= size {
				return placed
			}

			if d.rng.Float64() < clusterChance {
				for cy := -1; cy <= 1; cy++ {
					for cx := -1; cx <= 1; cx++ {
						for cz := -1; cz <= 1; cz++ {
							if cx == 0 && cy == 0 && cz == 0 {
								continue
							}
							if d.rng.Float64() < clusterCell && d.replaceStone(nx+cx, ny+cy, nz+cz, ore) {
								placed++
								budget++
								if budget >= size {
									return placed
								}
							}
						}
					}
				}
			}

			if d.rng.Float64() < branchChance {
				bx := nx + d.step()
				by := ny + d.step()
				bz := nz + d.step()
				if d.replaceStone(bx, by, bz, ore) {
					placed++
					budget++
					stack = append(stack, point{bx, by, bz})
					if budget >= size {
						return placed
					}
				}
			}
		}
	}
	return placed
}

// scatter проходит по решётке с шагом scatterInterval и ставит не больше одной руды на узел
func (d *OreDistributor) scatter(counts map[block.BlockID]int) {
	g := d.grid
	table := scatteredOreTable(g.Height())

	for z := 0; z < g.Depth(); z += scatterInterval {
		for y := 0; y < g.Height(); y += scatterInterval {
			for x := 0; x < g.Width(); x += scatterInterval {
				if g.TypeAt(x, y, z) != block.StoneBlockID {
					continue
				}
				nearCave := d.hasAirWithin(x, y, z, scatterCaveRadius)

				for _, ore := range table {
					if y < ore.MinHeight || y > ore.MaxHeight {
						continue
					}
					chance := ore.Chance
					if nearCave {
						chance *= 2
					}
					ideal := float64(ore.MinHeight+ore.MaxHeight) / 2
					heightFactor := 1.0
					if span := ore.MaxHeight - ore.MinHeight; span > 0 {
						heightFactor = 1 - math.Abs(float64(y)-ideal)/float64(span)
					}
					chance *= 0.5 + heightFactor*0.5

					if d.rng.Float64() >= chance {
						continue
					}

					g.SetType(x, y, z, ore.Type)
					counts[ore.Type]++

					if d.rng.Float64() < scatterClusterRoll {
						for dy := -1; dy <= 1; dy++ {
							for dx := -1; dx <= 1; dx++ {
								for dz := -1; dz <= 1; dz++ {
									if dx == 0 && dy == 0 && dz == 0 {
										continue
									}
									if d.rng.Float64() < scatterNeighborRoll && d.replaceStone(x+dx, y+dy, z+dz, ore.Type) {
										counts[ore.Type]++
									}
								}
							}
						}
					}
					break
				}
			}
		}
	}
}

// step возвращает равномерно -1, 0 или 1
func (d *OreDistributor) step() int {
	return d.rng.Intn(3) - 1
}

func (d *OreDistributor) replaceStone(x, y, z int, ore block.BlockID) bool {
	if d.grid.TypeAt(x, y, z) != block.StoneBlockID {
		return false
	}
	return d.grid.SetType(x, y, z, ore)
}

func (d *OreDistributor) hasAirWithin(x, y, z, radius int) bool {
	g := d.grid
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if g.InBounds(x+dx, y+dy, z+dz) && g.TypeAt(x+dx, y+dy, z+dz) == block.AirBlockID {
					return true
				}
			}
		}
	}
	return false
}
