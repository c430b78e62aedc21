package world

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/vec"
	"github.com/annel0/voxel-client/internal/world/block"
)

// CaveSeedOffset смещает сид генератора пещер относительно сида мира
const CaveSeedOffset = 12345

// Параметры пещер
const (
	caveAreaPerSystem   = 400 // Площадь (x·z) на одну пещерную систему
	caveMargin          = 5   // Отступ от краёв мира для траекторий
	caveMinRadius       = 2
	caveMaxRadius       = 4
	caveMinLength       = 5
	caveMaxLength       = 30
	caveMaxBranches     = 4
	caveBranchChance    = 0.15
	caveMaxTunnelLength = 40
	clearanceDefault    = 5 // Минимальная толща над пещерой
	clearanceWaterSand  = 8 // Толща под водой и песком
	carveSkipDepth      = 3 // Ближе к поверхности сфера не вырезается
)

// CaveReport описывает результат вырезания пещер
type CaveReport struct {
	Skipped     bool // Мир слишком мал или в нём нет поверхности
	Systems     int
	Branches    int
	Tunnels     int
	CarvedCells int
	WaterFilled int
	SandFilled  int
}

// surfaceMap - снимок поверхности до вырезания пещер
type surfaceMap struct {
	columns   int // Столбцов с непустым блоком
	width     int
	depth     int
	height    []int
	waterSand []bool
}

func (s *surfaceMap) lookup(x, z int) (height int, waterSand bool, ok bool) {
	if x < 0 || x >= s.width || z < 0 || z >= s.depth {
		return 0, false, false
	}
	i := z*s.width + x
	return s.height[i], s.waterSand[i], true
}

// clearance возвращает требуемую толщу над пещерой в столбце
func (s *surfaceMap) clearance(x, z int) (surface, minDepth int, ok bool) {
	h, ws, ok := s.lookup(x, z)
	if !ok {
		return 0, 0, false
	}
	if ws {
		return h, clearanceWaterSand, true
	}
	return h, clearanceDefault, true
}

// CaveCarver прокладывает пещеры случайными блужданиями и чинит поверхность после них
type CaveCarver struct {
	grid    *VoxelGrid
	rng     *rand.Rand
	surface *surfaceMap
	report  CaveReport
}

// NewCaveCarver создаёт генератор пещер с сидом seed+CaveSeedOffset
func NewCaveCarver(grid *VoxelGrid, seed uint32) *CaveCarver {
	return &CaveCarver{
		grid: grid,
		rng:  rand.New(rand.NewSource(int64(seed + CaveSeedOffset))),
	}
}

// Generate вырезает пещерные системы, соединяет часть из них туннелями
// и устраняет висящую воду и песок
func (c *CaveCarver) Generate() CaveReport {
	g := c.grid
	if g.Width() <= 1 || g.Height() <= 1 || g.Depth() <= 1 {
		return c.skip("мир %dx%dx%d слишком мал", g.Width(), g.Height(), g.Depth())
	}

	c.surface = c.captureSurface()
	if c.surface.columns == 0 {
		return c.skip("в мире нет ни одного непустого столбца")
	}
	count := max(1, g.Width()*g.Depth()/caveAreaPerSystem)

	starts := make([]vec.Vec3Float, 0, count)
	ends := make([]vec.Vec3Float, 0, count)

	for i := 0; i < count; i++ {
		sx := c.uniformInt(caveMargin, max(caveMargin, g.Width()-6))
		sy := c.uniformInt(caveMargin, max(caveMargin, g.Height()/2))
		sz := c.uniformInt(caveMargin, max(caveMargin, g.Depth()-6))

		if surface, minDepth, ok := c.surface.clearance(sx, sz); ok {
			sy = min(sy, surface-minDepth)
		}
		sy = max(caveMargin, sy)

		start := vec.Vec3Float{X: float64(sx), Y: float64(sy), Z: float64(sz)}
		starts = append(starts, start)
		ends = append(ends, c.walkCave(start))
		c.report.Systems++
	}

	c.connect(starts, ends)

	c.report.WaterFilled = c.fixWaterLeaks()
	c.report.SandFilled = c.fixSandStructures()
	return c.report
}

func (c *CaveCarver) skip(format string, args ...interface{}) CaveReport {
	logging.GetWorldGenLogger().Warn("Пещеры пропущены: "+format, args...)
	c.report.Skipped = true
	return c.report
}

// captureSurface запоминает самый верхний непустой блок каждого столбца
func (c *CaveCarver) captureSurface() *surfaceMap {
	g := c.grid
	s := &surfaceMap{
		width:     g.Width(),
		depth:     g.Depth(),
		height:    make([]int, g.Width()*g.Depth()),
		waterSand: make([]bool, g.Width()*g.Depth()),
	}
	for z := 0; z < g.Depth(); z++ {
		for x := 0; x < g.Width(); x++ {
			y := g.SurfaceY(x, z, isAir)
			if y < 0 {
				continue
			}
			i := z*g.Width() + x
			s.columns++
			s.height[i] = y
			t := g.TypeAt(x, y, z)
			s.waterSand[i] = t == block.WaterBlockID || t == block.SandBlockID
		}
	}
	return s
}

// walkCave проходит основную траекторию пещеры и возвращает её конечную точку
func (c *CaveCarver) walkCave(start vec.Vec3Float) vec.Vec3Float {
	dir := c.randomDirection().Normalize()
	length := c.uniformInt(caveMinLength, caveMaxLength)
	radius := c.uniformInt(caveMinRadius, caveMaxRadius)

	pos := start
	end := pos

	for step := 0; step < length; step++ {
		var skip bool
		dir, skip = c.steerFromSurface(pos, dir)
		if !skip {
			c.carveSphere(int(pos.X), int(pos.Y), int(pos.Z), radius)
		}

		pos = pos.Add(dir)
		end = pos

		if c.outsideMargin(pos) {
			break
		}

		if step%5 == 0 {
			dir = dir.Mul(0.8).Add(c.randomDirection().Mul(0.2)).Normalize()
			radius = c.uniformInt(caveMinRadius, caveMaxRadius)
		}

		if step > 3 && c.rng.Float64() < caveBranchChance {
			branches := c.uniformInt(0, caveMaxBranches)
			for b := 0; b < branches; b++ {
				c.walkBranch(pos, dir, radius)
			}
		}
	}
	return end
}

// walkBranch - укороченное ответвление меньшего радиуса
func (c *CaveCarver) walkBranch(from, parentDir vec.Vec3Float, parentRadius int) {
	dir := parentDir.Mul(0.5).Add(c.randomDirection().Mul(0.5)).Normalize()
	pos := from.Add(dir.Mul(2))

	radius := parentRadius - 1
	if radius < caveMinRadius {
		return
	}
	length := c.uniformInt(caveMinLength, caveMaxLength) / 2
	c.report.Branches++

	for step := 0; step < length; step++ {
		var skip bool
		dir, skip = c.steerFromSurface(pos, dir)
		if !skip {
			c.carveSphere(int(pos.X), int(pos.Y), int(pos.Z), radius)
		}

		pos = pos.Add(dir)
		if c.outsideMargin(pos) {
			break
		}

		if step%3 == 0 {
			dir = dir.Mul(0.8).Add(c.randomDirection().Mul(0.2)).Normalize()
		}
	}
}

// steerFromSurface уводит траекторию вниз, если над ней слишком тонкий слой породы.
// Второе значение сообщает, что вырезать в этой точке нельзя.
func (c *CaveCarver) steerFromSurface(pos, dir vec.Vec3Float) (vec.Vec3Float, bool) {
	ix, iy, iz := int(pos.X), int(pos.Y), int(pos.Z)
	surface, minDepth, ok := c.surface.clearance(ix, iz)
	if !ok || iy <= surface-minDepth {
		return dir, false
	}

	pull := 1.5
	if minDepth == clearanceWaterSand {
		pull = 1.8
	}
	dir.Y = -math.Abs(dir.Y) * pull
	dir = dir.Normalize()

	return dir, iy > surface-carveSkipDepth
}

// connect соединяет конец одной системы с началом другой прямым туннелем
func (c *CaveCarver) connect(starts, ends []vec.Vec3Float) {
	count := len(starts)
	for i := 0; i < count/3; i++ {
		c1 := c.uniformInt(0, count-1)
		c2 := c.uniformInt(0, count-1)
		if c1 == c2 {
			c2 = (c2 + 1) % count
		}
		if c1 == c2 {
			continue
		}

		from := ends[c1]
		delta := starts[c2].Sub(from)
		distance := delta.Length()
		if distance > caveMaxTunnelLength {
			continue
		}
		dir := delta.Normalize()
		radius := c.uniformInt(caveMinRadius, 3)
		c.report.Tunnels++

		pos := from
		steps := int(distance)
		for step := 0; step < steps; step++ {
			ix, iy, iz := int(pos.X), int(pos.Y), int(pos.Z)
			if surface, minDepth, ok := c.surface.clearance(ix, iz); ok && iy > surface-minDepth {
				pos = pos.Add(dir)
				continue
			}

			c.carveSphere(ix, iy, iz, radius)
			pos = pos.Add(dir)

			if c.outsideMargin(pos) {
				break
			}

			if step%5 == 0 {
				jitter := vec.Vec3Float{
					X: c.rng.Float64()*0.2 - 0.1,
					Y: c.rng.Float64()*0.2 - 0.1,
					Z: c.rng.Float64()*0.2 - 0.1,
				}
				dir = dir.Mul(0.9).Add(jitter).Normalize()
			}
		}
	}
}

// carveSphere заменяет воздухом все ячейки шара радиуса radius, кроме слоя y=0 и бедрока
func (c *CaveCarver) carveSphere(cx, cy, cz, radius int) {
	g := c.grid
	r2 := radius * radius
	for x := cx - radius; x <= cx+radius; x++ {
		for y := cy - radius; y <= cy+radius; y++ {
			for z := cz - radius; z <= cz+radius; z++ {
				if !g.InBounds(x, y, z) || y == 0 {
					continue
				}
				dx, dy, dz := x-cx, y-cy, z-cz
				if dx*dx+dy*dy+dz*dz > r2 {
					continue
				}
				t := g.TypeAt(x, y, z)
				if t == block.BedrockBlockID || t == block.AirBlockID {
					continue
				}
				g.SetType(x, y, z, block.AirBlockID)
				c.report.CarvedCells++
			}
		}
	}
}

// fixWaterLeaks заполняет водой воздух под самой верхней водой столбца
// до первого твёрдого блока
func (c *CaveCarver) fixWaterLeaks() int {
	g := c.grid
	filled := 0
	for z := 0; z < g.Depth(); z++ {
		for x := 0; x < g.Width(); x++ {
			top := g.SurfaceY(x, z, func(id block.BlockID) bool { return id != block.WaterBlockID })
			if top <= 0 {
				continue
			}
			for y := top; y >= 0; y-- {
				t := g.TypeAt(x, y, z)
				if t != block.AirBlockID && t != block.WaterBlockID {
					break
				}
				if t == block.AirBlockID {
					g.SetType(x, y, z, block.WaterBlockID)
					filled++
				}
			}
		}
	}
	return filled
}

// fixSandStructures ищет воздух в пяти блоках под самым верхним песком столбца.
// Найдя разрыв, досыпает песок вниз до первой опоры.
func (c *CaveCarver) fixSandStructures() int {
	g := c.grid
	filled := 0
	for z := 0; z < g.Depth(); z++ {
		for x := 0; x < g.Width(); x++ {
			top := g.SurfaceY(x, z, func(id block.BlockID) bool { return id != block.SandBlockID })
			if top <= 0 {
				continue
			}

			gap := false
			for y := top - 1; y >= max(0, top-5); y-- {
				if g.TypeAt(x, y, z) == block.AirBlockID {
					gap = true
					break
				}
			}
			if !gap {
				continue
			}

			for y := top - 1; y >= 0; y-- {
				t := g.TypeAt(x, y, z)
				if t != block.AirBlockID && t != block.SandBlockID {
					break
				}
				if t == block.AirBlockID {
					g.SetType(x, y, z, block.SandBlockID)
					filled++
				}
			}
		}
	}
	return filled
}

func (c *CaveCarver) outsideMargin(p vec.Vec3Float) bool {
	g := c.grid
	return p.X < caveMargin || p.X >= float64(g.Width()-caveMargin) ||
		p.Y < caveMargin || p.Y >= float64(g.Height()-caveMargin) ||
		p.Z < caveMargin || p.Z >= float64(g.Depth()-caveMargin)
}

// randomDirection - горизонтальные компоненты в [-1, 1), вертикальная в [-0.25, 0.25)
func (c *CaveCarver) randomDirection() vec.Vec3Float {
	return vec.Vec3Float{
		X: c.rng.Float64()*2 - 1,
		Y: c.rng.Float64()*0.5 - 0.25,
		Z: c.rng.Float64()*2 - 1,
	}
}

// uniformInt возвращает равномерное целое из [lo, hi]
func (c *CaveCarver) uniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + c.rng.Intn(hi-lo+1)
}
