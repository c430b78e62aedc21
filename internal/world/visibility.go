package world

import (
	"github.com/annel0/voxel-client/internal/vec"
	"github.com/annel0/voxel-client/internal/world/block"
)

// faceOffsets - смещения к шести соседям в порядке граней block.Face
var faceOffsets = func() (out [block.FaceCount]vec.Vec3) {
	for f := block.Face(0); f < block.FaceCount; f++ {
		dx, dy, dz := f.Offset()
		out[f] = vec.Vec3{X: dx, Y: dy, Z: dz}
	}
	return out
}()

// Neighbor возвращает ячейку за гранью f
func Neighbor(p vec.Vec3, f block.Face) vec.Vec3 {
	return p.Add(faceOffsets[f])
}

// IsVisible - чистый предикат видимости: не воздух и (есть прозрачный сосед
// либо материал всегда рисуется). Соседи за краем мира передаются как воздух.
func IsVisible(self block.BlockID, neighbors [block.FaceCount]block.BlockID) bool {
	if self == block.AirBlockID {
		return false
	}
	if block.IsAlwaysRendered(self) {
		return true
	}
	for _, n := range neighbors {
		if block.IsTransparent(n) {
			return true
		}
	}
	return false
}

// VisibilityResolver поддерживает флаг Visible каждой ячейки сетки
type VisibilityResolver struct {
	grid *VoxelGrid
}

// NewVisibilityResolver создаёт резолвер для сетки
func NewVisibilityResolver(grid *VoxelGrid) *VisibilityResolver {
	return &VisibilityResolver{grid: grid}
}

// neighbors собирает материалы шести соседей; край мира считается воздухом
func (r *VisibilityResolver) neighbors(x, y, z int) [block.FaceCount]block.BlockID {
	var out [block.FaceCount]block.BlockID
	p := vec.Vec3{X: x, Y: y, Z: z}
	for f, o := range faceOffsets {
		n := p.Add(o)
		out[f] = r.grid.TypeAt(n.X, n.Y, n.Z)
	}
	return out
}

// Compute вычисляет видимость ячейки без записи в сетку
func (r *VisibilityResolver) Compute(x, y, z int) bool {
	if !r.grid.InBounds(x, y, z) {
		return false
	}
	return IsVisible(r.grid.TypeAt(x, y, z), r.neighbors(x, y, z))
}

// enclosed сообщает, что все шесть соседей лежат в сетке и непрозрачны
func (r *VisibilityResolver) enclosed(x, y, z int) bool {
	p := vec.Vec3{X: x, Y: y, Z: z}
	for _, o := range faceOffsets {
		n := p.Add(o)
		if !r.grid.InBounds(n.X, n.Y, n.Z) || block.IsTransparent(r.grid.TypeAt(n.X, n.Y, n.Z)) {
			return false
		}
	}
	return true
}

// UpdateAll пересчитывает видимость всей сетки. Возвращает число видимых ячеек.
func (r *VisibilityResolver) UpdateAll() int {
	g := r.grid
	surface := make([]int, g.Width()*g.Depth())
	for z := 0; z < g.Depth(); z++ {
		for x := 0; x < g.Width(); x++ {
			surface[z*g.Width()+x] = max(0, g.SurfaceY(x, z, isAirOrWater))
		}
	}

	visible := 0
	for z := 0; z < g.Depth(); z++ {
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				b := g.ref(x, y, z)
				if b.Type == block.AirBlockID {
					b.Visible = false
					continue
				}

				// глубоко под поверхностью полностью закрытая ячейка не видна
				if y < surface[z*g.Width()+x]-1 && !block.IsAlwaysRendered(b.Type) && r.enclosed(x, y, z) {
					b.Visible = false
					continue
				}

				b.Visible = IsVisible(b.Type, r.neighbors(x, y, z))
				if b.Visible {
					visible++
				}
			}
		}
	}
	return visible
}

// UpdateSingle пересчитывает одну ячейку; за пределами сетки no-op
func (r *VisibilityResolver) UpdateSingle(x, y, z int) {
	if !r.grid.InBounds(x, y, z) {
		return
	}
	r.grid.ref(x, y, z).Visible = r.Compute(x, y, z)
}

// UpdateAt пересчитывает ячейку и шесть её соседей
func (r *VisibilityResolver) UpdateAt(x, y, z int) {
	if !r.grid.InBounds(x, y, z) {
		return
	}
	r.UpdateSingle(x, y, z)
	p := vec.Vec3{X: x, Y: y, Z: z}
	for _, o := range faceOffsets {
		n := p.Add(o)
		r.UpdateSingle(n.X, n.Y, n.Z)
	}
}
