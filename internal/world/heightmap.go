package world

import (
	"math"
	"math/rand"

	"github.com/annel0/voxel-client/internal/util"
)

// Параметры рельефа в долях высоты мира
const (
	baseHeightRatio   = 0.5
	largeAmplitude    = 0.25
	mediumAmplitude   = 0.15
	smallAmplitude    = 0.05
	featureCount      = 5
	featureHeightSpan = 0.3
)

// Heightmap хранит высоту рельефа для каждого столбца (x, z)
type Heightmap struct {
	Width   int
	Depth   int
	Heights []int
}

// At возвращает высоту столбца; за пределами карты 0
func (h *Heightmap) At(x, z int) int {
	if x < 0 || x >= h.Width || z < 0 || z >= h.Depth {
		return 0
	}
	return h.Heights[z*h.Width+x]
}

// Stats возвращает целочисленное среднее и максимум
func (h *Heightmap) Stats() (avg, peak int) {
	if len(h.Heights) == 0 {
		return 0, 0
	}
	total := 0
	for _, v := range h.Heights {
		total += v
		if v > peak {
			peak = v
		}
	}
	return total / len(h.Heights), peak
}

// terrainFeature - холм (положительная высота) или впадина (отрицательная)
type terrainFeature struct {
	x, z   float64
	height float64
	radius float64
}

// HeightmapGenerator строит карту высот из трёх октав шума и нескольких локальных холмов
type HeightmapGenerator struct {
	width  int
	height int
	depth  int
	noise  util.NoiseSource
	rng    *rand.Rand
}

// NewHeightmapGenerator создаёт генератор карты высот
func NewHeightmapGenerator(width, height, depth int, noise util.NoiseSource, rng *rand.Rand) *HeightmapGenerator {
	return &HeightmapGenerator{
		width:  width,
		height: height,
		depth:  depth,
		noise:  noise,
		rng:    rng,
	}
}

// Generate строит карту высот. Значения лежат в [height/4, height-4],
// внутренние столбцы сглажены фильтром 3×3.
func (g *HeightmapGenerator) Generate() *Heightmap {
	hm := &Heightmap{Width: g.width, Depth: g.depth, Heights: make([]int, g.width*g.depth)}
	if len(hm.Heights) == 0 {
		return hm
	}

	h := float64(g.height)
	base := h * baseHeightRatio
	amp1 := h * largeAmplitude
	amp2 := h * mediumAmplitude
	amp3 := h * smallAmplitude

	features := make([]terrainFeature, featureCount)
	for i := range features {
		features[i].x = g.rng.Float64() * float64(g.width)
		features[i].z = g.rng.Float64() * float64(g.depth)
		features[i].height = (g.rng.Float64()*2 - 0.5) * h * featureHeightSpan
		features[i].radius = float64(g.width) * (0.15 + g.rng.Float64()*0.25)
	}

	lo := g.height / 4
	hi := g.height - 4

	for z := 0; z < g.depth; z++ {
		for x := 0; x < g.width; x++ {
			fx, fz := float64(x), float64(z)
			n1 := g.noise.Sample(fx, fz)
			n2 := g.noise.Sample(fx*2, fz*2) * 0.5
			n3 := g.noise.Sample(fx*4, fz*4) * 0.25

			combined := n1
			if amp1 > 0 {
				combined += n2*amp2/amp1 + n3*amp3/amp1
			}
			columnHeight := base + combined*amp1

			for _, f := range features {
				dx := fx - f.x
				dz := fz - f.z
				dist := math.Sqrt(dx*dx + dz*dz)
				if dist < f.radius {
					columnHeight += f.height * util.Smoothstep(1-dist/f.radius)
				}
			}

			// верхняя граница применяется первой: на низких мирах hi < lo
			v := int(columnHeight)
			if v > hi {
				v = hi
			}
			if v < lo {
				v = lo
			}
			hm.Heights[z*g.width+x] = v
		}
	}

	return smoothHeightmap(hm)
}

// smoothHeightmap усредняет внутренние столбцы по окрестности 3×3 (целочисленное деление)
func smoothHeightmap(hm *Heightmap) *Heightmap {
	out := &Heightmap{Width: hm.Width, Depth: hm.Depth, Heights: make([]int, len(hm.Heights))}
	copy(out.Heights, hm.Heights)

	for z := 1; z < hm.Depth-1; z++ {
		for x := 1; x < hm.Width-1; x++ {
			sum := 0
			for dz := -1; dz <= 1; dz++ {
				for dx := -1; dx <= 1; dx++ {
					sum += hm.Heights[(z+dz)*hm.Width+(x+dx)]
				}
			}
			out.Heights[z*hm.Width+x] = sum / 9
		}
	}
	return out
}
