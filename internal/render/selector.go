package render

import (
	"math"

	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/util"
	"github.com/annel0/voxel-client/internal/vec"
	"github.com/annel0/voxel-client/internal/world"
	"github.com/annel0/voxel-client/internal/world/block"
)

// Пределы дальности отрисовки в блоках
const (
	MinRenderDistance     = 3
	MaxRenderDistance     = 128
	DefaultRenderDistance = 96
	DefaultDistanceMargin = 1.2
)

const (
	chunkBoundingRadius   = world.ChunkSize * 0.866
	frustumCheckDistSq    = 100.0
	undergroundCeiling    = 5
	undergroundDistSq     = 1024.0
	undergroundMinDot     = 0.7
	undergroundDistFactor = 0.3
	xrayNearDistance      = 5.0
	xrayStoneDistance     = 3.0
	xrayStoneStride       = 10
	xrayBrighten          = 80
)

// Pass - проход отрисовки: сначала непрозрачные блоки, затем прозрачные
type Pass int

const (
	PassOpaque Pass = iota
	PassTransparent
)

// String возвращает имя прохода
func (p Pass) String() string {
	if p == PassOpaque {
		return "opaque"
	}
	return "transparent"
}

// Face - видимая грань, передаваемая рендереру
type Face struct {
	X, Y, Z int
	Face    block.Face
	Color   block.Color
	Pass    Pass
}

// FaceSink принимает грани кадра
type FaceSink interface {
	EmitFace(f Face)
}

// FaceSinkFunc позволяет использовать функцию как FaceSink
type FaceSinkFunc func(f Face)

// EmitFace вызывает функцию
func (fn FaceSinkFunc) EmitFace(f Face) { fn(f) }

// FrameStats - итог выбора граней за кадр
type FrameStats struct {
	ChunksVisited int // Чанков в прямоугольнике вокруг камеры
	ChunksWalked  int // Чанков, блоки которых обходились
	Blocks        int // Блоков хотя бы с одной гранью
	Faces         int
	CacheSize     int
}

// Observer получает события кэша и итоги кадров
type Observer interface {
	CacheObserver
	ObserveFrame(stats FrameStats)
}

// Config - параметры выбора граней
type Config struct {
	RenderDistance     int
	CacheCapacity      int
	CacheTTLSeconds    float64
	DistanceMargin     float64
	UndergroundCulling bool
}

// DefaultConfig возвращает параметры по умолчанию
func DefaultConfig() Config {
	return Config{
		RenderDistance:     DefaultRenderDistance,
		CacheCapacity:      DefaultCacheCapacity,
		CacheTTLSeconds:    DefaultCacheTTLSeconds,
		DistanceMargin:     DefaultDistanceMargin,
		UndergroundCulling: true,
	}
}

// Selector выбирает видимые грани мира для камеры, ограничивая обход чанками из кэша и дальности
type Selector struct {
	cache              *ChunkCache
	renderDistance     int
	distanceMargin     float64
	undergroundCulling bool
	observer           Observer
	logger             *logging.Logger
}

// NewSelector создаёт селектор. observer может быть nil.
func NewSelector(cfg Config, observer Observer) *Selector {
	margin := cfg.DistanceMargin
	if margin <= 0 {
		margin = DefaultDistanceMargin
	}

	var cacheObserver CacheObserver
	if observer != nil {
		cacheObserver = observer
	}

	s := &Selector{
		cache:              NewChunkCache(cfg.CacheCapacity, cfg.CacheTTLSeconds, cacheObserver),
		distanceMargin:     margin,
		undergroundCulling: cfg.UndergroundCulling,
		observer:           observer,
		logger:             logging.GetRenderLogger(),
	}
	distance := cfg.RenderDistance
	if distance == 0 {
		distance = DefaultRenderDistance
	}
	s.SetRenderDistance(distance)
	return s
}

// SetRenderDistance задаёт дальность, ограничивая её [3, 128]
func (s *Selector) SetRenderDistance(distance int) {
	s.renderDistance = util.ClampInt(distance, MinRenderDistance, MaxRenderDistance)
}

// RenderDistance возвращает текущую дальность
func (s *Selector) RenderDistance() int {
	return s.renderDistance
}

// Cache возвращает кэш чанков
func (s *Selector) Cache() *ChunkCache {
	return s.cache
}

// Advance продвигает игровое время кэша
func (s *Selector) Advance(dt float64) {
	s.cache.Advance(dt)
}

// chunkPlan - решение по чанку на текущий кадр
type chunkPlan struct {
	x0, y0, z0 int
	x1, y1, z1 int
}

// Frame выбирает грани для кадра: сначала все непрозрачные, затем прозрачные
func (s *Selector) Frame(w *world.World, cam Camera, sink FaceSink) FrameStats {
	var stats FrameStats
	xray := w.IsXrayMode()

	w.ReadGrid(func(g *world.VoxelGrid) {
		plans := s.planChunks(g, cam, &stats)
		maxDistSq := float64(s.renderDistance * s.renderDistance)
		underground := s.undergroundCulling && cam.Position.Y < float64(g.Height()-undergroundCeiling)

		for _, pass := range []Pass{PassOpaque, PassTransparent} {
			for _, p := range plans {
				for z := p.z0; z < p.z1; z++ {
					for y := p.y0; y < p.y1; y++ {
						for x := p.x0; x < p.x1; x++ {
							faces := s.emitBlock(g, cam, sink, pass, x, y, z, maxDistSq, underground, xray)
							if faces > 0 {
								stats.Blocks++
								stats.Faces += faces
							}
						}
					}
				}
			}
		}
	})

	stats.CacheSize = s.cache.Len()
	if s.observer != nil {
		s.observer.ObserveFrame(stats)
	}
	s.logger.Trace("Кадр: чанков %d/%d, блоков %d, граней %d", stats.ChunksWalked, stats.ChunksVisited, stats.Blocks, stats.Faces)
	return stats
}

// planChunks чистит кэш, обновляет его по чанкам в пределах дальности
// и возвращает чанки, которые нужно обойти в этом кадре
func (s *Selector) planChunks(g *world.VoxelGrid, cam Camera, stats *FrameStats) []chunkPlan {
	rd := s.renderDistance
	cell := cam.Position.ToVec3()
	px, py, pz := cell.X, cell.Y, cell.Z

	minX, maxX := max(0, px-rd), min(g.Width()-1, px+rd)
	minY, maxY := max(0, py-rd), min(g.Height()-1, py+rd)
	minZ, maxZ := max(0, pz-rd), min(g.Depth()-1, pz+rd)

	s.cache.Cleanup()
	if minX > maxX || minY > maxY || minZ > maxZ {
		return nil
	}

	maxDistSq := float64(rd * rd)
	bound := (maxDistSq + chunkBoundingRadius*chunkBoundingRadius) * s.distanceMargin
	half := float64(world.ChunkSize) * 0.5

	var plans []chunkPlan
	for cz := minZ / world.ChunkSize; cz <= maxZ/world.ChunkSize; cz++ {
		for cy := minY / world.ChunkSize; cy <= maxY/world.ChunkSize; cy++ {
			for cx := minX / world.ChunkSize; cx <= maxX/world.ChunkSize; cx++ {
				stats.ChunksVisited++

				center := vec.Vec3Float{
					X: float64(cx*world.ChunkSize) + half,
					Y: float64(cy*world.ChunkSize) + half,
					Z: float64(cz*world.ChunkSize) + half,
				}
				distSq := center.Sub(cam.Position).LengthSquared()
				inRange := distSq <= bound
				cached := s.cache.IsChunkLoaded(cx, cy, cz)

				if inRange {
					s.cache.Update(cx, cy, cz, InFrustum(center, cam, rd))
				}
				if !inRange && !cached {
					continue
				}

				stats.ChunksWalked++
				plans = append(plans, chunkPlan{
					x0: cx * world.ChunkSize, x1: min((cx+1)*world.ChunkSize, g.Width()),
					y0: cy * world.ChunkSize, y1: min((cy+1)*world.ChunkSize, g.Height()),
					z0: cz * world.ChunkSize, z1: min((cz+1)*world.ChunkSize, g.Depth()),
				})
			}
		}
	}
	return plans
}

// emitBlock отдаёт грани одного блока и возвращает их число
func (s *Selector) emitBlock(g *world.VoxelGrid, cam Camera, sink FaceSink, pass Pass,
	x, y, z int, maxDistSq float64, underground, xray bool) int {

	b := g.Get(x, y, z)
	if b.IsAir() {
		return 0
	}
	// вне рентгена невидимый блок не имеет открытых граней
	if !xray && !b.Visible {
		return 0
	}

	transparent := block.IsTransparent(b.Type) || b.HasTranslucentFace()
	if (pass == PassOpaque) == transparent {
		return 0
	}

	center := vec.Vec3{X: x, Y: y, Z: z}.Center()
	toBlock := center.Sub(cam.Position)
	distSq := toBlock.LengthSquared()
	if distSq > maxDistSq {
		return 0
	}

	if underground && distSq > undergroundDistSq {
		if toBlock.Normalize().Dot(cam.Front) < undergroundMinDot || distSq > maxDistSq*undergroundDistFactor {
			return 0
		}
	}

	if distSq > frustumCheckDistSq && !InFrustum(center, cam, s.renderDistance) {
		return 0
	}

	if xray {
		dist := math.Sqrt(distSq)
		ore := block.IsOre(b.Type)
		if !ore && dist > xrayNearDistance {
			return 0
		}
		if b.Type == block.StoneBlockID && dist > xrayStoneDistance && (x+y+z)%xrayStoneStride != 0 {
			return 0
		}
		if ore {
			color := b.FaceColor(block.FaceFront).Brighten(xrayBrighten)
			for f := block.Face(0); f < block.FaceCount; f++ {
				sink.EmitFace(Face{X: x, Y: y, Z: z, Face: f, Color: color, Pass: pass})
			}
			return int(block.FaceCount)
		}
	}

	faces := 0
	pos := vec.Vec3{X: x, Y: y, Z: z}
	for f := block.Face(0); f < block.FaceCount; f++ {
		n := world.Neighbor(pos, f)
		if g.InBounds(n.X, n.Y, n.Z) && !block.IsTransparent(g.TypeAt(n.X, n.Y, n.Z)) {
			continue
		}
		sink.EmitFace(Face{X: x, Y: y, Z: z, Face: f, Color: b.FaceColor(f), Pass: pass})
		faces++
	}
	return faces
}
