package world

import (
	"context"
	"math/rand"
	"time"

	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/util"
	"github.com/annel0/voxel-client/internal/world/block"
	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Имена стадий генерации (используются в логах, спанах и метриках)
const (
	StageHeightmap  = "heightmap"
	StageTerrain    = "terrain"
	StageOres       = "ores"
	StageCaves      = "caves"
	StageVisibility = "visibility"
	StageSuperFlat  = "superflat"
)

// MinDimension - минимальный размер мира по каждой оси
const MinDimension = 2

const tracerName = "github.com/annel0/voxel-client/internal/world"

// Params задаёт параметры генерации мира
type Params struct {
	Width     int
	Height    int
	Depth     int
	Seed      uint32
	SuperFlat bool
	FlatBlock block.BlockID
	Noise     util.NoiseKind
}

// normalized приводит размеры к минимуму и подставляет значения по умолчанию
func (p Params) normalized() Params {
	p.Width = max(MinDimension, p.Width)
	p.Height = max(MinDimension, p.Height)
	p.Depth = max(MinDimension, p.Depth)
	if p.Noise == "" {
		p.Noise = util.NoiseValue
	}
	if !block.IsValidBlockID(p.FlatBlock) {
		p.FlatBlock = block.GrassBlockID
	}
	return p
}

// GenerationObserver получает тайминги стадий и итоговую статистику
type GenerationObserver interface {
	ObserveStage(stage string, elapsed time.Duration)
	ObserveWorld(stats Stats)
}

// Stats - итог одной генерации
type Stats struct {
	Params        Params
	Terrain       TerrainInfo
	Ores          OreReport
	Caves         CaveReport
	VisibleBlocks int
	OreCounts     OreStats
	Stages        map[string]time.Duration
	Duration      time.Duration
}

// Generator выполняет конвейер: карта высот → рельеф → руды → пещеры → видимость.
// Генерация синхронная и не отменяемая; контекст используется только для трассировки.
type Generator struct {
	params   Params
	logger   *logging.Logger
	observer GenerationObserver
	tracer   trace.Tracer
}

// NewGenerator создаёт генератор. observer может быть nil.
func NewGenerator(params Params, observer GenerationObserver) *Generator {
	return &Generator{
		params:   params.normalized(),
		logger:   logging.GetWorldGenLogger(),
		observer: observer,
		tracer:   otel.Tracer(tracerName),
	}
}

// Params возвращает нормализованные параметры
func (g *Generator) Params() Params {
	return g.params
}

// Generate строит новую сетку и возвращает её вместе со статистикой
func (g *Generator) Generate(ctx context.Context) (*VoxelGrid, Stats) {
	p := g.params
	ctx, span := g.tracer.Start(ctx, "world.Generate", trace.WithAttributes(
		attribute.Int("world.width", p.Width),
		attribute.Int("world.height", p.Height),
		attribute.Int("world.depth", p.Depth),
		attribute.Int64("world.seed", int64(p.Seed)),
		attribute.Bool("world.superflat", p.SuperFlat),
	))
	defer span.End()

	started := time.Now()
	stats := Stats{Params: p, Stages: make(map[string]time.Duration)}
	grid := NewVoxelGrid(p.Width, p.Height, p.Depth)

	g.logger.Info("Генерация мира %dx%dx%d, seed=%d, superflat=%t", p.Width, p.Height, p.Depth, p.Seed, p.SuperFlat)

	if p.SuperFlat {
		g.stage(ctx, &stats, StageSuperFlat, func() {
			for z := 0; z < p.Depth; z++ {
				for x := 0; x < p.Width; x++ {
					grid.SetType(x, 0, z, p.FlatBlock)
				}
			}
		})
	} else {
		terrainRNG := rand.New(rand.NewSource(int64(p.Seed)))
		var hm *Heightmap

		g.stage(ctx, &stats, StageHeightmap, func() {
			noise := util.NewNoise(p.Noise, p.Seed)
			hm = NewHeightmapGenerator(p.Width, p.Height, p.Depth, noise, terrainRNG).Generate()
		})
		g.stage(ctx, &stats, StageTerrain, func() {
			stats.Terrain = NewTerrainCompositor(grid, terrainRNG).Compose(hm)
		})
		g.logger.Debug("Средняя высота %d, уровень воды %d, снеговая линия %d, деревьев %d",
			stats.Terrain.AvgHeight, stats.Terrain.WaterLevel, stats.Terrain.SnowLevel, stats.Terrain.Trees)

		g.stage(ctx, &stats, StageOres, func() {
			stats.Ores = NewOreDistributor(grid, p.Seed).Generate()
		})

		g.stage(ctx, &stats, StageCaves, func() {
			stats.Caves = NewCaveCarver(grid, p.Seed).Generate()
		})
		g.logger.Debug("Пещер %d, ответвлений %d, туннелей %d, залито водой %d, досыпано песка %d",
			stats.Caves.Systems, stats.Caves.Branches, stats.Caves.Tunnels, stats.Caves.WaterFilled, stats.Caves.SandFilled)
	}

	g.stage(ctx, &stats, StageVisibility, func() {
		stats.VisibleBlocks = NewVisibilityResolver(grid).UpdateAll()
	})

	stats.OreCounts = CountOres(grid)
	stats.Duration = time.Since(started)
	span.SetAttributes(
		attribute.Int("world.visible_blocks", stats.VisibleBlocks),
		attribute.Int("world.ores_total", stats.OreCounts.Total),
	)

	if g.observer != nil {
		g.observer.ObserveWorld(stats)
	}
	g.logger.Info("Мир сгенерирован за %v: видимых блоков %s, руды %s", stats.Duration,
		humanize.Comma(int64(stats.VisibleBlocks)), humanize.Comma(int64(stats.OreCounts.Total)))
	return grid, stats
}

// stage выполняет одну стадию в собственном спане и отдаёт тайминг наблюдателю
func (g *Generator) stage(ctx context.Context, stats *Stats, name string, fn func()) {
	_, span := g.tracer.Start(ctx, "world.stage."+name)
	started := time.Now()
	fn()
	elapsed := time.Since(started)
	span.End()

	stats.Stages[name] = elapsed
	if g.observer != nil {
		g.observer.ObserveStage(name, elapsed)
	}
	g.logger.Debug("Стадия %s завершена за %v", name, elapsed)
}

// OreStats - количество блоков каждой руды в мире
type OreStats struct {
	Counts map[block.BlockID]int
	Total  int
}

// CountOres подсчитывает руды (включая лаву) по всей сетке
func CountOres(grid *VoxelGrid) OreStats {
	counts := grid.CountTypes()
	stats := OreStats{Counts: make(map[block.BlockID]int)}
	for _, id := range block.Ores() {
		stats.Counts[id] = counts[id]
		stats.Total += counts[id]
	}
	return stats
}
