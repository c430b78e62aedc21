package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-client/internal/config"
	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/metrics"
	"github.com/annel0/voxel-client/internal/observability"
	"github.com/annel0/voxel-client/internal/render"
	"github.com/annel0/voxel-client/internal/util"
	"github.com/annel0/voxel-client/internal/vec"
	"github.com/annel0/voxel-client/internal/world"
	"github.com/annel0/voxel-client/internal/world/block"
	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/process"
)

func main() {
	var (
		configPath = flag.String("config", "", "путь к YAML конфигурации (или VOXEL_CONFIG)")
		width      = flag.Int("width", 0, "ширина мира")
		height     = flag.Int("height", 0, "высота мира")
		depth      = flag.Int("depth", 0, "глубина мира")
		seed       = flag.Uint("seed", 0, "сид мира")
		superFlat  = flag.Bool("superflat", false, "плоский мир из одного слоя")
		flatBlock  = flag.String("flat-block", "", "материал плоского мира (grass, stone, ...)")
		noise      = flag.String("noise", "", "шумовое поле: value или perlin")
		frames     = flag.Int("frames", 0, "сколько кадров выбора граней прогнать после генерации")
		serve      = flag.Bool("serve", false, "после работы держать /metrics до сигнала завершения")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	// Флаги перекрывают конфиг, только если заданы явно
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.World.Width = *width
		case "height":
			cfg.World.Height = *height
		case "depth":
			cfg.World.Depth = *depth
		case "seed":
			cfg.World.Seed = uint32(*seed)
			cfg.World.RandomSeed = false
		case "superflat":
			cfg.World.SuperFlat = *superFlat
			if *superFlat && cfg.World.RandomSeed {
				log.Printf("⚠️ -superflat отключает world.random_seed: плоский мир не зависит от сида")
				cfg.World.RandomSeed = false
			}
		case "flat-block":
			cfg.World.FlatBlock = *flatBlock
		case "noise":
			cfg.World.Noise = *noise
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Недопустимая конфигурация:\n%v", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Printf("⚠️ %v, используется INFO", err)
	}
	logging.Configure(logging.Options{
		Dir:          cfg.Logging.Dir,
		FileOutput:   cfg.Logging.FileOutput,
		ConsoleLevel: level,
		FileLevel:    logging.TRACE,
	})
	if err := logging.GetLoggerManager().ApplyLevels(cfg.Logging.Components); err != nil {
		log.Printf("⚠️ Уровни компонентов применены частично: %v", err)
	}
	if err := logging.InitDefaultLogger("worldgen"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			logging.Warn("OpenTelemetry не инициализирован: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
				}
			}()
		}
	}

	collector := metrics.NewCollector("voxel", nil)
	if port := cfg.Metrics.GetMetricsPort(); port > 0 {
		collector.StartHTTP(fmt.Sprintf(":%d", port))
		defer func() {
			sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			_ = collector.Shutdown(sctx)
		}()
	}

	w := world.New(
		world.WithNoise(util.NoiseKind(cfg.World.Noise)),
		world.WithObserver(collector),
	)
	generate(w, cfg.World)
	report(w)
	logging.Debug("Активные логгеры: %v", logging.GetLoggerManager().ListComponents())

	if *frames > 0 {
		simulate(w, cfg.Render, *frames, collector)
	}

	if *serve {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		logging.Info("Ожидание сигнала завершения...")
		sig := <-sigCh
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
	}
}

// generate строит мир согласно секции world конфигурации
func generate(w *world.World, wc config.WorldConfig) {
	flat := block.GrassBlockID
	if wc.SuperFlat {
		if id, ok := block.ByName(wc.FlatBlock); ok {
			flat = id
		} else {
			logging.Warn("Неизвестный материал %q, используется Grass", wc.FlatBlock)
		}
	}

	if wc.RandomSeed {
		w.Init(wc.Width, wc.Height, wc.Depth)
		return
	}
	w.InitWithOptions(wc.Width, wc.Height, wc.Depth, wc.GetSeed(), wc.SuperFlat, flat)
}

// report выводит итоги генерации и расход ресурсов процесса
func report(w *world.World) {
	stats := w.Stats()
	total := int64(w.Width()) * int64(w.Height()) * int64(w.Depth())

	logging.Info("🌍 Мир %s: %dx%dx%d, seed=%d", w.ID(), w.Width(), w.Height(), w.Depth(), w.Seed())
	logging.Info("   Вокселей: %s, видимых: %s", humanize.Comma(total), humanize.Comma(int64(stats.VisibleBlocks)))
	logging.Info("   Деревьев: %d, жил: %d, пещерных систем: %d", stats.Terrain.Trees, stats.Ores.Veins, stats.Caves.Systems)
	for _, id := range block.Ores() {
		logging.Info("   %-12s %s", id.String(), humanize.Comma(int64(stats.OreCounts.Counts[id])))
	}
	logging.Info("   Дайджест: %016x, время: %v", w.Digest(), stats.Duration)

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logging.Debug("Не удалось получить процесс: %v", err)
		return
	}
	if mem, err := proc.MemoryInfo(); err == nil {
		logging.Info("   Память процесса (RSS): %s", humanize.Bytes(mem.RSS))
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		logging.Info("   CPU процесса: %.1f%%", cpu)
	}
}

// simulate прогоняет кадры выбора граней, поворачивая камеру вокруг точки появления
func simulate(w *world.World, rc config.RenderConfig, frames int, observer render.Observer) {
	selector := render.NewSelector(render.Config{
		RenderDistance:     rc.GetRenderDistance(),
		CacheCapacity:      rc.CacheCapacity,
		CacheTTLSeconds:    rc.CacheTTLSeconds,
		DistanceMargin:     rc.DistanceMargin,
		UndergroundCulling: true,
	}, observer)

	cam := render.NewCamera(w.SpawnPoint(), vec.Vec3Float{Z: -1})
	if rc.FOVDegrees > 0 {
		cam.SetFOVDegrees(rc.FOVDegrees)
	}

	var passFaces [2]int
	sink := render.FaceSinkFunc(func(f render.Face) {
		passFaces[f.Pass]++
	})

	const dt = 1.0 / 60
	step := 360.0 / float64(frames)
	var faces int
	start := time.Now()
	for i := 0; i < frames; i++ {
		cam.SetYawPitch(float64(i)*step-90, -15)
		selector.Advance(dt)
		stats := selector.Frame(w, cam, sink)
		faces += stats.Faces
	}
	elapsed := time.Since(start)

	logging.Info("🎥 Кадров: %d за %v, в среднем граней: %s (непрозрачных %s, прозрачных %s), кэш чанков: %d",
		frames, elapsed,
		humanize.Comma(int64(faces/frames)),
		humanize.Comma(int64(passFaces[render.PassOpaque])),
		humanize.Comma(int64(passFaces[render.PassTransparent])),
		selector.Cache().Len())
	logging.Debug("Среднее время кадра: %.2f мс", float64(elapsed.Microseconds())/1000/math.Max(1, float64(frames)))
}
