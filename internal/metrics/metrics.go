package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/render"
	"github.com/annel0/voxel-client/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector инкапсулирует Prometheus-метрики генерации мира и выбора граней.
// Реализует world.GenerationObserver и render.Observer.
type Collector struct {
	gatherer prometheus.Gatherer
	server   *http.Server

	stageDuration *prometheus.HistogramVec
	worlds        prometheus.Counter
	visibleBlocks prometheus.Gauge
	oreBlocks     *prometheus.GaugeVec
	caveCells     prometheus.Gauge

	evictions   prometheus.Counter
	expirations prometheus.Counter
	frames      prometheus.Counter
	frameFaces  prometheus.Gauge
	frameBlocks prometheus.Gauge
	chunks      *prometheus.GaugeVec
	cacheSize   prometheus.Gauge
}

var (
	_ world.GenerationObserver = (*Collector)(nil)
	_ render.Observer          = (*Collector)(nil)
)

// NewCollector создаёт метрики и регистрирует их в reg.
// Если reg равен nil, используется глобальный регистр Prometheus.
func NewCollector(namespace string, reg *prometheus.Registry) *Collector {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	c := &Collector{
		gatherer: gatherer,
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "worldgen",
			Name:      "stage_duration_seconds",
			Help:      "Длительность стадий генерации мира.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"stage"}),
		worlds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worldgen",
			Name:      "worlds_total",
			Help:      "Сколько раз мир был сгенерирован.",
		}),
		visibleBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "worldgen",
			Name:      "visible_blocks",
			Help:      "Видимых блоков после последней генерации.",
		}),
		oreBlocks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "worldgen",
			Name:      "ore_blocks",
			Help:      "Количество блоков руды по типам.",
		}, []string{"ore"}),
		caveCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "worldgen",
			Name:      "cave_carved_cells",
			Help:      "Ячеек, вырезанных пещерами.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "chunk_cache_evictions_total",
			Help:      "Записи кэша чанков, вытесненные при переполнении.",
		}),
		expirations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "chunk_cache_expirations_total",
			Help:      "Записи кэша чанков, удалённые по TTL.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "frames_total",
			Help:      "Обработанные кадры.",
		}),
		frameFaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "frame_faces",
			Help:      "Граней в последнем кадре.",
		}),
		frameBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "frame_blocks",
			Help:      "Блоков с гранями в последнем кадре.",
		}),
		chunks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "frame_chunks",
			Help:      "Чанков в последнем кадре: visited - рассмотрено, walked - обойдено.",
		}, []string{"state"}),
		cacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "chunk_cache_size",
			Help:      "Текущий размер кэша чанков.",
		}),
	}

	registerer.MustRegister(
		c.stageDuration, c.worlds, c.visibleBlocks, c.oreBlocks, c.caveCells,
		c.evictions, c.expirations, c.frames, c.frameFaces, c.frameBlocks, c.chunks, c.cacheSize,
	)
	return c
}

// ObserveStage фиксирует длительность стадии генерации
func (c *Collector) ObserveStage(stage string, elapsed time.Duration) {
	c.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// ObserveWorld фиксирует итог генерации
func (c *Collector) ObserveWorld(stats world.Stats) {
	c.worlds.Inc()
	c.visibleBlocks.Set(float64(stats.VisibleBlocks))
	c.caveCells.Set(float64(stats.Caves.CarvedCells))
	for id, n := range stats.OreCounts.Counts {
		c.oreBlocks.WithLabelValues(id.String()).Set(float64(n))
	}
}

// ChunkEvicted учитывает вытеснение записи кэша
func (c *Collector) ChunkEvicted() {
	c.evictions.Inc()
}

// ChunksExpired учитывает записи, удалённые по TTL
func (c *Collector) ChunksExpired(n int) {
	c.expirations.Add(float64(n))
}

// ObserveFrame фиксирует итог кадра
func (c *Collector) ObserveFrame(stats render.FrameStats) {
	c.frames.Inc()
	c.frameFaces.Set(float64(stats.Faces))
	c.frameBlocks.Set(float64(stats.Blocks))
	c.chunks.WithLabelValues("visited").Set(float64(stats.ChunksVisited))
	c.chunks.WithLabelValues("walked").Set(float64(stats.ChunksWalked))
	c.cacheSize.Set(float64(stats.CacheSize))
}

// Handler возвращает HTTP-обработчик /metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// StartHTTP запускает эндпоинт /metrics на addr (например, ":2112").
// Метод неблокирующий: сервер работает в отдельной горутине.
func (c *Collector) StartHTTP(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	c.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
}

// Shutdown останавливает HTTP-сервер, если он был запущен
func (c *Collector) Shutdown(ctx context.Context) error {
	if c.server == nil {
		return nil
	}
	return c.server.Shutdown(ctx)
}
