package world

import (
	"context"
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/annel0/voxel-client/internal/util"
	"github.com/annel0/voxel-client/internal/vec"
	"github.com/annel0/voxel-client/internal/world/block"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Смещение точки появления относительно блока: центр столбца и высота глаз
const (
	spawnEyeHeight = 1.7
	spawnCenter    = 0.5
)

// World - воксельный мир в памяти. Пересоздаётся целиком при Init/Regenerate.
type World struct {
	mu sync.RWMutex

	id        uuid.UUID
	params    Params
	grid      *VoxelGrid
	resolver  *VisibilityResolver
	spawn     vec.Vec3
	xray      bool
	stats     Stats
	noise     util.NoiseKind
	observer  GenerationObserver
	generated bool
}

// Option настраивает World
type Option func(*World)

// WithNoise выбирает источник шума для карты высот
func WithNoise(kind util.NoiseKind) Option {
	return func(w *World) { w.noise = kind }
}

// WithObserver подключает наблюдателя генерации (метрики)
func WithObserver(o GenerationObserver) Option {
	return func(w *World) { w.observer = o }
}

// New создаёт пустой мир нулевого размера
func New(opts ...Option) *World {
	w := &World{
		grid:  NewVoxelGrid(0, 0, 0),
		noise: util.NoiseValue,
	}
	w.resolver = NewVisibilityResolver(w.grid)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Init генерирует мир со случайным сидом
func (w *World) Init(width, height, depth int) {
	w.InitWithSeed(width, height, depth, rand.Uint32())
}

// InitWithSeed генерирует обычный мир с заданным сидом
func (w *World) InitWithSeed(width, height, depth int, seed uint32) {
	w.InitWithOptions(width, height, depth, seed, false, block.GrassBlockID)
}

// InitWithOptions генерирует мир; при superFlat заполняется только слой y=0 блоком flatBlock
func (w *World) InitWithOptions(width, height, depth int, seed uint32, superFlat bool, flatBlock block.BlockID) {
	w.Generate(context.Background(), Params{
		Width:     width,
		Height:    height,
		Depth:     depth,
		Seed:      seed,
		SuperFlat: superFlat,
		FlatBlock: flatBlock,
		Noise:     w.noise,
	})
}

// Regenerate пересоздаёт мир с новыми размерами, сохраняя сид и режим
func (w *World) Regenerate(width, height, depth int) {
	w.mu.RLock()
	p := w.params
	w.mu.RUnlock()

	p.Width, p.Height, p.Depth = width, height, depth
	w.Generate(context.Background(), p)
}

// Generate полностью заменяет содержимое мира. Блокирующий вызов.
func (w *World) Generate(ctx context.Context, params Params) {
	if params.Noise == "" {
		params.Noise = w.noise
	}
	gen := NewGenerator(params, w.observer)
	grid, stats := gen.Generate(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.id = uuid.New()
	w.params = gen.Params()
	w.grid = grid
	w.resolver = NewVisibilityResolver(grid)
	w.stats = stats
	w.generated = true
	w.spawn = findSpawnPoint(grid)
}

// findSpawnPoint ищет первый непустой блок сверху в центральном столбце.
// Точка появления не опускается ниже половины высоты мира.
func findSpawnPoint(g *VoxelGrid) vec.Vec3 {
	x, z := g.Width()/2, g.Depth()/2
	y := 0
	if top := g.SurfaceY(x, z, isAir); top >= 0 {
		y = top + 1
	}
	return vec.Vec3{X: x, Y: max(y, g.Height()/2), Z: z}
}

// IsGenerated сообщает, был ли мир хотя бы раз сгенерирован
func (w *World) IsGenerated() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.generated
}

// ID возвращает идентификатор текущего поколения мира
func (w *World) ID() uuid.UUID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.id
}

// Width возвращает размер по X
func (w *World) Width() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.Width()
}

// Height возвращает размер по Y
func (w *World) Height() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.Height()
}

// Depth возвращает размер по Z
func (w *World) Depth() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.Depth()
}

// Seed возвращает сид мира
func (w *World) Seed() uint32 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.params.Seed
}

// IsSuperFlat сообщает, сгенерирован ли мир в плоском режиме
func (w *World) IsSuperFlat() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.params.SuperFlat
}

// FlatBlockType возвращает блок плоского мира
func (w *World) FlatBlockType() block.BlockID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.params.FlatBlock
}

// Stats возвращает статистику последней генерации
func (w *World) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// IsInBounds проверяет координаты
func (w *World) IsInBounds(x, y, z int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.InBounds(x, y, z)
}

// GetBlock возвращает копию блока; за пределами мира - воздух
func (w *World) GetBlock(x, y, z int) Block {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.Get(x, y, z)
}

// IsTransparent - предикат прозрачности для отсечения граней
func (w *World) IsTransparent(id block.BlockID) bool {
	return block.IsTransparent(id)
}

// SetBlock заменяет блок и пересчитывает видимость его окрестности и блока под ним.
// За пределами мира - no-op.
func (w *World) SetBlock(x, y, z int, id block.BlockID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.grid.SetType(x, y, z, id) {
		return
	}
	w.refreshAround(x, y, z)
}

// SetBlockWithColors ставит блок с пользовательскими цветами граней
func (w *World) SetBlockWithColors(x, y, z int, id block.BlockID, colors [block.FaceCount]block.Color) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := NewBlock(id)
	for f, c := range colors {
		b.SetCustomColor(block.Face(f), c)
	}
	if !w.grid.put(x, y, z, b) {
		return
	}
	w.refreshAround(x, y, z)
}

func (w *World) refreshAround(x, y, z int) {
	w.resolver.UpdateAt(x, y, z)
	if y > 0 {
		w.resolver.UpdateAt(x, y-1, z)
	}
}

// UpdateVisibility выполняет полный пересчёт видимости
func (w *World) UpdateVisibility() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resolver.UpdateAll()
}

// UpdateVisibilityAt пересчитывает видимость ячейки и её соседей
func (w *World) UpdateVisibilityAt(x, y, z int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resolver.UpdateAt(x, y, z)
}

// ReadGrid выполняет fn под блокировкой чтения. Сетку нельзя сохранять после возврата.
func (w *World) ReadGrid(fn func(g *VoxelGrid)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.grid)
}

// ToggleXrayMode переключает режим рентгена
func (w *World) ToggleXrayMode() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.xray = !w.xray
	return w.xray
}

// IsXrayMode сообщает, включён ли режим рентгена
func (w *World) IsXrayMode() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.xray
}

// SpawnBlock возвращает блок точки появления
func (w *World) SpawnBlock() vec.Vec3 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.spawn
}

// SpawnPoint возвращает позицию глаз игрока в точке появления
func (w *World) SpawnPoint() vec.Vec3Float {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return vec.Vec3Float{
		X: float64(w.spawn.X) + spawnCenter,
		Y: float64(w.spawn.Y) + spawnEyeHeight,
		Z: float64(w.spawn.Z) + spawnCenter,
	}
}

// SetSpawnPoint задаёт блок точки появления
func (w *World) SetSpawnPoint(x, y, z int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.spawn = vec.Vec3{X: x, Y: y, Z: z}
}

// OreStats пересчитывает количество руд в текущем мире
func (w *World) OreStats() OreStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return CountOres(w.grid)
}

// Digest - xxhash от размеров, материалов и флагов видимости всех ячеек
func (w *World) Digest() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	h := xxhash.New()
	var header [12]byte
	binary.LittleEndian.PutUint32(header[0:], uint32(w.grid.Width()))
	binary.LittleEndian.PutUint32(header[4:], uint32(w.grid.Height()))
	binary.LittleEndian.PutUint32(header[8:], uint32(w.grid.Depth()))
	_, _ = h.Write(header[:])

	buf := make([]byte, 0, 4096)
	for i := range w.grid.blocks {
		b := &w.grid.blocks[i]
		vis := byte(0)
		if b.Visible {
			vis = 1
		}
		buf = append(buf, byte(b.Type), vis)
		if len(buf) == cap(buf) {
			_, _ = h.Write(buf)
			buf = buf[:0]
		}
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}
