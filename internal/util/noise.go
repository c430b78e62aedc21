package util

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// DefaultNoiseScale переводит координаты блоков в координаты решётки шума
const DefaultNoiseScale = 0.01

// NoiseSource - детерминированное скалярное поле на плоскости XZ со значениями в [-1, 1]
type NoiseSource interface {
	Sample(x, z float64) float64
}

// NoiseKind выбирает реализацию шумового поля
type NoiseKind string

const (
	NoiseValue  NoiseKind = "value"
	NoisePerlin NoiseKind = "perlin"
)

// NewNoise создаёт шумовое поле указанного типа. Неизвестный тип даёт value-noise.
func NewNoise(kind NoiseKind, seed uint32) NoiseSource {
	if kind == NoisePerlin {
		return NewPerlinNoise(seed)
	}
	return NewValueNoise(seed)
}

// ValueNoise - value-noise: псевдослучайные значения в узлах целочисленной решётки
// (хеш координат узла и сида) и сглаженная билинейная интерполяция между ними.
type ValueNoise struct {
	seed  uint32
	scale float64
}

// NewValueNoise создаёт value-noise с масштабом по умолчанию
func NewValueNoise(seed uint32) *ValueNoise {
	return &ValueNoise{seed: seed, scale: DefaultNoiseScale}
}

// Sample возвращает значение шума в точке (x, z)
func (n *ValueNoise) Sample(x, z float64) float64 {
	x *= n.scale
	z *= n.scale

	x0 := math.Floor(x)
	z0 := math.Floor(z)
	xi := int32(x0)
	zi := int32(z0)

	// Квинтическая кривая даёт непрерывную первую производную на границах ячеек
	u := fade(x - x0)
	v := fade(z - z0)

	v00 := n.lattice(xi, zi)
	v10 := n.lattice(xi+1, zi)
	v01 := n.lattice(xi, zi+1)
	v11 := n.lattice(xi+1, zi+1)

	x1 := lerp(u, v00, v10)
	x2 := lerp(u, v01, v11)
	return lerp(v, x1, x2)
}

// lattice возвращает значение узла решётки в [-1, 1]
func (n *ValueNoise) lattice(x, z int32) float64 {
	h := Hash2(n.seed, x, z)
	return float64(h)/float64(math.MaxUint32)*2.0 - 1.0
}

// PerlinNoise - градиентный шум Перлина (github.com/aquilax/go-perlin) с тем же контрактом
type PerlinNoise struct {
	p     *perlin.Perlin
	scale float64
}

// NewPerlinNoise инициализирует генератор шума Перлина с указанным сидом
func NewPerlinNoise(seed uint32) *PerlinNoise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &PerlinNoise{
		p:     perlin.NewPerlin(alpha, beta, n, int64(seed)),
		scale: DefaultNoiseScale,
	}
}

// Sample возвращает значение шума Перлина, ограниченное диапазоном [-1, 1]
func (n *PerlinNoise) Sample(x, z float64) float64 {
	return Clamp(n.p.Noise2D(x*n.scale, z*n.scale), -1, 1)
}

// Hash2 перемешивает координаты узла решётки вместе с сидом
func Hash2(seed uint32, x, z int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(z) * 0x85ebca6b
	return Hash32(h)
}

// Hash32 - финализатор в стиле Murmur: хорошее лавинное перемешивание 32 бит
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// Clamp ограничивает значение отрезком [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt ограничивает целое значение отрезком [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep - кубическое сглаживание t ∈ [0, 1]
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
