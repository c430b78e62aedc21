package render

import (
	"math"

	"github.com/annel0/voxel-client/internal/vec"
)

// DefaultFOVDegrees - угол обзора камеры по умолчанию
const DefaultFOVDegrees = 45.0

// Camera - положение и направление взгляда. FOV хранится в радианах.
type Camera struct {
	Position vec.Vec3Float
	Front    vec.Vec3Float
	FOV      float64
}

// NewCamera создаёт камеру с нормализованным направлением и FOV 45°
func NewCamera(position, front vec.Vec3Float) Camera {
	return Camera{
		Position: position,
		Front:    front.Normalize(),
		FOV:      DegreesToRadians(DefaultFOVDegrees),
	}
}

// SetFOVDegrees задаёт угол обзора в градусах
func (c *Camera) SetFOVDegrees(deg float64) {
	c.FOV = DegreesToRadians(deg)
}

// SetYawPitch задаёт направление взгляда углами Эйлера в градусах.
// yaw=-90, pitch=0 смотрит вдоль -Z.
func (c *Camera) SetYawPitch(yawDeg, pitchDeg float64) {
	pitchDeg = math.Max(-89, math.Min(89, pitchDeg))
	yaw := DegreesToRadians(yawDeg)
	pitch := DegreesToRadians(pitchDeg)
	c.Front = vec.Vec3Float{
		X: math.Cos(yaw) * math.Cos(pitch),
		Y: math.Sin(pitch),
		Z: math.Sin(yaw) * math.Cos(pitch),
	}.Normalize()
}

// DegreesToRadians переводит градусы в радианы
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
