package render

import (
	"math"

	"github.com/annel0/voxel-client/internal/vec"
)

// Допуски проверки видимости. Границы конуса намеренно расширены, чтобы блоки не мигали на краях.
const (
	frustumBehindDot      = -0.1
	frustumBehindDistance = 3.0
	frustumNearDistance   = 5.0
	frustumAngleFactor    = 1.1
	frustumBlockRadius    = 1.0
	frustumExtensionBase  = 0.1
	frustumExtensionRange = 0.2
	frustumExtensionScale = 32.0
)

// InFrustum проверяет, попадает ли точка в расширенный конус обзора камеры
func InFrustum(point vec.Vec3Float, cam Camera, renderDistance int) bool {
	toPoint := point.Sub(cam.Position)
	distance := toPoint.Length()
	if distance > float64(renderDistance) {
		return false
	}

	dot := toPoint.Normalize().Dot(cam.Front)
	if dot < frustumBehindDot && distance > frustumBehindDistance {
		return false
	}
	if distance < frustumNearDistance {
		return true
	}

	extension := frustumExtensionBase + math.Min(1, distance/frustumExtensionScale)*frustumExtensionRange
	adjustedCos := math.Cos(cam.FOV*0.5*frustumAngleFactor) - extension

	// радиус блока расширяет конус на ближних дистанциях
	return dot > adjustedCos-frustumBlockRadius/distance
}
