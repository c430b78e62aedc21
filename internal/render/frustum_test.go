package render

import (
	"math"
	"testing"

	"github.com/annel0/voxel-client/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestCamera_Defaults(t *testing.T) {
	cam := NewCamera(vec.Vec3Float{}, vec.Vec3Float{Z: -5})

	assert.InDelta(t, math.Pi/4, cam.FOV, 1e-9)
	assert.InDelta(t, -1, cam.Front.Z, 1e-9, "Направление нормализуется")

	cam.SetYawPitch(0, 0)
	assert.InDelta(t, 1, cam.Front.X, 1e-9)

	cam.SetYawPitch(-90, 0)
	assert.InDelta(t, -1, cam.Front.Z, 1e-9)

	cam.SetYawPitch(0, 120)
	assert.Less(t, cam.Front.Y, 1.0, "Тангаж ограничен")

	cam.SetFOVDegrees(90)
	assert.InDelta(t, math.Pi/2, cam.FOV, 1e-9)
}

func TestInFrustum(t *testing.T) {
	cam := NewCamera(vec.Vec3Float{}, vec.Vec3Float{Z: -1})

	assert.True(t, InFrustum(vec.Vec3Float{Z: -20}, cam, 96), "Точка прямо перед камерой")
	assert.False(t, InFrustum(vec.Vec3Float{Z: -200}, cam, 96), "Дальше дальности отрисовки")
	assert.False(t, InFrustum(vec.Vec3Float{Z: 10}, cam, 96), "Позади камеры")
	assert.True(t, InFrustum(vec.Vec3Float{Z: 2}, cam, 96), "Совсем близко позади - видно")
	assert.True(t, InFrustum(vec.Vec3Float{X: 4}, cam, 96), "Ближе пяти блоков - видно всегда")
	assert.False(t, InFrustum(vec.Vec3Float{X: 20}, cam, 96), "Сбоку под прямым углом")
	assert.True(t, InFrustum(vec.Vec3Float{X: 8, Z: -20}, cam, 96), "Внутри расширенного конуса")
}
