package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllMaterialsRegistered(t *testing.T) {
	for id := BlockID(0); id < Count; id++ {
		assert.True(t, IsValidBlockID(id), "Материал %d должен быть зарегистрирован", id)
	}
	assert.False(t, IsValidBlockID(Count), "Count не является материалом")
	assert.Equal(t, 38, int(Count), "Палитра: 37 материалов + AIR")
}

func TestRegistry_TransparencyPredicate(t *testing.T) {
	transparent := []BlockID{AirBlockID, WaterBlockID, LeavesBlockID, IceBlockID, LavaBlockID, SlimeBlockID, ChangeBlockID}
	for _, id := range transparent {
		assert.True(t, IsTransparent(id), "%s должен быть прозрачным", id)
	}

	for _, id := range []BlockID{StoneBlockID, DirtBlockID, GrassBlockID, SandBlockID, BedrockBlockID, CoalOreBlockID, WoodBlockID} {
		assert.False(t, IsTransparent(id), "%s должен быть непрозрачным", id)
	}
}

func TestRegistry_AlwaysRendered(t *testing.T) {
	for id := BlockID(0); id < Count; id++ {
		expected := id == WaterBlockID || id == LeavesBlockID || id == LavaBlockID
		assert.Equal(t, expected, IsAlwaysRendered(id), "Неверный флаг AlwaysRender для %s", id)
	}
}

func TestRegistry_Ores(t *testing.T) {
	ores := Ores()
	require.Len(t, ores, 7)
	assert.Contains(t, ores, LavaBlockID, "Карманы лавы учитываются как руда")
	assert.Contains(t, ores, DiamondOreBlockID)
	assert.NotContains(t, ores, StoneBlockID)
}

func TestFaceColor(t *testing.T) {
	assert.Equal(t, Color{}, FaceColor(AirBlockID, FaceTop), "Воздух не имеет цвета")
	assert.Equal(t, RGB(95, 159, 53), FaceColor(GrassBlockID, FaceTop))
	assert.Equal(t, RGB(121, 85, 58), FaceColor(GrassBlockID, FaceBottom))
	assert.Equal(t, RGB(108, 96, 60), FaceColor(GrassBlockID, FaceLeft))
	assert.Equal(t, uint8(200), FaceColor(WaterBlockID, FaceFront).A)
	assert.Equal(t, RGB(212, 126, 3), FaceColor(PumpkinBlockID, FaceFront))
	assert.Equal(t, RGB(202, 118, 0), FaceColor(PumpkinBlockID, FaceBack))
	assert.Equal(t, missingColor, FaceColor(Count, FaceTop))
}

func TestFace_Offset(t *testing.T) {
	seen := map[[3]int]bool{}
	for f := Face(0); f < FaceCount; f++ {
		dx, dy, dz := f.Offset()
		assert.Equal(t, 1, abs(dx)+abs(dy)+abs(dz), "Грань %s должна указывать на соседа", f)
		seen[[3]int{dx, dy, dz}] = true
	}
	assert.Len(t, seen, int(FaceCount), "Смещения граней должны быть уникальными")
}

func TestColor_Brighten(t *testing.T) {
	c := RGBA(250, 10, 100, 128).Brighten(80)
	assert.Equal(t, RGBA(255, 90, 180, 128), c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestByName(t *testing.T) {
	id, ok := ByName("grass")
	require.True(t, ok)
	assert.Equal(t, GrassBlockID, id)

	id, ok = ByName("Coal_Ore")
	require.True(t, ok)
	assert.Equal(t, CoalOreBlockID, id)

	_, ok = ByName("unobtanium")
	assert.False(t, ok, "Неизвестное имя не должно находиться")
}
