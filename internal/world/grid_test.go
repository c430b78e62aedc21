package world

import (
	"testing"

	"github.com/annel0/voxel-client/internal/world/block"
	"github.com/stretchr/testify/assert"
)

func TestVoxelGrid_Bounds(t *testing.T) {
	g := NewVoxelGrid(4, 3, 2)

	assert.Equal(t, 24, g.Len())
	assert.True(t, g.InBounds(3, 2, 1))
	assert.False(t, g.InBounds(4, 0, 0))
	assert.False(t, g.InBounds(0, -1, 0))
	assert.False(t, g.InBounds(0, 0, 2))

	assert.False(t, g.SetType(4, 0, 0, block.StoneBlockID), "Запись за пределами - no-op")
	assert.True(t, g.SetType(3, 2, 1, block.StoneBlockID))
	assert.Equal(t, block.StoneBlockID, g.TypeAt(3, 2, 1))
	assert.Equal(t, block.AirBlockID, g.TypeAt(-5, 0, 0))
	assert.True(t, g.Get(9, 9, 9).IsAir())
}

func TestVoxelGrid_IndexLayout(t *testing.T) {
	g := NewVoxelGrid(4, 3, 2)

	assert.Equal(t, 0, g.index(0, 0, 0))
	assert.Equal(t, 1, g.index(1, 0, 0), "x меняется быстрее всего")
	assert.Equal(t, 4, g.index(0, 1, 0))
	assert.Equal(t, 12, g.index(0, 0, 1))
	assert.Equal(t, 23, g.index(3, 2, 1))
}

func TestVoxelGrid_NegativeDimensions(t *testing.T) {
	g := NewVoxelGrid(-1, 5, 5)
	assert.Zero(t, g.Len())
	assert.False(t, g.InBounds(0, 0, 0))
}

func TestVoxelGrid_SurfaceY(t *testing.T) {
	g := NewVoxelGrid(2, 10, 2)
	g.SetType(0, 0, 0, block.BedrockBlockID)
	g.SetType(0, 4, 0, block.StoneBlockID)
	g.SetType(0, 5, 0, block.WaterBlockID)

	assert.Equal(t, 5, g.SurfaceY(0, 0, isAir))
	assert.Equal(t, 4, g.SurfaceY(0, 0, isAirOrWater))
	assert.Equal(t, -1, g.SurfaceY(1, 1, isAir))
	assert.Equal(t, -1, g.SurfaceY(5, 0, isAir))
}

func TestChunkCoord(t *testing.T) {
	cx, cy, cz := ChunkCoord(0, 15, 16)
	assert.Equal(t, [3]int{0, 0, 1}, [3]int{cx, cy, cz})

	cx, cy, cz = ChunkCoord(-1, 33, -17)
	assert.Equal(t, [3]int{-1, 2, -2}, [3]int{cx, cy, cz})
}

func TestBlock_CustomColors(t *testing.T) {
	b := NewBlock(block.ChangeBlockID)
	assert.False(t, b.HasCustomColors)
	assert.Equal(t, block.RGB(127, 127, 127), b.CustomColor(block.FaceTop))
	assert.Equal(t, block.FaceColor(block.ChangeBlockID, block.FaceTop), b.FaceColor(block.FaceTop),
		"Без покраски используется цвет материала")
	assert.False(t, b.HasTranslucentFace())

	b.SetCustomColor(block.FaceFront, block.RGBA(1, 2, 3, 200))
	assert.True(t, b.HasCustomColors)
	assert.True(t, b.HasTranslucentFace())
	assert.Equal(t, block.RGBA(1, 2, 3, 200), b.FaceColor(block.FaceFront))

	var copyTo Block
	copyTo.CopyCustomColorsFrom(b)
	assert.Equal(t, b.CustomColors, copyTo.CustomColors)
	assert.True(t, copyTo.HasCustomColors)

	stone := NewBlock(block.StoneBlockID)
	stone.SetCustomColor(block.FaceTop, block.RGB(0, 0, 0))
	assert.Equal(t, block.FaceColor(block.StoneBlockID, block.FaceTop), stone.FaceColor(block.FaceTop),
		"Пользовательские цвета действуют только для CHANGE_BLOCK")
}
