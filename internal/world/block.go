package world

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// defaultCustomColor - цвет граней CHANGE_BLOCK до первой покраски
var defaultCustomColor = block.RGB(127, 127, 127)

// Block представляет собой ячейку воксельной сетки
type Block struct {
	Type            block.BlockID                // Материал
	Visible         bool                         // Кэш видимости; пишет только VisibilityResolver
	CustomColors    [block.FaceCount]block.Color // Цвета граней, значимы только для CHANGE_BLOCK
	HasCustomColors bool
}

// NewBlock создаёт блок указанного материала. Видимость выставляется резолвером.
func NewBlock(id block.BlockID) Block {
	b := Block{Type: id}
	for i := range b.CustomColors {
		b.CustomColors[i] = defaultCustomColor
	}
	return b
}

// IsAir возвращает true для воздуха
func (b Block) IsAir() bool {
	return b.Type == block.AirBlockID
}

// SetCustomColor задаёт пользовательский цвет грани
func (b *Block) SetCustomColor(face block.Face, c block.Color) {
	if face >= block.FaceCount {
		return
	}
	b.CustomColors[face] = c
	b.HasCustomColors = true
}

// CustomColor возвращает пользовательский цвет грани
func (b Block) CustomColor(face block.Face) block.Color {
	if face >= block.FaceCount {
		return defaultCustomColor
	}
	return b.CustomColors[face]
}

// CopyCustomColorsFrom копирует пользовательские цвета другого блока
func (b *Block) CopyCustomColorsFrom(other Block) {
	b.HasCustomColors = other.HasCustomColors
	b.CustomColors = other.CustomColors
}

// HasTranslucentFace сообщает, есть ли у раскрашенного CHANGE_BLOCK грань с альфой < 255
func (b Block) HasTranslucentFace() bool {
	if b.Type != block.ChangeBlockID || !b.HasCustomColors {
		return false
	}
	for _, c := range b.CustomColors {
		if c.A < 255 {
			return true
		}
	}
	return false
}

// FaceColor возвращает цвет грани с учётом пользовательских цветов.
// Альфа пользовательского цвета не опускается ниже 128, иначе грань просвечивает насквозь.
func (b Block) FaceColor(face block.Face) block.Color {
	if b.Type == block.ChangeBlockID && b.HasCustomColors && face < block.FaceCount {
		c := b.CustomColors[face]
		if c.A < 128 {
			c.A = 128
		}
		return c
	}
	return block.FaceColor(b.Type, face)
}
