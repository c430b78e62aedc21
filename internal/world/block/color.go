package block

// Face определяет грань куба
type Face uint8

const (
	FaceFront  Face = iota // z+1
	FaceBack               // z-1
	FaceLeft               // x-1
	FaceRight              // x+1
	FaceTop                // y+1
	FaceBottom             // y-1

	FaceCount // всегда последний: количество граней
)

// Offset возвращает смещение к соседу через грань
func (f Face) Offset() (dx, dy, dz int) {
	switch f {
	case FaceFront:
		return 0, 0, 1
	case FaceBack:
		return 0, 0, -1
	case FaceLeft:
		return -1, 0, 0
	case FaceRight:
		return 1, 0, 0
	case FaceTop:
		return 0, 1, 0
	case FaceBottom:
		return 0, -1, 0
	default:
		return 0, 0, 0
	}
}

// String возвращает имя грани
func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Color представляет цвет RGBA
type Color struct {
	R, G, B, A uint8
}

// RGB создаёт непрозрачный цвет
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA создаёт цвет с альфа-каналом
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Brighten осветляет цвет на delta по каждому каналу с насыщением
func (c Color) Brighten(delta int) Color {
	return Color{R: clampChannel(int(c.R) + delta), G: clampChannel(int(c.G) + delta), B: clampChannel(int(c.B) + delta), A: c.A}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Цвет для незарегистрированных материалов, заметный на глаз
var missingColor = RGB(255, 0, 255)

// FaceColor возвращает базовый цвет грани материала
func FaceColor(id BlockID, face Face) Color {
	if id == AirBlockID {
		return Color{}
	}
	if face >= FaceCount {
		face = FaceFront
	}
	props, ok := Get(id)
	if !ok {
		return missingColor
	}
	return props.Colors[face]
}
