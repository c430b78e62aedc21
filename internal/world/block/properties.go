package block

// Properties описывает статические свойства материала
type Properties struct {
	Name         string
	Transparent  bool // соседние грани видны сквозь этот блок
	AlwaysRender bool // полупрозрачный материал, видимый даже в окружении непрозрачных блоков
	Ore          bool // учитывается в статистике руд и подсвечивается в X-ray
	Colors       [FaceCount]Color
}

// solid возвращает непрозрачный материал одного цвета
func solid(name string, c Color) Properties {
	return Properties{Name: name, Colors: uniform(c)}
}

// ore возвращает рудный материал одного цвета
func ore(name string, c Color) Properties {
	p := solid(name, c)
	p.Ore = true
	return p
}

// translucent возвращает материал, который не закрывает соседей
func translucent(name string, c Color, alwaysRender bool) Properties {
	return Properties{
		Name:         name,
		Transparent:  true,
		AlwaysRender: alwaysRender,
		Colors:       uniform(c),
	}
}

func uniform(c Color) [FaceCount]Color {
	var colors [FaceCount]Color
	for i := range colors {
		colors[i] = c
	}
	return colors
}

// withFaces переопределяет цвета отдельных граней
func withFaces(p Properties, faces map[Face]Color) Properties {
	for face, c := range faces {
		p.Colors[face] = c
	}
	return p
}
