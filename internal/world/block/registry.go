package block

import (
	"fmt"
	"strings"
)

// BlockID представляет идентификатор типа блока (материала)
type BlockID uint8

// Константы ID блоков. Порядок совпадает с палитрой клиента и не должен меняться:
// от него зависят детерминированные дайджесты мира.
const (
	AirBlockID         BlockID = iota // 0
	DirtBlockID                       // 1
	GrassBlockID                      // 2
	StoneBlockID                      // 3
	SandBlockID                       // 4
	WaterBlockID                      // 5
	WoodBlockID                       // 6
	LeavesBlockID                     // 7
	SnowBlockID                       // 8
	IceBlockID                        // 9
	GravelBlockID                     // 10
	ClayBlockID                       // 11
	CoalOreBlockID                    // 12
	IronOreBlockID                    // 13
	GoldOreBlockID                    // 14
	BedrockBlockID                    // 15
	ObsidianBlockID                   // 16
	LavaBlockID                       // 17
	DiamondOreBlockID                 // 18
	EmeraldOreBlockID                 // 19
	RedstoneOreBlockID                // 20
	MossyStoneBlockID                 // 21
	SandstoneBlockID                  // 22
	CactusBlockID                     // 23
	PumpkinBlockID                    // 24
	NetherrackBlockID                 // 25
	SoulSandBlockID                   // 26
	GlowstoneBlockID                  // 27
	BrickBlockID                      // 28
	BookshelfBlockID                  // 29
	QuartzBlockID                     // 30
	MyceliumBlockID                   // 31
	EndStoneBlockID                   // 32
	PrismarineBlockID                 // 33
	MagmaBlockID                      // 34
	NetherWartBlockID                 // 35
	SlimeBlockID                      // 36
	ChangeBlockID                     // 37 - блок с пользовательскими цветами граней

	// Count всегда последний: количество типов блоков
	Count
)

var registry [Count]Properties

var registered [Count]bool

// Register добавляет свойства материала в регистр
func Register(id BlockID, props Properties) {
	if id >= Count {
		panic(fmt.Sprintf("block: ID %d вне диапазона палитры", id))
	}
	registry[id] = props
	registered[id] = true
}

// Get возвращает свойства для указанного ID
func Get(id BlockID) (Properties, bool) {
	if id >= Count || !registered[id] {
		return Properties{}, false
	}
	return registry[id], true
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	return id < Count && registered[id]
}

// String возвращает имя материала
func (id BlockID) String() string {
	if props, ok := Get(id); ok {
		return props.Name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(id))
}

// ByName ищет материал по имени без учёта регистра; '_' и ' ' равнозначны ("coal_ore")
func ByName(name string) (BlockID, bool) {
	want := strings.ReplaceAll(strings.TrimSpace(name), "_", " ")
	for id := BlockID(0); id < Count; id++ {
		if registered[id] && strings.EqualFold(registry[id].Name, want) {
			return id, true
		}
	}
	return AirBlockID, false
}

// IsTransparent сообщает, пропускает ли материал взгляд при отсечении граней.
// CHANGE_BLOCK считается прозрачным всегда: реальная альфа граней известна только рендереру.
func IsTransparent(id BlockID) bool {
	return id < Count && registry[id].Transparent
}

// IsAlwaysRendered сообщает, рисуется ли полупрозрачный материал независимо от соседей
func IsAlwaysRendered(id BlockID) bool {
	return id < Count && registry[id].AlwaysRender
}

// IsOre сообщает, считается ли материал рудой (для статистики и режима X-ray)
func IsOre(id BlockID) bool {
	return id < Count && registry[id].Ore
}

// Ores возвращает все рудные материалы в порядке палитры
func Ores() []BlockID {
	ores := make([]BlockID, 0, 8)
	for id := BlockID(0); id < Count; id++ {
		if IsOre(id) {
			ores = append(ores, id)
		}
	}
	return ores
}
