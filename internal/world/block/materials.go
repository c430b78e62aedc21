package block

// Регистрируем все материалы палитры при импорте пакета
func init() {
	dirt := RGB(121, 85, 58)
	planks := RGB(96, 76, 50)

	// Базовые блоки
	Register(AirBlockID, Properties{Name: "Air", Transparent: true})
	Register(DirtBlockID, solid("Dirt", dirt))
	Register(GrassBlockID, withFaces(solid("Grass", RGB(108, 96, 60)), map[Face]Color{
		FaceTop:    RGB(95, 159, 53),
		FaceBottom: dirt,
	}))
	Register(StoneBlockID, solid("Stone", RGB(127, 127, 127)))
	Register(SandBlockID, solid("Sand", RGB(194, 178, 128)))
	Register(WoodBlockID, withFaces(solid("Wood", RGB(119, 89, 55)), map[Face]Color{
		FaceTop:    planks,
		FaceBottom: planks,
	}))
	Register(SnowBlockID, solid("Snow", RGB(240, 240, 245)))
	Register(GravelBlockID, solid("Gravel", RGB(136, 126, 126)))
	Register(ClayBlockID, solid("Clay", RGB(159, 164, 177)))
	Register(BedrockBlockID, solid("Bedrock", RGB(40, 40, 40)))
	Register(ObsidianBlockID, solid("Obsidian", RGB(20, 18, 29)))

	// Прозрачные и полупрозрачные
	Register(WaterBlockID, translucent("Water", RGBA(52, 86, 155, 200), true))
	Register(LeavesBlockID, translucent("Leaves", RGBA(60, 143, 72, 230), true))
	Register(IceBlockID, translucent("Ice", RGBA(160, 188, 255, 220), false))
	Register(SlimeBlockID, translucent("Slime", RGBA(121, 200, 101, 230), false))
	Register(ChangeBlockID, translucent("Change Block", RGB(200, 200, 200), false))

	// Лава - одновременно «руда» (карманы лавы) и полупрозрачный материал
	lava := translucent("Lava", RGBA(207, 16, 32, 230), true)
	lava.Ore = true
	Register(LavaBlockID, lava)

	// Руды
	Register(CoalOreBlockID, ore("Coal Ore", RGB(50, 50, 50)))
	Register(IronOreBlockID, ore("Iron Ore", RGB(180, 180, 180)))
	Register(GoldOreBlockID, ore("Gold Ore", RGB(255, 215, 0)))
	Register(DiamondOreBlockID, ore("Diamond Ore", RGB(0, 191, 255)))
	Register(EmeraldOreBlockID, ore("Emerald Ore", RGB(0, 217, 58)))
	Register(RedstoneOreBlockID, ore("Redstone Ore", RGB(255, 0, 0)))

	// Декоративные блоки
	Register(MossyStoneBlockID, solid("Mossy Stone", RGB(90, 108, 90)))
	Register(SandstoneBlockID, solid("Sandstone", RGB(219, 207, 163)))
	Register(CactusBlockID, withFaces(solid("Cactus", RGB(27, 122, 69)), map[Face]Color{
		FaceTop: RGB(12, 156, 51),
	}))
	Register(PumpkinBlockID, withFaces(solid("Pumpkin", RGB(202, 118, 0)), map[Face]Color{
		FaceFront: RGB(212, 126, 3),
	}))
	Register(NetherrackBlockID, solid("Netherrack", RGB(100, 50, 50)))
	Register(SoulSandBlockID, solid("Soul Sand", RGB(90, 70, 55)))
	Register(GlowstoneBlockID, solid("Glowstone", RGB(247, 215, 100)))
	Register(BrickBlockID, solid("Brick", RGB(150, 75, 75)))
	Register(BookshelfBlockID, withFaces(solid("Bookshelf", RGB(180, 150, 100)), map[Face]Color{
		FaceTop:    planks,
		FaceBottom: planks,
	}))
	Register(QuartzBlockID, solid("Quartz", RGB(236, 233, 226)))
	Register(MyceliumBlockID, withFaces(solid("Mycelium", dirt), map[Face]Color{
		FaceTop: RGB(114, 88, 110),
	}))
	Register(EndStoneBlockID, solid("End Stone", RGB(221, 223, 165)))
	Register(PrismarineBlockID, solid("Prismarine", RGB(99, 156, 151)))
	Register(MagmaBlockID, solid("Magma", RGB(155, 57, 9)))
	Register(NetherWartBlockID, solid("Nether Wart", RGB(153, 42, 42)))
}
