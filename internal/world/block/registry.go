package block

var registry = make(map[BlockID]Properties)

// Register добавляет свойства блока в регистр
func Register(id BlockID, props Properties) {
	registry[id] = props
}

// Get возвращает свойства для указанного ID
func Get(id BlockID) (Properties, bool) {
	props, exists := registry[id]
	return props, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// BlockID представляет идентификатор материала блока
type BlockID uint16

// Константы ID блоков
const (
	// Пустота: единственный блок без геометрии
	AirBlockID BlockID = iota // 0

	// Природные пласты и поверхность
	GrassBlockID // 1
	DirtBlockID  // 2
	StoneBlockID // 3
	SandBlockID  // 4
	WaterBlockID // 5
	SnowBlockID  // 6
	PathBlockID  // 7
)

// Строительные материалы зон (начиная с 20)
const (
	CobblestoneBlockID  BlockID = 20 + iota // 20
	StoneBrickBlockID                       // 21
	PlasterBlockID                          // 22
	GlassBlockID                            // 23
	WoodLogBlockID                          // 24
	WoodPlankBlockID                        // 25
	DarkPlankBlockID                        // 26
	RoofRedBlockID                          // 27
	RoofBlueBlockID                         // 28
	ObsidianBlockID                         // 29
	MarbleBlockID                           // 30
	GoldBlockID                             // 31
	IronBlockID                             // 32
	FactoryBrickBlockID                     // 33
	RedBrickBlockID                         // 34
	FarmlandBlockID                         // 35
	LeavesBlockID                           // 36
)

// Декоративные блоки (начиная с 100)
const (
	TallGrassBlockID    BlockID = 100 + iota // Высокая трава
	FlowerYellowBlockID                      // Жёлтый цветок
	FlowerRedBlockID                         // Красный цветок
	SmallRockBlockID                         // Камешек
	WheatBlockID                             // Пшеница
	SugarcaneBlockID                         // Тростник
	LilyPadBlockID                           // Кувшинка, плавает на воде
	WoodFenceBlockID                         // Забор и столбы фонарей
	LanternBlockID                           // Фонарь
	SlimeBlockID                             // Декор площади
	RedAppleBlockID                          // Яблоко в кроне
)
