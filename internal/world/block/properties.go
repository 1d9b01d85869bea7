package block

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// MaterialClass определяет общий материал, которым рендерер рисует блок
type MaterialClass uint8

const (
	MaterialNone   MaterialClass = iota // Нет геометрии
	MaterialSolid                       // Непрозрачный общий материал
	MaterialLiquid                      // Полупрозрачный материал жидкости
)

// String возвращает строковое представление класса материала
func (m MaterialClass) String() string {
	switch m {
	case MaterialSolid:
		return "solid"
	case MaterialLiquid:
		return "liquid"
	default:
		return "none"
	}
}

// Shape описывает отклонение формы блока от единичного куба
type Shape struct {
	Scale     mgl32.Vec3 // Масштаб относительно единичного куба
	Offset    mgl32.Vec3 // Смещение центра внутри клетки
	RandomYaw bool       // Поворот вокруг Y по хешу клетки
}

// UnitCube задаёт форму полного блока
var UnitCube = Shape{Scale: mgl32.Vec3{1, 1, 1}}

// IsUnitCube проверяет, что форма совпадает с полным блоком
func (s Shape) IsUnitCube() bool {
	return s.Scale == UnitCube.Scale && s.Offset == (mgl32.Vec3{}) && !s.RandomYaw
}

// Properties содержит неизменяемые свойства типа блока
type Properties struct {
	Name          string
	Color         mgl32.Vec3
	Material      MaterialClass
	WalkThrough   bool    // Не мешает движению (трава, цветы, посевы)
	FloatsOnWater bool    // Стоит в клетке с водой, вода рисуется под ним
	BiomeTinted   bool    // Цвет смешивается по биомам
	TintShade     float32 // Множитель яркости смешанного цвета, 0 означает 1
	Decoration    bool    // Не несущая деталь, отбрасывается при низком LOD
	Shape         Shape
}

// IsEmpty проверяет, что блок не имеет геометрии
func IsEmpty(id BlockID) bool {
	return id == AirBlockID
}

// IsLiquid проверяет, является ли блок жидкостью
func IsLiquid(id BlockID) bool {
	props, ok := Get(id)
	return ok && props.Material == MaterialLiquid
}

// IsSolid проверяет твёрдость блока для столкновений.
// Неизвестные ID считаются твёрдыми.
func IsSolid(id BlockID) bool {
	if id == AirBlockID {
		return false
	}
	props, ok := Get(id)
	if !ok {
		return true
	}
	return props.Material != MaterialLiquid && !props.WalkThrough
}

// IsDecoration проверяет, что блок является декоративной деталью
func IsDecoration(id BlockID) bool {
	props, ok := Get(id)
	return ok && props.Decoration
}

// MaterialOf возвращает класс материала для рендера
func MaterialOf(id BlockID) MaterialClass {
	if id == AirBlockID {
		return MaterialNone
	}
	props, ok := Get(id)
	if !ok {
		return MaterialSolid
	}
	return props.Material
}

// ShapeOf возвращает форму блока; для неизвестных ID возвращает единичный куб
func ShapeOf(id BlockID) Shape {
	props, ok := Get(id)
	if !ok || props.Shape.Scale == (mgl32.Vec3{}) {
		return UnitCube
	}
	return props.Shape
}

// ColorOf возвращает базовый цвет блока или нейтральный цвет для неизвестных ID
func ColorOf(id BlockID) mgl32.Vec3 {
	props, ok := Get(id)
	if !ok {
		return NeutralColor
	}
	return props.Color
}

// TintOf применяет к цвету биома оттенок блока.
// Для блоков без смешивания возвращает базовый цвет.
func TintOf(id BlockID, biome mgl32.Vec3) mgl32.Vec3 {
	props, ok := Get(id)
	if !ok || !props.BiomeTinted {
		return ColorOf(id)
	}
	shade := props.TintShade
	if shade == 0 {
		shade = 1
	}
	c := biome.Mul(shade)
	for i := range c {
		c[i] = min(c[i], 1)
	}
	return c
}

// IDs возвращает все зарегистрированные ID по возрастанию
func IDs() []BlockID {
	ids := make([]BlockID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func solid(name, hex string) Properties {
	return Properties{Name: name, Color: MustHex(hex), Material: MaterialSolid, Shape: UnitCube}
}

func decor(name, hex string, scale, offset mgl32.Vec3, yaw, walkThrough bool) Properties {
	return Properties{
		Name:        name,
		Color:       MustHex(hex),
		Material:    MaterialSolid,
		WalkThrough: walkThrough,
		Decoration:  true,
		Shape:       Shape{Scale: scale, Offset: offset, RandomYaw: yaw},
	}
}

func init() {
	Register(AirBlockID, Properties{Name: "air", Material: MaterialNone})

	grass := solid("grass", "#4ade80")
	grass.BiomeTinted = true
	Register(GrassBlockID, grass)
	Register(DirtBlockID, solid("dirt", "#855e42"))
	Register(StoneBlockID, solid("stone", "#94a3b8"))
	Register(SandBlockID, solid("sand", "#fde047"))
	Register(WaterBlockID, Properties{Name: "water", Color: MustHex("#3b82f6"), Material: MaterialLiquid, Shape: UnitCube})
	Register(SnowBlockID, solid("snow", "#f8fafc"))
	Register(PathBlockID, solid("path", "#d6d3d1"))

	Register(CobblestoneBlockID, solid("cobblestone", "#78716c"))
	Register(StoneBrickBlockID, solid("stone_brick", "#a8a29e"))
	Register(PlasterBlockID, solid("plaster", "#f5f5f4"))
	Register(GlassBlockID, solid("glass", "#bae6fd"))
	Register(WoodLogBlockID, solid("wood_log", "#451a03"))
	Register(WoodPlankBlockID, solid("wood_plank", "#b45309"))
	Register(DarkPlankBlockID, solid("dark_plank", "#57340f"))
	Register(RoofRedBlockID, solid("roof_red", "#7f1d1d"))
	Register(RoofBlueBlockID, solid("roof_blue", "#1e3a8a"))
	Register(ObsidianBlockID, solid("obsidian", "#1e1b4b"))
	Register(MarbleBlockID, solid("marble", "#f1f5f9"))
	Register(GoldBlockID, solid("gold_block", "#facc15"))
	Register(IronBlockID, solid("iron_block", "#9ca3af"))
	Register(FactoryBrickBlockID, solid("factory_brick", "#57534e"))
	Register(RedBrickBlockID, solid("red_brick", "#b91c1c"))
	farmland := solid("farmland", "#5b3a1e")
	farmland.Shape = Shape{Scale: mgl32.Vec3{1, 0.9375, 1}, Offset: mgl32.Vec3{0, -0.03125, 0}}
	Register(FarmlandBlockID, farmland)
	leaves := solid("leaves", "#166534")
	leaves.BiomeTinted = true
	leaves.TintShade = 0.55
	Register(LeavesBlockID, leaves)

	tallGrass := decor("tall_grass", "#4ade80", mgl32.Vec3{0.8, 0.5, 0.8}, mgl32.Vec3{0, -0.25, 0}, true, true)
	tallGrass.BiomeTinted = true
	tallGrass.TintShade = 1.1
	Register(TallGrassBlockID, tallGrass)
	Register(FlowerYellowBlockID, decor("flower_yellow", "#facc15", mgl32.Vec3{0.3, 0.4, 0.3}, mgl32.Vec3{0, -0.3, 0}, true, true))
	Register(FlowerRedBlockID, decor("flower_red", "#ef4444", mgl32.Vec3{0.3, 0.4, 0.3}, mgl32.Vec3{0, -0.3, 0}, true, true))
	Register(SmallRockBlockID, decor("small_rock", "#78716c", mgl32.Vec3{0.5, 0.25, 0.5}, mgl32.Vec3{0, -0.375, 0}, true, false))
	Register(WheatBlockID, decor("wheat", "#eab308", mgl32.Vec3{0.9, 0.6, 0.9}, mgl32.Vec3{0, -0.2, 0}, false, true))
	sugarcane := decor("sugarcane", "#86efac", mgl32.Vec3{0.35, 1, 0.35}, mgl32.Vec3{}, true, true)
	sugarcane.FloatsOnWater = true
	Register(SugarcaneBlockID, sugarcane)
	lily := decor("lily_pad", "#15803d", mgl32.Vec3{0.8, 0.05, 0.8}, mgl32.Vec3{0, 0.45, 0}, true, true)
	lily.FloatsOnWater = true
	Register(LilyPadBlockID, lily)
	Register(WoodFenceBlockID, decor("wood_fence", "#78350f", mgl32.Vec3{0.25, 1, 0.25}, mgl32.Vec3{}, false, false))
	Register(LanternBlockID, decor("lantern", "#fbbf24", mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{}, false, false))
	slime := solid("slime_block", "#38bdf8")
	slime.Decoration = true
	Register(SlimeBlockID, slime)
	Register(RedAppleBlockID, decor("red_apple", "#dc2626", mgl32.Vec3{0.35, 0.35, 0.35}, mgl32.Vec3{}, true, false))
}
