package zone

import (
	"math"

	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// LOD задаёт уровень детализации при генерации блоков
type LOD uint8

const (
	LodLow  LOD = iota // Без декоративных деталей
	LodHigh            // Полная детализация
)

// String возвращает строковое представление уровня детализации
func (l LOD) String() string {
	if l == LodHigh {
		return "high"
	}
	return "low"
}

// Zone описывает политику генерации для одного региона мира.
// Все реализации неизменяемы после создания и безопасны для конкурентного чтения.
type Zone interface {
	// Name возвращает стабильное имя зоны
	Name() string
	// IsInside проверяет, принадлежит ли колонка зоне
	IsInside(x, z int) bool
	// GetHeight возвращает высоту поверхности колонки по базовой высоте мира
	GetHeight(x, z int, baseHeight float64) float64
	// GetBlock возвращает блок на уровне поверхности или выше.
	// Чистая функция своих аргументов.
	GetBlock(x, y, z, groundH int, lod LOD) block.BlockID
	// GetAtmosphere возвращает постоянные настройки атмосферы зоны
	GetAtmosphere() Atmosphere
}

// Landmark представляет зону с именованным центром и характерным цветом растительности.
// Используется для смешивания цветов биомов.
type Landmark interface {
	Zone
	Center() mgl64.Vec2
	Foliage() mgl32.Vec3
}

// Params содержит общие константы мира, нужные зонам
type Params struct {
	Mile       float64 // Единица расстояния для размещения регионов
	WaterLevel int     // Глобальный уровень воды
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{Mile: 500, WaterLevel: 3}
}

// miles переводит мили в целые блоки
func (p Params) miles(m float64) int {
	return int(math.Round(m * p.Mile))
}

// disc описывает круглую зону с полосой плавного перехода к внешнему рельефу
type disc struct {
	cx, cz    int
	radius    float64
	blendFrom float64 // Расстояние, с которого начинается смешивание
}

func (d disc) offset(x, z int) (int, int) {
	return x - d.cx, z - d.cz
}

func (d disc) dist(x, z int) float64 {
	dx, dz := d.offset(x, z)
	return math.Hypot(float64(dx), float64(dz))
}

func (d disc) inside(x, z int) bool {
	return d.dist(x, z) < d.radius
}

func (d disc) center() mgl64.Vec2 {
	return mgl64.Vec2{float64(d.cx), float64(d.cz)}
}

// blend линейно переводит высоту inner в outer на полосе [blendFrom, radius]
func (d disc) blend(dist, inner, outer float64) float64 {
	if dist <= d.blendFrom || d.radius <= d.blendFrom {
		return inner
	}
	t := (dist - d.blendFrom) / (d.radius - d.blendFrom)
	if t > 1 {
		t = 1
	}
	return inner*(1-t) + outer*t
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
