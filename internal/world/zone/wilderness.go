package zone

import (
	"math"

	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/vec"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
)

// WildernessName имя зоны по умолчанию
const WildernessName = "Wilderness"

// Макро-биомы дикой местности (в милях)
const (
	mountainStartMiles = 20.0
	coastStartMiles    = -3.5
	forestStartMiles   = 8.0
	biomeRamp          = 500.0 // Ширина нарастания биома в блоках
)

// Сквозные дороги (в милях)
const (
	highwayHalfLengthMiles = 9.6 // Восток-запад
	southRoadEndMiles      = 26.0
	northRoadEndMiles      = -12.0
	roadBaseWidth          = 3.5
	roadWidthJitter        = 2.5
	cobbleRoadMiles        = 1.2 // Мощёная часть вокруг столицы
	pathRoadMiles          = 3.0 // Дальше утоптанная тропа, затем грунт
)

// Растительность
const (
	treeCell       = 5
	treeTrunk      = 5
	sparseTrees    = 0.99
	forestTrees    = 0.85
	flowerChance   = 0.98
	rockChance     = 0.96
	snowLine       = 60
	bareStoneLine  = 45
	roadFlattening = 0.2 // Доля естественной высоты в высоте дороги
	roadBedHeight  = 4.8
)

// Wilderness служит зоной по умолчанию с макро-биомами, сквозными дорогами и природой.
// Её высота колонки служит внешней высотой, к которой сглаживаются края остальных зон.
type Wilderness struct {
	field  *noise.Field
	params Params
}

// NewWilderness создаёт зону дикой местности
func NewWilderness(field *noise.Field, p Params) *Wilderness {
	return &Wilderness{field: field, params: p}
}

// Name возвращает имя зоны
func (w *Wilderness) Name() string { return WildernessName }

// IsInside всегда истинно
func (w *Wilderness) IsInside(x, z int) bool { return true }

// GetAtmosphere возвращает стандартное голубое небо
func (w *Wilderness) GetAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:   block.MustHex("#87ceeb"),
		SkyTint:    block.MustHex("#ffffff"),
		FogDensity: 0.015,
	}
}

// Foliage возвращает цвет растительности обычной дикой местности
func (w *Wilderness) Foliage() mgl32.Vec3 {
	return block.MustHex("#4ade80")
}

// GetHeight применяет макро-биомы и выравнивает полотно сквозных дорог
func (w *Wilderness) GetHeight(x, z int, baseHeight float64) float64 {
	h := w.naturalHeight(x, z, baseHeight)
	if w.IsRoad(x, z) {
		return RoadHeight(h)
	}
	return h
}

// RoadHeight возвращает высоту полотна дороги над естественным рельефом h
func RoadHeight(h float64) float64 {
	return h*roadFlattening + roadBedHeight
}

func (w *Wilderness) naturalHeight(x, z int, h float64) float64 {
	fx, fz := float64(x), float64(z)

	mountainStart := mountainStartMiles * w.params.Mile
	if fx > mountainStart {
		factor := (fx - mountainStart) / biomeRamp
		h += w.field.OctaveNoise(fx*0.01, fz*0.01, 4, 0.5) * 80 * math.Min(factor, 1)
		h += math.Max(0, factor*50)
	}

	coastStart := coastStartMiles * w.params.Mile
	if fx < coastStart {
		factor := (coastStart - fx) / biomeRamp
		h -= factor * 20
	}

	if fz > forestStartMiles*w.params.Mile {
		h += w.field.Noise2D(fx*0.02, fz*0.02) * 5
	}
	return h
}

// IsRoad проверяет, лежит ли колонка на сквозной дороге.
// Ширина дороги слегка дрожит по шуму.
func (w *Wilderness) IsRoad(x, z int) bool {
	fx, fz := float64(x), float64(z)
	width := roadBaseWidth + w.field.Noise2D(fx*0.15, fz*0.15)*roadWidthJitter
	mile := w.params.Mile

	// Шоссе восток-запад
	if math.Abs(fz) < width && math.Abs(fx) < highwayHalfLengthMiles*mile {
		return true
	}
	// Южная дорога
	if math.Abs(fx) < width && fz > 0 && fz < southRoadEndMiles*mile {
		return true
	}
	// Северная дорога к замку
	if math.Abs(fx) < width && fz > northRoadEndMiles*mile && fz < 0 {
		return true
	}
	return false
}

// roadSurface выбирает покрытие дороги по удалённости от столицы
func (w *Wilderness) roadSurface(x, z int) block.BlockID {
	dist := math.Hypot(float64(x), float64(z))
	switch {
	case dist < cobbleRoadMiles*w.params.Mile:
		return block.CobblestoneBlockID
	case dist < pathRoadMiles*w.params.Mile:
		return block.PathBlockID
	default:
		return block.DirtBlockID
	}
}

// naturalSurface выбирает покрытие по высоте колонки
func (w *Wilderness) naturalSurface(groundH int) block.BlockID {
	switch {
	case groundH > snowLine:
		return block.SnowBlockID
	case groundH > bareStoneLine:
		return block.StoneBlockID
	case groundH < w.params.WaterLevel+1:
		return block.SandBlockID
	default:
		return block.GrassBlockID
	}
}

// GetBlock возвращает дорожное покрытие, природную поверхность или растительность
func (w *Wilderness) GetBlock(x, y, z, groundH int, lod LOD) block.BlockID {
	switch {
	case y < groundH:
		return block.AirBlockID
	case y == groundH:
		if w.IsRoad(x, z) {
			return w.roadSurface(x, z)
		}
		return w.naturalSurface(groundH)
	}

	if w.IsRoad(x, z) {
		return block.AirBlockID
	}
	return w.nature(x, y, z, groundH, lod)
}

func (w *Wilderness) nature(x, y, z, groundH int, lod LOD) block.BlockID {
	if groundH <= w.params.WaterLevel {
		return block.AirBlockID
	}
	ly := y - groundH

	if id, ok := w.tree(x, z, ly); ok {
		return id
	}

	if ly == 1 && lod == LodHigh {
		n := w.field.Hash(x, z)
		if n > flowerChance {
			return block.FlowerYellowBlockID
		}
		if n > rockChance {
			return block.SmallRockBlockID
		}
	}
	return block.AirBlockID
}

// tree проверяет дерево в центре ячейки 5x5, в которую попадает колонка
func (w *Wilderness) tree(x, z, ly int) (block.BlockID, bool) {
	cellX, cellZ := vec.FloorDiv(x, treeCell), vec.FloorDiv(z, treeCell)
	tx, tz := cellX*treeCell+treeCell/2, cellZ*treeCell+treeCell/2

	sparsity := sparseTrees
	if float64(tz) > forestStartMiles*w.params.Mile {
		sparsity = forestTrees
	}
	n := w.field.Noise2D(float64(cellX*treeCell)*0.1, float64(cellZ*treeCell)*0.1)
	if (n+1)/2 <= sparsity || w.IsRoad(tx, tz) {
		return block.AirBlockID, false
	}

	dx, dz := x-tx, z-tz
	if dx == 0 && dz == 0 && ly >= 1 && ly <= treeTrunk {
		return block.WoodLogBlockID, true
	}
	if ly > 3 && ly <= treeTrunk+2 {
		radius := 2.0
		if ly > treeTrunk {
			radius = 1.0
		}
		if math.Hypot(float64(dx), float64(dz)) <= radius {
			return block.LeavesBlockID, true
		}
	}
	return block.AirBlockID, false
}
