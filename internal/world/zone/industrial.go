package zone

import (
	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/vec"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/roads"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// IndustrialName имя промышленного района на западе
const IndustrialName = "Amestris District"

const (
	industrialHeight  = 6
	industrialRoadMap = 1000
	industrialBlock   = 36
	industrialStreet  = 5
)

// Тип заводского комплекса выбирается по хешу квартала
const (
	warehouseChance = 0.4 // Низкий склад на весь квартал
	chimneyChance   = 0.7 // Труба посреди цеха
)

// Industrial строит район заводов на ортогональной сетке улиц с переулками
type Industrial struct {
	field *noise.Field
	wild  *Wilderness
	area  disc
	roads *roads.RoadMap
}

// NewIndustrial создаёт район в трёх милях к западу
func NewIndustrial(field *noise.Field, wild *Wilderness, p Params) *Industrial {
	return &Industrial{
		field: field,
		wild:  wild,
		area:  disc{cx: p.miles(-3), radius: 700, blendFrom: 600},
		roads: roads.GenerateIndustrialGrid(field, industrialRoadMap, industrialBlock, industrialStreet),
	}
}

func (d *Industrial) Name() string { return IndustrialName }

func (d *Industrial) IsInside(x, z int) bool { return d.area.inside(x, z) }

func (d *Industrial) Center() mgl64.Vec2 { return d.area.center() }

func (d *Industrial) Foliage() mgl32.Vec3 { return block.MustHex("#8a9a5b") }

func (d *Industrial) GetAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:   block.MustHex("#90a4ae"),
		SkyTint:    block.MustHex("#cfd8dc"),
		FogDensity: 0.035,
	}
}

func (d *Industrial) GetHeight(x, z int, baseHeight float64) float64 {
	dist := d.area.dist(x, z)
	if dist <= d.area.blendFrom {
		return industrialHeight
	}
	return d.area.blend(dist, industrialHeight, d.wild.GetHeight(x, z, baseHeight))
}

// GetBlock: мостовая улиц, каменное покрытие кварталов и заводские комплексы
func (d *Industrial) GetBlock(x, y, z, groundH int, lod LOD) block.BlockID {
	ly := y - groundH
	if ly < 0 {
		return block.AirBlockID
	}
	dx, dz := d.area.offset(x, z)
	road := d.roads.IsRoad(dx, dz)

	if ly == 0 {
		if road {
			return block.CobblestoneBlockID
		}
		return block.StoneBlockID
	}
	if road {
		return block.AirBlockID
	}

	kind := d.field.Hash(vec.FloorDiv(dx, industrialBlock), vec.FloorDiv(dz, industrialBlock))
	localX := abs(dx) % industrialBlock
	localZ := abs(dz) % industrialBlock

	switch {
	case kind < warehouseChance:
		if ly < 8 {
			return block.FactoryBrickBlockID
		}
		if ly == 8 {
			return block.ObsidianBlockID
		}
	case kind < chimneyChance:
		const c = industrialBlock / 2
		if abs(localX-c) < 4 && abs(localZ-c) < 4 {
			if ly < 25 {
				return block.RedBrickBlockID
			}
			if ly == 25 {
				return block.CobblestoneBlockID
			}
		}
		if ly < 6 {
			return block.FactoryBrickBlockID
		}
	default:
		// Открытый двор с железной оградой
		edge := localX < 2 || localX > industrialBlock-2 || localZ < 2 || localZ > industrialBlock-2
		if ly == 1 && edge {
			return block.IronBlockID
		}
	}
	return block.AirBlockID
}
