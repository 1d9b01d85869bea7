package zone

import (
	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/vec"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// CapitalName имя стартового города
const CapitalName = "Town of Beginnings"

const (
	capitalHeight = 6

	towerRadius  = 25
	towerHeight  = 60
	plazaRadius  = 40
	wallInner    = 83
	wallOuter    = 87
	wallHeight   = 10
	innerRoadEnd = 150

	plotGrid     = 16
	plotOffset   = 500
	plotPresence = 0.4
	houseInner   = 40
	houseOuter   = 80
	roadClear    = 8
)

// Capital описывает стартовый город с башней, площадью, стеной с воротами и кварталами домов
type Capital struct {
	field *noise.Field
	wild  *Wilderness
	area  disc
}

// NewCapital создаёт столицу в начале координат
func NewCapital(field *noise.Field, wild *Wilderness) *Capital {
	return &Capital{
		field: field,
		wild:  wild,
		area:  disc{radius: 200, blendFrom: 150},
	}
}

func (c *Capital) Name() string { return CapitalName }

func (c *Capital) IsInside(x, z int) bool { return c.area.inside(x, z) }

func (c *Capital) Center() mgl64.Vec2 { return c.area.center() }

func (c *Capital) Foliage() mgl32.Vec3 { return block.MustHex("#4ade80") }

func (c *Capital) GetAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:   block.MustHex("#87ceeb"),
		SkyTint:    block.MustHex("#ffffff"),
		FogDensity: 0.02,
	}
}

// GetHeight держит город плоским и сглаживает край к внешнему рельефу
func (c *Capital) GetHeight(x, z int, baseHeight float64) float64 {
	dist := c.area.dist(x, z)
	if dist <= c.area.blendFrom {
		return capitalHeight
	}
	return c.area.blend(dist, capitalHeight, c.wild.GetHeight(x, z, baseHeight))
}

// GetBlock: башня и стена, затем дороги, затем участки с домами
func (c *Capital) GetBlock(x, y, z, groundH int, lod LOD) block.BlockID {
	ly := y - groundH
	if ly < 0 {
		return block.AirBlockID
	}
	dist := c.area.dist(x, z)
	if ly == 0 {
		return c.floor(x, z, dist)
	}

	if dist < towerRadius {
		return c.tower(x, y, z, ly, dist)
	}
	if dist > wallInner && dist < wallOuter {
		return c.wall(x, z, ly, dist, lod)
	}
	if dist > houseInner && dist < houseOuter && abs(x) > roadClear && abs(z) > roadClear {
		if id, ok := c.house(x, z, ly); ok {
			return id
		}
	}
	if dist > wallOuter && ly == 1 && lod == LodHigh && !c.wild.IsRoad(x, z) && c.field.Hash(x, z) > 0.93 {
		return block.TallGrassBlockID
	}
	return block.AirBlockID
}

func (c *Capital) floor(x, z int, dist float64) block.BlockID {
	ax, az := abs(x), abs(z)
	switch {
	case dist < towerRadius:
		return block.ObsidianBlockID
	case dist < plazaRadius:
		return block.CobblestoneBlockID
	case z > 0 && ax < 6:
		// Южная дорога выходит к деревне
		return block.CobblestoneBlockID
	case (ax < 6 || az < 6) && dist < innerRoadEnd:
		return block.CobblestoneBlockID
	case dist < wallOuter-2:
		return block.StoneBrickBlockID
	case c.wild.IsRoad(x, z):
		return block.CobblestoneBlockID
	}
	return block.GrassBlockID
}

// tower строит Железное подземелье в центре города
func (c *Capital) tower(x, y, z, ly int, dist float64) block.BlockID {
	if z > 20 && abs(x) < 4 && ly < 8 {
		return block.AirBlockID
	}
	if dist > towerRadius-3 && ly < towerHeight {
		if y%10 == 0 || abs(x)%4 == 0 {
			return block.ObsidianBlockID
		}
		return block.StoneBrickBlockID
	}
	return block.AirBlockID
}

func (c *Capital) wall(x, z, ly int, dist float64, lod LOD) block.BlockID {
	ax := abs(x)

	// Ворота на юге
	if z > 0 && ax < 6 {
		switch {
		case ly > 6 && ly <= 8:
			return block.StoneBrickBlockID
		case ly == 6 && (ax == 4 || ax == 5) && lod == LodHigh:
			return block.LanternBlockID
		}
		return block.AirBlockID
	}

	if ly < wallHeight {
		return block.StoneBrickBlockID
	}
	// Надвратные башни
	if z > 0 && ax > 6 && ax < 12 && dist > 84 && dist < 86 && ly < wallHeight+5 {
		return block.StoneBrickBlockID
	}
	if ly == wallHeight && (ax+abs(z))%2 == 0 {
		return block.StoneBrickBlockID
	}
	return block.AirBlockID
}

// house ищет дом на участке сетки; участок есть, если его хеш не ниже порога
func (c *Capital) house(x, z, ly int) (block.BlockID, bool) {
	plotX := vec.FloorDiv(x+plotOffset, plotGrid)
	plotZ := vec.FloorDiv(z+plotOffset, plotGrid)
	seed := c.field.Hash(plotX, plotZ)
	if seed < plotPresence {
		return block.AirBlockID, false
	}

	centerX := plotX*plotGrid - plotOffset + plotGrid/2
	centerZ := plotZ*plotGrid - plotOffset + plotGrid/2
	return HouseFromSeed(seed, MedievalStyle).Block(x-centerX, ly, z-centerZ)
}
