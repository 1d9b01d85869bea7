package zone

import (
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// CastleName имя королевства на северной дороге
const CastleName = "Kingdom of Bosse"

const (
	castleHeight = 30 // Поднятая платформа замковой горы
	castleHalf   = 30
	castleWall   = 20
	spireTop     = 35
	spireHalf    = 8
	castleGate   = 4
)

// Castle строит мраморный замок с золотыми шпилями на высокой платформе
type Castle struct {
	wild *Wilderness
	area disc
}

// NewCastle создаёт королевство в трёх милях к северу
func NewCastle(wild *Wilderness, p Params) *Castle {
	return &Castle{
		wild: wild,
		area: disc{cz: p.miles(-3), radius: 700, blendFrom: 600},
	}
}

func (c *Castle) Name() string { return CastleName }

func (c *Castle) IsInside(x, z int) bool { return c.area.inside(x, z) }

func (c *Castle) Center() mgl64.Vec2 { return c.area.center() }

func (c *Castle) Foliage() mgl32.Vec3 { return block.MustHex("#a3e635") }

func (c *Castle) GetAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:   block.MustHex("#fff176"),
		SkyTint:    block.MustHex("#fff9c4"),
		FogDensity: 0.01,
	}
}

// GetHeight: платформа с пологим склоном к внешнему рельефу
func (c *Castle) GetHeight(x, z int, baseHeight float64) float64 {
	dist := c.area.dist(x, z)
	if dist <= c.area.blendFrom {
		return castleHeight
	}
	return c.area.blend(dist, castleHeight, c.wild.GetHeight(x, z, baseHeight))
}

// GetBlock: стены и шпили замка, дорога и мраморная площадка вокруг
func (c *Castle) GetBlock(x, y, z, groundH int, lod LOD) block.BlockID {
	ly := y - groundH
	if ly < 0 {
		return block.AirBlockID
	}
	dx, dz := c.area.offset(x, z)
	inCastle := abs(dx) < castleHalf && abs(dz) < castleHalf

	if ly == 0 {
		if !inCastle && c.wild.IsRoad(x, z) {
			return block.CobblestoneBlockID
		}
		return block.MarbleBlockID
	}
	if !inCastle {
		return block.AirBlockID
	}

	if ly < castleWall {
		if abs(dx) > castleHalf-2 || abs(dz) > castleHalf-2 {
			// Ворота смотрят на столицу
			if dz > 0 && abs(dx) < castleGate && ly < 6 {
				return block.AirBlockID
			}
			return block.MarbleBlockID
		}
		return block.AirBlockID
	}
	if ly < spireTop && abs(dx) < spireHalf && abs(dz) < spireHalf {
		return block.GoldBlockID
	}
	return block.AirBlockID
}
