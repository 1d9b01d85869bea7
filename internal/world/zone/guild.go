package zone

import (
	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/roads"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// GuildName имя города гильдии
const GuildName = "Magnolia Town"

const (
	guildHeight   = 8
	guildYard     = 30
	guildHall     = 20
	guildHallTop  = 15
	guildFlowers  = 0.93
	guildDoorHalf = 3

	// Стихийные улицы вокруг двора
	guildRoadMap     = 400
	guildRoadWalkers = 9
	guildRoadSteps   = 180
)

// Guild строит город с гильдейским залом посреди деревянного двора
type Guild struct {
	field *noise.Field
	wild  *Wilderness
	area  disc
	roads *roads.RoadMap
}

// NewGuild создаёт город далеко на юго-западе
func NewGuild(field *noise.Field, wild *Wilderness, p Params) *Guild {
	return &Guild{
		field: field,
		wild:  wild,
		area:  disc{cx: p.miles(-6.4), cz: p.miles(6.4), radius: 250, blendFrom: 200},
		roads: roads.GenerateOrganic(field.Seed(), guildRoadMap, guildRoadWalkers, guildRoadSteps),
	}
}

func (g *Guild) Name() string { return GuildName }

func (g *Guild) IsInside(x, z int) bool { return g.area.inside(x, z) }

func (g *Guild) Center() mgl64.Vec2 { return g.area.center() }

func (g *Guild) Foliage() mgl32.Vec3 { return block.MustHex("#86efac") }

func (g *Guild) GetAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:   block.MustHex("#fce4ec"),
		SkyTint:    block.MustHex("#f8bbd0"),
		FogDensity: 0.02,
	}
}

func (g *Guild) GetHeight(x, z int, baseHeight float64) float64 {
	dist := g.area.dist(x, z)
	if dist <= g.area.blendFrom {
		return guildHeight
	}
	return g.area.blend(dist, guildHeight, g.wild.GetHeight(x, z, baseHeight))
}

func (g *Guild) GetBlock(x, y, z, groundH int, lod LOD) block.BlockID {
	ly := y - groundH
	if ly < 0 {
		return block.AirBlockID
	}
	dx, dz := g.area.offset(x, z)
	adx, adz := abs(dx), abs(dz)

	if adx < guildYard && adz < guildYard {
		if ly == 0 {
			return block.WoodPlankBlockID
		}
		if ly < guildHallTop && adx < guildHall && adz < guildHall {
			if adx == guildHall-1 || adz == guildHall-1 {
				if dz == guildHall-1 && adx < guildDoorHalf && ly < 4 {
					return block.AirBlockID
				}
				return block.PlasterBlockID
			}
			return block.AirBlockID
		}
		if ly == guildHallTop && adx < guildHall+1 && adz < guildHall+1 {
			return block.RoofRedBlockID
		}
		return block.AirBlockID
	}

	if g.roads.IsRoad(dx, dz) {
		if ly == 0 {
			return block.PathBlockID
		}
		return block.AirBlockID
	}

	if ly == 0 {
		return block.GrassBlockID
	}
	if ly == 1 && lod == LodHigh && g.field.Hash(x, z) > guildFlowers {
		return block.FlowerRedBlockID
	}
	return block.AirBlockID
}
