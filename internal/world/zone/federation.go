package zone

import (
	"math"

	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/vec"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/roads"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// FederationName имя плановой столицы на востоке
const FederationName = "Federation of Tempest"

const (
	federationHeight     = 8
	federationRoadMap    = 500
	federationBlock      = 24
	federationAvenue     = 10
	federationPlaza      = 35
	federationFountain   = 8
	federationHouseOuter = 250
)

// Federation строит город по плану: площадь с фонтаном, проспекты, колизей и ратушу
type Federation struct {
	field *noise.Field
	wild  *Wilderness
	area  disc
	roads *roads.RoadMap
	house House
}

// NewFederation создаёт город в полутора милях к востоку
func NewFederation(field *noise.Field, wild *Wilderness, p Params) *Federation {
	return &Federation{
		field: field,
		wild:  wild,
		area:  disc{cx: p.miles(1.5), radius: 300, blendFrom: 250},
		roads: roads.GeneratePlannedGrid(federationRoadMap, federationBlock, federationAvenue),
		house: House{HouseStyle: PlannedStyle, HalfW: 7, HalfD: 7, Height: 6, Stories: 1, Roof: block.DarkPlankBlockID},
	}
}

func (f *Federation) Name() string { return FederationName }

func (f *Federation) IsInside(x, z int) bool { return f.area.inside(x, z) }

func (f *Federation) Center() mgl64.Vec2 { return f.area.center() }

func (f *Federation) Foliage() mgl32.Vec3 { return block.MustHex("#34d399") }

func (f *Federation) GetAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:   block.MustHex("#a5d6a7"),
		SkyTint:    block.MustHex("#e8f5e9"),
		FogDensity: 0.02,
	}
}

func (f *Federation) GetHeight(x, z int, baseHeight float64) float64 {
	dist := f.area.dist(x, z)
	if dist <= f.area.blendFrom {
		return federationHeight
	}
	return f.area.blend(dist, federationHeight, f.wild.GetHeight(x, z, baseHeight))
}

// GetBlock: колизей и ратуша, площадь, дороги, дома на сетке кварталов
func (f *Federation) GetBlock(x, y, z, groundH int, lod LOD) block.BlockID {
	ly := y - groundH
	if ly < 0 {
		return block.AirBlockID
	}
	dx, dz := f.area.offset(x, z)
	dist := f.area.dist(x, z)

	if dx > 100 && dx < 180 && abs(dz) < 40 {
		return f.coliseum(dx, dz, ly)
	}
	if abs(dx) < 30 && dz < -60 && dz > -100 {
		return f.townHall(dx, dz, ly)
	}
	if dist < federationPlaza {
		return f.plaza(dx, dz, ly, dist, lod)
	}

	surface := f.roads.Surface(dx, dz)
	if ly == 0 {
		switch surface {
		case roads.SurfaceNone:
			return block.GrassBlockID
		case roads.SurfaceStreet:
			return block.CobblestoneBlockID
		}
		return block.StoneBrickBlockID
	}

	if surface != roads.SurfaceNone || dist >= federationHouseOuter {
		return block.AirBlockID
	}
	// Участки у достопримечательностей не застраиваются
	if dx > 90 && abs(dz) < 50 {
		return block.AirBlockID
	}
	if abs(dx) < 40 && dz < -50 {
		return block.AirBlockID
	}

	plotX := vec.FloorDiv(dx, federationBlock)
	plotZ := vec.FloorDiv(dz, federationBlock)
	localX := dx - (plotX*federationBlock + federationBlock/2)
	localZ := dz - (plotZ*federationBlock + federationBlock/2)
	id, _ := f.house.Block(localX, ly, localZ)
	return id
}

// coliseum строит арену с ямой-входом в подземелье, трибунами и внешней стеной
func (f *Federation) coliseum(dx, dz, ly int) block.BlockID {
	const cx = 140
	d := math.Hypot(float64(dx-cx), float64(dz))

	if ly == 0 {
		if d < 10 {
			return block.ObsidianBlockID
		}
		return block.SandBlockID
	}
	if d > 25 && d < 35 && float64(ly) <= (d-25)*1.5 {
		return block.StoneBrickBlockID
	}
	if d >= 35 && d <= 38 {
		if ly < 15 {
			return block.StoneBrickBlockID
		}
		if ly == 15 && abs(dx)%2 == 0 {
			return block.StoneBrickBlockID
		}
	}
	return block.AirBlockID
}

// townHall строит ратушу с балками через каждые пять рядов и синей крышей
func (f *Federation) townHall(dx, dz, ly int) block.BlockID {
	if ly < 20 {
		if abs(dx) == 29 || dz == -61 || dz == -99 {
			return block.PlasterBlockID
		}
		if ly%5 == 0 {
			return block.WoodLogBlockID
		}
		return block.AirBlockID
	}
	roof := ly - 20
	if abs(dx) <= 30-roof && abs(dz+80) <= 20-roof {
		return block.RoofBlueBlockID
	}
	return block.AirBlockID
}

// plaza строит мощёную площадь с фонтаном и фонарями из слизи
func (f *Federation) plaza(dx, dz, ly int, dist float64, lod LOD) block.BlockID {
	if ly == 0 {
		return block.StoneBrickBlockID
	}
	if dist < federationFountain {
		if ly <= 2 {
			return block.MarbleBlockID
		}
		if ly == 3 && dist < 2 && lod == LodHigh {
			return block.SlimeBlockID
		}
		return block.AirBlockID
	}
	if dist > 30 && dist < 34 && lod == LodHigh && (dx%10 == 0 || dz%10 == 0) {
		switch ly {
		case 1:
			return block.WoodFenceBlockID
		case 2:
			return block.SlimeBlockID
		}
	}
	return block.AirBlockID
}
