package zone

import (
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// HangarName имя королевства с ангарами
const HangarName = "Kingdom of Fremmevilla"

const (
	hangarHeight    = 5
	hangarRingInner = 140
	hangarRingOuter = 150
	hangarRingTop   = 30
	hangarBeamStep  = 20
	hangarRoof      = 25
	hangarGate      = 8
)

// Hangar строит комплекс ангаров за кольцевой стеной со стальными фермами
type Hangar struct {
	wild *Wilderness
	area disc
}

// NewHangar создаёт комплекс к юго-востоку от столицы
func NewHangar(wild *Wilderness, p Params) *Hangar {
	return &Hangar{
		wild: wild,
		area: disc{cx: p.miles(3.2), cz: p.miles(-3.2), radius: 250, blendFrom: 200},
	}
}

func (h *Hangar) Name() string { return HangarName }

func (h *Hangar) IsInside(x, z int) bool { return h.area.inside(x, z) }

func (h *Hangar) Center() mgl64.Vec2 { return h.area.center() }

func (h *Hangar) Foliage() mgl32.Vec3 { return block.MustHex("#6ee7b7") }

func (h *Hangar) GetAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:   block.MustHex("#e3f2fd"),
		SkyTint:    block.MustHex("#bbdefb"),
		FogDensity: 0.015,
	}
}

func (h *Hangar) GetHeight(x, z int, baseHeight float64) float64 {
	dist := h.area.dist(x, z)
	if dist <= h.area.blendFrom {
		return hangarHeight
	}
	return h.area.blend(dist, hangarHeight, h.wild.GetHeight(x, z, baseHeight))
}

func (h *Hangar) GetBlock(x, y, z, groundH int, lod LOD) block.BlockID {
	ly := y - groundH
	if ly < 0 {
		return block.AirBlockID
	}
	dx, dz := h.area.offset(x, z)
	dist := h.area.dist(x, z)

	if dist > hangarRingInner && dist < hangarRingOuter && ly > 0 && ly < hangarRingTop {
		if abs(dx) < hangarGate && dz > 0 && ly < 12 {
			return block.AirBlockID
		}
		return block.StoneBrickBlockID
	}

	if abs(dx) < 50 && abs(dz) < 80 {
		switch {
		case ly == 0:
			return block.StoneBlockID
		case abs(dx)%hangarBeamStep == 0 && ly < hangarRoof:
			return block.IronBlockID
		case ly == hangarRoof:
			return block.IronBlockID
		}
		return block.AirBlockID
	}

	if ly == 0 {
		return block.GrassBlockID
	}
	return block.AirBlockID
}
