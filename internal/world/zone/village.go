package zone

import (
	"math"

	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/vec"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// VillageName имя деревни к югу от столицы
const VillageName = "Greensom Village"

const (
	villageCenterZ  = 300
	villageHalfSize = 70
	villageEdgeBand = 20
	villageHeight   = 7

	streamBed     = 3   // Высота русла
	streamWidth   = 3.5 // Полуширина русла
	streamBanks   = 6.0 // Край берегов
	streamReach   = 4.5 // Зона воды и прибрежной растительности
	streamSurface = 6   // Уровень воды в ручье
	bridgeDeck    = 7
	lampSpacing   = 15

	villageTreeGrid = 9
	villageTreeH    = 5
)

// villageHouse хранит положение дома относительно центра деревни
type villageHouse struct {
	x, z int
}

var villageHouses = []villageHouse{
	{x: -18, z: -18},
	{x: 18, z: -18},
	{x: -18, z: 18},
	{x: 18, z: 18},
	{x: -25, z: 0},
}

// Village строит деревню с ручьём, мостом, колодцем, домами, фермой и садом
type Village struct {
	field *noise.Field
	wild  *Wilderness
}

// NewVillage создаёт деревню
func NewVillage(field *noise.Field, wild *Wilderness) *Village {
	return &Village{field: field, wild: wild}
}

func (v *Village) Name() string { return VillageName }

// IsInside проверяет квадратную границу
func (v *Village) IsInside(x, z int) bool {
	return abs(x) < villageHalfSize && abs(z-villageCenterZ) < villageHalfSize
}

func (v *Village) Center() mgl64.Vec2 { return mgl64.Vec2{0, villageCenterZ} }

func (v *Village) Foliage() mgl32.Vec3 { return block.MustHex("#65d46e") }

func (v *Village) GetAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:   block.MustHex("#87ceeb"),
		SkyTint:    block.MustHex("#ffffff"),
		FogDensity: 0.015,
		FixedTime:  fixedTime(0.25), // Всегда полдень
	}
}

// streamDistance возвращает расстояние до оси извилистого ручья, текущего с запада на восток
func (v *Village) streamDistance(x, z int) float64 {
	fx := float64(x)
	path := 25 + math.Sin(fx*0.05)*10 + math.Cos(fx*0.02)*5
	return math.Abs(float64(z-villageCenterZ) - path)
}

// GetHeight: плоская деревня, русло ручья и сглаживание квадратного края
func (v *Village) GetHeight(x, z int, baseHeight float64) float64 {
	dx, dz := x, z-villageCenterZ
	dist := math.Hypot(float64(dx), float64(dz))

	h := float64(villageHeight)
	stream := v.streamDistance(x, z)
	switch {
	case stream < streamWidth:
		h = streamBed
	case stream < streamBanks:
		h = streamBed + 1 + (stream - streamWidth)
	case abs(dx) < 4:
		// Дорога ровная
	case dist > 50:
		h = villageHeight + (dist-50)*0.2
	}

	toEdge := villageHalfSize - math.Max(math.Abs(float64(dx)), math.Abs(float64(dz)))
	if toEdge >= villageEdgeBand {
		return h
	}
	t := toEdge / villageEdgeBand
	if t < 0 {
		t = 0
	}
	return h*t + v.wild.GetHeight(x, z, baseHeight)*(1-t)
}

// GetBlock: ручей, дорога, центр, дома, ферма, сад, растительность
func (v *Village) GetBlock(x, y, z, groundH int, lod LOD) block.BlockID {
	if y < groundH {
		return block.AirBlockID
	}
	dx, dz := x, z-villageCenterZ
	ly := y - groundH

	if stream := v.streamDistance(x, z); stream < streamReach {
		return v.stream(x, y, z, groundH, stream, lod)
	}

	if abs(dx) < 3 {
		return v.mainRoad(dx, dz, ly, lod)
	}

	if abs(dx) < 4 && abs(dz) < 4 {
		return v.well(dx, dz, ly)
	}

	for _, h := range villageHouses {
		if id, ok := v.house(h, dx-h.x, dz-h.z, ly); ok {
			return id
		}
	}

	if dx < -25 && dx > -55 && abs(dz) < 20 {
		return v.farm(dx, ly)
	}

	if ly > 0 {
		if id, ok := v.tree(x, z, ly, lod); ok {
			return id
		}
	}

	if ly == 0 {
		return block.GrassBlockID
	}
	if ly == 1 && lod == LodHigh {
		n := v.field.Hash(x, z)
		switch {
		case n > 0.95:
			return block.TallGrassBlockID
		case n > 0.92:
			return block.FlowerYellowBlockID
		case n > 0.90:
			return block.SmallRockBlockID
		}
	}
	return block.AirBlockID
}

func (v *Village) stream(x, y, z, groundH int, stream float64, lod LOD) block.BlockID {
	// Мост через ручей на главной дороге
	if abs(x) < 3 {
		switch {
		case y == bridgeDeck:
			return block.WoodPlankBlockID
		case abs(x) == 2 && y < bridgeDeck:
			return block.WoodLogBlockID
		case y < bridgeDeck && y > groundH:
			return block.AirBlockID
		}
	}

	if y == groundH {
		return block.SandBlockID
	}
	if y <= streamSurface {
		if lod == LodHigh {
			// Тростник и кувшинки стоят в воде, вода под ними дорисовывается
			n := v.field.Hash(x, z)
			if y == groundH+1 && stream > streamWidth-0.5 && n > 0.85 {
				return block.SugarcaneBlockID
			}
			if y == streamSurface && n > 0.95 {
				return block.LilyPadBlockID
			}
		}
		return block.WaterBlockID
	}
	return block.AirBlockID
}

// mainRoad строит дорогу к столице с фонарями по северной части
func (v *Village) mainRoad(dx, dz, ly int, lod LOD) block.BlockID {
	if ly == 0 {
		if dz < -30 {
			return block.CobblestoneBlockID
		}
		return block.PathBlockID
	}
	if lod == LodHigh && dz < 0 && abs(dz)%lampSpacing == 0 && abs(dx) == 2 {
		switch {
		case ly <= 3:
			return block.WoodFenceBlockID
		case ly == 4:
			return block.LanternBlockID
		}
	}
	return block.AirBlockID
}

func (v *Village) well(dx, dz, ly int) block.BlockID {
	if ly == 0 {
		return block.CobblestoneBlockID
	}
	d := math.Hypot(float64(dx), float64(dz))
	if d >= 2.5 {
		return block.AirBlockID
	}
	switch {
	case ly == 1 && d > 1.5:
		return block.StoneBrickBlockID
	case ly == 1:
		return block.WaterBlockID
	case ly < 4:
		if abs(dx) == 2 && dz == 0 {
			return block.WoodFenceBlockID
		}
		return block.AirBlockID
	case ly == 4:
		return block.RoofRedBlockID
	}
	return block.AirBlockID
}

// house строит деревянный дом с крыльцом, трубой и дверью к главной дороге
func (v *Village) house(h villageHouse, hx, hz, ly int) (block.BlockID, bool) {
	const w, d = 4, 4
	ahx, ahz := abs(hx), abs(hz)
	if ahx > w+1 || ahz > d+1 {
		return block.AirBlockID, false
	}
	if ly == 0 {
		return block.CobblestoneBlockID, true
	}

	if ahx <= w && ahz <= d {
		if ly <= 4 {
			ring := ahx == w || ahz == d
			doorX := w
			if h.x > 0 {
				doorX = -w
			}
			switch {
			case ahx == w && ahz == d:
				return block.WoodLogBlockID, true
			case ly < 3 && hz == 0 && hx == doorX:
				return block.AirBlockID, true
			case ring && ly == 2 && (ahx == 2 || ahz == 2):
				return block.GlassBlockID, true
			case ring && ly == 1 && (ahx == 2 || ahz == 2):
				// Ящик с землёй под окном
				return block.DirtBlockID, true
			case ring:
				return block.WoodPlankBlockID, true
			}
			return block.AirBlockID, true
		}
		if ly < 9 && hx == 2 && hz == 2 {
			return block.CobblestoneBlockID, true
		}
		roof := ly - 4
		if ahx <= w-roof+1 && ahz <= d-roof+1 {
			return block.RoofRedBlockID, true
		}
	}

	// Крыльцо со стороны, обращённой от центра
	if ahz == d+1 && h.z*hz < 0 && ahx <= w {
		switch ly {
		case 1, 3:
			return block.WoodFenceBlockID, true
		case 4:
			return block.WoodPlankBlockID, true
		}
	}
	return block.AirBlockID, false
}

// farm строит пшеничное поле с оросительными канавками
func (v *Village) farm(dx, ly int) block.BlockID {
	irrigation := abs(dx)%3 == 0
	switch {
	case ly == 0 && irrigation:
		return block.WaterBlockID
	case ly == 0:
		return block.FarmlandBlockID
	case ly == 1 && !irrigation:
		return block.WheatBlockID
	}
	return block.AirBlockID
}

// tree ставит яблони в центрах ячеек 9x9 вдали от ручья, дороги и фермы
func (v *Village) tree(x, z, ly int, lod LOD) (block.BlockID, bool) {
	tx := vec.FloorDiv(x, villageTreeGrid)*villageTreeGrid + villageTreeGrid/2
	tz := vec.FloorDiv(z, villageTreeGrid)*villageTreeGrid + villageTreeGrid/2
	tdx, tdz := tx, tz-villageCenterZ

	if v.streamDistance(tx, tz) <= streamBanks || abs(tdx) <= 6 || abs(tdz) <= 6 {
		return block.AirBlockID, false
	}
	if tdx < -20 && tdx > -60 && abs(tdz) < 25 {
		return block.AirBlockID, false
	}
	if v.field.Noise2D(float64(tx)*0.1, float64(tz)*0.1) <= 0.5 {
		return block.AirBlockID, false
	}

	trunk := math.Hypot(float64(x-tx), float64(z-tz))
	if ly <= villageTreeH && trunk < 0.5 {
		return block.WoodLogBlockID, true
	}
	if ly >= 3 && ly <= villageTreeH+2 {
		radius := 2.5
		if ly > villageTreeH {
			radius = 1.5
		}
		if trunk <= radius {
			if lod == LodHigh && ly == 4 && (x+z)%3 == 0 {
				return block.RedAppleBlockID, true
			}
			return block.LeavesBlockID, true
		}
	}
	return block.AirBlockID, false
}
