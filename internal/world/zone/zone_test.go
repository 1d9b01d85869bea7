package zone

import (
	"math"
	"testing"

	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZones(t *testing.T) (*Wilderness, []Landmark) {
	t.Helper()
	field := noise.NewField(12345)
	p := DefaultParams()
	wild := NewWilderness(field, p)
	return wild, []Landmark{
		NewCapital(field, wild),
		NewVillage(field, wild),
		NewFederation(field, wild, p),
		NewIndustrial(field, wild, p),
		NewCastle(wild, p),
		NewHangar(wild, p),
		NewGuild(field, wild, p),
	}
}

func TestLandmarkCentersAreInside(t *testing.T) {
	_, zones := newTestZones(t)
	names := map[string]bool{}
	for _, z := range zones {
		c := z.Center()
		x, zz := int(c.X()), int(c.Y())
		assert.True(t, z.IsInside(x, zz), "центр зоны %s должен быть внутри", z.Name())
		assert.False(t, names[z.Name()], "имя %s повторяется", z.Name())
		names[z.Name()] = true
	}
	assert.Len(t, names, 7)
}

func TestFactionCentersFollowMile(t *testing.T) {
	field := noise.NewField(1)
	wild := NewWilderness(field, DefaultParams())
	p := Params{Mile: 1000, WaterLevel: 3}

	f := NewFederation(field, wild, p)
	assert.Equal(t, 1500.0, f.Center().X())
	c := NewCastle(wild, p)
	assert.Equal(t, -3000.0, c.Center().Y())
}

func TestCapitalIsFlatInside(t *testing.T) {
	_, zones := newTestZones(t)
	capital := zones[0]
	for _, base := range []float64{-10, 0, 6, 42} {
		assert.Equal(t, 6.0, capital.GetHeight(0, 0, base))
		assert.Equal(t, 6.0, capital.GetHeight(100, -40, base))
	}
}

func TestEdgeBlendIsContinuous(t *testing.T) {
	wild, zones := newTestZones(t)
	const base = 6.0

	for _, z := range zones {
		c := z.Center()
		cx, cz := c.X(), c.Y()
		for deg := 0; deg < 360; deg += 9 {
			a := float64(deg) * math.Pi / 180
			// Последняя точка на луче, ещё принадлежащая зоне
			var lastX, lastZ int
			found := false
			for r := 0.0; r < 1000; r += 0.5 {
				x := int(math.Round(cx + math.Cos(a)*r))
				zz := int(math.Round(cz + math.Sin(a)*r))
				if !z.IsInside(x, zz) {
					break
				}
				lastX, lastZ, found = x, zz, true
			}
			require.True(t, found)

			inner := z.GetHeight(lastX, lastZ, base)
			outer := wild.GetHeight(lastX, lastZ, base)
			assert.InDelta(t, outer, inner, 1.6, "%s: скачок высоты на границе в (%d,%d)", z.Name(), lastX, lastZ)
		}
	}
}

func TestGetBlockIsPure(t *testing.T) {
	wild, zones := newTestZones(t)
	all := append([]Zone{wild}, landmarksAsZones(zones)...)
	for _, z := range all {
		for i := 0; i < 200; i++ {
			x, zz := i*7-700, i*13-1300
			g := int(math.Floor(z.GetHeight(x, zz, 6)))
			for ly := 0; ly < 12; ly++ {
				a := z.GetBlock(x, g+ly, zz, g, LodHigh)
				b := z.GetBlock(x, g+ly, zz, g, LodHigh)
				require.Equal(t, a, b)
			}
		}
	}
}

func TestLowDetailOnlyDropsDecoration(t *testing.T) {
	wild, zones := newTestZones(t)
	all := append([]Zone{wild}, landmarksAsZones(zones)...)

	for _, z := range all {
		cx, cz := 0, 0
		if l, ok := z.(Landmark); ok {
			cx, cz = int(l.Center().X()), int(l.Center().Y())
		}
		for x := cx - 120; x <= cx+120; x += 3 {
			for zz := cz - 120; zz <= cz+120; zz += 2 {
				if !z.IsInside(x, zz) {
					continue
				}
				g := int(math.Floor(z.GetHeight(x, zz, 6)))
				for ly := 0; ly < 16; ly++ {
					high := z.GetBlock(x, g+ly, zz, g, LodHigh)
					low := z.GetBlock(x, g+ly, zz, g, LodLow)
					if high == low {
						continue
					}
					require.True(t, block.IsDecoration(high), "%s (%d,%d,%d): %d не декор", z.Name(), x, g+ly, zz, high)
					if block.IsSolid(low) {
						require.True(t, block.IsSolid(high), "%s: высокий LOD открывает проход", z.Name())
					}
				}
			}
		}
	}
}

func TestCapitalLandmarks(t *testing.T) {
	_, zones := newTestZones(t)
	c := zones[0]
	const g = 6

	assert.Equal(t, block.ObsidianBlockID, c.GetBlock(0, g, 0, g, LodHigh), "пол башни")
	assert.Equal(t, block.CobblestoneBlockID, c.GetBlock(30, g, 0, g, LodHigh), "площадь")
	assert.Equal(t, block.StoneBrickBlockID, c.GetBlock(23, g+1, 0, g, LodHigh), "стена башни")
	assert.Equal(t, block.StoneBrickBlockID, c.GetBlock(85, g+3, 0, g, LodHigh), "городская стена")
	assert.Equal(t, block.AirBlockID, c.GetBlock(0, g+3, 85, g, LodHigh), "проём ворот")
	assert.Equal(t, block.StoneBrickBlockID, c.GetBlock(0, g+7, 85, g, LodHigh), "арка ворот")
	assert.Equal(t, block.GrassBlockID, c.GetBlock(120, g, 120, g, LodHigh))
}

func TestVillageStreamAndBridge(t *testing.T) {
	field := noise.NewField(12345)
	v := NewVillage(field, NewWilderness(field, DefaultParams()))

	// Ось ручья при x=0 проходит в 30 блоках к югу от центра деревни
	z := villageCenterZ + 30
	assert.Equal(t, float64(streamBed), v.GetHeight(0, z, 6), "русло")
	assert.Equal(t, float64(villageHeight), v.GetHeight(20, villageCenterZ, 6), "ровная деревня")

	assert.Equal(t, block.WoodPlankBlockID, v.GetBlock(0, bridgeDeck, z, streamBed, LodHigh), "настил моста")
	assert.Equal(t, block.WoodLogBlockID, v.GetBlock(2, bridgeDeck-1, z, streamBed, LodHigh), "опора моста")
	assert.Equal(t, block.SandBlockID, v.GetBlock(10, streamBed, villageCenterZ+35, streamBed, LodLow), "дно ручья")
	assert.Equal(t, block.WaterBlockID, v.GetBlock(10, streamBed+2, villageCenterZ+35, streamBed, LodLow))
}

func TestVillageStreamKeepsWaterAtHighDetail(t *testing.T) {
	field := noise.NewField(12345)
	v := NewVillage(field, NewWilderness(field, DefaultParams()))

	reeds := 0
	for x := -120; x <= 120; x++ {
		for z := villageCenterZ; z <= villageCenterZ+60; z++ {
			stream := v.streamDistance(x, z)
			if stream >= streamReach {
				continue
			}
			g := int(math.Floor(v.GetHeight(x, z, 6)))
			for y := g + 1; y <= streamSurface+1; y++ {
				high := v.GetBlock(x, y, z, g, LodHigh)
				low := v.GetBlock(x, y, z, g, LodLow)
				if high == low {
					continue
				}
				require.Equal(t, block.WaterBlockID, low, "(%d,%d,%d)", x, y, z)
				props, found := block.Get(high)
				require.True(t, found)
				require.True(t, props.FloatsOnWater, "(%d,%d,%d): %s вытесняет воду", x, y, z, props.Name)
				if high == block.SugarcaneBlockID {
					reeds++
				}
			}
		}
	}
	assert.Positive(t, reeds, "у берега должен расти тростник")
}

func TestGuildOrganicStreets(t *testing.T) {
	field := noise.NewField(12345)
	wild := NewWilderness(field, DefaultParams())
	g := NewGuild(field, wild, DefaultParams())
	c := g.Center()
	cx, cz := int(c.X()), int(c.Y())
	const h = guildHeight

	// Площадь улиц лежит под двором, двор важнее
	require.True(t, g.roads.IsRoad(0, 0))
	assert.Equal(t, block.WoodPlankBlockID, g.GetBlock(cx, h, cz, h, LodHigh))

	streets := 0
	for dx := -guildRoadMap / 2; dx < guildRoadMap/2; dx++ {
		for dz := -guildRoadMap / 2; dz < guildRoadMap/2; dz++ {
			if abs(dx) < guildYard && abs(dz) < guildYard {
				continue
			}
			if !g.roads.IsRoad(dx, dz) {
				continue
			}
			streets++
			require.Equal(t, block.PathBlockID, g.GetBlock(cx+dx, h, cz+dz, h, LodHigh), "(%d,%d)", dx, dz)
			require.Equal(t, block.AirBlockID, g.GetBlock(cx+dx, h+1, cz+dz, h, LodHigh), "на улице нет цветов")
		}
	}
	assert.Greater(t, streets, 100)

	again := NewGuild(noise.NewField(12345), wild, DefaultParams())
	assert.Equal(t, g.roads.Count(), again.roads.Count())
	other := NewGuild(noise.NewField(777), wild, DefaultParams())
	differs := false
	for dx := -guildRoadMap / 2; dx < guildRoadMap/2 && !differs; dx++ {
		for dz := -guildRoadMap / 2; dz < guildRoadMap/2; dz++ {
			if g.roads.IsRoad(dx, dz) != other.roads.IsRoad(dx, dz) {
				differs = true
				break
			}
		}
	}
	assert.True(t, differs, "улицы зависят от сида мира")
}

func TestHouseFromSeed(t *testing.T) {
	for i := 0; i < 100; i++ {
		seed := float64(i) / 100
		h := HouseFromSeed(seed, MedievalStyle)
		assert.GreaterOrEqual(t, h.HalfW, 3)
		assert.LessOrEqual(t, h.HalfW, 4)
		assert.GreaterOrEqual(t, h.HalfD, 3)
		assert.LessOrEqual(t, h.HalfD, 4)
		assert.Contains(t, []int{5, 6}, h.Height)
		if seed > 0.6 {
			assert.Equal(t, 2, h.Stories)
		} else {
			assert.Equal(t, 1, h.Stories)
		}
	}
}

func TestHouseLayers(t *testing.T) {
	h := House{HouseStyle: MedievalStyle, HalfW: 3, HalfD: 3, Height: 5, Stories: 1, Roof: block.WoodPlankBlockID}

	id, ok := h.Block(0, 1, 0)
	assert.True(t, ok)
	assert.Equal(t, block.StoneBrickBlockID, id, "фундамент")

	id, _ = h.Block(3, 2, 3)
	assert.Equal(t, block.WoodLogBlockID, id, "угловой столб")

	id, _ = h.Block(3, 3, 0)
	assert.Equal(t, block.GlassBlockID, id, "окно по чётности")
	id, _ = h.Block(3, 3, 1)
	assert.Equal(t, block.PlasterBlockID, id)

	id, ok = h.Block(0, 3, 0)
	assert.True(t, ok)
	assert.Equal(t, block.AirBlockID, id, "внутри пусто")

	id, _ = h.Block(0, 6, 0)
	assert.Equal(t, block.WoodPlankBlockID, id, "потолок")

	// Карниз крыши шире стен на блок
	id, _ = h.Block(4, 7, 0)
	assert.Equal(t, block.WoodPlankBlockID, id)

	_, ok = h.Block(10, 2, 0)
	assert.False(t, ok)
	_, ok = h.Block(0, 0, 0)
	assert.False(t, ok)
}

func TestTwoStoryOverhang(t *testing.T) {
	h := House{HouseStyle: MedievalStyle, HalfW: 3, HalfD: 3, Height: 5, Stories: 2, Roof: block.RoofRedBlockID}

	// Второй этаж выступает на блок
	id, ok := h.Block(4, 8, 0)
	assert.True(t, ok)
	assert.NotEqual(t, block.AirBlockID, id)

	_, ok = h.Block(4, 3, 0)
	assert.False(t, ok, "первый этаж уже второго")

	id, _ = h.Block(0, 12, 4)
	assert.Equal(t, block.RoofRedBlockID, id, "крыша начинается над вторым этажом")
}

func TestWildernessRoadsAndSurfaces(t *testing.T) {
	field := noise.NewField(12345)
	w := NewWilderness(field, DefaultParams())

	assert.True(t, w.IsRoad(0, 1000), "южная дорога")
	assert.True(t, w.IsRoad(0, -1000), "северная дорога")
	assert.True(t, w.IsRoad(2000, 0), "шоссе")
	assert.False(t, w.IsRoad(300, 300))
	assert.False(t, w.IsRoad(0, 20000), "южная дорога конечна")

	assert.InDelta(t, RoadHeight(10), w.GetHeight(0, 1000, 10), 1e-9)
	assert.InDelta(t, 10.0, w.GetHeight(300, 300, 10), 1e-9)

	assert.Equal(t, block.CobblestoneBlockID, w.GetBlock(0, 7, 300, 7, LodHigh))
	assert.Equal(t, block.PathBlockID, w.GetBlock(0, 7, 1000, 7, LodHigh))
	assert.Equal(t, block.DirtBlockID, w.GetBlock(0, 7, 2000, 7, LodHigh))

	assert.Equal(t, block.SnowBlockID, w.GetBlock(300, 70, 300, 70, LodHigh))
	assert.Equal(t, block.StoneBlockID, w.GetBlock(300, 50, 300, 50, LodHigh))
	assert.Equal(t, block.SandBlockID, w.GetBlock(300, 2, 300, 2, LodHigh))
	assert.Equal(t, block.GrassBlockID, w.GetBlock(300, 10, 300, 10, LodHigh))
}

func TestWildernessMacroBiomes(t *testing.T) {
	field := noise.NewField(12345)
	w := NewWilderness(field, DefaultParams())

	// Побережье на западе опускает рельеф
	assert.Less(t, w.GetHeight(-3000, 300, 6), 6.0)
	// Горы на востоке поднимают
	assert.Greater(t, w.GetHeight(12000, 300, 6), 6.0)
}

func TestAtmosphereLerp(t *testing.T) {
	_, zones := newTestZones(t)
	a := zones[0].GetAtmosphere()
	b := zones[1].GetAtmosphere()

	assert.Equal(t, a.FogColor, a.Lerp(b, 0).FogColor)
	assert.InDelta(t, b.FogDensity, a.Lerp(b, 1).FogDensity, 1e-6)
	assert.InDelta(t, b.FogDensity, a.Lerp(b, 7).FogDensity, 1e-6, "t зажимается")

	assert.Nil(t, a.Lerp(b, 0.2).FixedTime)
	require.NotNil(t, a.Lerp(b, 0.8).FixedTime)
	assert.Equal(t, float32(0.25), *a.Lerp(b, 0.8).FixedTime)

	mid := a.Lerp(zones[3].GetAtmosphere(), 0.5)
	assert.InDelta(t, (a.FogDensity+zones[3].GetAtmosphere().FogDensity)/2, mid.FogDensity, 1e-6)
}

func landmarksAsZones(in []Landmark) []Zone {
	out := make([]Zone, len(in))
	for i, l := range in {
		out[i] = l
	}
	return out
}
