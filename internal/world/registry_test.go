package world

import (
	"testing"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(config.Default().World)
}

func TestCapitalCenterHeight(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, 6, r.TerrainHeight(0, 0))
	assert.Equal(t, zone.CapitalName, r.Resolve(0, 0).Name())
}

func TestZoneCentersResolveToTheirZone(t *testing.T) {
	r := newTestRegistry(t)
	for _, zn := range r.Zones() {
		l, ok := zn.(zone.Landmark)
		require.True(t, ok)
		c := l.Center()
		assert.Equal(t, l.Name(), r.Resolve(int(c.X()), int(c.Y())).Name())
	}
}

func TestResolveIsTotal(t *testing.T) {
	r := newTestRegistry(t)
	for _, p := range [][2]int{{0, 0}, {100000, -100000}, {-54321, 777}, {12, 9000}} {
		assert.NotNil(t, r.Resolve(p[0], p[1]))
	}
	assert.Equal(t, zone.WildernessName, r.Resolve(100000, -100000).Name())
}

func TestWorldIsDeterministic(t *testing.T) {
	a := newTestRegistry(t)
	b := newTestRegistry(t)
	for x := -300; x <= 300; x += 37 {
		for z := -300; z <= 400; z += 41 {
			h := a.TerrainHeight(x, z)
			require.Equal(t, h, b.TerrainHeight(x, z))
			for y := h - 2; y <= h+12; y++ {
				require.Equal(t, a.BlockAt(x, y, z), b.BlockAt(x, y, z), "клетка (%d,%d,%d)", x, y, z)
			}
		}
	}
}

func TestDisjointZoneOrderDoesNotMatter(t *testing.T) {
	r := newTestRegistry(t)
	zones := r.Zones()
	reversed := make([]zone.Zone, len(zones))
	for i, zn := range zones {
		reversed[len(zones)-1-i] = zn
	}
	other := NewRegistryWithZones(r.Config(), r.Field(), reversed, r.Fallback())

	for _, zn := range zones {
		c := zn.(zone.Landmark).Center()
		x, z := int(c.X())+13, int(c.Y())-7
		h := r.TerrainHeight(x, z)
		assert.Equal(t, h, other.TerrainHeight(x, z))
		for y := h; y <= h+20; y++ {
			assert.Equal(t, r.BlockAt(x, y, z), other.BlockAt(x, y, z))
		}
	}
}

func TestStrataUnderSurface(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, block.ObsidianBlockID, r.BlockAt(0, 6, 0))
	assert.Equal(t, block.DirtBlockID, r.BlockAt(0, 5, 0))
	assert.Equal(t, block.StoneBlockID, r.BlockAt(0, 1, 0))

	cfg := r.Config()
	assert.Equal(t, block.AirBlockID, r.BlockAt(0, cfg.MinY-1, 0))
	assert.Equal(t, block.AirBlockID, r.BlockAt(0, cfg.MaxY+1, 0))
}

func TestCoastIsFlooded(t *testing.T) {
	r := newTestRegistry(t)
	h := r.TerrainHeight(-3000, 300)
	require.Less(t, h, 0)
	for y := 0; y <= r.Config().WaterLevel; y++ {
		assert.Equal(t, block.WaterBlockID, r.BlockAt(-3000, y, 300))
	}
	assert.Equal(t, block.AirBlockID, r.BlockAt(-3000, r.Config().WaterLevel+1, 300))
}

func TestHeightIsClamped(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, r.Config().MaxY, r.TerrainHeight(30000, 40))
}

func TestBlendColorAtCenter(t *testing.T) {
	r := newTestRegistry(t)
	biomes := r.Biomes()
	require.NotEmpty(t, biomes)

	for _, b := range biomes {
		c := BlendColor(biomes, b.Center.X(), b.Center.Y())
		assert.InDelta(t, b.Color.X(), c.X(), 0.01, b.Name)
		assert.InDelta(t, b.Color.Y(), c.Y(), 0.01, b.Name)
		assert.InDelta(t, b.Color.Z(), c.Z(), 0.01, b.Name)
	}
	assert.Equal(t, block.NeutralColor, BlendColor(nil, 0, 0))
}

func TestDistancesAreSorted(t *testing.T) {
	r := newTestRegistry(t)
	d := r.Distances(0, 290)
	require.Len(t, d, len(r.Zones()))
	assert.Equal(t, zone.VillageName, d[0].Name)
	for i := 1; i < len(d); i++ {
		assert.LessOrEqual(t, d[i-1].Distance, d[i].Distance)
	}
}
