package chunk

import (
	"testing"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/world/zone"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViewConfig() config.ViewConfig {
	return config.ViewConfig{
		Radius:           4,
		HighDetailRadius: 2,
		PeripheralDot:    -0.3,
		PositionEpsilon:  0.5,
		FacingEpsilon:    0.05,
	}
}

func contains(set []Descriptor, x, z int) bool {
	for _, d := range set {
		if d.X == x && d.Z == z {
			return true
		}
	}
	return false
}

func TestVisibleSetIsSortedDisk(t *testing.T) {
	v := NewVisibility(testViewConfig(), 32)
	set := v.Compute(Viewer{Position: mgl64.Vec3{10, 20, 10}})

	require.Len(t, set, 49)
	assert.Equal(t, Coord{0, 0}, set[0].Coord)
	assert.Zero(t, set[0].Distance)
	for i := 1; i < len(set); i++ {
		assert.LessOrEqual(t, set[i-1].Distance, set[i].Distance)
	}
	assert.False(t, contains(set, 4, 4))
	assert.True(t, contains(set, 4, 0))
}

func TestLevelOfDetailByDistance(t *testing.T) {
	v := NewVisibility(testViewConfig(), 32)
	for _, d := range v.Compute(Viewer{Position: mgl64.Vec3{-5, 0, 70}}) {
		if d.Distance <= 2 {
			assert.Equal(t, zone.LodHigh, d.LOD, "%+v", d)
		} else {
			assert.Equal(t, zone.LodLow, d.LOD, "%+v", d)
		}
	}
}

func TestViewerChunkUsesCellCenters(t *testing.T) {
	v := NewVisibility(testViewConfig(), 32)
	assert.Equal(t, Coord{0, 0}, v.ChunkOf(mgl64.Vec3{-0.4, 0, 31.4}))
	assert.Equal(t, Coord{-1, 1}, v.ChunkOf(mgl64.Vec3{-0.6, 0, 31.6}))
}

func TestFacingCullsChunksBehind(t *testing.T) {
	v := NewVisibility(testViewConfig(), 32)
	set := v.Compute(Viewer{Position: mgl64.Vec3{16, 0, 16}, Facing: mgl64.Vec3{1, 0, 0}})

	assert.True(t, contains(set, 3, 0))
	assert.True(t, contains(set, 0, 4))
	assert.False(t, contains(set, -3, 0))
	assert.False(t, contains(set, -2, -2))
	// Соседи наблюдателя видны всегда
	assert.True(t, contains(set, -1, 0))
	assert.True(t, contains(set, -1, -1))
	assert.Less(t, len(set), 49)
}

func TestUpdateRespectsEpsilon(t *testing.T) {
	v := NewVisibility(testViewConfig(), 32)
	viewer := Viewer{Position: mgl64.Vec3{5, 10, 5}, Facing: mgl64.Vec3{0, 0, 1}}

	_, changed := v.Update(viewer)
	assert.True(t, changed)

	viewer.Position = mgl64.Vec3{5.2, 10, 5.1}
	_, changed = v.Update(viewer)
	assert.False(t, changed)

	viewer.Facing = mgl64.Vec3{0.3, 0, 0.95}
	_, changed = v.Update(viewer)
	assert.True(t, changed)

	viewer.Position = mgl64.Vec3{6, 10, 5}
	_, changed = v.Update(viewer)
	assert.True(t, changed)
}
