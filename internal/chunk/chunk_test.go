package chunk

import (
	"testing"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/world"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/zone"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource отдаёт плоский мир с настраиваемыми высотой и блоками
type fakeSource struct {
	height func(x, z int) int
	block  func(x, y, z, h int, lod zone.LOD) block.BlockID
}

func (f *fakeSource) TerrainHeight(x, z int) int {
	if f.height == nil {
		return 0
	}
	return f.height(x, z)
}

func (f *fakeSource) BlockAtHeight(x, y, z, h int, lod zone.LOD) block.BlockID {
	if f.block != nil {
		return f.block(x, y, z, h, lod)
	}
	switch {
	case y < h:
		return block.StoneBlockID
	case y == h:
		return block.GrassBlockID
	}
	return block.AirBlockID
}

func testWorldConfig() config.WorldConfig {
	return config.WorldConfig{Seed: 7, ChunkSize: 8, MinY: -8, MaxY: 32, WaterLevel: 0, Mile: 500}
}

func testMeshConfig() config.MeshConfig {
	return config.MeshConfig{SampleStep: 4, SubsurfaceDepth: 2, Headroom: 8}
}

func testBiomes() []world.Biome {
	return []world.Biome{
		{Name: "a", Center: mgl64.Vec2{0, 0}, Color: mgl32.Vec3{0, 1, 0}},
		{Name: "b", Center: mgl64.Vec2{100, 0}, Color: mgl32.Vec3{1, 0, 0}},
	}
}

func findInstance(list []Instance, id block.BlockID, x, z int) (Instance, bool) {
	for _, in := range list {
		if in.Block == id && int(in.Position.X()) == x && int(in.Position.Z()) == z {
			return in, true
		}
	}
	return Instance{}, false
}

func TestBuildIsDeterministic(t *testing.T) {
	r := world.NewRegistry(config.Default().World)
	m := NewWorldMesher(r, config.Default().Mesh)

	for _, c := range []Coord{{0, 0}, {-1, 2}, {3, -4}} {
		a := m.Build(c, zone.LodHigh)
		b := m.Build(c, zone.LodHigh)
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.Equal(t, len(a.Solid), len(b.Solid))
		assert.Equal(t, len(a.Liquid), len(b.Liquid))
		assert.Equal(t, a, b)
		assert.Equal(t, a.Digest(), b.Digest())
	}
}

func TestLowDetailNeverAddsGeometry(t *testing.T) {
	r := world.NewRegistry(config.Default().World)
	m := NewWorldMesher(r, config.Default().Mesh)

	high := m.Build(Coord{1, 1}, zone.LodHigh)
	low := m.Build(Coord{1, 1}, zone.LodLow)
	require.NotNil(t, high)
	require.NotNil(t, low)
	assert.LessOrEqual(t, low.Count(), high.Count())
}

func TestEmptyChunkProducesNoMesh(t *testing.T) {
	src := &fakeSource{block: func(x, y, z, h int, lod zone.LOD) block.BlockID {
		return block.AirBlockID
	}}
	m := NewMesher(src, testBiomes(), testWorldConfig(), testMeshConfig())

	mesh := m.Build(Coord{0, 0}, zone.LodHigh)
	assert.Nil(t, mesh)
	assert.Equal(t, 0, mesh.Count())
}

func TestFlatChunkLayers(t *testing.T) {
	m := NewMesher(&fakeSource{}, testBiomes(), testWorldConfig(), testMeshConfig())

	mesh := m.Build(Coord{0, 0}, zone.LodHigh)
	require.NotNil(t, mesh)
	assert.Empty(t, mesh.Liquid)
	// Трава плюс два слоя камня в каждой колонке
	assert.Len(t, mesh.Solid, 8*8*3)

	for _, in := range mesh.Solid {
		assert.Equal(t, block.MaterialSolid, in.Material)
		assert.GreaterOrEqual(t, in.Position.Y(), float32(-2))
	}
}

func TestFloatingDecorationEmitsWater(t *testing.T) {
	src := &fakeSource{
		height: func(x, z int) int { return -3 },
		block: func(x, y, z, h int, lod zone.LOD) block.BlockID {
			switch {
			case y <= h:
				return block.SandBlockID
			case x == 3 && z == 4 && y == 0:
				return block.LilyPadBlockID
			case y <= 0:
				return block.WaterBlockID
			}
			return block.AirBlockID
		},
	}
	m := NewMesher(src, testBiomes(), testWorldConfig(), testMeshConfig())

	mesh := m.Build(Coord{0, 0}, zone.LodHigh)
	require.NotNil(t, mesh)

	lily, ok := findInstance(mesh.Solid, block.LilyPadBlockID, 3, 4)
	require.True(t, ok)
	assert.InDelta(t, 0.45, lily.Position.Y(), 1e-6)
	assert.InDelta(t, 0.05, lily.Scale.Y(), 1e-6)

	under := 0
	for _, in := range mesh.Liquid {
		if in.Position == (mgl32.Vec3{3, 0, 4}) {
			under++
			assert.Equal(t, block.WaterBlockID, in.Block)
			assert.Equal(t, block.MaterialLiquid, in.Material)
		}
	}
	assert.Equal(t, 1, under)

	// Три клетки воды в каждой колонке, одна из них под кувшинкой
	assert.Len(t, mesh.Liquid, 8*8*3)
}

func TestSteepColumnBetweenSamplesIsCovered(t *testing.T) {
	src := &fakeSource{height: func(x, z int) int {
		if x == 1 && z == 1 {
			return 25
		}
		return 0
	}}
	m := NewMesher(src, testBiomes(), testWorldConfig(), testMeshConfig())

	mesh := m.Build(Coord{0, 0}, zone.LodHigh)
	require.NotNil(t, mesh)

	var top float32
	for _, in := range mesh.Solid {
		if int(in.Position.X()) == 1 && int(in.Position.Z()) == 1 {
			top = max(top, in.Position.Y())
		}
	}
	assert.Equal(t, float32(25), top)
}

func TestBiomeTintAndYaw(t *testing.T) {
	src := &fakeSource{block: func(x, y, z, h int, lod zone.LOD) block.BlockID {
		switch {
		case y == h:
			return block.GrassBlockID
		case y == h+1 && lod == zone.LodHigh:
			return block.TallGrassBlockID
		}
		return block.AirBlockID
	}}
	biomes := testBiomes()
	m := NewMesher(src, biomes, testWorldConfig(), testMeshConfig())

	mesh := m.Build(Coord{2, 0}, zone.LodHigh)
	require.NotNil(t, mesh)

	grass, ok := findInstance(mesh.Solid, block.GrassBlockID, 20, 3)
	require.True(t, ok)
	assert.Equal(t, world.BlendColor(biomes, 20, 3), grass.Color)
	assert.Zero(t, grass.Yaw)

	tall, ok := findInstance(mesh.Solid, block.TallGrassBlockID, 20, 3)
	require.True(t, ok)
	assert.GreaterOrEqual(t, tall.Yaw, float32(0))
	assert.Less(t, tall.Yaw, float32(7))

	low := m.Build(Coord{2, 0}, zone.LodLow)
	require.NotNil(t, low)
	assert.Len(t, low.Solid, 8*8)
	assert.NotEqual(t, mesh.Digest(), low.Digest())
}

func TestUnknownBlockUsesNeutralColor(t *testing.T) {
	src := &fakeSource{block: func(x, y, z, h int, lod zone.LOD) block.BlockID {
		if y == h {
			return block.BlockID(4000)
		}
		return block.AirBlockID
	}}
	m := NewMesher(src, testBiomes(), testWorldConfig(), testMeshConfig())

	mesh := m.Build(Coord{0, 0}, zone.LodHigh)
	require.NotNil(t, mesh)
	require.Len(t, mesh.Solid, 8*8)
	assert.Equal(t, block.NeutralColor, mesh.Solid[0].Color)
}

func TestNegativeChunkCoversItsColumns(t *testing.T) {
	m := NewMesher(&fakeSource{}, testBiomes(), testWorldConfig(), testMeshConfig())
	mesh := m.Build(Coord{X: -1, Z: 2}, zone.LodHigh)
	require.NotNil(t, mesh)

	cols := make(map[[2]int]struct{})
	for _, in := range mesh.Solid {
		x, z := int(in.Position.X()), int(in.Position.Z())
		assert.GreaterOrEqual(t, x, -8)
		assert.LessOrEqual(t, x, -1)
		assert.GreaterOrEqual(t, z, 16)
		assert.LessOrEqual(t, z, 23)
		cols[[2]int{x, z}] = struct{}{}
	}
	assert.Len(t, cols, 64)
}
