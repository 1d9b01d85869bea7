package roads

import (
	"testing"

	"github.com/annel0/zoneworld/internal/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoadMapOutOfBoundsIsNotRoad(t *testing.T) {
	m := NewRoadMap(10, 10)
	for x := -5; x < 5; x++ {
		for z := -5; z < 5; z++ {
			m.SetRoad(x, z)
		}
	}
	assert.Equal(t, 100, m.Count())

	assert.True(t, m.IsRoad(-5, -5))
	assert.True(t, m.IsRoad(4, 4))
	assert.False(t, m.IsRoad(5, 0), "правая граница не входит в карту")
	assert.False(t, m.IsRoad(-6, 0))
	assert.False(t, m.IsRoad(0, 1_000_000))
	assert.False(t, m.IsRoad(-1_000_000, -1_000_000))
}

func TestRoadMapSetOutsideIsIgnored(t *testing.T) {
	m := NewRoadMap(4, 4)
	assert.NotPanics(t, func() {
		m.SetRoad(100, 100)
		m.SetRoad(-100, 3)
	})
	assert.Equal(t, 0, m.Count())

	empty := NewRoadMap(-3, 0)
	assert.False(t, empty.IsRoad(0, 0))
}

func TestOrganicIsDeterministic(t *testing.T) {
	a := GenerateOrganic(42, 200, 6, 80)
	b := GenerateOrganic(42, 200, 6, 80)
	require.Equal(t, a.Count(), b.Count())
	for x := -100; x < 100; x++ {
		for z := -100; z < 100; z++ {
			require.Equal(t, a.Surface(x, z), b.Surface(x, z))
		}
	}

	assert.Equal(t, SurfacePlaza, a.Surface(0, 0))
	assert.Equal(t, SurfacePlaza, a.Surface(7, 0))
	assert.Greater(t, a.Count(), 200, "ходоки должны проложить улицы за пределами площади")
}

func TestIndustrialGridStreets(t *testing.T) {
	m := GenerateIndustrialGrid(noise.NewField(12345), 200, 36, 5)

	for z := -100; z < 100; z++ {
		assert.True(t, m.IsRoad(0, z), "x=0 лежит на улице")
		assert.True(t, m.IsRoad(36, z))
		assert.True(t, m.IsRoad(-40, z), "остаток 4 меньше ширины улицы")
	}

	again := GenerateIndustrialGrid(noise.NewField(12345), 200, 36, 5)
	assert.Equal(t, m.Count(), again.Count())
}

func TestPlannedGridPrecedence(t *testing.T) {
	m := GeneratePlannedGrid(500, 24, 10)

	assert.Equal(t, SurfacePlaza, m.Surface(0, 0))
	assert.Equal(t, SurfacePlaza, m.Surface(0, 34))
	assert.Equal(t, SurfaceAvenue, m.Surface(0, 100))
	assert.Equal(t, SurfaceAvenue, m.Surface(4, -200))
	assert.Equal(t, SurfaceStreet, m.Surface(48, 61))
	assert.Equal(t, SurfaceNone, m.Surface(54, 61))
	assert.False(t, m.IsRoad(300, 0), "вне карты дороги нет")
}
