package main

import (
	"path/filepath"
	"testing"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/world"
	"github.com/annel0/zoneworld/internal/world/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleAndExport(t *testing.T) {
	r := world.NewRegistry(config.Default().World)
	m, err := Sample(r, Bounds{X0: -100, Z0: -100, Width: 11, Height: 11, Step: 20})
	require.NoError(t, err)

	// В центре карты площадь столицы
	center := 5*11 + 5
	assert.Equal(t, zone.CapitalName, m.Zones[m.Zone[center]])
	assert.Equal(t, 6, m.HeightMap[center])
	assert.Equal(t, zone.WildernessName, m.Zones[len(m.Zones)-1])

	path := filepath.Join(t.TempDir(), "maps", "map.json.zst")
	require.NoError(t, WriteMap(path, m))

	back, err := ReadMap(path)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestSampleRejectsBadBounds(t *testing.T) {
	r := world.NewRegistry(config.Default().World)
	_, err := Sample(r, Bounds{Width: 0, Height: 4, Step: 1})
	assert.Error(t, err)
	_, err = Sample(r, Bounds{Width: 4, Height: 4, Step: 0})
	assert.Error(t, err)
}
