package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(12345), cfg.World.Seed)
	assert.Equal(t, 32, cfg.World.ChunkSize)
	assert.Equal(t, 3, cfg.World.WaterLevel)
	assert.Equal(t, 500.0, cfg.World.Mile)
	assert.Equal(t, 30.0, cfg.Physics.Gravity)
	assert.Equal(t, 1.8, cfg.Physics.PlayerHeight)
	assert.Equal(t, -20.0, cfg.Physics.VoidY)
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	data := []byte("world:\n  seed: 7\n  chunk_size: 16\nphysics:\n  gravity: 20\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv(EnvConfigPath, path)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.World.Seed)
	assert.Equal(t, 16, cfg.World.ChunkSize)
	assert.Equal(t, 20.0, cfg.Physics.Gravity)
	assert.Equal(t, 128, cfg.World.MaxY, "остальные поля остаются по умолчанию")
	assert.Equal(t, 10.0, cfg.Physics.JumpForce)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  min_y: 10\n  max_y: 5\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"chunk size": func(c *Config) { c.World.ChunkSize = 0 },
		"view":       func(c *Config) { c.View.Radius = -1 },
		"workers":    func(c *Config) { c.Stream.Workers = 0 },
		"player":     func(c *Config) { c.Physics.PlayerRadius = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestRESTPortFallback(t *testing.T) {
	s := ServerConfig{}
	t.Setenv(EnvRESTPort, "")
	assert.Equal(t, 8088, s.GetRESTPort())

	t.Setenv(EnvRESTPort, "9100")
	assert.Equal(t, 9100, s.GetRESTPort())

	s.RESTPort = 9200
	assert.Equal(t, 9200, s.GetRESTPort())
}
