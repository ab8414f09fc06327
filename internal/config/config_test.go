package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dungeon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultsWithoutPath(t *testing.T) {
	t.Setenv("DUNGEON_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "без файла должны использоваться дефолты")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
generator:
  seed: 42
  max_room_size: 8
  loop_factor: 0.25
server:
  rest_port: 9100
logging:
  dir: ""
storage:
  dir: /tmp/dungeon
  compress: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Generator.Seed)
	assert.Equal(t, 8, cfg.Generator.MaxRoomSize)
	assert.Equal(t, 0.25, cfg.Generator.LoopFactor)
	assert.Equal(t, 4, cfg.Generator.MinRoomSize, "незаданные поля остаются дефолтными")
	assert.Equal(t, 9100, cfg.Server.GetRESTPort())
	assert.Equal(t, "", cfg.Logging.Dir)
	assert.Equal(t, "/tmp/dungeon", cfg.Storage.Dir)
	assert.False(t, cfg.Storage.Compress)
	assert.True(t, cfg.Server.Metrics, "секция server дополняется, а не заменяется")
}

func TestLoad_FromEnv(t *testing.T) {
	path := writeConfig(t, "generator:\n  seed: 7\n")
	t.Setenv("DUNGEON_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "generator:\n  min_room_size: 9\n  max_room_size: 5\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetRESTPort_EnvFallback(t *testing.T) {
	s := ServerConfig{}

	t.Setenv("DUNGEON_REST_PORT", "9200")
	assert.Equal(t, 9200, s.GetRESTPort())

	t.Setenv("DUNGEON_REST_PORT", "junk")
	assert.Equal(t, 8088, s.GetRESTPort())
}

func TestLevelSize(t *testing.T) {
	g := Default().Generator

	w, h := g.LevelSize(0)
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, h)

	w, h = g.LevelSize(3)
	assert.Equal(t, 48, w)
	assert.Equal(t, 32, h)
}
