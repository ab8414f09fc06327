package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/dungeon-gen/internal/dungeon"
	"github.com/annel0/dungeon-gen/internal/vec"
)

func sampleSnapshot() LevelSnapshot {
	return LevelSnapshot{
		Seed:  1234,
		Level: 2,
		PortalsBelow: []dungeon.StairPortal{
			{Origin: vec.Vec2{X: 10, Y: 10}, Width: 1, Height: 3, Direction: dungeon.North},
		},
		SeenRooms: []int{0, 3},
		SeenTiles: []vec.Vec2{{X: 4, Y: 5}},
		SavedAt:   1700000000,
	}
}

func testStores(t *testing.T) map[string]LevelStore {
	t.Helper()
	plain, err := NewFileLevelStore(t.TempDir(), false)
	require.NoError(t, err)
	zipped, err := NewFileLevelStore(t.TempDir(), true)
	require.NoError(t, err)

	return map[string]LevelStore{
		"memory": NewMemoryLevelStore(),
		"file":   plain,
		"gzip":   zipped,
	}
}

func TestLevelStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(ctx, 1234, 2)
			assert.ErrorIs(t, err, ErrNotFound)

			snap := sampleSnapshot()
			require.NoError(t, store.Save(ctx, snap))

			loaded, err := store.Load(ctx, 1234, 2)
			require.NoError(t, err)
			assert.Equal(t, snap, loaded)

			_, err = store.Load(ctx, 1234, 3)
			assert.ErrorIs(t, err, ErrNotFound, "другой уровень")

			require.NoError(t, store.Delete(ctx, 1234, 2))
			_, err = store.Load(ctx, 1234, 2)
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, store.Delete(ctx, 1234, 2), "повторное удаление не ошибка")
		})
	}
}

func TestLevelStore_Validation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			snap := sampleSnapshot()
			snap.Level = -1
			assert.Error(t, store.Save(context.Background(), snap))

			assert.ErrorIs(t, store.Save(ctx, sampleSnapshot()), context.Canceled)
			_, err := store.Load(ctx, 1, 0)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestFileLevelStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileLevelStore(dir, true)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	_, err = os.Stat(filepath.Join(dir, "seed_1234", "level_2.json.gz"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "seed_1234", "level_2.json.gz.tmp"))
	assert.True(t, os.IsNotExist(err), "временный файл переименован")
}

func TestFileLevelStore_Corrupted(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileLevelStore(dir, false)
	require.NoError(t, err)

	path := filepath.Join(dir, "seed_1", "level_0.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err = store.Load(context.Background(), 1, 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
