package storage

import (
	"context"
	"errors"

	"github.com/annel0/dungeon-gen/internal/dungeon"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// ErrNotFound снимок уровня не сохранялся
var ErrNotFound = errors.New("level snapshot not found")

// LevelSnapshot состояние уровня, которое нельзя восстановить генерацией:
// порталы вниз (для проверки) и туман войны
type LevelSnapshot struct {
	Seed         int64                 `json:"seed"`
	Level        int                   `json:"level"`
	PortalsBelow []dungeon.StairPortal `json:"portals_below"`
	SeenRooms    []int                 `json:"seen_rooms"`
	SeenTiles    []vec.Vec2            `json:"seen_tiles"`
	SavedAt      int64                 `json:"saved_at"`
}

// LevelStore определяет интерфейс хранения снимков уровней.
// Снимки привязаны к паре (сид мира, номер уровня).
type LevelStore interface {
	// Save сохраняет снимок, перезаписывая предыдущий
	Save(ctx context.Context, snap LevelSnapshot) error

	// Load загружает снимок. Если его нет - ErrNotFound.
	Load(ctx context.Context, seed int64, level int) (LevelSnapshot, error)

	// Delete удаляет снимок (для тестов или сброса мира)
	Delete(ctx context.Context, seed int64, level int) error
}
