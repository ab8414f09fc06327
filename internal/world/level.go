package world

import (
	"sort"
	"sync"
	"time"

	"github.com/annel0/dungeon-gen/internal/dungeon"
	"github.com/annel0/dungeon-gen/internal/storage"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// LevelData состояние уровня, которое переживает выгрузку карты.
// Карта всегда может быть сгенерирована заново, а порталы и туман войны - нет.
type LevelData struct {
	Level int

	mu           sync.RWMutex
	generated    bool
	portalsBelow []dungeon.StairPortal
	seenRooms    map[int]bool
	seenTiles    map[vec.Vec2]bool
}

func newLevelData(level int) *LevelData {
	return &LevelData{
		Level:     level,
		seenRooms: make(map[int]bool),
		seenTiles: make(map[vec.Vec2]bool),
	}
}

func (ld *LevelData) setPortals(portals []dungeon.StairPortal) {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.portalsBelow = portals
	ld.generated = true
}

// PortalsBelow лестницы вниз уровня. ok == false, пока уровень не сгенерирован.
func (ld *LevelData) PortalsBelow() ([]dungeon.StairPortal, bool) {
	ld.mu.RLock()
	defer ld.mu.RUnlock()
	if !ld.generated {
		return nil, false
	}
	out := make([]dungeon.StairPortal, len(ld.portalsBelow))
	copy(out, ld.portalsBelow)
	return out, true
}

// MarkRoomSeen отмечает комнату как увиденную игроком
func (ld *LevelData) MarkRoomSeen(roomID int) {
	ld.mu.Lock()
	ld.seenRooms[roomID] = true
	ld.mu.Unlock()
}

func (ld *LevelData) RoomSeen(roomID int) bool {
	ld.mu.RLock()
	defer ld.mu.RUnlock()
	return ld.seenRooms[roomID]
}

// MarkTileSeen отмечает клетку как увиденную игроком
func (ld *LevelData) MarkTileSeen(x, y int) {
	ld.mu.Lock()
	ld.seenTiles[vec.Vec2{X: x, Y: y}] = true
	ld.mu.Unlock()
}

func (ld *LevelData) TileSeen(x, y int) bool {
	ld.mu.RLock()
	defer ld.mu.RUnlock()
	return ld.seenTiles[vec.Vec2{X: x, Y: y}]
}

// SeenCount количество увиденных комнат и клеток
func (ld *LevelData) SeenCount() (rooms, tiles int) {
	ld.mu.RLock()
	defer ld.mu.RUnlock()
	return len(ld.seenRooms), len(ld.seenTiles)
}

// snapshot копия данных уровня для хранилища
func (ld *LevelData) snapshot(seed int64) storage.LevelSnapshot {
	ld.mu.RLock()
	defer ld.mu.RUnlock()

	snap := storage.LevelSnapshot{
		Seed:         seed,
		Level:        ld.Level,
		PortalsBelow: append([]dungeon.StairPortal(nil), ld.portalsBelow...),
		SeenRooms:    make([]int, 0, len(ld.seenRooms)),
		SeenTiles:    make([]vec.Vec2, 0, len(ld.seenTiles)),
		SavedAt:      time.Now().Unix(),
	}
	for id := range ld.seenRooms {
		snap.SeenRooms = append(snap.SeenRooms, id)
	}
	for p := range ld.seenTiles {
		snap.SeenTiles = append(snap.SeenTiles, p)
	}
	sort.Ints(snap.SeenRooms)
	sort.Slice(snap.SeenTiles, func(i, j int) bool {
		if snap.SeenTiles[i].Y != snap.SeenTiles[j].Y {
			return snap.SeenTiles[i].Y < snap.SeenTiles[j].Y
		}
		return snap.SeenTiles[i].X < snap.SeenTiles[j].X
	})
	return snap
}

// restore переносит туман войны из снимка. Порталы всегда берутся из генерации.
func (ld *LevelData) restore(snap storage.LevelSnapshot) {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	for _, id := range snap.SeenRooms {
		ld.seenRooms[id] = true
	}
	for _, p := range snap.SeenTiles {
		ld.seenTiles[p] = true
	}
}
