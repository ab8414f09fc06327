package storage

import (
	"context"
	"fmt"
	"sync"
)

type levelKey struct {
	seed  int64
	level int
}

// MemoryLevelStore реализует LevelStore в памяти.
// ВНИМАНИЕ: Данные теряются при перезапуске!
type MemoryLevelStore struct {
	mu   sync.RWMutex
	data map[levelKey]LevelSnapshot
}

func NewMemoryLevelStore() *MemoryLevelStore {
	return &MemoryLevelStore{
		data: make(map[levelKey]LevelSnapshot),
	}
}

func (s *MemoryLevelStore) Save(ctx context.Context, snap LevelSnapshot) error {
	if snap.Level < 0 {
		return fmt.Errorf("недействительный уровень: %d", snap.Level)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[levelKey{snap.Seed, snap.Level}] = snap
	return nil
}

func (s *MemoryLevelStore) Load(ctx context.Context, seed int64, level int) (LevelSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return LevelSnapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.data[levelKey{seed, level}]
	if !ok {
		return LevelSnapshot{}, ErrNotFound
	}
	return snap, nil
}

func (s *MemoryLevelStore) Delete(ctx context.Context, seed int64, level int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, levelKey{seed, level})
	return nil
}
