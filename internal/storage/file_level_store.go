package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// FileLevelStore хранит снимки уровней JSON-файлами: <base>/seed_<seed>/level_<n>.json[.gz]
type FileLevelStore struct {
	basePath           string
	compressionEnabled bool
	mu                 sync.RWMutex
}

// NewFileLevelStore создаёт файловое хранилище, директория создаётся при необходимости
func NewFileLevelStore(basePath string, compress bool) (*FileLevelStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию %s: %w", basePath, err)
	}
	return &FileLevelStore{
		basePath:           basePath,
		compressionEnabled: compress,
	}, nil
}

func (s *FileLevelStore) filename(seed int64, level int) string {
	name := fmt.Sprintf("level_%d.json", level)
	if s.compressionEnabled {
		name += ".gz"
	}
	return filepath.Join(s.basePath, fmt.Sprintf("seed_%d", seed), name)
}

func (s *FileLevelStore) Save(ctx context.Context, snap LevelSnapshot) error {
	if snap.Level < 0 {
		return fmt.Errorf("недействительный уровень: %d", snap.Level)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ошибка сериализации уровня %d: %w", snap.Level, err)
	}
	if s.compressionEnabled {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	filename := s.filename(snap.Seed, snap.Level)

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}

	// Пишем во временный файл и переименовываем, чтобы не оставить половину файла
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("ошибка переименования %s: %w", tmp, err)
	}
	return nil
}

func (s *FileLevelStore) Load(ctx context.Context, seed int64, level int) (LevelSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return LevelSnapshot{}, err
	}

	filename := s.filename(seed, level)

	s.mu.RLock()
	data, err := os.ReadFile(filename)
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return LevelSnapshot{}, ErrNotFound
	}
	if err != nil {
		return LevelSnapshot{}, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	if s.compressionEnabled {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return LevelSnapshot{}, fmt.Errorf("повреждённый архив %s: %w", filename, err)
		}
		data, err = io.ReadAll(zr)
		if err != nil {
			return LevelSnapshot{}, fmt.Errorf("повреждённый архив %s: %w", filename, err)
		}
	}

	var snap LevelSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return LevelSnapshot{}, fmt.Errorf("ошибка разбора %s: %w", filename, err)
	}
	return snap, nil
}

func (s *FileLevelStore) Delete(ctx context.Context, seed int64, level int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.filename(seed, level))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
