package world

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/dungeon-gen/internal/config"
	"github.com/annel0/dungeon-gen/internal/dungeon"
	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/storage"
)

// ErrLevelOutOfRange уровень меньше нуля или глубже MaxLevel
var ErrLevelOutOfRange = errors.New("level out of range")

const tracerName = "github.com/annel0/dungeon-gen/internal/world"

// Manager управляет уровнями подземелья одного мира (одного сида).
// В памяти живёт только текущая карта, остальные уровни генерируются заново по запросу.
type Manager struct {
	seed    int64
	cfg     config.GeneratorConfig
	metrics *GenerationMetrics
	tracer  trace.Tracer
	log     *logging.Logger
	store   storage.LevelStore

	mu         sync.RWMutex
	levels     map[int]*LevelData
	current    int
	currentMap *dungeon.DungeonMap
	generated  int64
}

// ManagerOption настраивает Manager
type ManagerOption func(*Manager)

// WithStore сохраняет туман войны уровней между сессиями
func WithStore(s storage.LevelStore) ManagerOption {
	return func(m *Manager) {
		m.store = s
	}
}

// NewManager создаёт менеджер мира. metrics может быть nil.
func NewManager(seed int64, cfg config.GeneratorConfig, metrics *GenerationMetrics, opts ...ManagerOption) *Manager {
	m := &Manager{
		seed:    seed,
		cfg:     cfg,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		log:     logging.GetWorldLogger(),
		levels:  make(map[int]*LevelData),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Seed() int64   { return m.seed }
func (m *Manager) MaxLevel() int { return m.cfg.MaxLevel }

// Params параметры генерации уровня: размер растёт с глубиной
func (m *Manager) Params(level int) dungeon.Params {
	w, h := m.cfg.LevelSize(level)
	p := dungeon.DefaultParams(m.seed, level, w, h)
	if m.cfg.MinRoomSize > 0 {
		p.MinRoomSize = m.cfg.MinRoomSize
	}
	if m.cfg.MaxRoomSize > 0 {
		p.MaxRoomSize = m.cfg.MaxRoomSize
	}
	p.LoopFactor = m.cfg.LoopFactor
	if m.cfg.MaxFailedAttempts > 0 {
		p.MaxFailedAttempts = m.cfg.MaxFailedAttempts
	}
	return p
}

// Current текущий уровень и его карта. До первого Enter карта nil.
func (m *Manager) Current() (int, *dungeon.DungeonMap) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.currentMap
}

// Enter делает уровень текущим, старая карта отбрасывается
func (m *Manager) Enter(ctx context.Context, level int) (*dungeon.DungeonMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dm, err := m.generateLocked(ctx, level)
	if err != nil {
		return nil, err
	}
	if m.currentMap != nil && m.current != level {
		if err := m.saveLocked(ctx, m.current); err != nil {
			m.log.Warn("Не удалось сохранить уровень %d: %v", m.current, err)
		}
	}
	m.current = level
	m.currentMap = dm
	m.log.Info("Переход на уровень %d (сид %d)", level, m.seed)
	return dm, nil
}

// Descend переходит на уровень ниже
func (m *Manager) Descend(ctx context.Context) (*dungeon.DungeonMap, error) {
	level, _ := m.Current()
	return m.Enter(ctx, level+1)
}

// Ascend переходит на уровень выше. На верхнем уровне ничего не делает.
func (m *Manager) Ascend(ctx context.Context) (*dungeon.DungeonMap, error) {
	level, dm := m.Current()
	if level == 0 && dm != nil {
		return dm, nil
	}
	if level == 0 {
		return m.Enter(ctx, 0)
	}
	return m.Enter(ctx, level-1)
}

// Map возвращает карту уровня, не меняя текущий.
// Недостающие верхние уровни генерируются ради их порталов.
func (m *Manager) Map(ctx context.Context, level int) (*dungeon.DungeonMap, error) {
	m.mu.RLock()
	if level == m.current && m.currentMap != nil {
		dm := m.currentMap
		m.mu.RUnlock()
		return dm, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateLocked(ctx, level)
}

// LevelData данные уровня или nil, если уровень ещё не генерировался
func (m *Manager) LevelData(level int) *LevelData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.levels[level]
}

// usage число уровней с данными и число выполненных генераций
func (m *Manager) usage() (levels int, generated int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.levels), m.generated
}

// Save сохраняет все известные уровни в хранилище (если оно задано)
func (m *Manager) Save(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var errs []error
	for level := range m.levels {
		if err := m.saveLocked(ctx, level); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) saveLocked(ctx context.Context, level int) error {
	ld, ok := m.levels[level]
	if m.store == nil || !ok {
		return nil
	}
	return m.store.Save(ctx, ld.snapshot(m.seed))
}

// levelDataLocked при первом обращении подтягивает туман войны из хранилища
func (m *Manager) levelDataLocked(ctx context.Context, level int) *LevelData {
	ld, ok := m.levels[level]
	if ok {
		return ld
	}

	ld = newLevelData(level)
	m.levels[level] = ld
	if m.store == nil {
		return ld
	}

	snap, err := m.store.Load(ctx, m.seed, level)
	switch {
	case err == nil:
		ld.restore(snap)
		m.log.Debug("Уровень %d восстановлен из хранилища", level)
	case !errors.Is(err, storage.ErrNotFound):
		m.log.Warn("Не удалось загрузить уровень %d: %v", level, err)
	}
	return ld
}

// generateLocked вызывается под m.mu
func (m *Manager) generateLocked(ctx context.Context, level int) (*dungeon.DungeonMap, error) {
	if level < 0 || level > m.cfg.MaxLevel {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrLevelOutOfRange, level, m.cfg.MaxLevel)
	}

	var above []dungeon.StairPortal
	if level > 0 {
		portals, ok := m.levelDataLocked(ctx, level-1).PortalsBelow()
		if !ok {
			if _, err := m.generateLocked(ctx, level-1); err != nil {
				return nil, err
			}
			portals, _ = m.levelDataLocked(ctx, level-1).PortalsBelow()
		}
		above = portals
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, span := m.tracer.Start(ctx, "dungeon.generate", trace.WithAttributes(
		attribute.Int64("dungeon.seed", m.seed),
		attribute.Int("dungeon.level", level),
	))
	defer span.End()

	start := time.Now()
	dm, err := dungeon.New(m.Params(level), above, dungeon.WithLogger(logging.GetDungeonLogger()))
	if err != nil {
		m.metrics.ObserveError()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.log.Error("Ошибка генерации уровня %d: %v", level, err)
		return nil, fmt.Errorf("generate level %d: %w", level, err)
	}
	took := time.Since(start)

	m.generated++
	m.metrics.Observe(dm, took)
	span.SetAttributes(
		attribute.Int("dungeon.rooms", len(dm.Rooms())),
		attribute.Int("dungeon.corridor_failures", dm.Stats().CorridorFailures),
	)
	logging.LogLevelGenerated(m.seed, level, dm.Width(), dm.Height(), len(dm.Rooms()), took)

	m.levelDataLocked(ctx, level).setPortals(dm.PortalsBelow())
	return dm, nil
}
