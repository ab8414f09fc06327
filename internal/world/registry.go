package world

import (
	"context"
	"errors"
	"sync"

	"github.com/annel0/dungeon-gen/internal/config"
	"github.com/annel0/dungeon-gen/internal/logging"
)

// DefaultRegistryCapacity сколько миров держать одновременно
const DefaultRegistryCapacity = 64

// Registry выдаёт менеджеры миров по сиду. При переполнении выбрасывается самый старый мир.
type Registry struct {
	cfg      config.GeneratorConfig
	metrics  *GenerationMetrics
	capacity int
	opts     []ManagerOption

	mu       sync.Mutex
	managers map[int64]*Manager
	order    []int64
}

// NewRegistry создаёт реестр. capacity <= 0 означает DefaultRegistryCapacity.
// opts применяются к каждому создаваемому менеджеру.
func NewRegistry(cfg config.GeneratorConfig, metrics *GenerationMetrics, capacity int, opts ...ManagerOption) *Registry {
	if capacity <= 0 {
		capacity = DefaultRegistryCapacity
	}
	return &Registry{
		cfg:      cfg,
		metrics:  metrics,
		capacity: capacity,
		opts:     opts,
		managers: make(map[int64]*Manager),
	}
}

// Get возвращает менеджер мира, создавая его при необходимости.
// Вытесненный мир сохраняется уже после снятия блокировки.
func (r *Registry) Get(seed int64) *Manager {
	m, evicted := r.getOrCreate(seed)
	if evicted != nil {
		if err := evicted.Save(context.Background()); err != nil {
			logging.GetWorldLogger().Warn("Не удалось сохранить мир %d при вытеснении: %v", evicted.Seed(), err)
		}
	}
	return m
}

func (r *Registry) getOrCreate(seed int64) (m, evicted *Manager) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.managers[seed]; ok {
		return m, nil
	}

	if len(r.order) >= r.capacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		evicted = r.managers[oldest]
		delete(r.managers, oldest)
	}

	m = NewManager(seed, r.cfg, r.metrics, r.opts...)
	r.managers[seed] = m
	r.order = append(r.order, seed)
	return m, evicted
}

// Len количество миров в реестре
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}

// loaded копия списка менеджеров, чтобы не держать блокировку во время их работы
func (r *Registry) loaded() []*Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	managers := make([]*Manager, 0, len(r.managers))
	for _, m := range r.managers {
		managers = append(managers, m)
	}
	return managers
}

// RegistryStats сводка по мирам реестра
type RegistryStats struct {
	Worlds    int   `json:"worlds"`
	Levels    int   `json:"levels"`    // уровни с порталами и туманом войны в памяти
	Generated int64 `json:"generated"` // генерации уровней с момента загрузки миров
	Capacity  int   `json:"capacity"`
}

// Stats собирает сводку. Менеджеры опрашиваются вне блокировки реестра.
func (r *Registry) Stats() RegistryStats {
	managers := r.loaded()

	stats := RegistryStats{Worlds: len(managers), Capacity: r.capacity}
	for _, m := range managers {
		levels, generated := m.usage()
		stats.Levels += levels
		stats.Generated += generated
	}
	return stats
}

// MaxLevel глубина подземелья из конфигурации
func (r *Registry) MaxLevel() int {
	return r.cfg.MaxLevel
}

// SaveAll сохраняет все миры реестра
func (r *Registry) SaveAll(ctx context.Context) error {
	managers := r.loaded()

	var errs []error
	for _, m := range managers {
		if err := m.Save(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
