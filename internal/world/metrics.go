package world

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/dungeon-gen/internal/dungeon"
)

// GenerationMetrics Prometheus-метрики генерации уровней.
//
// Метрики:
// * level_generation_seconds - histogram
// * levels_generated_total{result} - counter (ok/error)
// * level_rooms - histogram комнат на уровень
// * corridor_failures_total - counter ненайденных коридоров
type GenerationMetrics struct {
	duration         prometheus.Histogram
	generated        *prometheus.CounterVec
	rooms            prometheus.Histogram
	corridorFailures prometheus.Counter
}

// NewGenerationMetrics создаёт метрики и регистрирует их в reg. При reg == nil регистрации нет.
func NewGenerationMetrics(namespace string, reg prometheus.Registerer) *GenerationMetrics {
	gm := &GenerationMetrics{
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "level_generation_seconds",
			Help:      "Длительность генерации уровня.",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_generated_total",
			Help:      "Количество сгенерированных уровней.",
		}, []string{"result"}),
		rooms: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "level_rooms",
			Help:      "Количество комнат и пролётов на уровне.",
			Buckets:   prometheus.LinearBuckets(2, 4, 10),
		}),
		corridorFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "corridor_failures_total",
			Help:      "Пары комнат, для которых коридор не найден.",
		}),
	}

	if reg != nil {
		reg.MustRegister(gm.duration, gm.generated, gm.rooms, gm.corridorFailures)
	}
	return gm
}

// Observe записывает успешную генерацию
func (gm *GenerationMetrics) Observe(m *dungeon.DungeonMap, took time.Duration) {
	if gm == nil {
		return
	}
	stats := m.Stats()
	gm.duration.Observe(took.Seconds())
	gm.generated.WithLabelValues("ok").Inc()
	gm.rooms.Observe(float64(len(m.Rooms())))
	gm.corridorFailures.Add(float64(stats.CorridorFailures))
}

// ObserveError записывает неудачную генерацию
func (gm *GenerationMetrics) ObserveError() {
	if gm == nil {
		return
	}
	gm.generated.WithLabelValues("error").Inc()
}
