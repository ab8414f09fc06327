package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute метка для запросов мимо маршрутов, чтобы произвольные URL не плодили серии
const unmatchedRoute = "unmatched"

// HTTPMetrics метрики REST предпросмотра по шаблонам маршрутов.
// Ответы с картами уровней растут с глубиной, поэтому размер ответа тоже наблюдается.
type HTTPMetrics struct {
	requests *prometheus.CounterVec   // {route, method, class}
	latency  *prometheus.HistogramVec // {route}
	size     *prometheus.HistogramVec // {route}
	inflight prometheus.Gauge
}

// NewHTTPMetrics создаёт метрики и регистрирует их в reg. nil - без регистрации.
func NewHTTPMetrics(namespace string, reg prometheus.Registerer) *HTTPMetrics {
	hm := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP-запросы по маршруту, методу и классу ответа (2xx, 4xx, 5xx).",
		}, []string{"route", "method", "class"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность обработки, включая генерацию уровня.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 1},
		}, []string{"route"}),
		size: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_size_bytes",
			Help:      "Размер тела ответа до сжатия.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 7),
		}, []string{"route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_inflight",
			Help:      "Запросы в обработке.",
		}),
	}

	if reg != nil {
		reg.MustRegister(hm.requests, hm.latency, hm.size, hm.inflight)
	}
	return hm
}

// Handler middleware для router.Use()
func (hm *HTTPMetrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		hm.inflight.Inc()
		defer hm.inflight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		hm.requests.WithLabelValues(route, c.Request.Method, statusClass(c.Writer.Status())).Inc()
		hm.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		if n := c.Writer.Size(); n > 0 {
			hm.size.WithLabelValues(route).Observe(float64(n))
		}
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// MetricsHandler отдаёт метрики из g, nil - глобальный реестр
func MetricsHandler(g prometheus.Gatherer) gin.HandlerFunc {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
