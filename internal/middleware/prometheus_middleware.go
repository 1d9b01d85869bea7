package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnmatchedRoute подставляется в метку route для запросов мимо маршрутов,
// чтобы произвольные URL не порождали новые серии
const UnmatchedRoute = "unmatched"

// PrometheusMiddleware собирает HTTP-метрики API мира.
// Метки строятся по шаблону маршрута gin, а не по URL: /api/agents/:id
// даёт одну серию на все агенты.
//
// Метрики (с префиксом service):
//   - http_request_duration_seconds{method,route,status}
//   - http_response_size_bytes{route}: меши чанков намного тяжелее остальных ответов
//   - http_requests_inflight
//   - http_request_errors_total{method,route,status}: только 4xx/5xx
type PrometheusMiddleware struct {
	reqDuration *prometheus.HistogramVec
	respSize    *prometheus.HistogramVec
	reqInflight prometheus.Gauge
	reqErrors   *prometheus.CounterVec
}

// NewPrometheusMiddleware регистрирует метрики в reg (nil означает дефолтный регистр)
func NewPrometheusMiddleware(service string, reg prometheus.Registerer) *PrometheusMiddleware {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	pm := &PrometheusMiddleware{
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов к API мира.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10},
		}, []string{"method", "route", "status"}),
		respSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_response_size_bytes",
			Help:      "Размер тела ответа.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 9),
		}, []string{"route"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: service,
			Name:      "http_requests_inflight",
			Help:      "Запросы в обработке.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_request_errors_total",
			Help:      "Запросы со статусом 4xx/5xx.",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(pm.reqDuration, pm.respSize, pm.reqInflight, pm.reqErrors)
	return pm
}

// Handler возвращает обработчик для router.Use()
func (pm *PrometheusMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		pm.reqInflight.Inc()
		defer pm.reqInflight.Dec()

		c.Next()

		route := routeLabel(c)
		code := c.Writer.Status()
		status := strconv.Itoa(code)
		method := c.Request.Method

		pm.reqDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			pm.respSize.WithLabelValues(route).Observe(float64(size))
		}
		if code >= 400 {
			pm.reqErrors.WithLabelValues(method, route, status).Inc()
		}
	}
}

// RegisterMetricsEndpoint добавляет GET /metrics, отдающий метрики из g
func (pm *PrometheusMiddleware) RegisterMetricsEndpoint(r *gin.Engine, g prometheus.Gatherer) {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return UnmatchedRoute
}
