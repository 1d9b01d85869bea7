package chunk

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Метрики подгрузки чанков:
// * zoneworld_chunk_build_duration_seconds{lod}: histogram
// * zoneworld_chunk_instances{material}: histogram числа экземпляров на чанк
// * zoneworld_chunk_syncs_total{result}: counter (published/stale/cancelled/idle)
// * zoneworld_chunks_loaded: gauge
var (
	buildDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zoneworld",
		Subsystem: "chunk",
		Name:      "build_duration_seconds",
		Help:      "Длительность построения геометрии одного чанка.",
		Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"lod"})

	instanceCount = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zoneworld",
		Subsystem: "chunk",
		Name:      "instances",
		Help:      "Число экземпляров геометрии в построенном чанке.",
		Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
	}, []string{"material"})

	syncTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zoneworld",
		Subsystem: "chunk",
		Name:      "syncs_total",
		Help:      "Число синхронизаций сцены по результату.",
	}, []string{"result"})

	loadedChunks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "zoneworld",
		Subsystem: "chunk",
		Name:      "loaded",
		Help:      "Количество чанков в опубликованной сцене.",
	})
)

// Результаты синхронизации для syncs_total
const (
	syncPublished = "published"
	syncStale     = "stale"
	syncCancelled = "cancelled"
	syncIdle      = "idle"
)

func init() {
	prometheus.MustRegister(buildDuration, instanceCount, syncTotal, loadedChunks)
}
