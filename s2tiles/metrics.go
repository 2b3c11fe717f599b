package s2tiles

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics tracks request and tile lookup counts for the serve command,
// trimmed down from the teacher's server_metrics.go (which additionally
// tracked a remote directory cache that s2tiles does not need: the archive
// engine reads directories directly from the RandomAccessStore, which is
// itself a cache when backed by mmapStore).
type metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
}

func register[K prometheus.Collector](logger *log.Logger, metric K) K {
	if err := prometheus.Register(metric); err != nil {
		logger.Println(err)
	}
	return metric
}

func createMetrics(logger *log.Logger) *metrics {
	namespace := "s2tiles"
	return &metrics{
		requests: register(logger, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of tile requests served",
		}, []string{"archive", "status"})),
		requestDuration: register(logger, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Tile request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"archive", "status"})),
		responseSize: register(logger, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "response_size_bytes",
			Help:      "Tile response size in bytes",
			Buckets:   []float64{1024, 5120, 10240, 51200, 102400, 512000, 1048576},
		}, []string{"archive", "status"})),
	}
}

type requestTracker struct {
	start   time.Time
	archive string
	m       *metrics
}

func (m *metrics) startRequest(archive string) *requestTracker {
	return &requestTracker{start: time.Now(), archive: archive, m: m}
}

func (r *requestTracker) finish(status string, size int) {
	r.m.requests.WithLabelValues(r.archive, status).Inc()
	r.m.requestDuration.WithLabelValues(r.archive, status).Observe(time.Since(r.start).Seconds())
	r.m.responseSize.WithLabelValues(r.archive, status).Observe(float64(size))
}
