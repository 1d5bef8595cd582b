package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Prometheus struct {
	recalculations     *prometheus.CounterVec
	recalcSkipped      prometheus.Counter
	emissions          *prometheus.CounterVec
	recalcDuration     prometheus.Histogram
	rosterSize         prometheus.Gauge
	nearbyCount        prometheus.Gauge
	useCaseTotal       *prometheus.CounterVec
	useCaseDuration    *prometheus.HistogramVec
	httpDuration       *prometheus.HistogramVec
	locationEvents     *prometheus.CounterVec
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	subscribersDropped prometheus.Counter
}

func NewPrometheusMetrics(reg prometheus.Registerer, serviceName string) *Prometheus {
	m := &Prometheus{
		recalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gonearby_recalculations_total",
			Help:        "Total proximity recalculations performed, by trigger.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"trigger"}),
		recalcSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "gonearby_recalculations_skipped_total",
			Help:        "Total ticks served from the result cache.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
		emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gonearby_emissions_total",
			Help:        "Total downstream emissions, by status (emitted|suppressed).",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		recalcDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "gonearby_recalculation_duration_seconds",
			Help:        "Latency of a full distance/filter/score/sort pass.",
			Buckets:     []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
		rosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "gonearby_roster_size",
			Help:        "Size of the last roster received from upstream.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
		nearbyCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "gonearby_nearby_friends",
			Help:        "Entries in the last emitted result set.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
		useCaseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_usecase_total",
			Help:        "Total number of Use Case executions.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		useCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_usecase_duration_seconds",
			Help:        "Use Case execution latency.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_http_duration_seconds",
			Help:        "Duration of HTTP requests.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status_code"}),
		locationEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gonearby_location_events_processed_total",
			Help:        "Total friend location events consumed, by status.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_cache_hits_total",
			Help:        "Total cache hits.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"cache_type"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_cache_misses_total",
			Help:        "Total cache misses.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"cache_type"}),
		subscribersDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "gonearby_subscriber_snapshots_dropped_total",
			Help:        "Snapshots dropped because a subscriber buffer was full.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
	}

	reg.MustRegister(
		m.recalculations,
		m.recalcSkipped,
		m.emissions,
		m.recalcDuration,
		m.rosterSize,
		m.nearbyCount,
		m.useCaseTotal,
		m.useCaseDuration,
		m.httpDuration,
		m.locationEvents,
		m.cacheHits,
		m.cacheMisses,
		m.subscribersDropped,
	)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (p *Prometheus) RecordRecalculation(trigger string) {
	p.recalculations.WithLabelValues(trigger).Inc()
}

func (p *Prometheus) RecordRecalculationSkipped() {
	p.recalcSkipped.Inc()
}

func (p *Prometheus) RecordEmission(status string) {
	p.emissions.WithLabelValues(status).Inc()
}

func (p *Prometheus) ObserveRecalculationDuration(duration time.Duration) {
	p.recalcDuration.Observe(duration.Seconds())
}

func (p *Prometheus) SetRosterSize(size int) {
	p.rosterSize.Set(float64(size))
}

func (p *Prometheus) SetNearbyCount(count int) {
	p.nearbyCount.Set(float64(count))
}

func (p *Prometheus) RecordUseCaseExecution(useCase string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.useCaseTotal.WithLabelValues(useCase, status).Inc()
	p.useCaseDuration.WithLabelValues(useCase, status).Observe(duration.Seconds())
}

func (p *Prometheus) ObserveHTTPRequestDuration(method, path, code string, duration float64) {
	p.httpDuration.WithLabelValues(method, path, code).Observe(duration)
}

func (p *Prometheus) RecordLocationEventProcessed(status string) {
	p.locationEvents.WithLabelValues(status).Inc()
}

func (p *Prometheus) IncCacheHit(cacheType string) {
	p.cacheHits.WithLabelValues(cacheType).Inc()
}

func (p *Prometheus) IncCacheMiss(cacheType string) {
	p.cacheMisses.WithLabelValues(cacheType).Inc()
}

func (p *Prometheus) IncSubscriberDropped() {
	p.subscribersDropped.Inc()
}
