package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so several apps (and tests) can coexist in one process.
// A nil *Recorder records nothing.
type Recorder struct {
	registry          *prometheus.Registry
	ShipmentsCreated  prometheus.Counter
	ShipmentsRejected *prometheus.CounterVec
	BatchesReceived   prometheus.Counter
	CacheLookups      *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ShipmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "warehouse",
			Name:      "shipments_created_total",
			Help:      "Shipments committed.",
		}),
		ShipmentsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warehouse",
			Name:      "shipments_rejected_total",
			Help:      "Shipment requests rolled back, by reason.",
		}, []string{"reason"}),
		BatchesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "warehouse",
			Name:      "batches_received_total",
			Help:      "Batches received into warehouse inventory.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warehouse",
			Name:      "read_cache_lookups_total",
			Help:      "Read cache lookups, by key and result.",
		}, []string{"key", "result"}),
	}
	r.registry.MustRegister(
		r.ShipmentsCreated,
		r.ShipmentsRejected,
		r.BatchesReceived,
		r.CacheLookups,
		collectors.NewGoCollector(),
	)
	return r
}

func (r *Recorder) ShipmentCreated() {
	if r == nil {
		return
	}
	r.ShipmentsCreated.Inc()
}

func (r *Recorder) ShipmentRejected(reason string) {
	if r == nil {
		return
	}
	r.ShipmentsRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) BatchReceived() {
	if r == nil {
		return
	}
	r.BatchesReceived.Inc()
}

func (r *Recorder) CacheLookup(key string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheLookups.WithLabelValues(key, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
