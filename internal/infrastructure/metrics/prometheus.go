// Package metrics implementa ports.MetricsRecorder con Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
)

var _ ports.MetricsRecorder = (*Recorder)(nil)

const namespace = "inventario"

// Recorder registra las métricas en un registry propio (no el global) para que
// los tests puedan crear varios sin colisiones.
type Recorder struct {
	registry          *prometheus.Registry
	allocationUpdates *prometheus.CounterVec
	materialQueries   *prometheus.CounterVec
	queryResults      prometheus.Histogram
	snapshotDuration  prometheus.Histogram
	snapshotErrors    prometheus.Counter
}

// NewRecorder crea el registry con los colectores de Go y de proceso.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		allocationUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_updates_total",
			Help:      "Actualizaciones de stock asignado por resultado (applied, failed, rejected).",
		}, []string{"result"}),
		materialQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "material_queries_total",
			Help:      "Consultas de materiales por tipo de coincidencia (live, history, none).",
		}, []string{"match_type"}),
		queryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "material_query_results",
			Help:      "Total de materiales que coinciden con cada consulta.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		}),
		snapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_load_seconds",
			Help:      "Tiempo de carga de un snapshot del libro.",
			Buckets:   prometheus.DefBuckets,
		}),
		snapshotErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_load_errors_total",
			Help:      "Cargas de snapshot fallidas.",
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.allocationUpdates,
		r.materialQueries,
		r.queryResults,
		r.snapshotDuration,
		r.snapshotErrors,
	)
	return r
}

func (r *Recorder) AllocationUpdate(result string) {
	r.allocationUpdates.WithLabelValues(result).Inc()
}

func (r *Recorder) MaterialQuery(matchType string, total int) {
	if matchType == "" {
		matchType = "none"
	}
	r.materialQueries.WithLabelValues(matchType).Inc()
	r.queryResults.Observe(float64(total))
}

func (r *Recorder) SnapshotLoaded(elapsed time.Duration, err error) {
	if err != nil {
		r.snapshotErrors.Inc()
		return
	}
	r.snapshotDuration.Observe(elapsed.Seconds())
}

// Registry expone el registry (tests y colectores adicionales).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler endpoint de exposición en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
