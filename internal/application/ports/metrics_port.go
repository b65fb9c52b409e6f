package ports

import "time"

// MetricsRecorder puerto de métricas de los casos de uso (implementado con Prometheus en infraestructura).
type MetricsRecorder interface {
	// AllocationUpdate registra el estado final de una actualización de stock asignado
	// ("applied", "failed" o "rejected" si no pasó la validación).
	AllocationUpdate(result string)
	MaterialQuery(matchType string, total int)
	SnapshotLoaded(elapsed time.Duration, err error)
}

// NopMetrics implementación vacía para tests y entornos sin métricas.
type NopMetrics struct{}

func (NopMetrics) AllocationUpdate(string)             {}
func (NopMetrics) MaterialQuery(string, int)           {}
func (NopMetrics) SnapshotLoaded(time.Duration, error) {}
