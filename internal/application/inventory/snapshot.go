package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

// SnapshotLoader carga snapshots y registra su duración. Cada vista se calcula
// con un snapshot nuevo; no hay caché.
type SnapshotLoader struct {
	reader  repository.SnapshotReader
	metrics ports.MetricsRecorder
}

// NewSnapshotLoader construye el cargador. metrics puede ser nil.
func NewSnapshotLoader(reader repository.SnapshotReader, metrics ports.MetricsRecorder) *SnapshotLoader {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &SnapshotLoader{reader: reader, metrics: metrics}
}

// Load lee todas las colecciones en un mismo instante.
func (l *SnapshotLoader) Load(ctx context.Context) (*repository.Snapshot, error) {
	start := time.Now()
	snap, err := l.reader.LoadSnapshot(ctx)
	l.metrics.SnapshotLoaded(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}
