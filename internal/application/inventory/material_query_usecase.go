package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
)

// MaterialQueryUseCase consultas de solo lectura sobre la lista de materiales.
type MaterialQueryUseCase struct {
	snapshots *SnapshotLoader
	engine    *Engine
	exporter  ports.MaterialExporter
	metrics   ports.MetricsRecorder
}

// NewMaterialQueryUseCase construye el caso de uso. exporter y metrics pueden ser nil.
func NewMaterialQueryUseCase(snapshots *SnapshotLoader, engine *Engine, exporter ports.MaterialExporter, metrics ports.MetricsRecorder) *MaterialQueryUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &MaterialQueryUseCase{snapshots: snapshots, engine: engine, exporter: exporter, metrics: metrics}
}

// Query busca, filtra, ordena y pagina los materiales sobre un snapshot nuevo.
func (uc *MaterialQueryUseCase) Query(ctx context.Context, params QueryParams) (*dto.MaterialListResponse, error) {
	snap, err := uc.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := uc.engine.Query(snap, params)
	uc.metrics.MaterialQuery(string(result.MatchType), result.Total)
	return ToMaterialListResponse(result), nil
}

// FilterOptions valores distintos disponibles para un filtro.
func (uc *MaterialQueryUseCase) FilterOptions(ctx context.Context, field string) ([]dto.FilterOptionDTO, error) {
	snap, err := uc.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := uc.engine.FilterOptions(snap, field)
	if err != nil {
		return nil, err
	}
	return toFilterOptionDTOs(opts), nil
}

// Export genera la hoja de cálculo de la página pedida (mismos filtros y orden que Query).
func (uc *MaterialQueryUseCase) Export(ctx context.Context, params QueryParams) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("exportador de materiales: %w", domain.ErrNotConfigured)
	}
	page, err := uc.Query(ctx, params)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportMaterials(ctx, page)
}
