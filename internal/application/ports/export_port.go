package ports

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
)

// MaterialExporter serializa una página ya filtrada y ordenada de materiales (xlsx).
type MaterialExporter interface {
	ExportMaterials(ctx context.Context, page *dto.MaterialListResponse) ([]byte, error)
}

// MachineReportGenerator genera el reporte PDF de las asignaciones de una máquina.
type MachineReportGenerator interface {
	GenerateMachineReport(ctx context.Context, report *dto.MachineHistoryResponse) ([]byte, error)
}
