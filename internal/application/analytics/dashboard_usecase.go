// Package analytics contiene los casos de uso de reportes: el dashboard de
// asignaciones por máquina y el reporte PDF de una máquina.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
)

// DashboardUseCase construye las vistas agregadas del libro de asignaciones.
//
// Fuente de datos: un único snapshot por petición (sin caché); la agregación
// la hace el motor sobre ese snapshot.
type DashboardUseCase struct {
	snapshots *inventory.SnapshotLoader
	engine    *inventory.Engine
	reports   ports.MachineReportGenerator
}

// NewDashboardUseCase construye el caso de uso. reports puede ser nil si no se generan PDF.
func NewDashboardUseCase(snapshots *inventory.SnapshotLoader, engine *inventory.Engine, reports ports.MachineReportGenerator) *DashboardUseCase {
	return &DashboardUseCase{snapshots: snapshots, engine: engine, reports: reports}
}

// Summary devuelve el resumen por máquina y los totales globales.
// withLines incluye las líneas de cada máquina para renderizar el detalle.
func (uc *DashboardUseCase) Summary(ctx context.Context, withLines bool) (*dto.MachineDashboardDTO, error) {
	snap, err := uc.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	agg := uc.engine.AggregateSnapshot(snap)
	out := &dto.MachineDashboardDTO{
		Machines:   make([]dto.MachineSummaryDTO, 0, len(agg.PerMachine)),
		Global:     inventory.ToGlobalSummaryDTO(agg.Global),
		SnapshotAt: snap.TakenAt,
	}
	for _, m := range agg.PerMachine {
		out.Machines = append(out.Machines, inventory.ToMachineSummaryDTO(m, withLines))
	}
	return out, nil
}

// MachineReport genera el PDF con las asignaciones de la máquina y su historial de stock.
func (uc *DashboardUseCase) MachineReport(ctx context.Context, machineID string) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("generador de reportes: %w", domain.ErrNotConfigured)
	}
	snap, err := uc.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	summary, items, found := uc.engine.MachineHistory(snap, machineID)
	if !found {
		return nil, domain.ErrNotFound
	}
	return uc.reports.GenerateMachineReport(ctx, inventory.ToMachineHistoryResponse(summary, items))
}
