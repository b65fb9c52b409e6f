package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-maquinas/internal/application/analytics"
	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/infrastructure/memory"
)

type stubReports struct {
	got *dto.MachineHistoryResponse
}

func (s *stubReports) GenerateMachineReport(_ context.Context, r *dto.MachineHistoryResponse) ([]byte, error) {
	s.got = r
	return []byte("%PDF"), nil
}

func newDashboard(t *testing.T, reports *stubReports) *analytics.DashboardUseCase {
	t.Helper()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s := memory.NewStore()
	require.NoError(t, s.Seed(memory.Seed{
		Machines: []entity.Machine{{ID: "x", Name: "Máquina X"}, {ID: "b", Name: "Bobinadora"}},
		Materials: []entity.Material{
			{ID: "crit", Reference: "C", CurrentStock: 20, MinimumStock: 10, Critical: true},
			{ID: "low", Reference: "L", CurrentStock: 5, MinimumStock: 10},
			{ID: "ok", Reference: "O", CurrentStock: 50, MinimumStock: 10},
		},
		Allocations: []entity.Allocation{
			{ID: "a1", MaterialID: "crit", MachineID: "x", AllocatedStock: 2, UpdatedAt: now},
			{ID: "a2", MaterialID: "low", MachineID: "x", AllocatedStock: 3, UpdatedAt: now},
			{ID: "a3", MaterialID: "ok", MachineID: "b", AllocatedStock: 7, UpdatedAt: now},
		},
	}))
	var gen ports.MachineReportGenerator
	if reports != nil {
		gen = reports
	}
	return analytics.NewDashboardUseCase(inventory.NewSnapshotLoader(s, nil), inventory.NewEngine(inventory.EngineConfig{}), gen)
}

func TestSummary_PorMaquinaYGlobal(t *testing.T) {
	uc := newDashboard(t, nil)

	res, err := uc.Summary(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, res.Machines, 2)
	assert.Equal(t, "Bobinadora", res.Machines[0].Name)
	x := res.Machines[1]
	assert.Equal(t, "Máquina X", x.Name)
	assert.Equal(t, 2, x.TotalMaterials)
	assert.Equal(t, 1, x.CriticalMaterials)
	assert.Equal(t, 1, x.LowStockMaterials)
	assert.Nil(t, x.Lines)

	assert.Equal(t, dto.GlobalSummaryDTO{
		TotalMachines:       2,
		TotalAllocations:    3,
		CriticalMaterials:   1,
		LowStockMaterials:   1,
		TotalAllocatedStock: 12,
	}, res.Global)
	assert.False(t, res.SnapshotAt.IsZero())
}

func TestSummary_ConLineas(t *testing.T) {
	res, err := newDashboard(t, nil).Summary(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, res.Machines[1].Lines, 2)
	assert.Equal(t, "critical", res.Machines[1].Lines[0].Status)
	assert.Equal(t, "low_stock", res.Machines[1].Lines[1].Status)
}

func TestMachineReport(t *testing.T) {
	reports := &stubReports{}
	uc := newDashboard(t, reports)

	pdf, err := uc.MachineReport(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	require.NotNil(t, reports.got)
	assert.Equal(t, "Máquina X", reports.got.Machine.Name)
	assert.Len(t, reports.got.Items, 2)

	_, err = uc.MachineReport(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMachineReport_SinGenerador(t *testing.T) {
	_, err := newDashboard(t, nil).MachineReport(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
