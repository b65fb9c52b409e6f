package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	stock "github.com/jhoicas/Inventario-maquinas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/infrastructure/memory"
)

type recordingMetrics struct {
	mu      sync.Mutex
	updates []string
	queries []string
	loads   int
}

func (m *recordingMetrics) AllocationUpdate(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, result)
}

func (m *recordingMetrics) MaterialQuery(matchType string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, matchType)
}

func (m *recordingMetrics) SnapshotLoaded(time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
}

func newLedger(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Seed(memory.Seed{
		Machines: []entity.Machine{
			{ID: "mx", Name: "Máquina X", Description: "Torno", Status: entity.MachineStatusActive},
			{ID: "my", Name: "Máquina Y", Status: entity.MachineStatusMaintenance},
		},
		Materials: []entity.Material{
			{ID: "m1", Reference: "R-1", Description: "Rodamiento", CurrentStock: 20, MinimumStock: 10, Critical: true},
			{ID: "m2", Reference: "R-2", Description: "Filtro", CurrentStock: 5, MinimumStock: 10},
		},
		Allocations: []entity.Allocation{
			{ID: "a1", MaterialID: "m1", MachineID: "mx", AllocatedStock: 50, CreatedAt: t0, UpdatedAt: t0},
			{ID: "a2", MaterialID: "m2", MachineID: "mx", AllocatedStock: 8, CreatedAt: t0, UpdatedAt: t0},
		},
	}))
	return s
}

func newAllocationUseCase(s *memory.Store, metrics *recordingMetrics) *inventory.AllocationUseCase {
	loader := inventory.NewSnapshotLoader(s, metrics)
	return inventory.NewAllocationUseCase(s, s.Allocations(), s.Materials(), s.Machines(), loader, newEngine(), metrics, nil)
}

func intPtr(n int) *int { return &n }

func TestUpdateStock_ComentarioAutomatico(t *testing.T) {
	s := newLedger(t)
	metrics := &recordingMetrics{}
	uc := newAllocationUseCase(s, metrics)
	ctx := context.Background()

	res, err := uc.UpdateStock(ctx, "a1", dto.UpdateAllocationRequest{AllocatedStock: intPtr(30)})
	require.NoError(t, err)

	assert.Equal(t, string(stock.UpdateApplied), res.State)
	assert.Equal(t, 50, res.Entry.PreviousStock)
	assert.Equal(t, 30, res.Entry.NewStock)
	assert.Equal(t, "Updated stock from 50 to 30", res.Entry.Comment)
	assert.Equal(t, 30, res.Allocation.AllocatedStock)
	assert.Equal(t, res.Entry.Date, res.Allocation.UpdatedAt)

	stored, err := s.Allocations().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 30, stored.AllocatedStock)
	require.Len(t, stored.History, 1)
	assert.True(t, stock.HistoryConsistent(*stored))
	assert.Equal(t, []string{"applied"}, metrics.updates)
}

func TestUpdateStock_ComentarioExplicito(t *testing.T) {
	uc := newAllocationUseCase(newLedger(t), &recordingMetrics{})

	res, err := uc.UpdateStock(context.Background(), "a1", dto.UpdateAllocationRequest{AllocatedStock: intPtr(45), Comment: "  consumo turno noche "})
	require.NoError(t, err)
	assert.Equal(t, "consumo turno noche", res.Entry.Comment)
}

func TestUpdateStock_ValidacionRechazaAntesDePending(t *testing.T) {
	tests := []struct {
		name string
		id   string
		in   dto.UpdateAllocationRequest
		want error
	}{
		{"stock ausente", "a1", dto.UpdateAllocationRequest{}, domain.ErrInvalidStock},
		{"stock negativo", "a1", dto.UpdateAllocationRequest{AllocatedStock: intPtr(-1)}, domain.ErrInvalidStock},
		{"id vacío", " ", dto.UpdateAllocationRequest{AllocatedStock: intPtr(3)}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLedger(t)
			metrics := &recordingMetrics{}
			uc := newAllocationUseCase(s, metrics)

			_, err := uc.UpdateStock(context.Background(), tt.id, tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, []string{"rejected"}, metrics.updates)

			stored, err := s.Allocations().GetByID(context.Background(), "a1")
			require.NoError(t, err)
			assert.Equal(t, 50, stored.AllocatedStock)
			assert.Empty(t, stored.History)
		})
	}
}

func TestUpdateStock_NoExisteFalla(t *testing.T) {
	metrics := &recordingMetrics{}
	uc := newAllocationUseCase(newLedger(t), metrics)

	_, err := uc.UpdateStock(context.Background(), "nope", dto.UpdateAllocationRequest{AllocatedStock: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"failed"}, metrics.updates)
}

func TestUpdateStock_HistorialEncadenado(t *testing.T) {
	s := newLedger(t)
	uc := newAllocationUseCase(s, &recordingMetrics{})
	ctx := context.Background()

	for _, n := range []int{30, 30, 0, 12} {
		_, err := uc.UpdateStock(ctx, "a1", dto.UpdateAllocationRequest{AllocatedStock: intPtr(n)})
		require.NoError(t, err)
	}

	stored, err := s.Allocations().GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, stored.History, 4)
	assert.Equal(t, 50, stored.History[0].PreviousStock)
	for i := 1; i < len(stored.History); i++ {
		assert.Equal(t, stored.History[i-1].NewStock, stored.History[i].PreviousStock)
	}
	assert.Equal(t, 12, stored.AllocatedStock)
	assert.True(t, stock.HistoryConsistent(*stored))
}

func TestUpdateStock_ConcurrenteSinHuecos(t *testing.T) {
	s := newLedger(t)
	uc := newAllocationUseCase(s, &recordingMetrics{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := uc.UpdateStock(ctx, "a1", dto.UpdateAllocationRequest{AllocatedStock: intPtr(n)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := s.Allocations().GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, stored.History, 25)
	for i := 1; i < len(stored.History); i++ {
		assert.Equal(t, stored.History[i-1].NewStock, stored.History[i].PreviousStock)
	}
	assert.Equal(t, stored.History[24].NewStock, stored.AllocatedStock)
}

func TestCreate_CopiaDatosYRechazaDuplicado(t *testing.T) {
	s := newLedger(t)
	uc := newAllocationUseCase(s, &recordingMetrics{})
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateAllocationRequest{MaterialID: "m1", MachineID: "my", AllocatedStock: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, "R-1", created.MaterialReference)
	assert.Equal(t, "Rodamiento", created.MaterialDescription)
	assert.Equal(t, "Máquina Y", created.MachineName)
	assert.Equal(t, entity.MachineStatusMaintenance, created.MachineStatus)
	assert.Empty(t, created.History)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	_, err = uc.Create(ctx, dto.CreateAllocationRequest{MaterialID: "m1", MachineID: "my", AllocatedStock: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newAllocationUseCase(newLedger(t), &recordingMetrics{})
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateAllocationRequest{MaterialID: "m1", MachineID: "my"})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
	_, err = uc.Create(ctx, dto.CreateAllocationRequest{MaterialID: "", MachineID: "my", AllocatedStock: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateAllocationRequest{MaterialID: "m1", MachineID: "zz", AllocatedStock: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, dto.CreateAllocationRequest{MaterialID: "zz", MachineID: "my", AllocatedStock: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_SoloLaAsignacion(t *testing.T) {
	s := newLedger(t)
	uc := newAllocationUseCase(s, &recordingMetrics{})
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "a1"))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "a2", list.Items[0].ID)

	machine, err := s.Machines().GetByID(ctx, "mx")
	require.NoError(t, err)
	assert.NotNil(t, machine)

	assert.ErrorIs(t, uc.Delete(ctx, "a1"), domain.ErrNotFound)
}

func TestMachineHistory_UseCase(t *testing.T) {
	s := newLedger(t)
	metrics := &recordingMetrics{}
	uc := newAllocationUseCase(s, metrics)
	ctx := context.Background()

	_, err := uc.UpdateStock(ctx, "a1", dto.UpdateAllocationRequest{AllocatedStock: intPtr(30)})
	require.NoError(t, err)

	res, err := uc.MachineHistory(ctx, "mx")
	require.NoError(t, err)
	assert.Equal(t, "Máquina X", res.Machine.Name)
	assert.Equal(t, 2, res.Machine.TotalMaterials)
	assert.Equal(t, 1, res.Machine.CriticalMaterials)
	assert.Equal(t, 1, res.Machine.LowStockMaterials)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "R-1", res.Items[0].Material.Reference)
	require.Len(t, res.Items[0].History, 1)
	assert.Equal(t, "Updated stock from 50 to 30", res.Items[0].History[0].Comment)
	assert.Equal(t, 1, metrics.loads)

	_, err = uc.MachineHistory(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
