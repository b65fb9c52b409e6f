package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewStore()
	require.NoError(t, s.Seed(Seed{
		Categories: []entity.Category{{ID: "cat-1", Name: "Rodamientos"}},
		Machines:   []entity.Machine{{ID: "mx", Name: "Torno X", Status: entity.MachineStatusActive}},
		Materials: []entity.Material{
			{ID: "m1", Reference: "R-1", CurrentStock: 10, MinimumStock: 5, Price: decimal.NewFromInt(3), CreatedAt: now, UpdatedAt: now},
		},
		Allocations: []entity.Allocation{
			{ID: "a1", MaterialID: "m1", MachineID: "mx", AllocatedStock: 50, CreatedAt: now, UpdatedAt: now},
		},
	}))
	return s
}

func TestRun_ErrorDescartaCambios(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(_ repository.MaterialRepository, allocs repository.AllocationRepository) error {
		a, err := allocs.GetForUpdate(ctx, "a1")
		require.NoError(t, err)
		a.AllocatedStock = 30
		a.UpdatedAt = time.Now()
		require.NoError(t, allocs.AppendStockChange(ctx, a, entity.StockChange{PreviousStock: 50, NewStock: 30}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	a, err := s.Allocations().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 50, a.AllocatedStock)
	assert.Empty(t, a.History)
}

func TestRun_ExitoPublicaCambios(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	err := s.Run(ctx, func(_ repository.MaterialRepository, allocs repository.AllocationRepository) error {
		a, err := allocs.GetForUpdate(ctx, "a1")
		if err != nil {
			return err
		}
		a.AllocatedStock = 30
		return allocs.AppendStockChange(ctx, a, entity.StockChange{PreviousStock: 50, NewStock: 30, Comment: "ajuste"})
	})
	require.NoError(t, err)

	a, err := s.Allocations().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 30, a.AllocatedStock)
	require.Len(t, a.History, 1)
	assert.Equal(t, "ajuste", a.History[0].Comment)
}

func TestRun_ContextoCanceladoNoEjecuta(t *testing.T) {
	s := seededStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.MaterialRepository, repository.AllocationRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestLoadSnapshot_EsUnaCopia(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Materials, 1)
	require.Len(t, snap.Allocations, 1)
	assert.False(t, snap.TakenAt.IsZero())

	snap.Materials[0].CurrentStock = 0
	snap.Allocations[0].History = append(snap.Allocations[0].History, entity.StockChange{NewStock: 1})

	m, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 10, m.CurrentStock)
	a, err := s.Allocations().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, a.History)
}

func TestAllocationRepo_CreateDuplicadoPorPar(t *testing.T) {
	s := seededStore(t)
	err := s.Allocations().Create(context.Background(), &entity.Allocation{ID: "a2", MaterialID: "m1", MachineID: "mx"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAllocationRepo_DeleteSoloUna(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	require.NoError(t, s.Allocations().Delete(ctx, "a1"))

	list, err := s.Allocations().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	m, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.NotNil(t, m)

	assert.ErrorIs(t, s.Allocations().Delete(ctx, "a1"), domain.ErrNotFound)
}

func TestMaterialRepo_ReferenciaDuplicada(t *testing.T) {
	s := seededStore(t)
	err := s.Materials().Create(context.Background(), &entity.Material{ID: "m2", Reference: "R-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterialRepo_UpdateConservaHistoriales(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	mats := s.Materials()
	require.NoError(t, mats.AppendReferenceChange(ctx, "m1", entity.ReferenceChange{OldReference: "R-0"}))

	m, err := mats.GetByID(ctx, "m1")
	require.NoError(t, err)
	m.Description = "nuevo"
	m.ReferenceHistory = nil
	require.NoError(t, mats.Update(ctx, m))

	got, err := mats.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "nuevo", got.Description)
	require.Len(t, got.ReferenceHistory, 1)
	assert.Equal(t, "R-0", got.ReferenceHistory[0].OldReference)
}

func TestMaterialRepo_DeleteReferenceChangeFueraDeRango(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	assert.ErrorIs(t, s.Materials().DeleteReferenceChange(ctx, "m1", 0), domain.ErrNotFound)

	require.NoError(t, s.Materials().AppendReferenceChange(ctx, "m1", entity.ReferenceChange{OldReference: "A"}))
	require.NoError(t, s.Materials().AppendReferenceChange(ctx, "m1", entity.ReferenceChange{OldReference: "B"}))
	require.NoError(t, s.Materials().DeleteReferenceChange(ctx, "m1", 0))

	m, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, m.ReferenceHistory, 1)
	assert.Equal(t, "B", m.ReferenceHistory[0].OldReference)
}

func TestSeed_AsignacionSinMaterialFallaCompleto(t *testing.T) {
	s := NewStore()
	err := s.Seed(Seed{
		Machines:    []entity.Machine{{ID: "mx", Name: "X"}},
		Allocations: []entity.Allocation{{ID: "a1", MaterialID: "nope", MachineID: "mx"}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	machines, err := s.Machines().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, machines)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"categories": [{"id": "c1", "name": "Filtros"}],
		"machines": [{"id": "mx", "name": "Prensa", "status": "desconocido"}],
		"materials": [{"id": "m1", "reference": "F-10", "description": "Filtro", "current_stock": 3, "minimum_stock": 5,
			"price": "12.50", "machine_ids": ["mx"], "reference_history": [{"old_reference": "F-09", "changed_date": "2023-01-02T00:00:00Z"}]}],
		"allocations": [{"id": "a1", "material_id": "m1", "machine_id": "mx", "allocated_stock": 2}]
	}`), 0o600))

	s := NewStore()
	require.NoError(t, s.LoadSeedFile(path))

	ctx := context.Background()
	mc, err := s.Machines().GetByID(ctx, "mx")
	require.NoError(t, err)
	assert.Equal(t, entity.MachineStatusActive, mc.Status)

	m, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, m.Price.Equal(decimal.RequireFromString("12.5")))
	require.Len(t, m.ReferenceHistory, 1)

	a, err := s.Allocations().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "F-10", a.Material.Reference)
	assert.Equal(t, "Prensa", a.Machine.Name)
	assert.Empty(t, a.History)
}
