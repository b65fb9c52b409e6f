package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/usecase"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/infrastructure/memory"
)

func newMaterialUseCase(t *testing.T) (*usecase.MaterialUseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Seed(memory.Seed{
		Categories: []entity.Category{{ID: "cat-1", Name: "Rodamientos"}},
		Locations:  []entity.Location{{ID: "loc-1", Name: "Estante A"}},
		Suppliers:  []entity.Supplier{{ID: "sup-1", Name: "Acme"}},
		Machines:   []entity.Machine{{ID: "mx", Name: "Torno"}},
		Materials: []entity.Material{
			{ID: "m1", Reference: "R-1", Description: "Rodamiento", CategoryID: "cat-1", CurrentStock: 4, MinimumStock: 5},
		},
		Allocations: []entity.Allocation{{ID: "a1", MaterialID: "m1", MachineID: "mx", AllocatedStock: 2}},
	}))
	uc := usecase.NewMaterialUseCase(s, s.Materials(), s.Allocations(), s.Machines(), s.References(), nil)
	return uc, s
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestMaterialCreate(t *testing.T) {
	uc, _ := newMaterialUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateMaterialRequest{
		Reference:    " F-10 ",
		Manufacturer: "Bosch",
		CategoryID:   "cat-1",
		SupplierID:   "sup-1",
		CurrentStock: 0,
		MinimumStock: 3,
		Price:        decimal.RequireFromString("9.90"),
		MachineIDs:   []string{"mx", "mx", ""},
		CreatedBy:    "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "F-10", created.Reference)
	assert.Equal(t, "out_of_stock", created.Status)
	assert.Equal(t, []string{"mx"}, created.MachineIDs)
	require.Len(t, created.MaterialHistory, 1)
	assert.Equal(t, "ana", created.MaterialHistory[0].ChangedBy)

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Reference: "F-10"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterialCreate_Validaciones(t *testing.T) {
	uc, _ := newMaterialUseCase(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.CreateMaterialRequest
		want error
	}{
		{"referencia vacía", dto.CreateMaterialRequest{Reference: "  "}, domain.ErrInvalidInput},
		{"stock negativo", dto.CreateMaterialRequest{Reference: "X", CurrentStock: -1}, domain.ErrInvalidStock},
		{"precio negativo", dto.CreateMaterialRequest{Reference: "X", Price: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
		{"categoría inexistente", dto.CreateMaterialRequest{Reference: "X", CategoryID: "nope"}, domain.ErrInvalidInput},
		{"máquina inexistente", dto.CreateMaterialRequest{Reference: "X", MachineIDs: []string{"nope"}}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMaterialUpdate_CambioDeReferenciaAgregaHistorial(t *testing.T) {
	uc, s := newMaterialUseCase(t)
	ctx := context.Background()

	res, err := uc.Update(ctx, "m1", dto.UpdateMaterialRequest{
		Reference:        strPtr("R-1B"),
		ReferenceComment: "cambio de proveedor",
		CurrentStock:     intPtr(9),
		ChangedBy:        "luis",
	})
	require.NoError(t, err)
	assert.Equal(t, "R-1B", res.Reference)
	assert.Equal(t, "in_stock", res.Status)

	stored, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, stored.ReferenceHistory, 1)
	assert.Equal(t, "R-1", stored.ReferenceHistory[0].OldReference)
	assert.Equal(t, "cambio de proveedor", stored.ReferenceHistory[0].Comment)
	require.Len(t, stored.MaterialHistory, 1)
	assert.Equal(t, "luis", stored.MaterialHistory[0].ChangedBy)
	assert.Contains(t, stored.MaterialHistory[0].Description, `reference: "R-1" → "R-1B"`)
	assert.Contains(t, stored.MaterialHistory[0].Description, "currentStock: 4 → 9")
}

func TestMaterialUpdate_SinCambiosNoAgregaHistorial(t *testing.T) {
	uc, s := newMaterialUseCase(t)
	ctx := context.Background()

	_, err := uc.Update(ctx, "m1", dto.UpdateMaterialRequest{Reference: strPtr("R-1"), CurrentStock: intPtr(4)})
	require.NoError(t, err)

	stored, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, stored.ReferenceHistory)
	assert.Empty(t, stored.MaterialHistory)
}

func TestMaterialUpdate_InvalidoNoPersisteNada(t *testing.T) {
	uc, s := newMaterialUseCase(t)
	ctx := context.Background()

	_, err := uc.Update(ctx, "m1", dto.UpdateMaterialRequest{Reference: strPtr("R-2"), MinimumStock: intPtr(-3)})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	stored, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "R-1", stored.Reference)
	assert.Empty(t, stored.ReferenceHistory)

	_, err = uc.Update(ctx, "nope", dto.UpdateMaterialRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterialDelete_ConAsignacionesEsConflicto(t *testing.T) {
	uc, s := newMaterialUseCase(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, "m1"), domain.ErrConflict)

	require.NoError(t, s.Allocations().Delete(ctx, "a1"))
	require.NoError(t, uc.Delete(ctx, "m1"))
	assert.ErrorIs(t, uc.Delete(ctx, "m1"), domain.ErrNotFound)
}

func TestMaterialRemoveReferenceChange(t *testing.T) {
	uc, s := newMaterialUseCase(t)
	ctx := context.Background()
	_, err := uc.Update(ctx, "m1", dto.UpdateMaterialRequest{Reference: strPtr("R-2")})
	require.NoError(t, err)
	_, err = uc.Update(ctx, "m1", dto.UpdateMaterialRequest{Reference: strPtr("R-3")})
	require.NoError(t, err)

	res, err := uc.RemoveReferenceChange(ctx, "m1", 0, "ana")
	require.NoError(t, err)
	require.Len(t, res.ReferenceHistory, 1)
	assert.Equal(t, "R-2", res.ReferenceHistory[0].OldReference)

	stored, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, stored.ReferenceHistory, 1)
	assert.Len(t, stored.MaterialHistory, 3)

	_, err = uc.RemoveReferenceChange(ctx, "m1", 5, "ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterialGetByID_Detalle(t *testing.T) {
	uc, _ := newMaterialUseCase(t)

	res, err := uc.GetByID(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "Rodamientos", res.CategoryName)
	assert.Equal(t, "low_stock", res.Status)
	require.Len(t, res.Allocations, 1)
	assert.Equal(t, "mx", res.Allocations[0].MachineID)

	_, err = uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReferenceUseCase_Listados(t *testing.T) {
	_, s := newMaterialUseCase(t)
	uc := usecase.NewReferenceUseCase(s.Machines(), s.References())
	ctx := context.Background()

	machines, err := uc.ListMachines(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.MachineResponse{{ID: "mx", Name: "Torno"}}, machines)

	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.NamedResponse{{ID: "cat-1", Name: "Rodamientos"}}, cats)

	locs, err := uc.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locs, 1)

	sups, err := uc.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme", sups[0].Name)
}
