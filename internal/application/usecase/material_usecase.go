package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	stock "github.com/jhoicas/Inventario-maquinas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
	"github.com/jhoicas/Inventario-maquinas/pkg/logger"
)

// MaterialUseCase escrituras del libro de materiales. Cada actualización agrega una
// entrada al historial de cambios; un cambio de referencia agrega además la
// referencia anterior al historial de referencias.
type MaterialUseCase struct {
	txRunner    inventory.TxRunner
	materials   repository.MaterialRepository
	allocations repository.AllocationRepository
	machines    repository.MachineRepository
	refs        repository.ReferenceRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewMaterialUseCase construye el caso de uso. log puede ser nil.
func NewMaterialUseCase(
	txRunner inventory.TxRunner,
	materials repository.MaterialRepository,
	allocations repository.AllocationRepository,
	machines repository.MachineRepository,
	refs repository.ReferenceRepository,
	log *logger.Logger,
) *MaterialUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MaterialUseCase{
		txRunner:    txRunner,
		materials:   materials,
		allocations: allocations,
		machines:    machines,
		refs:        refs,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create registra un material nuevo. domain.ErrDuplicate si la referencia ya existe.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	now := uc.now()
	m := &entity.Material{
		ID:           uuid.New().String(),
		Reference:    strings.TrimSpace(in.Reference),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		LocationID:   in.LocationID,
		SupplierID:   in.SupplierID,
		CurrentStock: in.CurrentStock,
		MinimumStock: in.MinimumStock,
		OrderLot:     in.OrderLot,
		Critical:     in.Critical,
		Consumable:   in.Consumable,
		Price:        in.Price,
		MachineIDs:   dedupe(in.MachineIDs),
		Comment:      in.Comment,
		Photo:        in.Photo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := stock.ValidateMaterial(m); err != nil {
		return nil, err
	}
	cat, err := uc.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if err := cat.check(m); err != nil {
		return nil, err
	}
	stock.RecordChange(m, in.CreatedBy, "material creado", now)
	if err := uc.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("material_id", m.ID).Str("reference", m.Reference).Msg("material creado")
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// GetByID devuelve el material con su estado derivado, nombres de catálogo y asignaciones.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialDetailResponse, error) {
	m, err := uc.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	allocs, err := uc.allocations.ListByMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.MaterialDetailResponse{
		MaterialResponse: dto.ToMaterialResponse(m),
		Allocations:      make([]dto.AllocationResponse, 0, len(allocs)),
	}
	if err := uc.resolveNames(ctx, &out.MaterialResponse); err != nil {
		return nil, err
	}
	for i := range allocs {
		out.Allocations = append(out.Allocations, dto.ToAllocationResponse(&allocs[i]))
	}
	return out, nil
}

// Update aplica los campos no nulos. Si nada cambia no se escribe ni se agrega historial.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	// Los catálogos se leen antes de abrir la transacción.
	cat, err := uc.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	var updated *entity.Material
	err = uc.txRunner.Run(ctx, func(materials repository.MaterialRepository, _ repository.AllocationRepository) error {
		m, err := materials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		before := m.Clone()
		now := uc.now()

		refChanged := in.Reference != nil && stock.ChangeReference(m, *in.Reference, in.ReferenceComment, now)
		applyMaterialUpdate(m, in)
		if err := stock.ValidateMaterial(m); err != nil {
			return err
		}
		if err := cat.check(m); err != nil {
			return err
		}

		desc := stock.DescribeChanges(&before, m)
		if desc == "" {
			updated = m
			return nil
		}
		m.UpdatedAt = now
		if err := materials.Update(ctx, m); err != nil {
			return err
		}
		if refChanged {
			if err := materials.AppendReferenceChange(ctx, m.ID, m.ReferenceHistory[len(m.ReferenceHistory)-1]); err != nil {
				return err
			}
		}
		stock.RecordChange(m, in.ChangedBy, desc, now)
		if err := materials.AppendMaterialChange(ctx, m.ID, m.MaterialHistory[len(m.MaterialHistory)-1]); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("material_id", id).Str("changed_by", in.ChangedBy).Msg("material actualizado")
	out := dto.ToMaterialResponse(updated)
	return &out, nil
}

// Delete elimina el material. domain.ErrConflict si aún tiene asignaciones.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(materials repository.MaterialRepository, allocations repository.AllocationRepository) error {
		m, err := materials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		allocs, err := allocations.ListByMaterial(ctx, id)
		if err != nil {
			return err
		}
		if len(allocs) > 0 {
			return domain.ErrConflict
		}
		return materials.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("material_id", id).Msg("material eliminado")
	return nil
}

// RemoveReferenceChange elimina explícitamente la entrada index (0 = más antigua)
// del historial de referencias y lo deja registrado en el historial de cambios.
func (uc *MaterialUseCase) RemoveReferenceChange(ctx context.Context, id string, index int, changedBy string) (*dto.MaterialResponse, error) {
	var updated *entity.Material
	err := uc.txRunner.Run(ctx, func(materials repository.MaterialRepository, _ repository.AllocationRepository) error {
		m, err := materials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if index < 0 || index >= len(m.ReferenceHistory) {
			return domain.ErrNotFound
		}
		removed := m.ReferenceHistory[index].OldReference
		if err := stock.RemoveReferenceChange(m, index); err != nil {
			return err
		}
		if err := materials.DeleteReferenceChange(ctx, id, index); err != nil {
			return err
		}
		now := uc.now()
		stock.RecordChange(m, changedBy, fmt.Sprintf("referenceHistory: eliminada %q", removed), now)
		if err := materials.AppendMaterialChange(ctx, id, m.MaterialHistory[len(m.MaterialHistory)-1]); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("material_id", id).Int("index", index).Msg("referencia histórica eliminada")
	out := dto.ToMaterialResponse(updated)
	return &out, nil
}

func applyMaterialUpdate(m *entity.Material, in dto.UpdateMaterialRequest) {
	setString(&m.Manufacturer, in.Manufacturer, true)
	setString(&m.Description, in.Description, false)
	setString(&m.CategoryID, in.CategoryID, false)
	setString(&m.LocationID, in.LocationID, false)
	setString(&m.SupplierID, in.SupplierID, false)
	setString(&m.Comment, in.Comment, false)
	setString(&m.Photo, in.Photo, false)
	if in.CurrentStock != nil {
		m.CurrentStock = *in.CurrentStock
	}
	if in.MinimumStock != nil {
		m.MinimumStock = *in.MinimumStock
	}
	if in.OrderLot != nil {
		m.OrderLot = *in.OrderLot
	}
	if in.Critical != nil {
		m.Critical = *in.Critical
	}
	if in.Consumable != nil {
		m.Consumable = *in.Consumable
	}
	if in.Price != nil {
		m.Price = *in.Price
	}
	if in.MachineIDs != nil {
		m.MachineIDs = dedupe(in.MachineIDs)
	}
}

func setString(dst *string, v *string, trim bool) {
	if v == nil {
		return
	}
	if trim {
		*dst = strings.TrimSpace(*v)
		return
	}
	*dst = *v
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// check verifica que categoría, ubicación, proveedor y máquinas existan.
func (c catalog) check(m *entity.Material) error {
	if m.CategoryID != "" && !c.has(c.categories, m.CategoryID) {
		return domain.ErrInvalidInput
	}
	if m.LocationID != "" && !c.has(c.locations, m.LocationID) {
		return domain.ErrInvalidInput
	}
	if m.SupplierID != "" && !c.has(c.suppliers, m.SupplierID) {
		return domain.ErrInvalidInput
	}
	for _, id := range m.MachineIDs {
		if !c.has(c.machines, id) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func (uc *MaterialUseCase) resolveNames(ctx context.Context, out *dto.MaterialResponse) error {
	names, err := uc.loadCatalog(ctx)
	if err != nil {
		return err
	}
	out.CategoryName = names.categories[out.CategoryID]
	out.LocationName = names.locations[out.LocationID]
	out.SupplierName = names.suppliers[out.SupplierID]
	return nil
}

// catalog nombres por id de los catálogos y máquinas existentes.
type catalog struct {
	categories map[string]string
	locations  map[string]string
	suppliers  map[string]string
	machines   map[string]string
}

func (catalog) has(m map[string]string, id string) bool {
	_, ok := m[id]
	return ok
}

func (uc *MaterialUseCase) loadCatalog(ctx context.Context) (catalog, error) {
	cats, err := uc.refs.ListCategories(ctx)
	if err != nil {
		return catalog{}, err
	}
	locs, err := uc.refs.ListLocations(ctx)
	if err != nil {
		return catalog{}, err
	}
	sups, err := uc.refs.ListSuppliers(ctx)
	if err != nil {
		return catalog{}, err
	}
	machines, err := uc.machines.List(ctx)
	if err != nil {
		return catalog{}, err
	}
	c := catalog{
		categories: make(map[string]string, len(cats)),
		locations:  make(map[string]string, len(locs)),
		suppliers:  make(map[string]string, len(sups)),
		machines:   make(map[string]string, len(machines)),
	}
	for _, x := range cats {
		c.categories[x.ID] = x.Name
	}
	for _, x := range locs {
		c.locations[x.ID] = x.Name
	}
	for _, x := range sups {
		c.suppliers[x.ID] = x.Name
	}
	for _, x := range machines {
		c.machines[x.ID] = x.Name
	}
	return c, nil
}
