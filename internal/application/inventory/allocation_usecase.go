package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	stock "github.com/jhoicas/Inventario-maquinas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
	"github.com/jhoicas/Inventario-maquinas/pkg/logger"
)

// Resultado de validación registrado en métricas cuando la solicitud no llega a pending.
const updateRejected = "rejected"

// AllocationUseCase casos de uso del libro de asignaciones. Las escrituras pasan por
// TxRunner con bloqueo de fila; las vistas se recalculan desde un snapshot nuevo.
type AllocationUseCase struct {
	txRunner    TxRunner
	allocations repository.AllocationRepository
	materials   repository.MaterialRepository
	machines    repository.MachineRepository
	snapshots   *SnapshotLoader
	engine      *Engine
	metrics     ports.MetricsRecorder
	log         *logger.Logger
	now         func() time.Time
}

// NewAllocationUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewAllocationUseCase(
	txRunner TxRunner,
	allocations repository.AllocationRepository,
	materials repository.MaterialRepository,
	machines repository.MachineRepository,
	snapshots *SnapshotLoader,
	engine *Engine,
	metrics ports.MetricsRecorder,
	log *logger.Logger,
) *AllocationUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AllocationUseCase{
		txRunner:    txRunner,
		allocations: allocations,
		materials:   materials,
		machines:    machines,
		snapshots:   snapshots,
		engine:      engine,
		metrics:     metrics,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List devuelve todas las asignaciones.
func (uc *AllocationUseCase) List(ctx context.Context) (*dto.AllocationListResponse, error) {
	list, err := uc.allocations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.AllocationListResponse{Items: make([]dto.AllocationResponse, 0, len(list)), Total: len(list)}
	for i := range list {
		out.Items = append(out.Items, dto.ToAllocationResponse(&list[i]))
	}
	return out, nil
}

// GetByID obtiene una asignación; domain.ErrNotFound si no existe.
func (uc *AllocationUseCase) GetByID(ctx context.Context, id string) (*dto.AllocationResponse, error) {
	a, err := uc.allocations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToAllocationResponse(a)
	return &out, nil
}

// Create asigna stock de un material a una máquina. Copia la referencia y
// descripción del material y los datos de la máquina para visualización.
// domain.ErrDuplicate si el par ya tiene asignación.
func (uc *AllocationUseCase) Create(ctx context.Context, in dto.CreateAllocationRequest) (*dto.AllocationResponse, error) {
	if strings.TrimSpace(in.MaterialID) == "" || strings.TrimSpace(in.MachineID) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.AllocatedStock == nil || *in.AllocatedStock < 0 {
		return nil, domain.ErrInvalidStock
	}
	machine, err := uc.machines.GetByID(ctx, in.MachineID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}

	var created entity.Allocation
	err = uc.txRunner.Run(ctx, func(materials repository.MaterialRepository, allocations repository.AllocationRepository) error {
		material, err := materials.GetByID(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		a, err := stock.NewAllocation(uuid.New().String(), material, machine, *in.AllocatedStock, uc.now())
		if err != nil {
			return err
		}
		if err := allocations.Create(ctx, &a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("allocation_id", created.ID).
		Str("material_id", created.MaterialID).
		Str("machine_id", created.MachineID).
		Int("allocated_stock", created.AllocatedStock).
		Msg("asignación creada")
	out := dto.ToAllocationResponse(&created)
	return &out, nil
}

// UpdateStock recorre idle → pending → applied|failed. La validación rechaza la
// solicitud antes de pending. En pending se bloquea la asignación, el stock previo
// se lee de lo almacenado y se agrega exactamente una entrada al historial; ante
// cualquier error la transacción se revierte y no se persiste nada.
func (uc *AllocationUseCase) UpdateStock(ctx context.Context, id string, in dto.UpdateAllocationRequest) (*dto.UpdateAllocationResponse, error) {
	if in.AllocatedStock == nil {
		uc.metrics.AllocationUpdate(updateRejected)
		return nil, domain.ErrInvalidStock
	}
	update := stock.StockUpdate{
		AllocationID: strings.TrimSpace(id),
		NewStock:     *in.AllocatedStock,
		Comment:      strings.TrimSpace(in.Comment),
	}
	if err := update.Validate(); err != nil {
		uc.metrics.AllocationUpdate(updateRejected)
		return nil, err
	}

	log := uc.log.With().Str("allocation_id", update.AllocationID).Logger()
	log.Debug().Str("state", string(stock.UpdatePending)).Int("new_stock", update.NewStock).Msg("actualizando stock asignado")

	var (
		updated entity.Allocation
		entry   entity.StockChange
	)
	err := uc.txRunner.Run(ctx, func(_ repository.MaterialRepository, allocations repository.AllocationRepository) error {
		current, err := allocations.GetForUpdate(ctx, update.AllocationID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		next, change, err := stock.ApplyStockUpdate(*current, update, uc.now())
		if err != nil {
			return err
		}
		if err := allocations.AppendStockChange(ctx, &next, change); err != nil {
			return err
		}
		updated, entry = next, change
		return nil
	})
	if err != nil {
		uc.metrics.AllocationUpdate(string(stock.UpdateFailed))
		ev := log.Warn()
		if !errors.Is(err, domain.ErrNotFound) {
			ev = log.Error()
		}
		ev.Err(err).Str("state", string(stock.UpdateFailed)).Msg("actualización de stock asignado fallida")
		return nil, err
	}

	uc.metrics.AllocationUpdate(string(stock.UpdateApplied))
	log.Info().
		Str("state", string(stock.UpdateApplied)).
		Int("previous_stock", entry.PreviousStock).
		Int("new_stock", entry.NewStock).
		Msg("stock asignado actualizado")
	return &dto.UpdateAllocationResponse{
		State:      string(stock.UpdateApplied),
		Allocation: dto.ToAllocationResponse(&updated),
		Entry:      dto.ToStockChange(entry),
	}, nil
}

// Delete elimina una sola asignación; el material y la máquina no cambian.
func (uc *AllocationUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(_ repository.MaterialRepository, allocations repository.AllocationRepository) error {
		a, err := allocations.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		return allocations.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("allocation_id", id).Msg("asignación eliminada")
	return nil
}

// MachineHistory historial de stock de cada material asignado a la máquina.
func (uc *AllocationUseCase) MachineHistory(ctx context.Context, machineID string) (*dto.MachineHistoryResponse, error) {
	snap, err := uc.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	summary, items, found := uc.engine.MachineHistory(snap, machineID)
	if !found {
		return nil, domain.ErrNotFound
	}
	return ToMachineHistoryResponse(summary, items), nil
}
