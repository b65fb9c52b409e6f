package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación del puerto AllocationRepository (usable con pool o tx).
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador de asignaciones.
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `
	id, material_id, machine_id, material_reference, material_description,
	machine_name, machine_description, machine_status, allocated_stock, created_at, updated_at`

func scanAllocation(row pgx.Row) (*entity.Allocation, error) {
	var a entity.Allocation
	err := row.Scan(
		&a.ID, &a.MaterialID, &a.MachineID, &a.Material.Reference, &a.Material.Description,
		&a.Machine.Name, &a.Machine.Description, &a.Machine.Status, &a.AllocatedStock, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta la asignación; el par (material, máquina) repetido devuelve domain.ErrDuplicate.
func (r *AllocationRepo) Create(ctx context.Context, a *entity.Allocation) error {
	query := `
		INSERT INTO allocations (id, material_id, machine_id, material_reference, material_description,
			machine_name, machine_description, machine_status, allocated_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.MaterialID, a.MachineID, a.Material.Reference, a.Material.Description,
		a.Machine.Name, a.Machine.Description, a.Machine.Status, a.AllocatedStock, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert allocation: %w", err)
	}
	for _, h := range a.History {
		if err := r.insertHistory(ctx, a.ID, h); err != nil {
			return err
		}
	}
	return nil
}

func (r *AllocationRepo) GetByID(ctx context.Context, id string) (*entity.Allocation, error) {
	return r.get(ctx, `SELECT `+allocationColumns+` FROM allocations WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la asignación hasta el fin de la transacción.
func (r *AllocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Allocation, error) {
	return r.get(ctx, `SELECT `+allocationColumns+` FROM allocations WHERE id = $1 FOR UPDATE`, id)
}

func (r *AllocationRepo) get(ctx context.Context, query, id string) (*entity.Allocation, error) {
	a, err := scanAllocation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	if err := r.loadHistory(ctx, []*entity.Allocation{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// AppendStockChange guarda el stock asignado y agrega la entrada al historial.
func (r *AllocationRepo) AppendStockChange(ctx context.Context, a *entity.Allocation, change entity.StockChange) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE allocations SET allocated_stock = $2, updated_at = $3 WHERE id = $1`,
		a.ID, a.AllocatedStock, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.insertHistory(ctx, a.ID, change)
}

func (r *AllocationRepo) insertHistory(ctx context.Context, allocationID string, h entity.StockChange) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO allocation_history (allocation_id, date, previous_stock, new_stock, comment)
		VALUES ($1, $2, $3, $4, $5)`,
		allocationID, h.Date, h.PreviousStock, h.NewStock, h.Comment,
	)
	if err != nil {
		return fmt.Errorf("insert allocation history: %w", err)
	}
	return nil
}

func (r *AllocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM allocations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AllocationRepo) List(ctx context.Context) ([]entity.Allocation, error) {
	return r.list(ctx, `SELECT `+allocationColumns+` FROM allocations ORDER BY created_at, id`)
}

func (r *AllocationRepo) ListByMachine(ctx context.Context, machineID string) ([]entity.Allocation, error) {
	return r.list(ctx, `SELECT `+allocationColumns+` FROM allocations WHERE machine_id = $1 ORDER BY created_at, id`, machineID)
}

func (r *AllocationRepo) ListByMaterial(ctx context.Context, materialID string) ([]entity.Allocation, error) {
	return r.list(ctx, `SELECT `+allocationColumns+` FROM allocations WHERE material_id = $1 ORDER BY created_at, id`, materialID)
}

func (r *AllocationRepo) list(ctx context.Context, query string, args ...any) ([]entity.Allocation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	var list []*entity.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	if err := r.loadHistory(ctx, list); err != nil {
		return nil, err
	}
	out := make([]entity.Allocation, 0, len(list))
	for _, a := range list {
		out = append(out, *a)
	}
	return out, nil
}

// loadHistory completa History de las asignaciones en orden de inserción.
func (r *AllocationRepo) loadHistory(ctx context.Context, list []*entity.Allocation) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Allocation, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
		byID[a.ID] = a
	}
	rows, err := r.q.Query(ctx, `
		SELECT allocation_id, date, previous_stock, new_stock, comment
		FROM allocation_history
		WHERE allocation_id = ANY($1)
		ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("list allocation history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			allocationID string
			h            entity.StockChange
		)
		if err := rows.Scan(&allocationID, &h.Date, &h.PreviousStock, &h.NewStock, &h.Comment); err != nil {
			return fmt.Errorf("scan allocation history: %w", err)
		}
		if a := byID[allocationID]; a != nil {
			a.History = append(a.History, h)
		}
	}
	return rows.Err()
}
