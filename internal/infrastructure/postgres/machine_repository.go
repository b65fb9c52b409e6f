package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

var _ repository.MachineRepository = (*MachineRepo)(nil)

// MachineRepo acceso de solo lectura a la tabla machines.
type MachineRepo struct {
	q Querier
}

// NewMachineRepository construye el adaptador de máquinas.
func NewMachineRepository(q Querier) *MachineRepo {
	return &MachineRepo{q: q}
}

func (r *MachineRepo) GetByID(ctx context.Context, id string) (*entity.Machine, error) {
	var m entity.Machine
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, status FROM machines WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Description, &m.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine: %w", err)
	}
	return &m, nil
}

func (r *MachineRepo) List(ctx context.Context) ([]entity.Machine, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, status FROM machines ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()
	var list []entity.Machine
	for rows.Next() {
		var m entity.Machine
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Status); err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
