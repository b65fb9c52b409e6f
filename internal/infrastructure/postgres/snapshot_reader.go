package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

var _ repository.SnapshotReader = (*SnapshotReader)(nil)

// SnapshotReader lee todas las colecciones dentro de una transacción
// REPEATABLE READ de solo lectura, de modo que todas vean el mismo instante.
type SnapshotReader struct {
	pool *pgxpool.Pool
}

// NewSnapshotReader construye el lector con el pool.
func NewSnapshotReader(pool *pgxpool.Pool) *SnapshotReader {
	return &SnapshotReader{pool: pool}
}

func (r *SnapshotReader) LoadSnapshot(ctx context.Context) (*repository.Snapshot, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	snap := &repository.Snapshot{TakenAt: time.Now().UTC()}
	refs := NewReferenceRepository(tx)
	if snap.Materials, err = NewMaterialRepository(tx).List(ctx); err != nil {
		return nil, err
	}
	if snap.Machines, err = NewMachineRepository(tx).List(ctx); err != nil {
		return nil, err
	}
	if snap.Allocations, err = NewAllocationRepository(tx).List(ctx); err != nil {
		return nil, err
	}
	if snap.Categories, err = refs.ListCategories(ctx); err != nil {
		return nil, err
	}
	if snap.Locations, err = refs.ListLocations(ctx); err != nil {
		return nil, err
	}
	if snap.Suppliers, err = refs.ListSuppliers(ctx); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return snap, nil
}
