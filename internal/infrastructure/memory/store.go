// Package memory implementa el libro de materiales y asignaciones en memoria,
// con la misma semántica que el adaptador PostgreSQL. Se usa con STORAGE_DRIVER=memory
// y en los tests.
package memory

import (
	"context"
	"sync"
	"time"

	appinventory "github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

var (
	_ appinventory.TxRunner     = (*Store)(nil)
	_ repository.SnapshotReader = (*Store)(nil)
)

// state colecciones del libro. Las listas conservan el orden de inserción.
type state struct {
	materials       map[string]entity.Material
	materialOrder   []string
	allocations     map[string]entity.Allocation
	allocationOrder []string
	machines        []entity.Machine
	categories      []entity.Category
	locations       []entity.Location
	suppliers       []entity.Supplier
}

func newState() *state {
	return &state{
		materials:   make(map[string]entity.Material),
		allocations: make(map[string]entity.Allocation),
	}
}

func (s *state) clone() *state {
	out := &state{
		materials:       make(map[string]entity.Material, len(s.materials)),
		materialOrder:   append([]string(nil), s.materialOrder...),
		allocations:     make(map[string]entity.Allocation, len(s.allocations)),
		allocationOrder: append([]string(nil), s.allocationOrder...),
		machines:        append([]entity.Machine(nil), s.machines...),
		categories:      append([]entity.Category(nil), s.categories...),
		locations:       append([]entity.Location(nil), s.locations...),
		suppliers:       append([]entity.Supplier(nil), s.suppliers...),
	}
	for id, m := range s.materials {
		out.materials[id] = m.Clone()
	}
	for id, a := range s.allocations {
		out.allocations[id] = a.Clone()
	}
	return out
}

// Store guarda el estado bajo un RWMutex. Run trabaja sobre una copia y la
// publica solo si fn termina sin error.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// Materials repositorio de materiales fuera de transacción.
func (s *Store) Materials() *MaterialRepo { return &MaterialRepo{store: s} }

// Allocations repositorio de asignaciones fuera de transacción.
func (s *Store) Allocations() *AllocationRepo { return &AllocationRepo{store: s} }

// Machines repositorio de máquinas.
func (s *Store) Machines() *MachineRepo { return &MachineRepo{store: s} }

// References repositorio de categorías, ubicaciones y proveedores.
func (s *Store) References() *ReferenceRepo { return &ReferenceRepo{store: s} }

// Run ejecuta fn con repositorios atados a una copia del estado. Mantiene el
// bloqueo de escritura hasta terminar; si fn falla la copia se descarta.
func (s *Store) Run(ctx context.Context, fn func(
	materials repository.MaterialRepository,
	allocations repository.AllocationRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&MaterialRepo{store: s, tx: work}, &AllocationRepo{store: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// LoadSnapshot copia todas las colecciones bajo un único bloqueo de lectura.
func (s *Store) LoadSnapshot(ctx context.Context) (*repository.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &repository.Snapshot{
		Materials:   make([]entity.Material, 0, len(s.st.materialOrder)),
		Machines:    append([]entity.Machine{}, s.st.machines...),
		Allocations: make([]entity.Allocation, 0, len(s.st.allocationOrder)),
		Categories:  append([]entity.Category{}, s.st.categories...),
		Locations:   append([]entity.Location{}, s.st.locations...),
		Suppliers:   append([]entity.Supplier{}, s.st.suppliers...),
		TakenAt:     s.now().UTC(),
	}
	for _, id := range s.st.materialOrder {
		snap.Materials = append(snap.Materials, s.st.materials[id].Clone())
	}
	for _, id := range s.st.allocationOrder {
		snap.Allocations = append(snap.Allocations, s.st.allocations[id].Clone())
	}
	return snap, nil
}

func (s *Store) read(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// write fuera de transacción aplica fn sobre una copia, igual que Run.
func (s *Store) write(ctx context.Context, tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.st = work
	return nil
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
