package memory

import (
	"context"

	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo materiales en memoria. Con tx != nil opera sobre la copia de la transacción.
type MaterialRepo struct {
	store *Store
	tx    *state
}

// Create agrega el material. domain.ErrDuplicate si el id o la referencia ya existen.
func (r *MaterialRepo) Create(ctx context.Context, material *entity.Material) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		if _, ok := st.materials[material.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, m := range st.materials {
			if m.Reference == material.Reference {
				return domain.ErrDuplicate
			}
		}
		st.materials[material.ID] = material.Clone()
		st.materialOrder = append(st.materialOrder, material.ID)
		return nil
	})
}

func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	err := r.store.read(r.tx, func(st *state) error {
		if m, ok := st.materials[id]; ok {
			c := m.Clone()
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: Run ya tiene el bloqueo de escritura.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza los campos del material conservando los historiales guardados.
func (r *MaterialRepo) Update(ctx context.Context, material *entity.Material) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		stored, ok := st.materials[material.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, m := range st.materials {
			if id != material.ID && m.Reference == material.Reference {
				return domain.ErrDuplicate
			}
		}
		next := material.Clone()
		next.ReferenceHistory = stored.ReferenceHistory
		next.MaterialHistory = stored.MaterialHistory
		next.CreatedAt = stored.CreatedAt
		st.materials[material.ID] = next
		return nil
	})
}

func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		if _, ok := st.materials[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.materials, id)
		st.materialOrder = removeID(st.materialOrder, id)
		return nil
	})
}

func (r *MaterialRepo) List(_ context.Context) ([]entity.Material, error) {
	var out []entity.Material
	err := r.store.read(r.tx, func(st *state) error {
		out = make([]entity.Material, 0, len(st.materialOrder))
		for _, id := range st.materialOrder {
			out = append(out, st.materials[id].Clone())
		}
		return nil
	})
	return out, err
}

func (r *MaterialRepo) AppendReferenceChange(ctx context.Context, materialID string, change entity.ReferenceChange) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		m, ok := st.materials[materialID]
		if !ok {
			return domain.ErrNotFound
		}
		m.ReferenceHistory = append(append([]entity.ReferenceChange(nil), m.ReferenceHistory...), change)
		st.materials[materialID] = m
		return nil
	})
}

func (r *MaterialRepo) DeleteReferenceChange(ctx context.Context, materialID string, index int) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		m, ok := st.materials[materialID]
		if !ok || index < 0 || index >= len(m.ReferenceHistory) {
			return domain.ErrNotFound
		}
		h := make([]entity.ReferenceChange, 0, len(m.ReferenceHistory)-1)
		h = append(h, m.ReferenceHistory[:index]...)
		m.ReferenceHistory = append(h, m.ReferenceHistory[index+1:]...)
		st.materials[materialID] = m
		return nil
	})
}

func (r *MaterialRepo) AppendMaterialChange(ctx context.Context, materialID string, change entity.MaterialChange) error {
	return r.store.write(ctx, r.tx, func(st *state) error {
		m, ok := st.materials[materialID]
		if !ok {
			return domain.ErrNotFound
		}
		m.MaterialHistory = append(append([]entity.MaterialChange(nil), m.MaterialHistory...), change)
		st.materials[materialID] = m
		return nil
	})
}
