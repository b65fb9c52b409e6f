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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `
	id, reference, manufacturer, description,
	COALESCE(category_id, ''), COALESCE(location_id, ''), COALESCE(supplier_id, ''),
	current_stock, minimum_stock, order_lot, critical, consumable, price,
	machine_ids, comment, photo, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.Reference, &m.Manufacturer, &m.Description,
		&m.CategoryID, &m.LocationID, &m.SupplierID,
		&m.CurrentStock, &m.MinimumStock, &m.OrderLot, &m.Critical, &m.Consumable, &m.Price,
		&m.MachineIDs, &m.Comment, &m.Photo, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste el material con sus historiales iniciales.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, reference, manufacturer, description, category_id, location_id, supplier_id,
			current_stock, minimum_stock, order_lot, critical, consumable, price, machine_ids, comment, photo,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
			$8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Reference, m.Manufacturer, m.Description, m.CategoryID, m.LocationID, m.SupplierID,
		m.CurrentStock, m.MinimumStock, m.OrderLot, m.Critical, m.Consumable, m.Price, machineIDs(m.MachineIDs),
		m.Comment, m.Photo, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	for _, h := range m.ReferenceHistory {
		if err := r.AppendReferenceChange(ctx, m.ID, h); err != nil {
			return err
		}
	}
	for _, h := range m.MaterialHistory {
		if err := r.AppendMaterialChange(ctx, m.ID, h); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene un material con sus historiales; (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *MaterialRepo) get(ctx context.Context, query, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	byID := map[string]*entity.Material{m.ID: m}
	if err := r.loadHistories(ctx, byID, []string{m.ID}); err != nil {
		return nil, err
	}
	return m, nil
}

// Update persiste los campos del material; los historiales se agregan aparte.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET reference = $2, manufacturer = $3, description = $4,
			category_id = NULLIF($5, ''), location_id = NULLIF($6, ''), supplier_id = NULLIF($7, ''),
			current_stock = $8, minimum_stock = $9, order_lot = $10, critical = $11, consumable = $12,
			price = $13, machine_ids = $14, comment = $15, photo = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Reference, m.Manufacturer, m.Description, m.CategoryID, m.LocationID, m.SupplierID,
		m.CurrentStock, m.MinimumStock, m.OrderLot, m.Critical, m.Consumable,
		m.Price, machineIDs(m.MachineIDs), m.Comment, m.Photo, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los materiales con sus historiales, en orden de creación.
func (r *MaterialRepo) List(ctx context.Context) ([]entity.Material, error) {
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var (
		list []*entity.Material
		ids  []string
		byID = make(map[string]*entity.Material)
	)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
		ids = append(ids, m.ID)
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	rows.Close()

	if err := r.loadHistories(ctx, byID, ids); err != nil {
		return nil, err
	}
	out := make([]entity.Material, 0, len(list))
	for _, m := range list {
		out = append(out, *m)
	}
	return out, nil
}

// loadHistories completa ReferenceHistory y MaterialHistory de los materiales indicados.
func (r *MaterialRepo) loadHistories(ctx context.Context, byID map[string]*entity.Material, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT material_id, old_reference, changed_date, comment
		FROM material_reference_history
		WHERE material_id = ANY($1)
		ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("list reference history: %w", err)
	}
	for rows.Next() {
		var (
			materialID string
			h          entity.ReferenceChange
		)
		if err := rows.Scan(&materialID, &h.OldReference, &h.ChangedDate, &h.Comment); err != nil {
			rows.Close()
			return fmt.Errorf("scan reference history: %w", err)
		}
		if m := byID[materialID]; m != nil {
			m.ReferenceHistory = append(m.ReferenceHistory, h)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list reference history: %w", err)
	}

	rows, err = r.q.Query(ctx, `
		SELECT material_id, change_date, changed_by, description
		FROM material_history
		WHERE material_id = ANY($1)
		ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("list material history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			materialID string
			h          entity.MaterialChange
		)
		if err := rows.Scan(&materialID, &h.ChangeDate, &h.ChangedBy, &h.Description); err != nil {
			return fmt.Errorf("scan material history: %w", err)
		}
		if m := byID[materialID]; m != nil {
			m.MaterialHistory = append(m.MaterialHistory, h)
		}
	}
	return rows.Err()
}

func (r *MaterialRepo) AppendReferenceChange(ctx context.Context, materialID string, change entity.ReferenceChange) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO material_reference_history (material_id, old_reference, changed_date, comment)
		VALUES ($1, $2, $3, $4)`,
		materialID, change.OldReference, change.ChangedDate, change.Comment,
	)
	if err != nil {
		return fmt.Errorf("insert reference history: %w", err)
	}
	return nil
}

// DeleteReferenceChange elimina la entrada en la posición index (orden de inserción).
func (r *MaterialRepo) DeleteReferenceChange(ctx context.Context, materialID string, index int) error {
	if index < 0 {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `
		DELETE FROM material_reference_history
		WHERE seq = (
			SELECT seq FROM material_reference_history
			WHERE material_id = $1
			ORDER BY seq
			OFFSET $2 LIMIT 1
		)`, materialID, index)
	if err != nil {
		return fmt.Errorf("delete reference history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) AppendMaterialChange(ctx context.Context, materialID string, change entity.MaterialChange) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO material_history (material_id, change_date, changed_by, description)
		VALUES ($1, $2, $3, $4)`,
		materialID, change.ChangeDate, change.ChangedBy, change.Description,
	)
	if err != nil {
		return fmt.Errorf("insert material history: %w", err)
	}
	return nil
}

// machineIDs evita enviar NULL a la columna text[] NOT NULL.
func machineIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
