package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
)

// Seed datos iniciales del store.
type Seed struct {
	Categories  []entity.Category
	Locations   []entity.Location
	Suppliers   []entity.Supplier
	Machines    []entity.Machine
	Materials   []entity.Material
	Allocations []entity.Allocation
}

// Seed agrega los datos respetando las mismas restricciones de unicidad que los
// repositorios. Si algo falla no se agrega nada.
func (s *Store) Seed(seed Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	work.categories = append(work.categories, seed.Categories...)
	work.locations = append(work.locations, seed.Locations...)
	work.suppliers = append(work.suppliers, seed.Suppliers...)
	for _, m := range seed.Machines {
		for _, existing := range work.machines {
			if existing.ID == m.ID {
				return fmt.Errorf("máquina %s: %w", m.ID, domain.ErrDuplicate)
			}
		}
		work.machines = append(work.machines, m)
	}
	mats := &MaterialRepo{store: s, tx: work}
	for i := range seed.Materials {
		if err := mats.Create(context.Background(), &seed.Materials[i]); err != nil {
			return fmt.Errorf("material %s: %w", seed.Materials[i].ID, err)
		}
	}
	allocs := &AllocationRepo{store: s, tx: work}
	for i := range seed.Allocations {
		a := seed.Allocations[i]
		if _, ok := work.materials[a.MaterialID]; !ok {
			return fmt.Errorf("asignación %s: material %s: %w", a.ID, a.MaterialID, domain.ErrNotFound)
		}
		if a.History == nil {
			a.History = []entity.StockChange{}
		}
		if err := allocs.Create(context.Background(), &a); err != nil {
			return fmt.Errorf("asignación %s: %w", a.ID, err)
		}
	}
	s.st = work
	return nil
}

// LoadSeedFile lee un archivo JSON con el formato de seedFile y lo agrega al store.
func (s *Store) LoadSeedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("leer seed: %w", err)
	}
	var f seedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("decodificar seed: %w", err)
	}
	return s.Seed(f.toSeed())
}

type seedFile struct {
	Categories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
	Locations []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"locations"`
	Suppliers []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Contact string `json:"contact"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
	} `json:"suppliers"`
	Machines []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Status      string `json:"status"`
	} `json:"machines"`
	Materials []struct {
		ID           string          `json:"id"`
		Reference    string          `json:"reference"`
		Manufacturer string          `json:"manufacturer"`
		Description  string          `json:"description"`
		CategoryID   string          `json:"category_id"`
		LocationID   string          `json:"location_id"`
		SupplierID   string          `json:"supplier_id"`
		CurrentStock int             `json:"current_stock"`
		MinimumStock int             `json:"minimum_stock"`
		OrderLot     int             `json:"order_lot"`
		Critical     bool            `json:"critical"`
		Consumable   bool            `json:"consumable"`
		Price        decimal.Decimal `json:"price"`
		MachineIDs   []string        `json:"machine_ids"`
		Comment      string          `json:"comment"`
		History      []struct {
			OldReference string    `json:"old_reference"`
			ChangedDate  time.Time `json:"changed_date"`
			Comment      string    `json:"comment"`
		} `json:"reference_history"`
	} `json:"materials"`
	Allocations []struct {
		ID             string `json:"id"`
		MaterialID     string `json:"material_id"`
		MachineID      string `json:"machine_id"`
		AllocatedStock int    `json:"allocated_stock"`
	} `json:"allocations"`
}

// toSeed convierte el archivo en entidades. Las asignaciones copian la referencia
// del material y los datos de la máquina como lo hace la creación normal.
func (f seedFile) toSeed() Seed {
	now := time.Now().UTC()
	var seed Seed
	for _, c := range f.Categories {
		seed.Categories = append(seed.Categories, entity.Category{ID: c.ID, Name: c.Name})
	}
	for _, l := range f.Locations {
		seed.Locations = append(seed.Locations, entity.Location{ID: l.ID, Name: l.Name})
	}
	for _, s := range f.Suppliers {
		seed.Suppliers = append(seed.Suppliers, entity.Supplier{ID: s.ID, Name: s.Name, Contact: s.Contact, Email: s.Email, Phone: s.Phone})
	}
	machines := make(map[string]entity.Machine, len(f.Machines))
	for _, m := range f.Machines {
		status := m.Status
		if !entity.ValidMachineStatus(status) {
			status = entity.MachineStatusActive
		}
		mc := entity.Machine{ID: m.ID, Name: m.Name, Description: m.Description, Status: status}
		machines[m.ID] = mc
		seed.Machines = append(seed.Machines, mc)
	}
	materials := make(map[string]entity.Material, len(f.Materials))
	for _, m := range f.Materials {
		mat := entity.Material{
			ID:           m.ID,
			Reference:    m.Reference,
			Manufacturer: m.Manufacturer,
			Description:  m.Description,
			CategoryID:   m.CategoryID,
			LocationID:   m.LocationID,
			SupplierID:   m.SupplierID,
			CurrentStock: m.CurrentStock,
			MinimumStock: m.MinimumStock,
			OrderLot:     m.OrderLot,
			Critical:     m.Critical,
			Consumable:   m.Consumable,
			Price:        m.Price,
			MachineIDs:   m.MachineIDs,
			Comment:      m.Comment,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, h := range m.History {
			mat.ReferenceHistory = append(mat.ReferenceHistory, entity.ReferenceChange{
				OldReference: h.OldReference,
				ChangedDate:  h.ChangedDate,
				Comment:      h.Comment,
			})
		}
		materials[m.ID] = mat
		seed.Materials = append(seed.Materials, mat)
	}
	for _, a := range f.Allocations {
		mat := materials[a.MaterialID]
		mc := machines[a.MachineID]
		seed.Allocations = append(seed.Allocations, entity.Allocation{
			ID:             a.ID,
			MaterialID:     a.MaterialID,
			Material:       entity.MaterialSnapshot{Reference: mat.Reference, Description: mat.Description},
			MachineID:      a.MachineID,
			Machine:        entity.MachineSnapshot{Name: mc.Name, Description: mc.Description, Status: mc.Status},
			AllocatedStock: a.AllocatedStock,
			History:        []entity.StockChange{},
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return seed
}
