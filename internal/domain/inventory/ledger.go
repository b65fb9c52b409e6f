package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
)

// ValidateMaterial verifica los invariantes numéricos y de presencia del material.
func ValidateMaterial(m *entity.Material) error {
	if strings.TrimSpace(m.Reference) == "" {
		return domain.ErrInvalidInput
	}
	if m.CurrentStock < 0 || m.MinimumStock < 0 || m.OrderLot < 0 {
		return domain.ErrInvalidStock
	}
	if m.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// ChangeReference cambia la referencia vigente y agrega exactamente una entrada
// al historial de referencias con el valor anterior. Si la referencia no cambia
// no hace nada y devuelve false.
func ChangeReference(m *entity.Material, newReference, comment string, now time.Time) bool {
	newReference = strings.TrimSpace(newReference)
	if newReference == "" || newReference == m.Reference {
		return false
	}
	m.ReferenceHistory = append(m.ReferenceHistory, entity.ReferenceChange{
		OldReference: m.Reference,
		ChangedDate:  now,
		Comment:      comment,
	})
	m.Reference = newReference
	return true
}

// RemoveReferenceChange elimina explícitamente una entrada del historial de referencias.
func RemoveReferenceChange(m *entity.Material, index int) error {
	if index < 0 || index >= len(m.ReferenceHistory) {
		return domain.ErrNotFound
	}
	h := make([]entity.ReferenceChange, 0, len(m.ReferenceHistory)-1)
	h = append(h, m.ReferenceHistory[:index]...)
	h = append(h, m.ReferenceHistory[index+1:]...)
	m.ReferenceHistory = h
	return nil
}

// RecordChange agrega una entrada al historial de cambios del material.
func RecordChange(m *entity.Material, changedBy, description string, now time.Time) {
	m.MaterialHistory = append(m.MaterialHistory, entity.MaterialChange{
		ChangeDate:  now,
		ChangedBy:   changedBy,
		Description: description,
	})
}

// DescribeChanges resume los campos que difieren entre dos versiones del material.
// Devuelve "" si no hay diferencias relevantes.
func DescribeChanges(before, after *entity.Material) string {
	var parts []string
	str := func(field, a, b string) {
		if a != b {
			parts = append(parts, fmt.Sprintf("%s: %q → %q", field, a, b))
		}
	}
	num := func(field string, a, b int) {
		if a != b {
			parts = append(parts, fmt.Sprintf("%s: %d → %d", field, a, b))
		}
	}
	flag := func(field string, a, b bool) {
		if a != b {
			parts = append(parts, fmt.Sprintf("%s: %t → %t", field, a, b))
		}
	}
	str("reference", before.Reference, after.Reference)
	str("manufacturer", before.Manufacturer, after.Manufacturer)
	str("description", before.Description, after.Description)
	str("category", before.CategoryID, after.CategoryID)
	str("location", before.LocationID, after.LocationID)
	str("supplier", before.SupplierID, after.SupplierID)
	num("currentStock", before.CurrentStock, after.CurrentStock)
	num("minimumStock", before.MinimumStock, after.MinimumStock)
	num("orderLot", before.OrderLot, after.OrderLot)
	flag("critical", before.Critical, after.Critical)
	flag("consumable", before.Consumable, after.Consumable)
	if !before.Price.Equal(after.Price) {
		parts = append(parts, fmt.Sprintf("price: %s → %s", before.Price.String(), after.Price.String()))
	}
	if strings.Join(before.MachineIDs, ",") != strings.Join(after.MachineIDs, ",") {
		parts = append(parts, "machines")
	}
	str("comment", before.Comment, after.Comment)
	str("photo", before.Photo, after.Photo)
	return strings.Join(parts, "; ")
}
