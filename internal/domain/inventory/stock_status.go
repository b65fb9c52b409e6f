package inventory

import "github.com/jhoicas/Inventario-maquinas/internal/domain/entity"

// StockStatus clasificación derivada (no persistida) de la salud del stock de un material.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusCritical   StockStatus = "critical"
	StatusLowStock   StockStatus = "low_stock"
	StatusInStock    StockStatus = "in_stock"
)

// Classify es el único punto donde se decide el estado del stock; dashboard,
// listados, detalle y búsqueda lo usan para que "crítico" y "bajo" signifiquen
// lo mismo en todas partes.
//
// Orden de evaluación: sin stock > marcado como crítico > bajo mínimo > en stock.
// No valida valores negativos: eso es un error del llamador.
func Classify(currentStock, minimumStock int, critical bool) StockStatus {
	switch {
	case currentStock <= 0:
		return StatusOutOfStock
	case critical:
		return StatusCritical
	case currentStock <= minimumStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// ClassifyMaterial aplica Classify sobre los campos vivos del material.
func ClassifyMaterial(m *entity.Material) StockStatus {
	return Classify(m.CurrentStock, m.MinimumStock, m.Critical)
}

// IsCritical agrupa los estados que cuentan como críticos en los resúmenes
// (crítico y sin stock). Cada material cuenta una sola vez.
func (s StockStatus) IsCritical() bool {
	return s == StatusCritical || s == StatusOutOfStock
}

// ParseStockStatus convierte el valor de una pestaña/filtro. Vacío o desconocido => false.
func ParseStockStatus(s string) (StockStatus, bool) {
	switch st := StockStatus(s); st {
	case StatusOutOfStock, StatusCritical, StatusLowStock, StatusInStock:
		return st, true
	}
	return "", false
}
