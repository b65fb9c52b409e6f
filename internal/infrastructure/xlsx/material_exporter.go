// Package xlsx exporta la lista de materiales a una hoja de cálculo.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
)

var _ ports.MaterialExporter = (*MaterialExporter)(nil)

// SheetName nombre de la hoja generada.
const SheetName = "Materiales"

var header = []interface{}{
	"id",
	"referencia",
	"fabricante",
	"descripcion",
	"categoria",
	"ubicacion",
	"proveedor",
	"stock_actual",
	"stock_minimo",
	"lote_pedido",
	"critico",
	"consumible",
	"precio",
	"estado",
	"maquinas",
	"referencias_anteriores",
}

// MaterialExporter implementa ports.MaterialExporter con excelize.
type MaterialExporter struct{}

// NewMaterialExporter construye el exportador.
func NewMaterialExporter() *MaterialExporter { return &MaterialExporter{} }

// ExportMaterials escribe una fila por material en el orden recibido (la página ya
// viene filtrada y ordenada) y devuelve el archivo .xlsx.
func (e *MaterialExporter) ExportMaterials(ctx context.Context, page *dto.MaterialListResponse) ([]byte, error) {
	if page == nil {
		return nil, fmt.Errorf("xlsx: página vacía")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	sheet = SheetName

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}

	row := 2
	for _, m := range page.Data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		oldRefs := make([]string, 0, len(m.ReferenceHistory))
		for _, h := range m.ReferenceHistory {
			oldRefs = append(oldRefs, h.OldReference)
		}
		excelRow := []interface{}{
			m.ID,
			m.Reference,
			m.Manufacturer,
			m.Description,
			nonEmpty(m.CategoryName, m.CategoryID),
			nonEmpty(m.LocationName, m.LocationID),
			nonEmpty(m.SupplierName, m.SupplierID),
			m.CurrentStock,
			m.MinimumStock,
			m.OrderLot,
			m.Critical,
			m.Consumable,
			m.Price.InexactFloat64(),
			m.Status,
			strings.Join(m.MachineIDs, ", "),
			strings.Join(oldRefs, ", "),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
