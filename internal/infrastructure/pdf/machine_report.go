// Package pdf genera el reporte imprimible de una máquina: resumen de
// contadores, materiales asignados con su estado y el historial de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Máquina + estado       │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Materiales | Críticos | Stock bajo | Asignado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Referencia | Descripción | Stock | Mín | Asig | Est. │
//	│    └ historial: fecha  anterior → nuevo  comentario          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-maquinas/internal/application/dto"
	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
)

var _ ports.MachineReportGenerator = (*MachineReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorLow      = &props.Color{Red: 200, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MachineReportGenerator implementa ports.MachineReportGenerator usando Maroto v2.
type MachineReportGenerator struct {
	now func() time.Time
}

// NewMachineReportGenerator construye el generador.
func NewMachineReportGenerator() *MachineReportGenerator {
	return &MachineReportGenerator{now: time.Now}
}

// GenerateMachineReport genera el PDF y devuelve sus bytes.
func (g *MachineReportGenerator) GenerateMachineReport(ctx context.Context, report *dto.MachineHistoryResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	machine := report.Machine

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de máquina "+machine.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(machine, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(machine))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("La máquina no tiene materiales asignados.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	for _, item := range report.Items {
		m.AddRows(materialRow(item.Material))
		m.AddRows(historyRows(item.History)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y estado de la máquina (izq) y fecha de generación (der).
func headerRow(machine dto.MachineSummaryDTO, now time.Time) core.Row {
	desc := nonEmpty(machine.Description, "-")
	if !machine.MachineKnown {
		desc += " (máquina fuera del catálogo)"
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(nonEmpty(machine.Name, machine.MachineID), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(desc, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("ESTADO: "+nonEmpty(machine.Status, "-"), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: contadores de la máquina.
func summaryRow(machine dto.MachineSummaryDTO) core.Row {
	cell := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		cell("Materiales", machine.TotalMaterials),
		cell("Críticos / sin stock", machine.CriticalMaterials),
		cell("Stock bajo", machine.LowStockMaterials),
		cell("Stock asignado", machine.TotalAllocatedStock),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Referencia", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Asignado", 2, align.Right),
		h("Estado", 2, align.Center),
	)
}

// materialRow: una fila por material asignado; el estado se colorea.
func materialRow(l dto.AllocationLineDTO) core.Row {
	statusProps := props.Text{Size: 8, Align: align.Center, Top: 1, Style: fontstyle.Bold}
	switch l.Status {
	case "critical", "out_of_stock":
		statusProps.Color = colorCritical
	case "low_stock":
		statusProps.Color = colorLow
	}
	reference := l.Reference
	if !l.MaterialKnown {
		reference += " *"
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(reference, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(l.Description, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(strconv.Itoa(l.CurrentStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(strconv.Itoa(l.MinimumStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(strconv.Itoa(l.AllocatedStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(l.Status, statusProps)),
	)
}

// historyRows: historial de stock del material, más reciente al final.
func historyRows(history []dto.StockChangeDTO) []core.Row {
	rows := make([]core.Row, 0, len(history))
	for _, h := range history {
		rows = append(rows, row.New(5).Add(
			col.New(2),
			col.New(10).Add(text.New(
				fmt.Sprintf("%s   %d → %d   %s", h.Date.Format("02/01/2006 15:04"), h.PreviousStock, h.NewStock, h.Comment),
				props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2},
			)),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
