package inventory

import (
	"sort"

	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

// Campos con opciones de filtro.
const (
	OptionManufacturer = "manufacturer"
	OptionCategory     = "category"
	OptionLocation     = "location"
	OptionSupplier     = "supplier"
	OptionMachine      = "machine"
)

// FilterOption valor distinto de un campo y cuántos materiales lo usan.
type FilterOption struct {
	Value string
	Label string
	Count int
}

// FilterOptions devuelve los valores distintos del campo entre los materiales del
// snapshot, ordenados alfabéticamente por etiqueta. Campo desconocido => domain.ErrInvalidInput.
func (e *Engine) FilterOptions(snap *repository.Snapshot, field string) ([]FilterOption, error) {
	switch field {
	case OptionManufacturer, OptionCategory, OptionLocation, OptionSupplier, OptionMachine:
	default:
		return nil, domain.ErrInvalidInput
	}
	if snap == nil {
		return []FilterOption{}, nil
	}
	lk := newLookups(snap)
	machines := make(map[string]string, len(snap.Machines))
	for _, m := range snap.Machines {
		machines[m.ID] = m.Name
	}

	counts := make(map[string]*FilterOption)
	add := func(value, label string) {
		if value == "" {
			return
		}
		if label == "" {
			label = value
		}
		if o, ok := counts[value]; ok {
			o.Count++
			return
		}
		counts[value] = &FilterOption{Value: value, Label: label, Count: 1}
	}

	for i := range snap.Materials {
		m := &snap.Materials[i]
		switch field {
		case OptionManufacturer:
			add(m.Manufacturer, m.Manufacturer)
		case OptionCategory:
			add(m.CategoryID, lk.categories[m.CategoryID])
		case OptionLocation:
			add(m.LocationID, lk.locations[m.LocationID])
		case OptionSupplier:
			add(m.SupplierID, lk.suppliers[m.SupplierID])
		case OptionMachine:
			for _, id := range m.MachineIDs {
				add(id, machines[id])
			}
		}
	}

	out := make([]FilterOption, 0, len(counts))
	for _, o := range counts {
		out = append(out, *o)
	}
	col := e.collator()
	sort.SliceStable(out, func(i, j int) bool {
		if c := col.CompareString(out[i].Label, out[j].Label); c != 0 {
			return c < 0
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}
