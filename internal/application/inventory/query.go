package inventory

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	stock "github.com/jhoicas/Inventario-maquinas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

// MatchType indica dónde coincidió la búsqueda.
type MatchType string

const (
	MatchNone    MatchType = ""
	MatchLive    MatchType = "live"    // coincidió un campo vigente
	MatchHistory MatchType = "history" // coincidió solo una referencia antigua
)

// OptionalBool booleano opcional para filtros: sin valor no filtra.
type OptionalBool struct {
	Value bool
	Set   bool
}

// Bool construye un OptionalBool con valor.
func Bool(v bool) OptionalBool { return OptionalBool{Value: v, Set: true} }

// ParseOptionalBool interpreta "true"/"false" (y variantes de strconv); cualquier
// otro valor, incluido el vacío, queda sin valor.
func ParseOptionalBool(s string) OptionalBool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return OptionalBool{}
	}
	return Bool(b)
}

func (o OptionalBool) matches(v bool) bool {
	return !o.Set || o.Value == v
}

// MaterialFilters filtros de la lista de materiales. El valor cero de cada campo no filtra;
// los filtros con valor se combinan con AND.
type MaterialFilters struct {
	Manufacturer string
	SupplierID   string
	CategoryID   string
	LocationID   string
	MachineID    string // materiales que pueden usarse en la máquina
	Critical     OptionalBool
	Consumable   OptionalBool
	StockStatus  stock.StockStatus // pestaña; vacío = todas
	MinStock     *int
	MaxStock     *int
}

// Claves admitidas por ParseFilters.
const (
	FilterManufacturer = "manufacturer"
	FilterSupplier     = "supplier_id"
	FilterCategory     = "category_id"
	FilterLocation     = "location_id"
	FilterMachine      = "machine_id"
	FilterCritical     = "critical"
	FilterConsumable   = "consumable"
	FilterStockStatus  = "stock_status"
	FilterMinStock     = "min_stock"
	FilterMaxStock     = "max_stock"
)

// ParseFilters convierte parámetros crudos en filtros tipados. Los valores vacíos o
// mal formados (booleanos o números inválidos, estados desconocidos) se ignoran.
func ParseFilters(raw map[string]string) MaterialFilters {
	get := func(k string) string { return strings.TrimSpace(raw[k]) }
	f := MaterialFilters{
		Manufacturer: get(FilterManufacturer),
		SupplierID:   get(FilterSupplier),
		CategoryID:   get(FilterCategory),
		LocationID:   get(FilterLocation),
		MachineID:    get(FilterMachine),
		Critical:     ParseOptionalBool(get(FilterCritical)),
		Consumable:   ParseOptionalBool(get(FilterConsumable)),
		MinStock:     parseOptionalInt(get(FilterMinStock)),
		MaxStock:     parseOptionalInt(get(FilterMaxStock)),
	}
	if st, ok := stock.ParseStockStatus(get(FilterStockStatus)); ok {
		f.StockStatus = st
	}
	return f
}

func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// SortDirection 1 ascendente, -1 descendente, 0 sin orden.
type SortDirection int

const (
	SortAsc  SortDirection = 1
	SortDesc SortDirection = -1
)

// SortSpec campo y sentido de orden.
type SortSpec struct {
	Field     string
	Direction SortDirection
}

// ParseSort acepta "1"/"asc" y "-1"/"desc"; con campo y sin sentido ordena ascendente.
func ParseSort(field, order string) SortSpec {
	field = strings.TrimSpace(field)
	if field == "" {
		return SortSpec{}
	}
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "1", "asc":
		return SortSpec{Field: field, Direction: SortAsc}
	case "-1", "desc":
		return SortSpec{Field: field, Direction: SortDesc}
	}
	return SortSpec{Field: field}
}

// QueryParams consulta de la lista de materiales.
type QueryParams struct {
	Page    int // base 1
	Limit   int
	Search  string
	Filters MaterialFilters
	Sort    SortSpec
}

// MaterialRow fila del resultado con los datos derivados ya resueltos.
type MaterialRow struct {
	Material     entity.Material
	Status       stock.StockStatus
	MatchType    MatchType
	CategoryName string
	LocationName string
	SupplierName string
}

// QueryResult página de materiales. Total y TotalPages se calculan tras filtrar y antes de paginar.
type QueryResult struct {
	Data       []MaterialRow
	Page       int
	Limit      int
	Total      int
	TotalPages int
	MatchType  MatchType
}

type lookups struct {
	categories map[string]string
	locations  map[string]string
	suppliers  map[string]string
}

func newLookups(snap *repository.Snapshot) lookups {
	l := lookups{
		categories: make(map[string]string, len(snap.Categories)),
		locations:  make(map[string]string, len(snap.Locations)),
		suppliers:  make(map[string]string, len(snap.Suppliers)),
	}
	for _, c := range snap.Categories {
		l.categories[c.ID] = c.Name
	}
	for _, loc := range snap.Locations {
		l.locations[loc.ID] = loc.Name
	}
	for _, s := range snap.Suppliers {
		l.suppliers[s.ID] = s.Name
	}
	return l
}

// Query busca, filtra, ordena y pagina los materiales del snapshot.
func (e *Engine) Query(snap *repository.Snapshot, p QueryParams) QueryResult {
	limit := p.Limit
	if limit <= 0 {
		limit = e.defaultPageSize
	}
	if limit > e.maxPageSize {
		limit = e.maxPageSize
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	result := QueryResult{Data: []MaterialRow{}, Page: page, Limit: limit}
	if snap == nil {
		return result
	}

	lk := newLookups(snap)
	fold := e.folder()
	term := fold.String(strings.TrimSpace(p.Search))
	manufacturer := fold.String(p.Filters.Manufacturer)

	rows := make([]MaterialRow, 0, len(snap.Materials))
	for i := range snap.Materials {
		m := &snap.Materials[i]
		st := stock.ClassifyMaterial(m)
		if !p.Filters.matches(m, st, manufacturer, fold.String) {
			continue
		}
		row := MaterialRow{
			Material:     *m,
			Status:       st,
			CategoryName: lk.categories[m.CategoryID],
			LocationName: lk.locations[m.LocationID],
			SupplierName: lk.suppliers[m.SupplierID],
		}
		if term != "" {
			row.MatchType = matchMaterial(m, row.CategoryName, term, fold.String)
			if row.MatchType == MatchNone {
				continue
			}
		}
		rows = append(rows, row)
	}

	e.sortRows(rows, p.Sort)

	result.Total = len(rows)
	result.TotalPages = (result.Total + limit - 1) / limit
	if term != "" && len(rows) > 0 {
		result.MatchType = MatchHistory
		for _, r := range rows {
			if r.MatchType == MatchLive {
				result.MatchType = MatchLive
				break
			}
		}
	}

	// page > TotalPages se resuelve antes de multiplicar para no desbordar.
	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	result.Data = rows[start:end]
	return result
}

func (f MaterialFilters) matches(m *entity.Material, st stock.StockStatus, foldedManufacturer string, fold func(string) string) bool {
	if foldedManufacturer != "" && fold(m.Manufacturer) != foldedManufacturer {
		return false
	}
	if f.SupplierID != "" && m.SupplierID != f.SupplierID {
		return false
	}
	if f.CategoryID != "" && m.CategoryID != f.CategoryID {
		return false
	}
	if f.LocationID != "" && m.LocationID != f.LocationID {
		return false
	}
	if f.MachineID != "" && !m.UsableIn(f.MachineID) {
		return false
	}
	if !f.Critical.matches(m.Critical) || !f.Consumable.matches(m.Consumable) {
		return false
	}
	if f.StockStatus != "" && st != f.StockStatus {
		return false
	}
	if f.MinStock != nil && m.CurrentStock < *f.MinStock {
		return false
	}
	if f.MaxStock != nil && m.CurrentStock > *f.MaxStock {
		return false
	}
	return true
}

// matchMaterial compara el término (ya normalizado) con los campos vigentes y luego
// con las referencias antiguas.
func matchMaterial(m *entity.Material, categoryName, term string, fold func(string) string) MatchType {
	for _, field := range []string{m.Reference, m.Manufacturer, m.Description, categoryName} {
		if field != "" && strings.Contains(fold(field), term) {
			return MatchLive
		}
	}
	for _, h := range m.ReferenceHistory {
		if strings.Contains(fold(h.OldReference), term) {
			return MatchHistory
		}
	}
	return MatchNone
}

// Campos de orden admitidos.
const (
	SortReference    = "reference"
	SortManufacturer = "manufacturer"
	SortDescription  = "description"
	SortCategory     = "category"
	SortLocation     = "location"
	SortSupplier     = "supplier"
	SortCurrentStock = "current_stock"
	SortMinimumStock = "minimum_stock"
	SortOrderLot     = "order_lot"
	SortPrice        = "price"
	SortStockStatus  = "stock_status"
	SortCreatedAt    = "created_at"
	SortUpdatedAt    = "updated_at"
)

var statusRank = map[stock.StockStatus]int{
	stock.StatusOutOfStock: 0,
	stock.StatusCritical:   1,
	stock.StatusLowStock:   2,
	stock.StatusInStock:    3,
}

// sortRows ordena de forma estable; campo desconocido o sentido 0 no cambian el orden.
func (e *Engine) sortRows(rows []MaterialRow, s SortSpec) {
	if s.Direction != SortAsc && s.Direction != SortDesc {
		return
	}
	col := e.collator()
	text := func(get func(r *MaterialRow) string) func(a, b *MaterialRow) int {
		return func(a, b *MaterialRow) int { return col.CompareString(get(a), get(b)) }
	}
	number := func(get func(r *MaterialRow) int) func(a, b *MaterialRow) int {
		return func(a, b *MaterialRow) int { return get(a) - get(b) }
	}
	date := func(get func(r *MaterialRow) time.Time) func(a, b *MaterialRow) int {
		return func(a, b *MaterialRow) int { return get(a).Compare(get(b)) }
	}

	var cmp func(a, b *MaterialRow) int
	switch s.Field {
	case SortReference:
		cmp = text(func(r *MaterialRow) string { return r.Material.Reference })
	case SortManufacturer:
		cmp = text(func(r *MaterialRow) string { return r.Material.Manufacturer })
	case SortDescription:
		cmp = text(func(r *MaterialRow) string { return r.Material.Description })
	case SortCategory:
		cmp = text(func(r *MaterialRow) string { return r.CategoryName })
	case SortLocation:
		cmp = text(func(r *MaterialRow) string { return r.LocationName })
	case SortSupplier:
		cmp = text(func(r *MaterialRow) string { return r.SupplierName })
	case SortCurrentStock:
		cmp = number(func(r *MaterialRow) int { return r.Material.CurrentStock })
	case SortMinimumStock:
		cmp = number(func(r *MaterialRow) int { return r.Material.MinimumStock })
	case SortOrderLot:
		cmp = number(func(r *MaterialRow) int { return r.Material.OrderLot })
	case SortStockStatus:
		cmp = number(func(r *MaterialRow) int { return statusRank[r.Status] })
	case SortPrice:
		cmp = func(a, b *MaterialRow) int { return a.Material.Price.Cmp(b.Material.Price) }
	case SortCreatedAt:
		cmp = date(func(r *MaterialRow) time.Time { return r.Material.CreatedAt })
	case SortUpdatedAt:
		cmp = date(func(r *MaterialRow) time.Time { return r.Material.UpdatedAt })
	default:
		return
	}
	dir := int(s.Direction)
	sort.SliceStable(rows, func(i, j int) bool {
		return cmp(&rows[i], &rows[j])*dir < 0
	})
}

// Parámetros de consulta fuera de los filtros.
const (
	ParamPage   = "page"
	ParamLimit  = "limit"
	ParamSearch = "search"
	ParamSort   = "sort"
	ParamOrder  = "order"
)

// ParseQueryParams construye la consulta desde parámetros crudos (query string).
// page y limit inválidos quedan en 0 y Query aplica los valores por defecto.
func ParseQueryParams(raw map[string]string) QueryParams {
	atoi := func(k string) int {
		n, err := strconv.Atoi(strings.TrimSpace(raw[k]))
		if err != nil {
			return 0
		}
		return n
	}
	return QueryParams{
		Page:    atoi(ParamPage),
		Limit:   atoi(ParamLimit),
		Search:  raw[ParamSearch],
		Filters: ParseFilters(raw),
		Sort:    ParseSort(raw[ParamSort], raw[ParamOrder]),
	}
}
