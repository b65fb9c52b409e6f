package inventory_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/entity"
	stock "github.com/jhoicas/Inventario-maquinas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
)

func catalogSnapshot() *repository.Snapshot {
	return &repository.Snapshot{
		Categories: []entity.Category{{ID: "cat-rod", Name: "Rodamientos"}, {ID: "cat-fil", Name: "Filtros"}},
		Locations:  []entity.Location{{ID: "loc-1", Name: "Estante A"}},
		Suppliers:  []entity.Supplier{{ID: "sup-1", Name: "Acme"}, {ID: "sup-2", Name: "Bosch"}},
		Machines:   []entity.Machine{{ID: "mx", Name: "Torno X"}, {ID: "my", Name: "Prensa Y"}},
		Materials: []entity.Material{
			{
				ID: "m1", Reference: "SKF-6204", Manufacturer: "SKF", Description: "Rodamiento rígido",
				CategoryID: "cat-rod", SupplierID: "sup-1", LocationID: "loc-1",
				CurrentStock: 5, MinimumStock: 10, Price: decimal.NewFromInt(20), MachineIDs: []string{"mx"},
				ReferenceHistory: []entity.ReferenceChange{{OldReference: "OLD-6204"}},
			},
			{
				ID: "m2", Reference: "FIL-100", Manufacturer: "Bosch", Description: "Filtro de aceite",
				CategoryID: "cat-fil", SupplierID: "sup-2",
				CurrentStock: 0, MinimumStock: 2, Consumable: true, Price: decimal.RequireFromString("7.5"),
				MachineIDs: []string{"mx", "my"},
			},
			{
				ID: "m3", Reference: "ÉMBOLO-1", Manufacturer: "skf", Description: "Émbolo hidráulico",
				CategoryID: "cat-rod", SupplierID: "sup-1",
				CurrentStock: 20, MinimumStock: 10, Critical: true, Price: decimal.NewFromInt(100),
				MachineIDs: []string{"my"},
			},
			{
				ID: "m4", Reference: "CORREA-9", Manufacturer: "Gates", Description: "Correa dentada",
				CurrentStock: 50, MinimumStock: 10, Price: decimal.NewFromInt(15),
			},
		},
	}
}

func ids(r inventory.QueryResult) []string {
	out := make([]string, 0, len(r.Data))
	for _, row := range r.Data {
		out = append(out, row.Material.ID)
	}
	return out
}

func TestQuery_BusquedaPorReferenciaHistorica(t *testing.T) {
	res := newEngine().Query(catalogSnapshot(), inventory.QueryParams{Search: "old-6204"})

	require.Equal(t, []string{"m1"}, ids(res))
	assert.Equal(t, inventory.MatchHistory, res.Data[0].MatchType)
	assert.Equal(t, inventory.MatchHistory, res.MatchType)
}

func TestQuery_BusquedaVivaIgnoraMayusculas(t *testing.T) {
	e := newEngine()

	res := e.Query(catalogSnapshot(), inventory.QueryParams{Search: "skf"})
	assert.ElementsMatch(t, []string{"m1", "m3"}, ids(res))
	assert.Equal(t, inventory.MatchLive, res.MatchType)

	res = e.Query(catalogSnapshot(), inventory.QueryParams{Search: "filtros"})
	assert.Equal(t, []string{"m2"}, ids(res), "coincide por nombre de categoría")

	res = e.Query(catalogSnapshot(), inventory.QueryParams{Search: "ÉMBOLO"})
	assert.Equal(t, []string{"m3"}, ids(res))
}

func TestQuery_SinTerminoNoHayMatchType(t *testing.T) {
	res := newEngine().Query(catalogSnapshot(), inventory.QueryParams{})
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, inventory.MatchNone, res.MatchType)

	res = newEngine().Query(catalogSnapshot(), inventory.QueryParams{Search: "no-existe"})
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, inventory.MatchNone, res.MatchType)
	assert.NotNil(t, res.Data)
}

func TestQuery_Filtros(t *testing.T) {
	min, max := 5, 20
	tests := []struct {
		name    string
		filters inventory.MaterialFilters
		want    []string
	}{
		{"fabricante sin distinguir mayúsculas", inventory.MaterialFilters{Manufacturer: "SKF"}, []string{"m1", "m3"}},
		{"proveedor", inventory.MaterialFilters{SupplierID: "sup-2"}, []string{"m2"}},
		{"categoría", inventory.MaterialFilters{CategoryID: "cat-rod"}, []string{"m1", "m3"}},
		{"ubicación", inventory.MaterialFilters{LocationID: "loc-1"}, []string{"m1"}},
		{"máquina", inventory.MaterialFilters{MachineID: "my"}, []string{"m2", "m3"}},
		{"crítico", inventory.MaterialFilters{Critical: inventory.Bool(true)}, []string{"m3"}},
		{"no consumible", inventory.MaterialFilters{Consumable: inventory.Bool(false)}, []string{"m1", "m3", "m4"}},
		{"pestaña sin stock", inventory.MaterialFilters{StockStatus: stock.StatusOutOfStock}, []string{"m2"}},
		{"pestaña bajo", inventory.MaterialFilters{StockStatus: stock.StatusLowStock}, []string{"m1"}},
		{"pestaña en stock", inventory.MaterialFilters{StockStatus: stock.StatusInStock}, []string{"m4"}},
		{"rango de stock", inventory.MaterialFilters{MinStock: &min, MaxStock: &max}, []string{"m1", "m3"}},
		{"combinados con AND", inventory.MaterialFilters{CategoryID: "cat-rod", MachineID: "mx"}, []string{"m1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newEngine().Query(catalogSnapshot(), inventory.QueryParams{Filters: tt.filters})
			assert.Equal(t, tt.want, ids(res))
			assert.Equal(t, len(tt.want), res.Total)
		})
	}
}

func TestParseFilters_ValoresMalFormadosSeIgnoran(t *testing.T) {
	f := inventory.ParseFilters(map[string]string{
		inventory.FilterCritical:    "quizás",
		inventory.FilterConsumable:  "true",
		inventory.FilterMinStock:    "abc",
		inventory.FilterMaxStock:    " 7 ",
		inventory.FilterStockStatus: "agotado",
		inventory.FilterCategory:    " cat-rod ",
	})

	assert.False(t, f.Critical.Set)
	assert.Equal(t, inventory.Bool(true), f.Consumable)
	assert.Nil(t, f.MinStock)
	require.NotNil(t, f.MaxStock)
	assert.Equal(t, 7, *f.MaxStock)
	assert.Empty(t, f.StockStatus)
	assert.Equal(t, "cat-rod", f.CategoryID)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, inventory.SortSpec{}, inventory.ParseSort("", "desc"))
	assert.Equal(t, inventory.SortSpec{Field: "price", Direction: inventory.SortAsc}, inventory.ParseSort("price", ""))
	assert.Equal(t, inventory.SortSpec{Field: "price", Direction: inventory.SortDesc}, inventory.ParseSort("price", "-1"))
	assert.Equal(t, inventory.SortSpec{Field: "price"}, inventory.ParseSort("price", "sideways"))
}

func TestQuery_Orden(t *testing.T) {
	e := newEngine()
	tests := []struct {
		sort inventory.SortSpec
		want []string
	}{
		{inventory.SortSpec{Field: inventory.SortReference, Direction: inventory.SortAsc}, []string{"m4", "m3", "m2", "m1"}},
		{inventory.SortSpec{Field: inventory.SortCurrentStock, Direction: inventory.SortDesc}, []string{"m4", "m3", "m1", "m2"}},
		{inventory.SortSpec{Field: inventory.SortPrice, Direction: inventory.SortAsc}, []string{"m2", "m4", "m1", "m3"}},
		{inventory.SortSpec{Field: inventory.SortStockStatus, Direction: inventory.SortAsc}, []string{"m2", "m3", "m1", "m4"}},
		{inventory.SortSpec{Field: inventory.SortCategory, Direction: inventory.SortAsc}, []string{"m4", "m2", "m1", "m3"}},
		{inventory.SortSpec{Field: "desconocido", Direction: inventory.SortAsc}, []string{"m1", "m2", "m3", "m4"}},
		{inventory.SortSpec{Field: inventory.SortPrice}, []string{"m1", "m2", "m3", "m4"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d", tt.sort.Field, tt.sort.Direction), func(t *testing.T) {
			res := e.Query(catalogSnapshot(), inventory.QueryParams{Sort: tt.sort})
			assert.Equal(t, tt.want, ids(res))
		})
	}
}

func TestQuery_Paginacion(t *testing.T) {
	snap := &repository.Snapshot{}
	for i := 0; i < 23; i++ {
		snap.Materials = append(snap.Materials, entity.Material{ID: fmt.Sprintf("m%02d", i), Reference: fmt.Sprintf("R%02d", i), CurrentStock: 1})
	}
	e := newEngine()

	first := e.Query(snap, inventory.QueryParams{Page: 1, Limit: 10})
	third := e.Query(snap, inventory.QueryParams{Page: 3, Limit: 10})
	beyond := e.Query(snap, inventory.QueryParams{Page: 9, Limit: 10})

	for _, r := range []inventory.QueryResult{first, third, beyond} {
		assert.Equal(t, 23, r.Total)
		assert.Equal(t, 3, r.TotalPages)
	}
	assert.Len(t, first.Data, 10)
	assert.Len(t, third.Data, 3)
	assert.NotNil(t, beyond.Data)
	assert.Empty(t, beyond.Data)

	// páginas enormes no desbordan (page-1)*limit
	for _, page := range []int{math.MaxInt64 / 5, math.MaxInt64 / 10, math.MaxInt64} {
		var r inventory.QueryResult
		require.NotPanics(t, func() { r = e.Query(snap, inventory.QueryParams{Page: page, Limit: 10}) })
		assert.Equal(t, 23, r.Total)
		assert.Empty(t, r.Data)
	}
	p := inventory.ParseQueryParams(map[string]string{inventory.ParamPage: "9223372036854775807", inventory.ParamLimit: "10"})
	var r inventory.QueryResult
	require.NotPanics(t, func() { r = e.Query(snap, p) })
	assert.NotNil(t, r.Data)
	assert.Empty(t, r.Data)
}

func TestQuery_LimitesDePagina(t *testing.T) {
	snap := &repository.Snapshot{}
	for i := 0; i < 150; i++ {
		snap.Materials = append(snap.Materials, entity.Material{ID: fmt.Sprint(i)})
	}
	e := inventory.NewEngine(inventory.EngineConfig{DefaultPageSize: 10, MaxPageSize: 100})

	res := e.Query(snap, inventory.QueryParams{Page: 0})
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Limit)
	assert.Len(t, res.Data, 10)

	res = e.Query(snap, inventory.QueryParams{Limit: 500})
	assert.Equal(t, 100, res.Limit)
	assert.Equal(t, 2, res.TotalPages)
}

func TestParseQueryParams(t *testing.T) {
	p := inventory.ParseQueryParams(map[string]string{
		inventory.ParamPage:     "2",
		inventory.ParamLimit:    "x",
		inventory.ParamSearch:   "skf",
		inventory.ParamSort:     "price",
		inventory.ParamOrder:    "desc",
		inventory.FilterMachine: "mx",
	})
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 0, p.Limit)
	assert.Equal(t, "skf", p.Search)
	assert.Equal(t, inventory.SortSpec{Field: "price", Direction: inventory.SortDesc}, p.Sort)
	assert.Equal(t, "mx", p.Filters.MachineID)
}

func TestFilterOptions(t *testing.T) {
	e := newEngine()

	opts, err := e.FilterOptions(catalogSnapshot(), inventory.OptionManufacturer)
	require.NoError(t, err)
	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		labels = append(labels, o.Label)
	}
	assert.Equal(t, []string{"Bosch", "Gates", "SKF", "skf"}, labels)

	opts, err = e.FilterOptions(catalogSnapshot(), inventory.OptionCategory)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, inventory.FilterOption{Value: "cat-fil", Label: "Filtros", Count: 1}, opts[0])
	assert.Equal(t, inventory.FilterOption{Value: "cat-rod", Label: "Rodamientos", Count: 2}, opts[1])

	opts, err = e.FilterOptions(catalogSnapshot(), inventory.OptionMachine)
	require.NoError(t, err)
	assert.Equal(t, []inventory.FilterOption{
		{Value: "my", Label: "Prensa Y", Count: 2},
		{Value: "mx", Label: "Torno X", Count: 2},
	}, opts)

	_, err = e.FilterOptions(&repository.Snapshot{}, "color")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
