// Package inventory contiene el motor de asignaciones: agregación por máquina,
// búsqueda/filtrado/orden/paginación de materiales y los casos de uso que
// modifican el libro de asignaciones.
//
// El motor es puro: recibe un Snapshot ya cargado, nunca modifica sus entradas
// y se recalcula completo en cada petición.
package inventory

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// EngineConfig opciones del motor.
type EngineConfig struct {
	Language        language.Tag // idioma para comparar textos (orden alfabético)
	DefaultPageSize int
	MaxPageSize     int
}

// Engine agrega y consulta snapshots. Es seguro para uso concurrente: los
// collators y casers (con estado) se crean por llamada.
type Engine struct {
	lang            language.Tag
	defaultPageSize int
	maxPageSize     int
}

// NewEngine construye el motor aplicando valores por defecto.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		lang:            cfg.Language,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}
	if e.lang == language.Und {
		e.lang = language.Spanish
	}
	if e.defaultPageSize <= 0 {
		e.defaultPageSize = defaultPageSize
	}
	if e.maxPageSize <= 0 {
		e.maxPageSize = maxPageSize
	}
	if e.defaultPageSize > e.maxPageSize {
		e.defaultPageSize = e.maxPageSize
	}
	return e
}

func (e *Engine) collator() *collate.Collator {
	return collate.New(e.lang, collate.IgnoreCase, collate.Loose)
}

func (e *Engine) folder() cases.Caser {
	return cases.Fold()
}
