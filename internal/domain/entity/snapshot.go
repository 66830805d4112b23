package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/feriavalle/feriavalle/internal/domain"
)

// SnapshotVersion versión actual del formato de respaldo.
const SnapshotVersion = 1

// State colecciones completas del almacén. Es la unidad que se espeja en el
// slot durable local y la que reemplaza una restauración (sobrescritura
// total, nunca merge).
type State struct {
	Products []Product `json:"products"`
	Sales    []Sale    `json:"sales"`
}

// Clone copia profunda del estado (los slices no comparten backing array).
func (s *State) Clone() *State {
	c := &State{
		Products: make([]Product, len(s.Products)),
		Sales:    make([]Sale, len(s.Sales)),
	}
	copy(c.Products, s.Products)
	copy(c.Sales, s.Sales)
	return c
}

// Snapshot respaldo versionado y autocontenido de todo el almacén.
// No tiene semántica incremental: siempre es una copia punto-en-el-tiempo.
type Snapshot struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Products   []Product `json:"products"`
	Sales      []Sale    `json:"sales"`
}

// NewSnapshot arma un respaldo a partir del estado, con hora de exportación.
func NewSnapshot(state *State, exportedAt time.Time) *Snapshot {
	return &Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: exportedAt,
		Products:   state.Products,
		Sales:      state.Sales,
	}
}

// State devuelve las colecciones del respaldo como estado aplicable.
func (s *Snapshot) State() *State {
	return &State{Products: s.Products, Sales: s.Sales}
}

// ParseSnapshot valida y deserializa un respaldo. El resultado es explícito:
// o bien un *Snapshot completo, o bien ErrFormatoRespaldoInvalido con la
// causa; nunca un snapshot parcial. El payload debe ser un objeto JSON con
// los campos products y sales, cada uno un arreglo (posiblemente vacío).
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var head struct {
		Version    int             `json:"version"`
		ExportedAt time.Time       `json:"exportedAt"`
		Products   json.RawMessage `json:"products"`
		Sales      json.RawMessage `json:"sales"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormatoRespaldoInvalido, err)
	}
	products, err := parseCollection[Product](head.Products, "products")
	if err != nil {
		return nil, err
	}
	sales, err := parseCollection[Sale](head.Sales, "sales")
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Version:    head.Version,
		ExportedAt: head.ExportedAt,
		Products:   products,
		Sales:      sales,
	}, nil
}

// parseCollection exige que el campo exista y sea un arreglo JSON.
func parseCollection[T any](raw json.RawMessage, field string) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: falta el campo %s", domain.ErrFormatoRespaldoInvalido, field)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s no es un arreglo válido", domain.ErrFormatoRespaldoInvalido, field)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
