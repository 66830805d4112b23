package repository

import (
	"github.com/feriavalle/feriavalle/internal/domain/entity"
)

// StateMirror define el puerto de persistencia write-through del almacén.
// Cada mutación exitosa espeja el estado completo (no deltas) en un único
// slot versionado de almacenamiento local durable.
type StateMirror interface {
	// SaveState serializa y escribe el estado completo en el slot.
	SaveState(state *entity.State) error
	// LoadState lee el slot al arrancar. Devuelve (nil, nil) si el slot
	// está vacío o nunca fue escrito: el almacén parte con colecciones vacías.
	LoadState() (*entity.State, error)
	// StateSize bytes del payload serializado actualmente persistido.
	StateSize() (int64, error)
}
