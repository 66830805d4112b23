package repository

import (
	"context"
	"time"
)

// BackupVault puerto del Tier 1 de respaldo: una ubicación privada y durable
// del dispositivo que no requiere interacción del usuario. Es un slot
// lógicamente distinto del espejo de estado (StateMirror) y no debe colidir
// con él.
type BackupVault interface {
	// Write reemplaza el respaldo guardado por el payload serializado.
	Write(ctx context.Context, payload []byte) error
	// Read devuelve el último respaldo escrito, o
	// domain.ErrRespaldoNoEncontrado si nunca se escribió uno.
	Read(ctx context.Context) ([]byte, error)
}

// BackupMeta guarda la marca de tiempo del último respaldo (solo para
// mostrarla al usuario).
type BackupMeta interface {
	SaveLastBackup(t time.Time) error
	// LastBackup devuelve la marca guardada, o el cero de time.Time si
	// nunca se respaldó.
	LastBackup() (time.Time, error)
}
