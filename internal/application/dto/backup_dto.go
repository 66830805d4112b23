package dto

import "time"

// Tiers de respaldo: archivo local sin interacción, o descarga para el
// usuario cuando el Tier 1 no está disponible.
const (
	TierLocal    = "local"
	TierDescarga = "descarga"
)

// BackupResult resultado de un respaldo. Cuando Tier es TierDescarga, el
// payload serializado viaja al caller para entregarlo como descarga (no se
// expone en JSON).
type BackupResult struct {
	Tier       string    `json:"tier"`
	ExportedAt time.Time `json:"exportedAt"`
	Filename   string    `json:"filename"`
	Payload    []byte    `json:"-"`
}

// RestoreResult resultado de una restauración exitosa.
type RestoreResult struct {
	Products   int       `json:"products"`
	Sales      int       `json:"sales"`
	LastBackup time.Time `json:"lastBackup"`
}

// LastBackupResponse marca del último respaldo (null si nunca se respaldó).
type LastBackupResponse struct {
	LastBackup *time.Time `json:"lastBackup"`
}

// UsageResponse uso estimado del almacenamiento local del dispositivo.
type UsageResponse struct {
	Bytes   int64  `json:"bytes"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}
