// Package sqlite implementa los puertos de persistencia local sobre un
// archivo SQLite del dispositivo: el slot versionado donde se espeja el
// estado completo del almacén y la tabla de metadatos de respaldo.
//
// Es deliberadamente un espejo de estado completo y no un WAL propio: el
// volumen esperado es tan chico que serializar todo el estado en cada
// mutación es barato y evita lógica de migración/compactación.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/feriavalle/feriavalle/internal/domain/entity"
)

const (
	// stateSlot nombre del slot único de estado (heredado del formato
	// original de FeriaValle).
	stateSlot = "feriavalle-storage"
	// stateVersion versión del payload persistido en el slot.
	stateVersion = 1

	lastBackupKey = "last_backup"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS app_state (
	slot       TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	payload    BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS app_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// DB conexión al archivo SQLite local. Implementa repository.StateMirror y
// repository.BackupMeta.
type DB struct {
	db *sql.DB
}

// Open crea o abre el archivo SQLite en path y aplica pragmas y esquema.
// Idempotente: es seguro llamarlo sobre un archivo existente.
//
// SQLite admite un solo escritor a la vez, así que el pool se limita a una
// conexión; WAL permite lecturas concurrentes durante las escrituras.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("conectar a base de datos: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("aplicar %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close cierra la conexión.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// SaveState serializa el estado completo y lo escribe en el slot único.
func (d *DB) SaveState(state *entity.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("serializar estado: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO app_state (slot, version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		stateSlot, stateVersion, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("escribir slot de estado: %w", err)
	}
	return nil
}

// LoadState lee y deserializa el slot. Las fechas se rehidratan de su forma
// textual al decodificar JSON. Devuelve (nil, nil) si el slot nunca fue
// escrito.
func (d *DB) LoadState() (*entity.State, error) {
	var (
		version int
		payload []byte
	)
	err := d.db.QueryRow(
		`SELECT version, payload FROM app_state WHERE slot = ?`, stateSlot,
	).Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer slot de estado: %w", err)
	}
	if version > stateVersion {
		return nil, fmt.Errorf("versión de estado no soportada: %d", version)
	}

	var state entity.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("deserializar estado: %w", err)
	}
	return &state, nil
}

// StateSize bytes del payload serializado actualmente en el slot (0 si el
// slot está vacío).
func (d *DB) StateSize() (int64, error) {
	var size int64
	err := d.db.QueryRow(
		`SELECT length(payload) FROM app_state WHERE slot = ?`, stateSlot,
	).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("medir slot de estado: %w", err)
	}
	return size, nil
}

// SaveLastBackup guarda la marca de tiempo del último respaldo.
func (d *DB) SaveLastBackup(t time.Time) error {
	_, err := d.db.Exec(`
		INSERT INTO app_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		lastBackupKey, t.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("guardar marca de respaldo: %w", err)
	}
	return nil
}

// LastBackup devuelve la marca guardada, o el cero de time.Time si nunca se
// respaldó.
func (d *DB) LastBackup() (time.Time, error) {
	var value string
	err := d.db.QueryRow(
		`SELECT value FROM app_meta WHERE key = ?`, lastBackupKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("leer marca de respaldo: %w", err)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("marca de respaldo corrupta: %w", err)
	}
	return t, nil
}
