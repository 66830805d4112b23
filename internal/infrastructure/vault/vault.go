// Package vault implementa el Tier 1 de respaldo: un archivo en el
// directorio privado de datos de la aplicación, durable entre sesiones y
// sin interacción del usuario. Vive en una ruta distinta al slot de estado
// SQLite para que ambos nunca colidan.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/feriavalle/feriavalle/internal/domain"
)

const (
	backupDir      = "respaldos"
	backupFileName = "ultimo-respaldo.json"
)

// FileVault bóveda de respaldo sobre el sistema de archivos local.
type FileVault struct {
	dir string
}

// New construye la bóveda bajo el directorio de datos de la aplicación.
func New(dataDir string) *FileVault {
	return &FileVault{dir: filepath.Join(dataDir, backupDir)}
}

// Write reemplaza el respaldo guardado. Escribe a un archivo temporal y
// renombra, para que un corte a mitad de escritura no deje un respaldo
// truncado.
func (v *FileVault) Write(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(v.dir, 0o700); err != nil {
		return fmt.Errorf("crear directorio de respaldos: %w", err)
	}

	dst := filepath.Join(v.dir, backupFileName)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("escribir respaldo: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publicar respaldo: %w", err)
	}
	return nil
}

// Read devuelve el último respaldo escrito, o ErrRespaldoNoEncontrado si
// nunca se escribió uno en este dispositivo.
func (v *FileVault) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(v.dir, backupFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrRespaldoNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("leer respaldo: %w", err)
	}
	return data, nil
}
