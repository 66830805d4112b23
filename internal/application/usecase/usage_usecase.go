package usecase

import (
	"fmt"
	"math"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/domain/repository"
)

// UsageUseCase estima el uso del almacenamiento local: bytes del estado
// serializado persistido contra la cuota asumida del dispositivo. Cálculo
// puro y de solo lectura; nunca muta el almacén.
type UsageUseCase struct {
	mirror     repository.StateMirror
	limitBytes int64
}

// NewUsageUseCase construye el estimador con la cuota configurada.
func NewUsageUseCase(mirror repository.StateMirror, limitBytes int64) *UsageUseCase {
	return &UsageUseCase{mirror: mirror, limitBytes: limitBytes}
}

// Usage devuelve bytes usados, etiqueta legible y porcentaje (0-100).
func (uc *UsageUseCase) Usage() (*dto.UsageResponse, error) {
	bytes, err := uc.mirror.StateSize()
	if err != nil {
		return nil, fmt.Errorf("medir almacenamiento: %w", err)
	}
	percent := int(math.Round(float64(bytes) / float64(uc.limitBytes) * 100))
	if percent > 100 {
		percent = 100
	}
	return &dto.UsageResponse{
		Bytes:   bytes,
		Label:   formatBytes(bytes),
		Percent: percent,
	}, nil
}

func formatBytes(b int64) string {
	if b == 0 {
		return "0 KB"
	}
	kb := float64(b) / 1024
	if kb < 1024 {
		return fmt.Sprintf("%.0f KB", kb)
	}
	return fmt.Sprintf("%.1f MB", kb/1024)
}
