package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/domain"
	"github.com/feriavalle/feriavalle/internal/domain/entity"
	"github.com/feriavalle/feriavalle/internal/domain/repository"
	"github.com/feriavalle/feriavalle/internal/store"
	"github.com/feriavalle/feriavalle/pkg/logger"
)

// BackupUseCase exportación e importación de respaldos con estrategia de
// dos tiers. Cada tipo de operación admite un solo vuelo a la vez: una
// segunda petición mientras hay una pendiente se rechaza de inmediato, no
// se encola. Ninguna operación admite cancelación una vez iniciada ni
// timeout propio: el fallo se detecta por rechazo de I/O.
type BackupUseCase struct {
	store *store.Store
	vault repository.BackupVault
	meta  repository.BackupMeta
	log   *logger.Logger
	now   func() time.Time

	backingUp atomic.Bool
	restoring atomic.Bool
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(s *store.Store, vault repository.BackupVault, meta repository.BackupMeta, log *logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		store: s,
		vault: vault,
		meta:  meta,
		log:   log,
		now:   time.Now,
	}
}

// CreateBackup arma un respaldo versionado del estado actual e intenta
// persistirlo:
//
//	Tier 1: la bóveda local del dispositivo, sin interacción del usuario.
//	Tier 2: si el Tier 1 falla, el payload vuelve al caller para
//	        entregarse como descarga bajo control del usuario.
//
// Cualquiera sea el tier, registra la marca de último respaldo.
func (uc *BackupUseCase) CreateBackup(ctx context.Context) (*dto.BackupResult, error) {
	if !uc.backingUp.CompareAndSwap(false, true) {
		return nil, domain.ErrRespaldoEnCurso
	}
	defer uc.backingUp.Store(false)

	snap := entity.NewSnapshot(uc.store.CurrentState(), uc.now())
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializar respaldo: %w", err)
	}

	res := &dto.BackupResult{
		ExportedAt: snap.ExportedAt,
		Filename:   fmt.Sprintf("feriavalle-respaldo-%s.json", snap.ExportedAt.Format("20060102-1504")),
	}
	if err := uc.vault.Write(ctx, payload); err != nil {
		// Tier 1 no disponible: se recupera ofreciendo la descarga.
		uc.log.Warn().Err(err).Msg("respaldo local falló, se ofrece descarga")
		res.Tier = dto.TierDescarga
		res.Payload = payload
	} else {
		res.Tier = dto.TierLocal
		uc.log.Info().Str("archivo", res.Filename).Msg("respaldo guardado en el dispositivo")
	}

	if err := uc.meta.SaveLastBackup(snap.ExportedAt); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo guardar la marca de último respaldo")
	}
	return res, nil
}

// RestoreAutomatic restaura desde la bóveda Tier 1. Falla con
// ErrRespaldoNoEncontrado si nunca se escribió un respaldo ahí.
func (uc *BackupUseCase) RestoreAutomatic(ctx context.Context) (*dto.RestoreResult, error) {
	if !uc.restoring.CompareAndSwap(false, true) {
		return nil, domain.ErrRestauracionEnCurso
	}
	defer uc.restoring.Store(false)

	data, err := uc.vault.Read(ctx)
	if err != nil {
		return nil, err
	}
	return uc.applySnapshot(data)
}

// RestoreFromPayload restaura desde el contenido de un archivo aportado por
// el usuario.
func (uc *BackupUseCase) RestoreFromPayload(ctx context.Context, data []byte) (*dto.RestoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !uc.restoring.CompareAndSwap(false, true) {
		return nil, domain.ErrRestauracionEnCurso
	}
	defer uc.restoring.Store(false)

	return uc.applySnapshot(data)
}

// applySnapshot camino común de ambas restauraciones: validar, reemplazar
// todo el estado, actualizar la marca de respaldo. Todo-o-nada: si el
// payload no valida, el estado actual queda intacto.
func (uc *BackupUseCase) applySnapshot(data []byte) (*dto.RestoreResult, error) {
	snap, err := entity.ParseSnapshot(data)
	if err != nil {
		return nil, err
	}

	uc.store.Replace(snap.State())

	stamp := snap.ExportedAt
	if stamp.IsZero() {
		stamp = uc.now()
	}
	if err := uc.meta.SaveLastBackup(stamp); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo guardar la marca de último respaldo")
	}

	uc.log.Info().
		Int("productos", len(snap.Products)).
		Int("ventas", len(snap.Sales)).
		Msg("respaldo restaurado")
	return &dto.RestoreResult{
		Products:   len(snap.Products),
		Sales:      len(snap.Sales),
		LastBackup: stamp,
	}, nil
}

// VaultPayload contenido del respaldo Tier 1 tal como está guardado en el
// dispositivo.
func (uc *BackupUseCase) VaultPayload(ctx context.Context) ([]byte, error) {
	return uc.vault.Read(ctx)
}

// LastBackup marca del último respaldo para mostrar en la UI.
func (uc *BackupUseCase) LastBackup() (*dto.LastBackupResponse, error) {
	t, err := uc.meta.LastBackup()
	if err != nil {
		return nil, err
	}
	if t.IsZero() {
		return &dto.LastBackupResponse{}, nil
	}
	return &dto.LastBackupResponse{LastBackup: &t}, nil
}
