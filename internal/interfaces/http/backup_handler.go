package http

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/application/usecase"
	"github.com/feriavalle/feriavalle/internal/domain"
)

// BackupHandler maneja respaldos, restauraciones y el estado del
// almacenamiento local.
type BackupHandler struct {
	backup *usecase.BackupUseCase
	usage  *usecase.UsageUseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(backup *usecase.BackupUseCase, usage *usecase.UsageUseCase) *BackupHandler {
	return &BackupHandler{backup: backup, usage: usage}
}

// Create godoc
// @Summary      Crear respaldo (Tier 1 local; si falla, descarga directa)
// @Tags         backups
// @Produce      json
// @Success      201  {object}  dto.BackupResult
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	res, err := h.backup.CreateBackup(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRespaldoEnCurso) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUSY", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if res.Tier == dto.TierDescarga {
		// Tier 2: el archivo queda bajo control del usuario.
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
		return c.Status(fiber.StatusCreated).Send(res.Payload)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Download godoc
// @Summary      Descargar el respaldo actual como archivo (siempre Tier 2)
// @Tags         backups
// @Produce      json
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backups/download [get]
func (h *BackupHandler) Download(c *fiber.Ctx) error {
	res, err := h.backup.CreateBackup(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRespaldoEnCurso) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUSY", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	payload := res.Payload
	if payload == nil {
		// El respaldo quedó en el Tier 1; se relee para entregarlo igual.
		data, err := h.backup.VaultPayload(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		payload = data
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
	return c.Send(payload)
}

// Last godoc
// @Summary      Marca de tiempo del último respaldo
// @Tags         backups
// @Produce      json
// @Success      200  {object}  dto.LastBackupResponse
// @Router       /api/backups/last [get]
func (h *BackupHandler) Last(c *fiber.Ctx) error {
	out, err := h.backup.LastBackup()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RestoreAutomatic godoc
// @Summary      Restaurar desde el respaldo local del dispositivo
// @Tags         backups
// @Produce      json
// @Success      200  {object}  dto.RestoreResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/backups/restore/auto [post]
func (h *BackupHandler) RestoreAutomatic(c *fiber.Ctx) error {
	res, err := h.backup.RestoreAutomatic(c.Context())
	if err != nil {
		return restoreError(c, err)
	}
	return c.JSON(res)
}

// Restore godoc
// @Summary      Restaurar desde un archivo aportado por el usuario
// @Tags         backups
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Archivo de respaldo"
// @Success      200   {object}  dto.RestoreResult
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/backups/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	data, err := restorePayload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	res, err := h.backup.RestoreFromPayload(c.Context(), data)
	if err != nil {
		return restoreError(c, err)
	}
	return c.JSON(res)
}

// Usage godoc
// @Summary      Uso estimado del almacenamiento local
// @Tags         storage
// @Produce      json
// @Success      200  {object}  dto.UsageResponse
// @Router       /api/storage/usage [get]
func (h *BackupHandler) Usage(c *fiber.Ctx) error {
	out, err := h.usage.Usage()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// restorePayload acepta el archivo como multipart (campo file) o, si el
// cuerpo es JSON directo, el cuerpo completo.
func restorePayload(c *fiber.Ctx) ([]byte, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("falta el archivo de respaldo (campo file)")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errors.New("no se pudo abrir el archivo de respaldo")
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	if len(c.Body()) == 0 {
		return nil, errors.New("cuerpo vacío: se espera el respaldo en JSON o multipart")
	}
	return c.Body(), nil
}

func restoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRestauracionEnCurso):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUSY", Message: err.Error()})
	case errors.Is(err, domain.ErrRespaldoNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrFormatoRespaldoInvalido):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_BACKUP", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
