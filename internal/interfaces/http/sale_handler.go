package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/application/usecase"
	"github.com/feriavalle/feriavalle/internal/domain"
)

// SaleHandler maneja las peticiones HTTP del libro de ventas.
type SaleHandler struct {
	uc *usecase.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta (total y ganancia se recalculan del catálogo)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductoNoEncontrado):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el producto de la venta no existe"})
		case errors.Is(err, domain.ErrEntradaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId y quantity >= 1 son requeridos; método de pago: efectivo, transferencia o tarjeta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas por día (?date=AAAA-MM-DD) o mes (?month=M&year=AAAA)
// @Tags         sales
// @Produce      json
// @Param        date   query  string  false  "Día calendario"
// @Param        month  query  int     false  "Mes (1-12)"
// @Param        year   query  int     false  "Año"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if period.Date != nil {
		return c.JSON(h.uc.ListOnDate(*period.Date))
	}
	return c.JSON(h.uc.ListInMonth(period.Month, period.Year))
}

// Delete godoc
// @Summary      Eliminar venta (no repone stock)
// @Tags         sales
// @Param        id  path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrVentaNoEncontrada) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePeriod interpreta los query params de período: date=AAAA-MM-DD para
// un día, o month+year para un mes. Sin parámetros se asume el día de hoy.
func parsePeriod(c *fiber.Ctx) (usecase.ReportPeriod, error) {
	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return usecase.ReportPeriod{}, errors.New("date debe tener formato AAAA-MM-DD")
		}
		return usecase.ReportPeriod{Date: &date}, nil
	}
	if month := c.QueryInt("month"); month != 0 {
		if month < 1 || month > 12 {
			return usecase.ReportPeriod{}, errors.New("month debe estar entre 1 y 12")
		}
		year := c.QueryInt("year")
		if year == 0 {
			year = time.Now().Year()
		}
		return usecase.ReportPeriod{Month: time.Month(month), Year: year}, nil
	}
	today := time.Now()
	return usecase.ReportPeriod{Date: &today}, nil
}
