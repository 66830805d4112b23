package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/application/usecase"
)

// ReportHandler reportes de solo lectura sobre el libro de ventas.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas del período (?date= o ?month=&year=)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SalesSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(h.uc.Summary(period))
}

// SalesPDF godoc
// @Summary      Reporte PDF de ventas del período
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales.pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	doc, filename, err := h.uc.SalesPDF(c.Context(), period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}

// SalesCSV godoc
// @Summary      Exportación CSV de ventas del período
// @Tags         reports
// @Produce      text/csv
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales.csv [get]
func (h *ReportHandler) SalesCSV(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, filename, err := h.uc.SalesCSV(period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
