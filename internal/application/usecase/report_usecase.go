package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/domain/entity"
	"github.com/feriavalle/feriavalle/internal/store"
)

// SalesReportGenerator puerto del generador de reportes PDF.
type SalesReportGenerator interface {
	GenerateSalesReport(ctx context.Context, title string, sales []entity.Sale, summary dto.SalesSummary) ([]byte, error)
}

// SalesCSVExporter puerto del exportador CSV.
type SalesCSVExporter interface {
	Export(sales []entity.Sale) ([]byte, error)
}

// ReportPeriod período de un reporte: un día calendario o un mes completo.
type ReportPeriod struct {
	Date  *time.Time // día; excluyente con Month/Year
	Month time.Month
	Year  int
}

// Label etiqueta legible del período (dd/mm/aaaa o mes/aaaa).
func (p ReportPeriod) Label() string {
	if p.Date != nil {
		return p.Date.Format("02/01/2006")
	}
	return fmt.Sprintf("%02d/%d", int(p.Month), p.Year)
}

// ReportUseCase reportes de solo lectura sobre el libro de ventas. No muta
// el almacén.
type ReportUseCase struct {
	store *store.Store
	pdf   SalesReportGenerator
	csv   SalesCSVExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(s *store.Store, pdf SalesReportGenerator, csv SalesCSVExporter) *ReportUseCase {
	return &ReportUseCase{store: s, pdf: pdf, csv: csv}
}

// Summary totales de ventas del período.
func (uc *ReportUseCase) Summary(period ReportPeriod) dto.SalesSummary {
	return Summarize(period.Label(), uc.salesFor(period))
}

// SalesPDF reporte PDF del período. Devuelve los bytes y el nombre de
// archivo sugerido.
func (uc *ReportUseCase) SalesPDF(ctx context.Context, period ReportPeriod) ([]byte, string, error) {
	sales := uc.salesFor(period)
	title := "Ventas " + period.Label()
	doc, err := uc.pdf.GenerateSalesReport(ctx, title, sales, Summarize(period.Label(), sales))
	if err != nil {
		return nil, "", fmt.Errorf("generar reporte PDF: %w", err)
	}
	return doc, reportFilename(period, "pdf"), nil
}

// SalesCSV exportación CSV del período.
func (uc *ReportUseCase) SalesCSV(period ReportPeriod) ([]byte, string, error) {
	out, err := uc.csv.Export(uc.salesFor(period))
	if err != nil {
		return nil, "", fmt.Errorf("exportar CSV: %w", err)
	}
	return out, reportFilename(period, "csv"), nil
}

func (uc *ReportUseCase) salesFor(period ReportPeriod) []entity.Sale {
	if period.Date != nil {
		return uc.store.SalesOnDate(*period.Date)
	}
	return uc.store.SalesInMonth(period.Month, period.Year)
}

func reportFilename(period ReportPeriod, ext string) string {
	if period.Date != nil {
		return fmt.Sprintf("feriavalle-ventas-%s.%s", period.Date.Format("20060102"), ext)
	}
	return fmt.Sprintf("feriavalle-ventas-%d%02d.%s", period.Year, int(period.Month), ext)
}
