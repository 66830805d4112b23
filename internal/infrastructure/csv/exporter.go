// Package csv exporta el libro de ventas al formato tabular que el puesto
// usa en planillas: las mismas columnas del reporte histórico de FeriaValle.
package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/feriavalle/feriavalle/internal/domain/entity"
)

var headers = []string{
	"Fecha",
	"Producto",
	"Cantidad",
	"Precio Unitario",
	"Total",
	"Ganancia",
	"Método de Pago",
	"Notas",
}

// Exporter implementa usecase.SalesCSVExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export serializa las ventas como CSV (una fila por venta).
func (e *Exporter) Export(sales []entity.Sale) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("csv: escribir cabecera: %w", err)
	}
	for _, s := range sales {
		record := []string{
			s.Date.Format("02/01/2006"),
			s.ProductName,
			strconv.Itoa(s.Quantity),
			s.UnitPrice.String(),
			s.TotalPrice.String(),
			s.Profit.String(),
			string(s.PaymentMethod),
			s.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: escribir venta %s: %w", s.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: volcar salida: %w", err)
	}
	return buf.Bytes(), nil
}
