package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/domain"
	"github.com/feriavalle/feriavalle/internal/domain/entity"
	"github.com/feriavalle/feriavalle/internal/store"
)

// SaleUseCase casos de uso del libro de ventas.
type SaleUseCase struct {
	store *store.Store
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(s *store.Store) *SaleUseCase {
	return &SaleUseCase{store: s}
}

// Create registra una venta. El método de pago vacío se asume efectivo (el
// valor por defecto del mostrador); uno fuera del conjunto cerrado se
// rechaza.
func (uc *SaleUseCase) Create(in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductID == "" || in.Quantity < 1 {
		return nil, domain.ErrEntradaInvalida
	}
	method := entity.PaymentMethod(in.PaymentMethod)
	if method == "" {
		method = entity.PaymentEfectivo
	}
	if !method.IsValid() {
		return nil, domain.ErrEntradaInvalida
	}
	sale, err := uc.store.AddSale(store.SaleDraft{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		PaymentMethod: method,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Delete elimina una venta. No repone stock.
func (uc *SaleUseCase) Delete(id string) error {
	return uc.store.DeleteSale(id)
}

// ListOnDate ventas del día calendario indicado.
func (uc *SaleUseCase) ListOnDate(date time.Time) *dto.SaleListResponse {
	return toSaleList(uc.store.SalesOnDate(date))
}

// ListInMonth ventas del mes indicado.
func (uc *SaleUseCase) ListInMonth(month time.Month, year int) *dto.SaleListResponse {
	return toSaleList(uc.store.SalesInMonth(month, year))
}

// Summarize acumula los totales de un conjunto de ventas.
func Summarize(period string, sales []entity.Sale) dto.SalesSummary {
	sum := dto.SalesSummary{
		Period:      period,
		TotalSales:  decimal.Zero,
		TotalProfit: decimal.Zero,
	}
	for _, s := range sales {
		sum.TotalSales = sum.TotalSales.Add(s.TotalPrice)
		sum.TotalProfit = sum.TotalProfit.Add(s.Profit)
		sum.TotalUnits += s.Quantity
		sum.SalesCount++
	}
	return sum
}

func toSaleList(sales []entity.Sale) *dto.SaleListResponse {
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *toSaleResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		TotalPrice:    s.TotalPrice,
		Profit:        s.Profit,
		Date:          s.Date,
		PaymentMethod: string(s.PaymentMethod),
		Notes:         s.Notes,
	}
}
