package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta. Total y ganancia NO se
// aceptan del caller: el almacén los recalcula desde el catálogo.
type CreateSaleRequest struct {
	ProductID     string `json:"productId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"min=1"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Profit        decimal.Decimal `json:"profit"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
}

// SaleListResponse ventas del período consultado.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}

// SalesSummary resumen del período (día o mes): totales del libro de ventas.
type SalesSummary struct {
	Period      string          `json:"period"`
	TotalSales  decimal.Decimal `json:"totalSales"`
	TotalProfit decimal.Decimal `json:"totalProfit"`
	TotalUnits  int             `json:"totalUnits"`
	SalesCount  int             `json:"salesCount"`
}
