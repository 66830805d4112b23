package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod método de pago de una venta (conjunto cerrado).
type PaymentMethod string

const (
	PaymentEfectivo      PaymentMethod = "efectivo"
	PaymentTransferencia PaymentMethod = "transferencia"
	PaymentTarjeta       PaymentMethod = "tarjeta"
)

// IsValid indica si el método pertenece al conjunto cerrado.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentEfectivo, PaymentTransferencia, PaymentTarjeta:
		return true
	}
	return false
}

// Sale registra una venta del libro mayor. ProductID es una referencia débil:
// la venta conserva ProductName y los montos calculados al momento de la
// venta, y sobrevive aunque el producto se elimine del catálogo.
type Sale struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Profit        decimal.Decimal `json:"profit"`
	Date          time.Time       `json:"date"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
}
