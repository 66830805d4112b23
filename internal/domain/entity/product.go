package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HonorariosRate porcentaje fijo (14.5%) que la feria descuenta sobre el
// precio de venta cuando el producto se vende bajo modalidad de honorarios.
// Solo afecta el cálculo de la ganancia, nunca el total cobrado.
var HonorariosRate = decimal.NewFromFloat(0.145)

// Product representa un producto del catálogo local.
// Stock nunca es negativo; CreatedAt <= UpdatedAt siempre.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"` // precio de venta
	Cost          decimal.Decimal `json:"cost"`  // costo unitario
	Stock         int             `json:"stock"`
	Category      string          `json:"category,omitempty"`
	UseHonorarios bool            `json:"useHonorarios,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// UnitProfit ganancia por unidad según precio, costo y modalidad honorarios.
func (p Product) UnitProfit() decimal.Decimal {
	profit := p.Price.Sub(p.Cost)
	if p.UseHonorarios {
		profit = profit.Sub(p.Price.Mul(HonorariosRate))
	}
	return profit
}
