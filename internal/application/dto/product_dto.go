package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Stock         int             `json:"stock" validate:"min=0"`
	Category      string          `json:"category"`
	UseHonorarios bool            `json:"useHonorarios"`
}

// UpdateProductRequest entrada para actualizar un producto (merge parcial).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price         *decimal.Decimal `json:"price"`
	Cost          *decimal.Decimal `json:"cost"`
	Stock         *int             `json:"stock" validate:"omitempty,min=0"`
	Category      *string          `json:"category"`
	UseHonorarios *bool            `json:"useHonorarios"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category,omitempty"`
	UseHonorarios bool            `json:"useHonorarios"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProductListResponse catálogo completo (sin paginar: la escala es local).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
