package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	StockLevel int64           `json:"stock_level"` // stock inicial en bodega
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: se maneja vía distribución/reabastecimiento).
type UpdateProductRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// RestockRequest body para POST /api/products/:id/restock.
type RestockRequest struct {
	Quantity int64 `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	StockLevel int64           `json:"stock_level"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
