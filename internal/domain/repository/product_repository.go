package repository

import (
	"context"

	"github.com/jhoicas/stock-distribution/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStockLevel fija el stock de bodega (usado por la distribución).
	UpdateStockLevel(ctx context.Context, id string, stockLevel int64) error
	// AddStock suma qty al stock de bodega; domain.ErrNotFound si no existe.
	AddStock(ctx context.Context, id string, qty int64) error
	// List devuelve todos los productos en orden de creación.
	List(ctx context.Context) ([]*entity.Product, error)
	ListPage(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
