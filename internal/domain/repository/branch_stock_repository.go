package repository

import (
	"context"

	"github.com/jhoicas/stock-distribution/internal/domain/entity"
)

// BranchStockRepository define el puerto para el stock por producto+sucursal.
// Usado dentro de transacciones para garantizar consistencia por producto.
type BranchStockRepository interface {
	// Get devuelve (nil, nil) si no hay registro para el par.
	Get(ctx context.Context, productID, branchID string) (*entity.BranchStock, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, branchID string) (*entity.BranchStock, error)
	Upsert(ctx context.Context, stock *entity.BranchStock) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.BranchStock, error)
}
