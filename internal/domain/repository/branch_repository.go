package repository

import (
	"context"

	"github.com/jhoicas/stock-distribution/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Branch, error)
	UpdateSalesTarget(ctx context.Context, id string, salesTarget int64) error
	// List devuelve todas las sucursales ordenadas por Position. El orden es estable
	// y forma parte del contrato: la distribución reparte en ese orden.
	List(ctx context.Context) ([]*entity.Branch, error)
	ListPage(ctx context.Context, limit, offset int) ([]*entity.Branch, error)
}
