package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-distribution/internal/domain/entity"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

var _ repository.BranchStockRepository = (*BranchStockRepo)(nil)

// BranchStockRepo implementación de BranchStockRepository sobre PostgreSQL (usable con pool o tx).
type BranchStockRepo struct {
	q Querier
}

// NewBranchStockRepository construye el adaptador de stock por sucursal. Pasar pool o tx (Querier).
func NewBranchStockRepository(q Querier) *BranchStockRepo {
	return &BranchStockRepo{q: q}
}

// Get obtiene el stock de un producto en una sucursal. (nil, nil) si no hay fila.
func (r *BranchStockRepo) Get(ctx context.Context, productID, branchID string) (*entity.BranchStock, error) {
	query := `
		SELECT product_id, branch_id, stock_level, updated_at
		FROM branch_stocks WHERE product_id = $1 AND branch_id = $2`
	return r.getOne(ctx, "get branch stock", query, productID, branchID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *BranchStockRepo) GetForUpdate(ctx context.Context, productID, branchID string) (*entity.BranchStock, error) {
	query := `
		SELECT product_id, branch_id, stock_level, updated_at
		FROM branch_stocks WHERE product_id = $1 AND branch_id = $2
		FOR UPDATE`
	return r.getOne(ctx, "get branch stock for update", query, productID, branchID)
}

func (r *BranchStockRepo) getOne(ctx context.Context, op, query, productID, branchID string) (*entity.BranchStock, error) {
	var s entity.BranchStock
	err := r.q.QueryRow(ctx, query, productID, branchID).Scan(
		&s.ProductID, &s.BranchID, &s.StockLevel, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el stock (por producto y sucursal).
func (r *BranchStockRepo) Upsert(ctx context.Context, stock *entity.BranchStock) error {
	query := `
		INSERT INTO branch_stocks (product_id, branch_id, stock_level, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, branch_id)
		DO UPDATE SET stock_level = EXCLUDED.stock_level, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.ProductID, stock.BranchID, stock.StockLevel); err != nil {
		return fmt.Errorf("upsert branch stock: %w", err)
	}
	return nil
}

// ListByProduct devuelve el stock del producto en todas las sucursales que tienen fila.
func (r *BranchStockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.BranchStock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, branch_id, stock_level, updated_at
		FROM branch_stocks WHERE product_id = $1 ORDER BY branch_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list branch stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.BranchStock
	for rows.Next() {
		var s entity.BranchStock
		if err := rows.Scan(&s.ProductID, &s.BranchID, &s.StockLevel, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch stock: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate branch stocks: %w", err)
	}
	return list, nil
}
