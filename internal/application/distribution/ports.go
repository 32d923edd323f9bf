package distribution

import (
	"context"

	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve nil se hace Commit; si no, Rollback. Es la frontera de durabilidad de un producto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		stockRepo repository.BranchStockRepository,
	) error) error
}
