// Package storage arma los repositorios y el TxRunner según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-distribution/internal/application/distribution"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
	"github.com/jhoicas/stock-distribution/internal/infrastructure/memory"
	"github.com/jhoicas/stock-distribution/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-distribution/pkg/config"
)

// Backend agrupa los puertos de persistencia de un driver.
type Backend struct {
	Driver   string
	Products repository.ProductRepository
	Branches repository.BranchRepository
	Stocks   repository.BranchStockRepository
	TxRunner distribution.TxRunner

	pool *pgxpool.Pool
}

// Open conecta el driver configurado. El caller debe llamar Close.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Backend{
			Driver:   config.StoreDriverMemory,
			Products: store.Products(),
			Branches: store.Branches(),
			Stocks:   store.BranchStocks(),
			TxRunner: memory.NewTxRunner(store),
		}, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		log.Info().Int32("max_conns", pool.Config().MaxConns).Msg("conectado a PostgreSQL")
		return &Backend{
			Driver:   config.StoreDriverPostgres,
			Products: postgres.NewProductRepository(pool),
			Branches: postgres.NewBranchRepository(pool),
			Stocks:   postgres.NewBranchStockRepository(pool),
			TxRunner: postgres.NewTxRunner(pool),
			pool:     pool,
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Store.Driver)
	}
}

// Migrate aplica el esquema. En memoria no hay nada que migrar.
func (b *Backend) Migrate(ctx context.Context) ([]string, error) {
	if b.pool == nil {
		return nil, nil
	}
	return postgres.Migrate(ctx, b.pool)
}

// Close libera el pool si lo hay.
func (b *Backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}
