package distribution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/domain"
	domaindist "github.com/jhoicas/stock-distribution/internal/domain/distribution"
	"github.com/jhoicas/stock-distribution/internal/domain/entity"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

// UseCase ejecuta corridas de distribución: un producto a la vez, cada uno en su propia
// transacción, sucursales en el orden estable de BranchRepository.List.
type UseCase struct {
	mu          sync.Mutex
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso de distribución.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		log:         log.With().Str("component", "distribution").Logger(),
		now:         time.Now,
	}
}

// Run distribuye el stock de bodega de todos los productos.
//
// Ante la primera falla se detiene: devuelve la respuesta con los productos ya confirmados
// y un *ProductError (domain.ErrStoreFailure o domain.ErrInvalidInput). Metas de venta
// inválidas abortan antes de cualquier escritura.
func (uc *UseCase) Run(ctx context.Context) (*dto.DistributionRunResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	resp := &dto.DistributionRunResponse{StartedAt: uc.now(), Products: []dto.ProductDistributionDTO{}}

	branches, targets, err := uc.loadBranches(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listar productos: %w", domain.ErrStoreFailure, err)
	}

	uc.log.Info().Int("products", len(products)).Int("branches", len(branches)).Msg("inicio de distribución")

	for _, p := range products {
		out, err := uc.distributeProduct(ctx, p, branches, targets)
		if err != nil {
			resp.FinishedAt = uc.now()
			var perr *ProductError
			if errors.As(err, &perr) {
				resp.Failed = perr.Failure()
			}
			uc.log.Error().Err(err).Str("product_id", p.ID).Int("committed", len(resp.Products)).Msg("distribución abortada")
			return resp, err
		}
		resp.Products = append(resp.Products, *out)
	}

	resp.FinishedAt = uc.now()
	uc.log.Info().Int("committed", len(resp.Products)).Dur("elapsed", resp.FinishedAt.Sub(resp.StartedAt)).Msg("distribución finalizada")
	return resp, nil
}

// RunProduct distribuye un solo producto. domain.ErrNotFound si no existe.
func (uc *UseCase) RunProduct(ctx context.Context, productID string) (*dto.ProductDistributionDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	branches, targets, err := uc.loadBranches(ctx)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: obtener producto: %w", domain.ErrStoreFailure, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.distributeProduct(ctx, product, branches, targets)
}

func (uc *UseCase) loadBranches(ctx context.Context) ([]*entity.Branch, []domaindist.Target, error) {
	branches, err := uc.branchRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: listar sucursales: %w", domain.ErrStoreFailure, err)
	}
	targets := make([]domaindist.Target, len(branches))
	for i, b := range branches {
		targets[i] = domaindist.Target{BranchID: b.ID, SalesTarget: b.SalesTarget}
	}
	if _, err := domaindist.TotalTarget(targets); err != nil {
		return nil, nil, err
	}
	return branches, targets, nil
}

// distributeProduct relee el producto y el stock de cada sucursal dentro de la tx,
// calcula el reparto, persiste todas las filas y el nuevo stock de bodega.
func (uc *UseCase) distributeProduct(
	ctx context.Context,
	product *entity.Product,
	branches []*entity.Branch,
	targets []domaindist.Target,
) (*dto.ProductDistributionDTO, error) {
	var out *dto.ProductDistributionDTO

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		stockRepo repository.BranchStockRepository,
	) error {
		current, err := productRepo.GetForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		existing := make(map[string]int64, len(branches))
		for _, b := range branches {
			bs, err := stockRepo.GetForUpdate(ctx, current.ID, b.ID)
			if err != nil {
				return err
			}
			if bs != nil {
				existing[b.ID] = bs.StockLevel
			}
		}

		alloc, err := domaindist.Allocate(current.StockLevel, targets, existing)
		if err != nil {
			return err
		}

		now := uc.now()
		for _, line := range alloc.Lines {
			if err := stockRepo.Upsert(ctx, &entity.BranchStock{
				ProductID:  current.ID,
				BranchID:   line.BranchID,
				StockLevel: line.StockLevel,
				UpdatedAt:  now,
			}); err != nil {
				return err
			}
		}
		if err := productRepo.UpdateStockLevel(ctx, current.ID, alloc.Remainder); err != nil {
			return err
		}

		out = toProductDistribution(current, branches, alloc)
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
		}
		return nil, &ProductError{ProductID: product.ID, ProductName: product.Name, Err: err}
	}

	if out.Degenerate {
		uc.log.Warn().
			Str("product_id", out.ProductID).
			Str("product", out.ProductName).
			Int64("discarded", out.Discarded).
			Msg("suma de metas de ventas en cero, reparto equitativo")
	}
	uc.log.Debug().
		Str("product_id", out.ProductID).
		Int64("before", out.WarehouseBefore).
		Int64("after", out.WarehouseAfter).
		Msg("producto distribuido")
	return out, nil
}

func toProductDistribution(p *entity.Product, branches []*entity.Branch, alloc domaindist.Allocation) *dto.ProductDistributionDTO {
	names := make(map[string]string, len(branches))
	for _, b := range branches {
		names[b.ID] = b.Name
	}
	out := &dto.ProductDistributionDTO{
		ProductID:       p.ID,
		ProductName:     p.Name,
		WarehouseBefore: p.StockLevel,
		WarehouseAfter:  alloc.Remainder,
		Degenerate:      alloc.Degenerate,
		Discarded:       alloc.Discarded,
		Branches:        make([]dto.BranchAllocationDTO, 0, len(alloc.Lines)),
	}
	for _, l := range alloc.Lines {
		out.Branches = append(out.Branches, dto.BranchAllocationDTO{
			BranchID:   l.BranchID,
			BranchName: names[l.BranchID],
			Previous:   l.Previous,
			Share:      l.Share,
			StockLevel: l.StockLevel,
		})
	}
	return out
}
