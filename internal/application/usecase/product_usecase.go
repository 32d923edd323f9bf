package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/domain"
	"github.com/jhoicas/stock-distribution/internal/domain/catalog"
	"github.com/jhoicas/stock-distribution/internal/domain/entity"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo para productos. El stock de bodega solo cambia
// al crear, al reabastecer o al distribuir.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Nombre único (normalizado), precio y stock no negativos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := catalog.CleanName(in.Name)
	if name == "" || in.UnitPrice.LessThan(decimal.Zero) || in.StockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	key := catalog.NameKey(name)
	existing, err := uc.repo.GetByNameKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		NameKey:    key,
		UnitPrice:  in.UnitPrice,
		StockLevel: in.StockLevel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre y/o precio. No permite modificar stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := catalog.CleanName(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		key := catalog.NameKey(name)
		other, err := uc.repo.GetByNameKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.Name = name
		product.NameKey = key
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Restock suma unidades al stock de bodega. Rechaza cantidades que desbordarían int64.
func (uc *ProductUseCase) Restock(ctx context.Context, id string, qty int64) (*dto.ProductResponse, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.StockLevel > math.MaxInt64-qty {
		return nil, fmt.Errorf("%w: el stock de bodega desbordaría", domain.ErrInvalidInput)
	}
	if err := uc.repo.AddStock(ctx, id, qty); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		UnitPrice:  p.UnitPrice,
		StockLevel: p.StockLevel,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
