package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/domain"
	"github.com/jhoicas/stock-distribution/internal/domain/catalog"
	"github.com/jhoicas/stock-distribution/internal/domain/entity"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

// BranchUseCase casos de uso de catálogo para sucursales.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// Create crea una sucursal; queda al final del orden de distribución.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	name := catalog.CleanName(in.Name)
	if name == "" || in.SalesTarget < 0 {
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
	branch := &entity.Branch{
		ID:          uuid.New().String(),
		Name:        name,
		NameKey:     key,
		SalesTarget: in.SalesTarget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal por ID. (nil, nil) si no existe.
func (uc *BranchUseCase) GetByID(ctx context.Context, id string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, nil
	}
	return toBranchResponse(branch), nil
}

// UpdateSalesTarget cambia la meta de ventas semanal de la sucursal.
func (uc *BranchUseCase) UpdateSalesTarget(ctx context.Context, id string, target int64) (*dto.BranchResponse, error) {
	if target < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdateSalesTarget(ctx, id, target); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista sucursales en orden de distribución.
func (uc *BranchUseCase) List(ctx context.Context, limit, offset int) (*dto.BranchListResponse, error) {
	list, err := uc.repo.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:          b.ID,
		Name:        b.Name,
		SalesTarget: b.SalesTarget,
		Position:    b.Position,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
