package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/domain"
)

// SeedResult resumen de la carga de datos de ejemplo.
type SeedResult struct {
	ProductsCreated int `json:"products_created"`
	BranchesCreated int `json:"branches_created"`
}

// SeedUseCase carga el catálogo de ejemplo (idempotente: omite nombres existentes).
type SeedUseCase struct {
	products *ProductUseCase
	branches *BranchUseCase
}

// NewSeedUseCase construye el caso de uso.
func NewSeedUseCase(products *ProductUseCase, branches *BranchUseCase) *SeedUseCase {
	return &SeedUseCase{products: products, branches: branches}
}

// SeedDemo crea los productos Laptop y Mouse y las sucursales Nairobi, Mombasa, Kisumu y Nakuru,
// en ese orden.
func (uc *SeedUseCase) SeedDemo(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}
	products := []dto.CreateProductRequest{
		{Name: "Laptop", UnitPrice: decimal.RequireFromString("1200.00"), StockLevel: 100},
		{Name: "Mouse", UnitPrice: decimal.RequireFromString("25.00"), StockLevel: 200},
	}
	for _, p := range products {
		_, err := uc.products.Create(ctx, p)
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return res, err
		}
		res.ProductsCreated++
	}

	branches := []dto.CreateBranchRequest{
		{Name: "Nairobi", SalesTarget: 50},
		{Name: "Mombasa", SalesTarget: 30},
		{Name: "Kisumu", SalesTarget: 20},
		{Name: "Nakuru", SalesTarget: 0},
	}
	for _, b := range branches {
		_, err := uc.branches.Create(ctx, b)
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return res, err
		}
		res.BranchesCreated++
	}
	return res, nil
}
