// Package report arma el reporte de stock por producto y sucursal
// (bodega central + tenencias de cada sucursal) y su versión PDF.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/domain"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

// UseCase genera reportes de stock.
type UseCase struct {
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	stockRepo   repository.BranchStockRepository
	generator   StockReportPDFGenerator
	now         func() time.Time
}

// NewUseCase construye el caso de uso. generator puede ser nil si no se requiere PDF.
func NewUseCase(
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	stockRepo repository.BranchStockRepository,
	generator StockReportPDFGenerator,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		branchRepo:  branchRepo,
		stockRepo:   stockRepo,
		generator:   generator,
		now:         time.Now,
	}
}

// StockReport lista cada producto con su stock de bodega y las sucursales que tienen registro,
// en el orden de distribución de las sucursales.
func (uc *UseCase) StockReport(ctx context.Context) (*dto.StockReportResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reporte: listar productos: %w", domain.ErrStoreFailure, err)
	}
	branches, err := uc.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reporte: listar sucursales: %w", domain.ErrStoreFailure, err)
	}

	out := &dto.StockReportResponse{
		GeneratedAt: uc.now(),
		Products:    make([]dto.ProductStockDTO, 0, len(products)),
		TotalValue:  decimal.Zero,
	}
	for _, p := range products {
		stocks, err := uc.stockRepo.ListByProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: reporte: stock del producto %s: %w", domain.ErrStoreFailure, p.ID, err)
		}
		levels := make(map[string]int64, len(stocks))
		for _, s := range stocks {
			levels[s.BranchID] = s.StockLevel
		}

		line := dto.ProductStockDTO{
			ProductID:      p.ID,
			ProductName:    p.Name,
			UnitPrice:      p.UnitPrice,
			WarehouseStock: p.StockLevel,
			Branches:       []dto.BranchHoldingDTO{},
			TotalUnits:     p.StockLevel,
		}
		for _, b := range branches {
			level, ok := levels[b.ID]
			if !ok {
				continue
			}
			line.Branches = append(line.Branches, dto.BranchHoldingDTO{
				BranchID:   b.ID,
				BranchName: b.Name,
				StockLevel: level,
			})
			line.TotalUnits += level
		}
		line.TotalValue = p.UnitPrice.Mul(decimal.NewFromInt(line.TotalUnits))
		out.TotalValue = out.TotalValue.Add(line.TotalValue)
		out.Products = append(out.Products, line)
	}
	return out, nil
}

// StockReportPDF genera el reporte y lo renderiza a PDF. Devuelve bytes y nombre de archivo.
func (uc *UseCase) StockReportPDF(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("reporte: generador PDF no configurado")
	}
	rep, err := uc.StockReport(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateStockReportPDF(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("stock_%s.pdf", rep.GeneratedAt.Format("20060102_150405"))
	return pdfBytes, filename, nil
}
