package report

import (
	"context"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
)

// StockReportPDFGenerator genera la representación PDF del reporte de stock.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, report *dto.StockReportResponse) ([]byte, error)
}
