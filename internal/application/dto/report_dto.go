package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BranchHoldingDTO stock de un producto en una sucursal.
type BranchHoldingDTO struct {
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	StockLevel int64  `json:"stock_level"`
}

// ProductStockDTO línea del reporte de stock.
type ProductStockDTO struct {
	ProductID      string             `json:"product_id"`
	ProductName    string             `json:"product_name"`
	UnitPrice      decimal.Decimal    `json:"unit_price"`
	WarehouseStock int64              `json:"warehouse_stock"`
	Branches       []BranchHoldingDTO `json:"branches"`
	TotalUnits     int64              `json:"total_units"` // bodega + sucursales
	TotalValue     decimal.Decimal    `json:"total_value"` // TotalUnits * UnitPrice
}

// StockReportResponse reporte de stock por producto y sucursal.
type StockReportResponse struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Products    []ProductStockDTO `json:"products"`
	TotalValue  decimal.Decimal   `json:"total_value"`
}
