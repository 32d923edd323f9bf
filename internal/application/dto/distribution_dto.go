package dto

import "time"

// BranchAllocationDTO resultado del reparto para una sucursal.
type BranchAllocationDTO struct {
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Previous   int64  `json:"previous"`
	Share      int64  `json:"share"`
	StockLevel int64  `json:"stock_level"`
}

// ProductDistributionDTO resultado del reparto de un producto.
type ProductDistributionDTO struct {
	ProductID       string                `json:"product_id"`
	ProductName     string                `json:"product_name"`
	WarehouseBefore int64                 `json:"warehouse_before"`
	WarehouseAfter  int64                 `json:"warehouse_after"`
	Degenerate      bool                  `json:"degenerate"`          // metas en cero: reparto equitativo
	Discarded       int64                 `json:"discarded,omitempty"` // unidades descartadas en reparto equitativo
	Branches        []BranchAllocationDTO `json:"branches"`
}

// DistributionFailureDTO producto cuya distribución se abortó.
type DistributionFailureDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Code        string `json:"code"`
	Message     string `json:"message"`
}

// DistributionRunResponse resultado de una corrida de distribución.
// Products contiene solo productos confirmados (commit); Failed el producto que abortó la corrida.
type DistributionRunResponse struct {
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt time.Time                `json:"finished_at"`
	Products   []ProductDistributionDTO `json:"products"`
	Failed     *DistributionFailureDTO  `json:"failed,omitempty"`
}
