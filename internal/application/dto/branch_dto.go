package dto

import "time"

// CreateBranchRequest entrada para crear una sucursal.
type CreateBranchRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	SalesTarget int64  `json:"sales_target"`
}

// UpdateSalesTargetRequest body para PUT /api/branches/:id/target.
type UpdateSalesTargetRequest struct {
	SalesTarget int64 `json:"sales_target"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SalesTarget int64     `json:"sales_target"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BranchListResponse lista paginada de sucursales.
type BranchListResponse struct {
	Items []BranchResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
