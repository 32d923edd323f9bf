package entity

import "time"

// BranchStock es el stock de un producto asignado a una sucursal (clave: producto + sucursal).
type BranchStock struct {
	ProductID  string
	BranchID   string
	StockLevel int64
	UpdatedAt  time.Time
}
