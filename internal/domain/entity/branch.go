package entity

import "time"

// Branch representa una sucursal que recibe stock según su meta de ventas semanal.
// Position fija el orden estable de listado: la distribución procesa las sucursales en ese orden.
type Branch struct {
	ID          string
	Name        string
	NameKey     string
	SalesTarget int64
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
