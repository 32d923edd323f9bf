package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// StockLevel es el stock de bodega central aún no asignado a ninguna sucursal;
// solo la distribución lo modifica (además del alta y del reabastecimiento).
type Product struct {
	ID         string
	Name       string
	NameKey    string // nombre normalizado, único
	UnitPrice  decimal.Decimal
	StockLevel int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
