// Package distribution implementa el reparto del stock de bodega entre sucursales
// según sus metas de ventas (servicio de dominio puro, sin persistencia).
package distribution

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/jhoicas/stock-distribution/internal/domain"
)

// Target es la meta de ventas de una sucursal. El orden del slice que recibe Allocate
// determina el orden de procesamiento y por lo tanto el redondeo.
type Target struct {
	BranchID    string
	SalesTarget int64
}

// Line es el resultado para una sucursal.
type Line struct {
	BranchID   string
	Previous   int64 // stock previo de la sucursal para el producto (0 si no existía)
	Share      int64 // unidades tomadas de la bodega en esta corrida
	StockLevel int64 // stock resultante de la sucursal
	Created    bool  // no existía registro previo
}

// Allocation es el resultado del reparto de un producto.
type Allocation struct {
	Lines      []Line
	Remainder  int64 // nuevo stock de bodega
	Degenerate bool  // suma de metas en cero: reparto equitativo
	Discarded  int64 // unidades perdidas por el reparto equitativo
}

// Allocate reparte warehouseStock entre las sucursales.
//
// Con suma de metas positiva recorre las sucursales en orden sobre un saldo decreciente:
// share = floor(saldo * meta / total), acotado al saldo, y se suma al stock previo.
// El saldo final queda en bodega.
//
// Con suma de metas en cero cada sucursal recibe floor(stock / n), que reemplaza su
// stock previo; la bodega queda en 0 y el residuo stock mod n se descarta.
//
// Precondición: stock, metas y stocks previos no negativos, y ningún stock resultante
// por encima de math.MaxInt64; si no, devuelve domain.ErrInvalidInput sin resultado parcial.
func Allocate(warehouseStock int64, targets []Target, existing map[string]int64) (Allocation, error) {
	if warehouseStock < 0 {
		return Allocation{}, fmt.Errorf("%w: stock de bodega negativo (%d)", domain.ErrInvalidInput, warehouseStock)
	}
	total, err := TotalTarget(targets)
	if err != nil {
		return Allocation{}, err
	}
	for _, t := range targets {
		if prev := existing[t.BranchID]; prev < 0 {
			return Allocation{}, fmt.Errorf("%w: stock negativo en sucursal %s (%d)", domain.ErrInvalidInput, t.BranchID, prev)
		}
	}

	if total == 0 {
		return allocateEqually(warehouseStock, targets, existing), nil
	}

	out := Allocation{Lines: make([]Line, 0, len(targets))}
	remaining := warehouseStock
	for _, t := range targets {
		share := proportionalShare(remaining, t.SalesTarget, total)
		if share > remaining {
			share = remaining
		}
		prev, ok := existing[t.BranchID]
		if prev > math.MaxInt64-share {
			return Allocation{}, fmt.Errorf("%w: el stock de la sucursal %s desbordaría", domain.ErrInvalidInput, t.BranchID)
		}
		out.Lines = append(out.Lines, Line{
			BranchID:   t.BranchID,
			Previous:   prev,
			Share:      share,
			StockLevel: prev + share,
			Created:    !ok,
		})
		remaining -= share
	}
	out.Remainder = remaining
	return out, nil
}

// TotalTarget suma las metas validando que no sean negativas ni desborden int64.
func TotalTarget(targets []Target) (int64, error) {
	var total int64
	for _, t := range targets {
		if t.SalesTarget < 0 {
			return 0, fmt.Errorf("%w: meta de ventas negativa en sucursal %s (%d)", domain.ErrInvalidInput, t.BranchID, t.SalesTarget)
		}
		if total > math.MaxInt64-t.SalesTarget {
			return 0, fmt.Errorf("%w: la suma de metas de ventas desborda", domain.ErrInvalidInput)
		}
		total += t.SalesTarget
	}
	return total, nil
}

func allocateEqually(warehouseStock int64, targets []Target, existing map[string]int64) Allocation {
	n := int64(len(targets))
	var equal int64
	if n > 0 {
		equal = warehouseStock / n
	}
	out := Allocation{
		Lines:      make([]Line, 0, len(targets)),
		Degenerate: true,
		Discarded:  warehouseStock - equal*n,
	}
	for _, t := range targets {
		prev, ok := existing[t.BranchID]
		out.Lines = append(out.Lines, Line{
			BranchID:   t.BranchID,
			Previous:   prev,
			Share:      equal,
			StockLevel: equal,
			Created:    !ok,
		})
	}
	return out
}

// proportionalShare calcula floor(remaining * target / total) en 128 bits.
// Requiere 0 <= target <= total y total > 0, por lo que el cociente cabe en 64 bits.
func proportionalShare(remaining, target, total int64) int64 {
	hi, lo := bits.Mul64(uint64(remaining), uint64(target))
	q, _ := bits.Div64(hi, lo, uint64(total))
	return int64(q)
}
