// Package memory implementa los puertos de persistencia en memoria de proceso.
// Las transacciones trabajan sobre una copia del estado y la publican en el commit,
// así un rollback no deja cambios parciales. Útil para STORE_DRIVER=memory y para tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-distribution/internal/application/distribution"
	"github.com/jhoicas/stock-distribution/internal/domain/entity"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

// Op identifica una operación del almacén para inyección de fallas.
type Op string

const (
	OpListProducts     Op = "products.list"
	OpListBranches     Op = "branches.list"
	OpGetProduct       Op = "products.get"
	OpUpdateStockLevel Op = "products.update_stock_level"
	OpGetBranchStock   Op = "branch_stocks.get"
	OpUpsertStock      Op = "branch_stocks.upsert"
	OpCommit           Op = "tx.commit"
)

// FaultFunc permite simular fallas del almacén: si devuelve error, la operación falla con él.
// productID es vacío en operaciones que no son de un producto.
type FaultFunc func(op Op, productID string) error

type stockKey struct {
	productID string
	branchID  string
}

type state struct {
	products     map[string]entity.Product
	productOrder []string
	branches     map[string]entity.Branch
	stocks       map[stockKey]entity.BranchStock
	nextPosition int64
}

func newState() *state {
	return &state{
		products: make(map[string]entity.Product),
		branches: make(map[string]entity.Branch),
		stocks:   make(map[stockKey]entity.BranchStock),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:     make(map[string]entity.Product, len(s.products)),
		productOrder: append([]string(nil), s.productOrder...),
		branches:     make(map[string]entity.Branch, len(s.branches)),
		stocks:       make(map[stockKey]entity.BranchStock, len(s.stocks)),
		nextPosition: s.nextPosition,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	return c
}

// access ejecuta fn sobre el estado: con lock en el store, o directo sobre la copia de una tx.
type access func(fn func(st *state) error) error

// Store almacén en memoria. Seguro para uso concurrente.
// faultMu es independiente de mu: check corre también dentro de una tx, con mu tomado.
type Store struct {
	mu      sync.Mutex
	st      *state
	faultMu sync.RWMutex
	fault   FaultFunc
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// SetFault instala (o quita, con nil) el inyector de fallas.
func (s *Store) SetFault(f FaultFunc) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.fault = f
}

func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) check(op Op, productID string) error {
	s.faultMu.RLock()
	fault := s.fault
	s.faultMu.RUnlock()
	if fault == nil {
		return nil
	}
	return fault(op, productID)
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo {
	return &ProductRepo{at: s.locked, check: s.check}
}

// Branches devuelve el repositorio de sucursales.
func (s *Store) Branches() *BranchRepo {
	return &BranchRepo{at: s.locked, check: s.check}
}

// BranchStocks devuelve el repositorio de stock por sucursal fuera de transacción.
func (s *Store) BranchStocks() *BranchStockRepo {
	return &BranchStockRepo{at: s.locked, check: s.check}
}

var _ distribution.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks sobre una copia del estado y la publica si fn devuelve nil.
// Mantiene el lock del store durante toda la tx (equivalente a los bloqueos de fila).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner para el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run inicia la tx, ejecuta fn con repos atados a la copia y hace Commit o descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	stockRepo repository.BranchStockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txScope{st: s.st.clone()}
	check := func(op Op, productID string) error {
		if productID != "" {
			tx.productID = productID
		}
		return s.check(op, productID)
	}
	inTx := func(fn func(st *state) error) error { return fn(tx.st) }

	if err := fn(
		&ProductRepo{at: inTx, check: check},
		&BranchStockRepo{at: inTx, check: check},
	); err != nil {
		return err
	}
	if err := s.check(OpCommit, tx.productID); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

type txScope struct {
	st        *state
	productID string
}
