package memory

import (
	"context"
	"math"
	"sort"

	"github.com/jhoicas/stock-distribution/internal/domain"
	"github.com/jhoicas/stock-distribution/internal/domain/entity"
	"github.com/jhoicas/stock-distribution/internal/domain/repository"
)

var (
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.BranchRepository      = (*BranchRepo)(nil)
	_ repository.BranchStockRepository = (*BranchStockRepo)(nil)
)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	at    access
	check func(op Op, productID string) error
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.at(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, p := range st.products {
			if p.NameKey == product.NameKey {
				return domain.ErrDuplicate
			}
		}
		st.products[product.ID] = *product
		st.productOrder = append(st.productOrder, product.ID)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if err := r.check(OpGetProduct, id); err != nil {
		return nil, err
	}
	var out *entity.Product
	err := r.at(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByNameKey(_ context.Context, nameKey string) (*entity.Product, error) {
	var out *entity.Product
	err := r.at(func(st *state) error {
		for _, p := range st.products {
			if p.NameKey == nameKey {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.at(func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, p := range st.products {
			if id != product.ID && p.NameKey == product.NameKey {
				return domain.ErrDuplicate
			}
		}
		cur.Name = product.Name
		cur.NameKey = product.NameKey
		cur.UnitPrice = product.UnitPrice
		cur.UpdatedAt = product.UpdatedAt
		st.products[product.ID] = cur
		return nil
	})
}

func (r *ProductRepo) UpdateStockLevel(_ context.Context, id string, stockLevel int64) error {
	if err := r.check(OpUpdateStockLevel, id); err != nil {
		return err
	}
	return r.at(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.StockLevel = stockLevel
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) AddStock(_ context.Context, id string, qty int64) error {
	return r.at(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if qty < 0 || p.StockLevel > math.MaxInt64-qty {
			return domain.ErrInvalidInput
		}
		p.StockLevel += qty
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	if err := r.check(OpListProducts, ""); err != nil {
		return nil, err
	}
	var list []*entity.Product
	err := r.at(func(st *state) error {
		for _, id := range st.productOrder {
			p := st.products[id]
			list = append(list, &p)
		}
		return nil
	})
	return list, err
}

func (r *ProductRepo) ListPage(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return page(list, limit, offset), nil
}

// BranchRepo implementación en memoria de BranchRepository.
type BranchRepo struct {
	at    access
	check func(op Op, productID string) error
}

func (r *BranchRepo) Create(_ context.Context, branch *entity.Branch) error {
	return r.at(func(st *state) error {
		if _, ok := st.branches[branch.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, b := range st.branches {
			if b.NameKey == branch.NameKey {
				return domain.ErrDuplicate
			}
		}
		st.nextPosition++
		branch.Position = st.nextPosition
		st.branches[branch.ID] = *branch
		return nil
	})
}

func (r *BranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	var out *entity.Branch
	err := r.at(func(st *state) error {
		if b, ok := st.branches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BranchRepo) GetByNameKey(_ context.Context, nameKey string) (*entity.Branch, error) {
	var out *entity.Branch
	err := r.at(func(st *state) error {
		for _, b := range st.branches {
			if b.NameKey == nameKey {
				b := b
				out = &b
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *BranchRepo) UpdateSalesTarget(_ context.Context, id string, salesTarget int64) error {
	return r.at(func(st *state) error {
		b, ok := st.branches[id]
		if !ok {
			return domain.ErrNotFound
		}
		b.SalesTarget = salesTarget
		st.branches[id] = b
		return nil
	})
}

func (r *BranchRepo) List(_ context.Context) ([]*entity.Branch, error) {
	if err := r.check(OpListBranches, ""); err != nil {
		return nil, err
	}
	var list []*entity.Branch
	err := r.at(func(st *state) error {
		for _, b := range st.branches {
			b := b
			list = append(list, &b)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, err
}

func (r *BranchRepo) ListPage(ctx context.Context, limit, offset int) ([]*entity.Branch, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return page(list, limit, offset), nil
}

// BranchStockRepo implementación en memoria de BranchStockRepository.
type BranchStockRepo struct {
	at    access
	check func(op Op, productID string) error
}

func (r *BranchStockRepo) Get(_ context.Context, productID, branchID string) (*entity.BranchStock, error) {
	if err := r.check(OpGetBranchStock, productID); err != nil {
		return nil, err
	}
	var out *entity.BranchStock
	err := r.at(func(st *state) error {
		if s, ok := st.stocks[stockKey{productID, branchID}]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *BranchStockRepo) GetForUpdate(ctx context.Context, productID, branchID string) (*entity.BranchStock, error) {
	return r.Get(ctx, productID, branchID)
}

func (r *BranchStockRepo) Upsert(_ context.Context, stock *entity.BranchStock) error {
	if err := r.check(OpUpsertStock, stock.ProductID); err != nil {
		return err
	}
	return r.at(func(st *state) error {
		st.stocks[stockKey{stock.ProductID, stock.BranchID}] = *stock
		return nil
	})
}

func (r *BranchStockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.BranchStock, error) {
	var list []*entity.BranchStock
	err := r.at(func(st *state) error {
		for k, s := range st.stocks {
			if k.productID == productID {
				s := s
				list = append(list, &s)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].BranchID < list[j].BranchID })
	return list, err
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
