package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/application/usecase"
	"github.com/jhoicas/stock-distribution/internal/domain"
	"github.com/jhoicas/stock-distribution/internal/infrastructure/memory"
)

func TestProductUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	out, err := uc.Create(ctx, dto.CreateProductRequest{Name: "  Laptop  ", UnitPrice: decimal.RequireFromString("1200.00"), StockLevel: 100})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Laptop", out.Name)
	assert.Equal(t, int64(100), out.StockLevel)
	assert.True(t, out.UnitPrice.Equal(decimal.NewFromInt(1200)))

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "LAPTOP", UnitPrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre es único sin distinguir mayúsculas")
}

func TestProductUseCase_CreateValidaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"sin nombre", dto.CreateProductRequest{Name: "   "}},
		{"precio negativo", dto.CreateProductRequest{Name: "Mouse", UnitPrice: decimal.NewFromInt(-1)}},
		{"stock negativo", dto.CreateProductRequest{Name: "Mouse", StockLevel: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUseCase_UpdateYRestock(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	laptop, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Laptop", UnitPrice: decimal.NewFromInt(1200), StockLevel: 10})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Mouse", UnitPrice: decimal.NewFromInt(25)})
	require.NoError(t, err)

	price := decimal.RequireFromString("999.99")
	out, err := uc.Update(ctx, laptop.ID, dto.UpdateProductRequest{UnitPrice: &price})
	require.NoError(t, err)
	assert.True(t, out.UnitPrice.Equal(price))

	dup := "mouse"
	_, err = uc.Update(ctx, laptop.ID, dto.UpdateProductRequest{Name: &dup})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err = uc.Restock(ctx, laptop.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.StockLevel)

	_, err = uc.Restock(ctx, laptop.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Restock(ctx, "nope", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	missing, err := uc.Update(ctx, "nope", dto.UpdateProductRequest{UnitPrice: &price})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductUseCase_RestockDesborde(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	laptop, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Laptop", UnitPrice: decimal.NewFromInt(1200), StockLevel: math.MaxInt64 - 5})
	require.NoError(t, err)

	_, err = uc.Restock(ctx, laptop.ID, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.GetByID(ctx, laptop.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-5), out.StockLevel, "el stock no cambia si la suma desborda")
}

func TestBranchUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewBranchUseCase(memory.NewStore().Branches())

	a, err := uc.Create(ctx, dto.CreateBranchRequest{Name: "Nairobi", SalesTarget: 50})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateBranchRequest{Name: "Mombasa", SalesTarget: 30})
	require.NoError(t, err)
	assert.Less(t, a.Position, b.Position)

	_, err = uc.Create(ctx, dto.CreateBranchRequest{Name: "Kisumu", SalesTarget: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateBranchRequest{Name: "nairobi"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := uc.UpdateSalesTarget(ctx, b.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.SalesTarget)
	_, err = uc.UpdateSalesTarget(ctx, b.ID, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Nairobi", list.Items[0].Name)
}

func TestSeedUseCase_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := usecase.NewProductUseCase(store.Products())
	branches := usecase.NewBranchUseCase(store.Branches())
	seed := usecase.NewSeedUseCase(products, branches)

	res, err := seed.SeedDemo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ProductsCreated)
	assert.Equal(t, 4, res.BranchesCreated)

	res, err = seed.SeedDemo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ProductsCreated)
	assert.Equal(t, 0, res.BranchesCreated)

	list, err := branches.List(ctx, 10, 0)
	require.NoError(t, err)
	names := make([]string, 0, len(list.Items))
	for _, b := range list.Items {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Nairobi", "Mombasa", "Kisumu", "Nakuru"}, names)
}
