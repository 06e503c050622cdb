package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	domaininv "github.com/jhoicas/stockledger-api/internal/domain/inventory"
)

func TestProductStock_TotalYVendible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "P1", "L1", 4)
	f.seed(t, "P1", "L2", 10)

	res, err := f.balances.ProductStock(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 14, res.Total)
	assert.Equal(t, 4, res.SellableTotal)
	assert.Equal(t, "Camisa", res.ProductName)

	empty, err := f.balances.ProductStock(ctx, "P2")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)

	_, err = f.balances.ProductStock(ctx, "P404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.balances.CreateBalance(ctx, dto.CreateBalanceRequest{ProductID: "P1", LocationID: "L1", Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Quantity)
	assert.Equal(t, "Loja Centro", res.LocationName)

	_, err = f.balances.CreateBalance(ctx, dto.CreateBalanceRequest{ProductID: "P1", LocationID: "L1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.balances.CreateBalance(ctx, dto.CreateBalanceRequest{ProductID: "P1", LocationID: "L2", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.balances.CreateBalance(ctx, dto.CreateBalanceRequest{ProductID: "P1", LocationID: "L2", Quantity: domaininv.MaxQuantity + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.balances.CreateBalance(ctx, dto.CreateBalanceRequest{ProductID: "P1", LocationID: "L404"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.balances.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)
	assert.Equal(t, 8, f.quantity(t, "P1", "L1"))
}

func TestBalanceList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "P1", "L1", 1)
	f.seed(t, "P1", "L2", 2)
	f.seed(t, "P2", "L1", 3)

	byProduct, err := f.balances.List(ctx, dto.BalanceListQuery{ProductID: "P1"})
	require.NoError(t, err)
	assert.Equal(t, 2, byProduct.Total)

	byLocation, err := f.balances.List(ctx, dto.BalanceListQuery{LocationID: "L1"})
	require.NoError(t, err)
	assert.Equal(t, 2, byLocation.Total)

	pair, err := f.balances.List(ctx, dto.BalanceListQuery{ProductID: "P2", LocationID: "L1"})
	require.NoError(t, err)
	require.Len(t, pair.Items, 1)
	assert.Equal(t, 3, pair.Items[0].Quantity)

	_, err = f.balances.List(ctx, dto.BalanceListQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.balances.GetByID(ctx, "B404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListLowStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "P1", "L1", 5) // min 5: incluido (<=)
	f.seed(t, "P1", "L2", 6) // sobre el mínimo
	f.seed(t, "P2", "L1", 0) // min 0: incluido

	res, err := f.balances.ListLowStock(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	for _, b := range res.Items {
		assert.LessOrEqual(t, b.Quantity, b.MinStock)
	}
}
