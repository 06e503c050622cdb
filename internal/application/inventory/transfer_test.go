package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stockledger-api/internal/domain/inventory"
)

func transferInput(origin, destination string, items ...inventory.TransferItemInput) inventory.TransferInput {
	return inventory.TransferInput{
		OriginLocationID:      origin,
		DestinationLocationID: destination,
		UserID:                "U1",
		Items:                 items,
	}
}

func TestCreateTransfer_Concluida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "P1", "L1", 100)
	f.seed(t, "P1", "L2", 0)

	res, err := f.transfers.CreateTransfer(ctx, transferInput("L1", "L2", inventory.TransferItemInput{ProductID: "P1", Quantity: 30}))
	require.NoError(t, err)

	assert.Equal(t, string(entity.TransferConcluida), res.Status)
	assert.Equal(t, "Loja Centro", res.OriginLocationName)
	assert.Equal(t, "Depósito", res.DestinationLocationName)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Camisa", res.Items[0].ProductName)
	assert.Equal(t, 70, f.quantity(t, "P1", "L1"))
	assert.Equal(t, 30, f.quantity(t, "P1", "L2"))

	legs, err := f.queries.List(ctx, inventory.MovementQuery{TransferID: res.ID})
	require.NoError(t, err)
	require.Len(t, legs.Items, 2)
	assert.Equal(t, 2, f.movementCount(t))

	// más reciente primero: la entrada en destino se escribió después de la salida
	in, out := legs.Items[0], legs.Items[1]
	assert.Equal(t, string(entity.MovementTransferencia), out.Type)
	assert.Equal(t, string(entity.ReasonEnvioTransferencia), out.Reason)
	assert.Equal(t, string(entity.LegOutbound), out.TransferLeg)
	assert.Equal(t, "L1", out.LocationID)
	assert.Equal(t, "L2", out.DestinationLocationID)
	assert.Equal(t, 100, out.QuantityBefore)
	assert.Equal(t, 70, out.QuantityAfter)
	assert.Contains(t, out.Note, "para Depósito")

	assert.Equal(t, string(entity.ReasonRecebimentoTransferencia), in.Reason)
	assert.Equal(t, string(entity.LegInbound), in.TransferLeg)
	assert.Equal(t, "L2", in.LocationID)
	assert.Equal(t, 0, in.QuantityBefore)
	assert.Equal(t, 30, in.QuantityAfter)
	assert.Contains(t, in.Note, "de Loja Centro")

	got, err := f.transfers.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, string(entity.TransferConcluida), got.Status)
}

func TestCreateTransfer_MismoLocal(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P1", "L1", 10)

	_, err := f.transfers.CreateTransfer(context.Background(), transferInput("L1", "L1", inventory.TransferItemInput{ProductID: "P1", Quantity: 1}))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.transfers.List(context.Background(), inventory.TransferQuery{})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

// Si el tercer item no tiene saldo, nada de lo anterior queda escrito.
func TestCreateTransfer_AtomicaAnteFalloDeUnItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "P1", "L1", 10)
	f.seed(t, "P2", "L1", 2)

	_, err := f.transfers.CreateTransfer(ctx, transferInput("L1", "L2",
		inventory.TransferItemInput{ProductID: "P1", Quantity: 4},
		inventory.TransferItemInput{ProductID: "P1", Quantity: 4},
		inventory.TransferItemInput{ProductID: "P2", Quantity: 3},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "Calça", ise.ProductName)
	assert.Equal(t, 2, ise.Available)
	assert.Equal(t, 3, ise.Requested)

	assert.Equal(t, 10, f.quantity(t, "P1", "L1"))
	assert.Equal(t, 2, f.quantity(t, "P2", "L1"))
	assert.Zero(t, f.quantity(t, "P1", "L2"))
	assert.Zero(t, f.movementCount(t))
	list, err := f.transfers.List(ctx, inventory.TransferQuery{})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestCreateTransfer_CantidadAcumuladaPorProducto(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P1", "L1", 5)

	_, err := f.transfers.CreateTransfer(context.Background(), transferInput("L1", "L2",
		inventory.TransferItemInput{ProductID: "P1", Quantity: 3},
		inventory.TransferItemInput{ProductID: "P1", Quantity: 3},
	))
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 5, ise.Available)
	assert.Equal(t, 6, ise.Requested)
	assert.Equal(t, 5, f.quantity(t, "P1", "L1"))
}

func TestCreateTransfer_Validaciones(t *testing.T) {
	one := inventory.TransferItemInput{ProductID: "P1", Quantity: 1}
	cases := []struct {
		name string
		in   inventory.TransferInput
		want error
	}{
		{"origen inexistente", transferInput("L404", "L2", one), domain.ErrNotFound},
		{"destino inexistente", transferInput("L1", "L404", one), domain.ErrNotFound},
		{"sin items", transferInput("L1", "L2"), domain.ErrInvalidInput},
		{"cantidad cero", transferInput("L1", "L2", inventory.TransferItemInput{ProductID: "P1"}), domain.ErrInvalidInput},
		{"producto inexistente", transferInput("L1", "L2", inventory.TransferItemInput{ProductID: "P404", Quantity: 1}), domain.ErrNotFound},
		{"sin saldo en origen", transferInput("L1", "L2", inventory.TransferItemInput{ProductID: "P2", Quantity: 1}), domain.ErrInsufficientStock},
		{"usuario inexistente", func() inventory.TransferInput {
			in := transferInput("L1", "L2", one)
			in.UserID = "U404"
			return in
		}(), domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.seed(t, "P1", "L1", 10)
			_, err := f.transfers.CreateTransfer(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 10, f.quantity(t, "P1", "L1"))
			assert.Zero(t, f.movementCount(t))
		})
	}
}

func TestTransferList_Filtros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "P1", "L1", 50)
	f.seed(t, "P2", "L2", 50)

	first, err := f.transfers.CreateTransfer(ctx, transferInput("L1", "L2", inventory.TransferItemInput{ProductID: "P1", Quantity: 5}))
	require.NoError(t, err)
	second, err := f.transfers.CreateTransfer(ctx, transferInput("L2", "L1", inventory.TransferItemInput{ProductID: "P2", Quantity: 5}))
	require.NoError(t, err)

	all, err := f.transfers.List(ctx, inventory.TransferQuery{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, second.ID, all.Items[0].ID, "más reciente primero")

	byOrigin, err := f.transfers.List(ctx, inventory.TransferQuery{OriginID: "L1"})
	require.NoError(t, err)
	require.Len(t, byOrigin.Items, 1)
	assert.Equal(t, first.ID, byOrigin.Items[0].ID)

	byProduct, err := f.transfers.List(ctx, inventory.TransferQuery{ProductID: "P2"})
	require.NoError(t, err)
	require.Len(t, byProduct.Items, 1)
	assert.Equal(t, second.ID, byProduct.Items[0].ID)

	byStatus, err := f.transfers.List(ctx, inventory.TransferQuery{Status: string(entity.TransferPendente)})
	require.NoError(t, err)
	assert.Zero(t, byStatus.Total)

	again, err := f.transfers.List(ctx, inventory.TransferQuery{})
	require.NoError(t, err)
	assert.Equal(t, all, again)

	_, err = f.transfers.List(ctx, inventory.TransferQuery{Status: "ENVIADA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferGetByID_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.transfers.GetByID(context.Background(), "T404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTransfer_CantidadFueraDeRango(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P1", "L1", 10)

	_, err := f.transfers.CreateTransfer(context.Background(),
		transferInput("L1", "L2", inventory.TransferItemInput{ProductID: "P1", Quantity: domaininv.MaxQuantity + 1}))

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, f.quantity(t, "P1", "L1"))
	assert.Zero(t, f.movementCount(t))
}

func TestCreateTransfer_DestinoSuperaElMaximo_RevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P1", "L1", 10)
	f.seed(t, "P1", "L2", domaininv.MaxQuantity)

	_, err := f.transfers.CreateTransfer(context.Background(),
		transferInput("L1", "L2", inventory.TransferItemInput{ProductID: "P1", Quantity: 1}))

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, f.quantity(t, "P1", "L1"))
	assert.Equal(t, domaininv.MaxQuantity, f.quantity(t, "P1", "L2"))
	assert.Zero(t, f.movementCount(t))

	list, err := f.transfers.List(context.Background(), inventory.TransferQuery{})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}
