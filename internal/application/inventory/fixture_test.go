package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// tickClock avanza un segundo en cada llamada para que el orden por created_at sea determinista.
type tickClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *tickClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

type fixture struct {
	store     *memory.Store
	clock     *tickClock
	engine    *inventory.MovementEngine
	transfers *inventory.TransferUseCase
	queries   *inventory.MovementQueryUseCase
	balances  *inventory.BalanceUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: "P1", SKU: "CAM-01", Name: "Camisa", MinStock: 5, Active: true})
	store.PutProduct(entity.Product{ID: "P2", SKU: "CAL-01", Name: "Calça", MinStock: 0, Active: true})
	store.PutLocation(entity.Location{ID: "L1", Name: "Loja Centro", Sellable: true, Active: true})
	store.PutLocation(entity.Location{ID: "L2", Name: "Depósito", Sellable: false, Active: true})
	store.PutUser(entity.User{ID: "U1", Name: "Ana", Email: "ana@example.com", Active: true})

	clock := &tickClock{cur: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	log := logger.Nop()
	reader := store.Repositories()
	engine := inventory.NewMovementEngine(store, log, clock.now)
	return &fixture{
		store:     store,
		clock:     clock,
		engine:    engine,
		transfers: inventory.NewTransferUseCase(store, engine, reader, log, clock.now),
		queries:   inventory.NewMovementQueryUseCase(reader),
		balances:  inventory.NewBalanceUseCase(reader, clock.now),
	}
}

// seed deja el saldo (producto, local) en qty creándolo directamente, sin pasar por el ledger.
func (f *fixture) seed(t *testing.T, productID, locationID string, qty int) {
	t.Helper()
	_, err := f.balances.CreateBalance(context.Background(), dto.CreateBalanceRequest{
		ProductID: productID, LocationID: locationID, Quantity: qty,
	})
	require.NoError(t, err)
}

func (f *fixture) quantity(t *testing.T, productID, locationID string) int {
	t.Helper()
	b, err := f.store.Repositories().Balances.Get(context.Background(), productID, locationID)
	require.NoError(t, err)
	if b == nil {
		return 0
	}
	return b.Quantity
}

func (f *fixture) movementCount(t *testing.T) int {
	t.Helper()
	res, err := f.queries.List(context.Background(), inventory.MovementQuery{})
	require.NoError(t, err)
	return res.Total
}

func movement(typ entity.MovementType, reason entity.MovementReason, qty int) inventory.MovementInput {
	return inventory.MovementInput{
		ProductID:  "P1",
		LocationID: "L1",
		Type:       typ,
		Reason:     reason,
		Quantity:   qty,
		UserID:     "U1",
	}
}
