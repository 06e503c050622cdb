package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

type recordingNotifier struct {
	calls [][]dto.BalanceResponse
	err   error
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, items []dto.BalanceResponse) error {
	n.calls = append(n.calls, items)
	return n.err
}

func TestLowStockAlert_Notifica(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P1", "L1", 2)
	n := &recordingNotifier{}
	uc := inventory.NewLowStockAlertUseCase(f.balances, n, logger.Nop())

	sent, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, n.calls, 1)
	assert.Equal(t, "Camisa", n.calls[0][0].ProductName)
}

func TestLowStockAlert_SinItemsNoNotifica(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P1", "L1", 50)
	n := &recordingNotifier{}
	uc := inventory.NewLowStockAlertUseCase(f.balances, n, logger.Nop())

	sent, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, n.calls)
}

func TestLowStockAlert_ErrorDelNotifier(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P1", "L1", 1)
	n := &recordingNotifier{err: errors.New("timeout")}
	uc := inventory.NewLowStockAlertUseCase(f.balances, n, logger.Nop())

	_, err := uc.Run(context.Background())
	assert.ErrorContains(t, err, "timeout")
}
