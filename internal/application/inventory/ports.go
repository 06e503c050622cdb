package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// Repositories agrupa los puertos que un caso de uso necesita, atados a la misma conexión o transacción.
type Repositories struct {
	Balances  repository.BalanceRepository
	Movements repository.MovementRepository
	Transfers repository.TransferRepository
	Products  repository.ProductRepository
	Locations repository.LocationRepository
	Users     repository.UserRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

// LowStockNotifier recibe el resultado del escaneo de estoque bajo (webhook, log, ...).
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, items []dto.BalanceResponse) error
}

// SlipGenerator genera el comprobante imprimible de una transferencia.
type SlipGenerator interface {
	GenerateTransferSlip(transfer *dto.TransferResponse) ([]byte, error)
}

// Clock devuelve la hora actual; inyectable en tests.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
