package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// BalanceRepository define el puerto del Balance Store: cuánto hay de cada producto en cada local.
// Las implementaciones deben poder atarse a una transacción (ver inventory.TxRunner).
type BalanceRepository interface {
	// Get devuelve nil si el par no existe (equivale a cantidad cero).
	Get(ctx context.Context, productID, locationID string) (*entity.Balance, error)
	// GetForUpdate crea la fila en cero si no existe y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Balance, error)
	// Upsert inserta o sobrescribe la cantidad. El caller ya validó quantity >= 0.
	Upsert(ctx context.Context, balance *entity.Balance) error
	// Create solo inserta; devuelve domain.ErrDuplicate si el par ya existe.
	Create(ctx context.Context, balance *entity.Balance) error
	GetByID(ctx context.Context, id string) (*entity.Balance, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Balance, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.Balance, error)
	TotalByProduct(ctx context.Context, productID string) (int, error)
	// SellableTotalByProduct suma solo locales con sellable = true.
	SellableTotalByProduct(ctx context.Context, productID string) (int, error)
	// ListBelowMinimum devuelve balances con quantity <= estoque mínimo del producto.
	ListBelowMinimum(ctx context.Context) ([]*entity.Balance, error)
}
