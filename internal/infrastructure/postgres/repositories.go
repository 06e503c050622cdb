package postgres

import "github.com/jhoicas/stockledger-api/internal/application/inventory"

// NewRepositories arma el set completo de repositorios sobre q (pool para lecturas, tx dentro de TxRunner).
func NewRepositories(q Querier) inventory.Repositories {
	return inventory.Repositories{
		Balances:  NewBalanceRepository(q),
		Movements: NewMovementRepository(q),
		Transfers: NewTransferRepository(q),
		Products:  NewProductRepository(q),
		Locations: NewLocationRepository(q),
		Users:     NewUserRepository(q),
	}
}
