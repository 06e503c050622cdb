package entity

import "time"

// Balance es la cantidad actual de un producto en un local. Una sola fila por (producto, local);
// se crea en cero la primera vez que un movimiento toca el par y nunca se elimina.
type Balance struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
