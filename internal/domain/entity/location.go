package entity

// Location representa un local de estoque (tienda, fulfillment, reparo, saldão...).
// Sellable indica si su cantidad cuenta como stock disponible para venta.
type Location struct {
	ID       string
	Name     string
	Sellable bool
	Active   bool
}
