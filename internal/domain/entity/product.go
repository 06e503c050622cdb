package entity

// Product es la proyección del catálogo que el ledger necesita (el CRUD vive en otro servicio).
// MinStock es el umbral de estoque mínimo usado en las alertas de bajo stock.
type Product struct {
	ID       string
	SKU      string
	Name     string
	MinStock int
	Active   bool
}
