package dto

import "time"

// CreateBalanceRequest body para POST /api/balances. Solo crea; no sobrescribe.
type CreateBalanceRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

// BalanceListQuery query params de GET /api/balances (uno de los dos es obligatorio).
type BalanceListQuery struct {
	ProductID  string `query:"product_id"`
	LocationID string `query:"location_id"`
}

// BalanceResponse saldo de un producto en un local.
type BalanceResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductSKU   string    `json:"product_sku"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	Quantity     int       `json:"quantity"`
	MinStock     int       `json:"min_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BalanceListResponse lista de saldos.
type BalanceListResponse struct {
	Items []BalanceResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductStockResponse salida de GET /api/products/:id/stock.
type ProductStockResponse struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Total         int    `json:"total"`
	SellableTotal int    `json:"sellable_total"`
}
