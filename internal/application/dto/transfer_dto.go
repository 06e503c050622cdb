package dto

import "time"

// TransferItemRequest un producto dentro de POST /api/transfers.
type TransferItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	OriginLocationID      string                `json:"origin_location_id"`
	DestinationLocationID string                `json:"destination_location_id"`
	Note                  string                `json:"note,omitempty"`
	Items                 []TransferItemRequest `json:"items"`
}

// TransferListQuery query params de GET /api/transfers.
type TransferListQuery struct {
	Status        string `query:"status"`
	OriginID      string `query:"origin_id"`
	DestinationID string `query:"destination_id"`
	ProductID     string `query:"product_id"`
}

// TransferItemResponse item con nombre de producto.
type TransferItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Quantity    int    `json:"quantity"`
}

// TransferResponse proyección de una transferencia con sus items en orden.
type TransferResponse struct {
	ID                      string                 `json:"id"`
	OriginLocationID        string                 `json:"origin_location_id"`
	OriginLocationName      string                 `json:"origin_location_name"`
	DestinationLocationID   string                 `json:"destination_location_id"`
	DestinationLocationName string                 `json:"destination_location_name"`
	Status                  string                 `json:"status"`
	Note                    string                 `json:"note,omitempty"`
	UserID                  string                 `json:"user_id"`
	UserName                string                 `json:"user_name"`
	Items                   []TransferItemResponse `json:"items"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

// TransferListResponse lista de transferencias, más recientes primero.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Total int                `json:"total"`
}
