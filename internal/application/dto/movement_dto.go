package dto

import "time"

// RecordMovementRequest body para POST /api/movements.
// El actor sale del token; destination_location_id solo aplica a TRANSFERENCIA.
type RecordMovementRequest struct {
	ProductID             string `json:"product_id"`
	LocationID            string `json:"location_id"`
	Type                  string `json:"type"`
	Reason                string `json:"reason"`
	Quantity              int    `json:"quantity"`
	Note                  string `json:"note,omitempty"`
	DestinationLocationID string `json:"destination_location_id,omitempty"`
}

// MovementListQuery query params de GET /api/movements. Start/End en RFC3339.
type MovementListQuery struct {
	ProductID  string `query:"product_id"`
	LocationID string `query:"location_id"`
	TransferID string `query:"transfer_id"`
	Type       string `query:"type"`
	Reason     string `query:"reason"`
	Start      string `query:"start"`
	End        string `query:"end"`
}

// MovementResponse proyección de un movimiento con nombres resueltos.
type MovementResponse struct {
	ID                      string    `json:"id"`
	ProductID               string    `json:"product_id"`
	ProductName             string    `json:"product_name"`
	ProductSKU              string    `json:"product_sku"`
	LocationID              string    `json:"location_id"`
	LocationName            string    `json:"location_name"`
	Type                    string    `json:"type"`
	Reason                  string    `json:"reason"`
	Quantity                int       `json:"quantity"`
	QuantityBefore          int       `json:"quantity_before"`
	QuantityAfter           int       `json:"quantity_after"`
	Note                    string    `json:"note,omitempty"`
	UserID                  string    `json:"user_id"`
	UserName                string    `json:"user_name"`
	DestinationLocationID   string    `json:"destination_location_id,omitempty"`
	DestinationLocationName string    `json:"destination_location_name,omitempty"`
	TransferID              string    `json:"transfer_id,omitempty"`
	TransferLeg             string    `json:"transfer_leg,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

// MovementListResponse lista de movimientos, más recientes primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
