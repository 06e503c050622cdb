package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// TransferFilter filtros opcionales (AND) para transferencias.
type TransferFilter struct {
	Status        entity.TransferStatus
	OriginID      string
	DestinationID string
	ProductID     string
}

// Matches indica si t cumple el filtro.
func (f TransferFilter) Matches(t *entity.Transfer) bool {
	switch {
	case f.Status != "" && t.Status != f.Status,
		f.OriginID != "" && t.OriginLocationID != f.OriginID,
		f.DestinationID != "" && t.DestinationLocationID != f.DestinationID,
		f.ProductID != "" && !t.HasProduct(f.ProductID):
		return false
	}
	return true
}

// TransferRepository puerto de persistencia de transferencias y sus items.
// GetByID y List devuelven la transferencia con Items cargados; List ordena por created_at DESC.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	AddItem(ctx context.Context, item *entity.TransferItem) error
	UpdateStatus(ctx context.Context, id string, status entity.TransferStatus, at time.Time) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	List(ctx context.Context, filter TransferFilter) ([]*entity.Transfer, error)
}
