package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// MovementFilter filtros opcionales (AND) para el ledger. Start/End forman la ventana [Start, End).
type MovementFilter struct {
	ProductID  string
	LocationID string
	TransferID string
	Type       entity.MovementType
	Reason     entity.MovementReason
	Start      *time.Time
	End        *time.Time
}

// Matches indica si m cumple el filtro. Misma semántica que la consulta SQL.
func (f MovementFilter) Matches(m *entity.Movement) bool {
	switch {
	case f.ProductID != "" && m.ProductID != f.ProductID,
		f.LocationID != "" && m.LocationID != f.LocationID,
		f.TransferID != "" && m.TransferID != f.TransferID,
		f.Type != "" && m.Type != f.Type,
		f.Reason != "" && m.Reason != f.Reason,
		f.Start != nil && m.CreatedAt.Before(*f.Start),
		f.End != nil && !m.CreatedAt.Before(*f.End):
		return false
	}
	return true
}

// MovementRepository puerto del Movement Ledger (solo append; no hay update ni delete).
// List ordena por created_at DESC, id DESC.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
